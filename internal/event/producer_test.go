package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshcart/grocery-api/internal/domain"
	"github.com/freshcart/grocery-api/pkg/kafka"
	"github.com/freshcart/grocery-api/pkg/logger"
)

type capturingPublisher struct {
	topic string
	event *kafka.Event
	err   error
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event *kafka.Event) error {
	p.topic = topic
	p.event = event
	return p.err
}

func TestPublishOrderPlaced(t *testing.T) {
	pub := &capturingPublisher{}
	producer := NewProducer(pub)

	order := &domain.Order{
		ID:        42,
		UserID:    "user-1",
		TotalCost: 177,
		Items: []domain.OrderLine{
			{GroceryID: 1, Name: "apple", Ordered: 3, Remaining: 97, PricePerUnit: 59, Total: 177},
		},
	}

	ctx := logger.WithCorrelationID(context.Background(), "corr-123")
	require.NoError(t, producer.PublishOrderPlaced(ctx, order))

	assert.Equal(t, TopicOrderPlaced, pub.topic)
	assert.Equal(t, "order.placed", pub.event.EventType)
	assert.Equal(t, "42", pub.event.AggregateID)
	assert.Equal(t, "order", pub.event.AggregateType)
	assert.Equal(t, "grocery-api", pub.event.Source)
	assert.Equal(t, "corr-123", pub.event.CorrelationID)

	var data OrderPlacedData
	require.NoError(t, pub.event.UnmarshalData(&data))
	assert.Equal(t, int64(42), data.OrderID)
	assert.Equal(t, "user-1", data.UserID)
	assert.Equal(t, int64(177), data.TotalCost)
	require.Len(t, data.Items, 1)
	assert.Equal(t, "apple", data.Items[0].Name)
}

func TestPublishInventoryUpdated(t *testing.T) {
	pub := &capturingPublisher{}
	producer := NewProducer(pub)

	g := &domain.Grocery{ID: 7, Name: "whole milk", Stock: 12}
	require.NoError(t, producer.PublishInventoryUpdated(context.Background(), g, "updated"))

	assert.Equal(t, TopicInventoryUpdated, pub.topic)
	assert.Equal(t, "grocery", pub.event.AggregateType)

	var data InventoryUpdatedData
	require.NoError(t, pub.event.UnmarshalData(&data))
	assert.Equal(t, int64(7), data.GroceryID)
	assert.Equal(t, 12, data.Stock)
	assert.Equal(t, "updated", data.Reason)
}

func TestPublishUserRegistered(t *testing.T) {
	pub := &capturingPublisher{}
	producer := NewProducer(pub)

	u := &domain.User{ID: "user-9", Email: "shopper@example.com", Role: domain.RoleUser}
	require.NoError(t, producer.PublishUserRegistered(context.Background(), u))

	assert.Equal(t, TopicUserRegistered, pub.topic)
	assert.Equal(t, "user-9", pub.event.AggregateID)

	var data UserRegisteredData
	require.NoError(t, pub.event.UnmarshalData(&data))
	assert.Equal(t, "shopper@example.com", data.Email)
	assert.Equal(t, domain.RoleUser, data.Role)
}
