package event

import (
	"context"
	"fmt"
	"strconv"

	"github.com/freshcart/grocery-api/internal/domain"
	"github.com/freshcart/grocery-api/pkg/kafka"
	"github.com/freshcart/grocery-api/pkg/logger"
)

// Kafka topics published by the grocery API.
const (
	TopicOrderPlaced      = "grocery.order.placed"
	TopicInventoryUpdated = "grocery.inventory.updated"
	TopicUserRegistered   = "grocery.user.registered"
)

const source = "grocery-api"

// Publisher is the subset of the Kafka producer used by services.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *kafka.Event) error
}

// Producer publishes domain events to Kafka.
type Producer struct {
	publisher Publisher
}

// NewProducer creates a domain event producer on top of a Kafka publisher.
func NewProducer(publisher Publisher) *Producer {
	return &Producer{publisher: publisher}
}

// OrderPlacedData is the payload of an order.placed event.
type OrderPlacedData struct {
	OrderID   int64              `json:"order_id"`
	UserID    string             `json:"user_id"`
	TotalCost int64              `json:"total_cost"`
	Items     []domain.OrderLine `json:"items"`
}

// PublishOrderPlaced emits an event after an order commits.
func (p *Producer) PublishOrderPlaced(ctx context.Context, o *domain.Order) error {
	data := OrderPlacedData{
		OrderID:   o.ID,
		UserID:    o.UserID,
		TotalCost: o.TotalCost,
		Items:     o.Items,
	}

	evt, err := kafka.NewEvent("order.placed", strconv.FormatInt(o.ID, 10), "order", source, data)
	if err != nil {
		return fmt.Errorf("build order.placed event: %w", err)
	}
	evt.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	return p.publisher.Publish(ctx, TopicOrderPlaced, evt)
}

// InventoryUpdatedData is the payload of an inventory.updated event.
type InventoryUpdatedData struct {
	GroceryID int64  `json:"grocery_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Reason    string `json:"reason"`
}

// PublishInventoryUpdated emits an event after a stock level changes.
func (p *Producer) PublishInventoryUpdated(ctx context.Context, g *domain.Grocery, reason string) error {
	data := InventoryUpdatedData{
		GroceryID: g.ID,
		Name:      g.Name,
		Stock:     g.Stock,
		Reason:    reason,
	}

	evt, err := kafka.NewEvent("inventory.updated", strconv.FormatInt(g.ID, 10), "grocery", source, data)
	if err != nil {
		return fmt.Errorf("build inventory.updated event: %w", err)
	}
	evt.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	return p.publisher.Publish(ctx, TopicInventoryUpdated, evt)
}

// UserRegisteredData is the payload of a user.registered event.
type UserRegisteredData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// PublishUserRegistered emits an event after an account is created.
func (p *Producer) PublishUserRegistered(ctx context.Context, u *domain.User) error {
	data := UserRegisteredData{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	}

	evt, err := kafka.NewEvent("user.registered", u.ID, "user", source, data)
	if err != nil {
		return fmt.Errorf("build user.registered event: %w", err)
	}
	evt.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	return p.publisher.Publish(ctx, TopicUserRegistered, evt)
}
