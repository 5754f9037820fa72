package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshcart/grocery-api/internal/domain"
	"github.com/freshcart/grocery-api/pkg/database"
	apperrors "github.com/freshcart/grocery-api/pkg/errors"
)

func newOrderTestRepo(t *testing.T) (*OrderRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return NewOrderRepository(mock), mock
}

func sampleLines(t *testing.T) ([]domain.OrderLine, []byte) {
	t.Helper()
	lines := []domain.OrderLine{
		{GroceryID: 1, Name: "apple", Ordered: 3, Remaining: 97, PricePerUnit: 59, Total: 177},
		{GroceryID: 2, Name: "whole milk", Ordered: 2, Remaining: 8, PricePerUnit: 189, Total: 378},
	}
	data, err := json.Marshal(lines)
	require.NoError(t, err)
	return lines, data
}

func TestOrderRepository_GetByID_Success(t *testing.T) {
	repo, mock := newOrderTestRepo(t)
	now := time.Now().UTC()
	lines, itemsJSON := sampleLines(t)

	mock.ExpectQuery("SELECT id, user_id, items, total_cost, created_at").
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "items", "total_cost", "created_at"}).
			AddRow(int64(42), "user-1", itemsJSON, int64(555), now))

	order, err := repo.GetByID(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, int64(555), order.TotalCost)
	assert.Equal(t, lines, order.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newOrderTestRepo(t)

	mock.ExpectQuery("SELECT id, user_id, items, total_cost, created_at").
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)

	order, err := repo.GetByID(context.Background(), 9)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListByUser(t *testing.T) {
	repo, mock := newOrderTestRepo(t)
	now := time.Now().UTC()
	_, itemsJSON := sampleLines(t)

	rows := pgxmock.NewRows([]string{"id", "user_id", "items", "total_cost", "created_at", "total_count"}).
		AddRow(int64(2), "user-1", itemsJSON, int64(555), now, 2).
		AddRow(int64(1), "user-1", itemsJSON, int64(59), now.Add(-time.Hour), 2)

	mock.ExpectQuery("SELECT id, user_id, items, total_cost, created_at").
		WithArgs("user-1", 20, 0).
		WillReturnRows(rows)

	orders, total, err := repo.ListByUser(context.Background(), "user-1", 1, 20)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(2), orders[0].ID)
	assert.Len(t, orders[0].Items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListByUser_Empty(t *testing.T) {
	repo, mock := newOrderTestRepo(t)

	mock.ExpectQuery("SELECT id, user_id, items, total_cost, created_at").
		WithArgs("user-1", 20, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "items", "total_cost", "created_at", "total_count"}))

	orders, total, err := repo.ListByUser(context.Background(), "user-1", 1, 20)

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}
