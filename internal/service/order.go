package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/freshcart/grocery-api/internal/domain"
	"github.com/freshcart/grocery-api/internal/event"
	"github.com/freshcart/grocery-api/internal/repository"
	"github.com/freshcart/grocery-api/pkg/database"
	apperrors "github.com/freshcart/grocery-api/pkg/errors"
	"github.com/freshcart/grocery-api/pkg/pagination"
	"github.com/freshcart/grocery-api/pkg/validator"
)

// CacheInvalidator drops cached grocery listings after stock changes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// OrderService implements order placement and retrieval.
type OrderService struct {
	orderRepo repository.OrderRepository
	pool      database.DBTX
	producer  *event.Producer
	cache     CacheInvalidator
	logger    *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	pool database.DBTX,
	producer *event.Producer,
	cache CacheInvalidator,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		pool:      pool,
		producer:  producer,
		cache:     cache,
		logger:    logger,
	}
}

// PlaceOrder atomically reserves stock for every requested line and records
// the order inside a single transaction. Rows are locked with SELECT FOR
// UPDATE so concurrent orders can never oversell; any failed line rolls the
// whole order back. Lines are processed in ascending grocery ID order so two
// concurrent orders always acquire row locks in the same sequence.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, req *domain.PlaceOrderRequest) (*domain.Order, error) {
	if err := validator.Validate(req); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	items := make([]domain.OrderItemRequest, len(req.Items))
	copy(items, req.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].GroceryID < items[j].GroceryID })

	for i := 1; i < len(items); i++ {
		if items[i].GroceryID == items[i-1].GroceryID {
			return nil, apperrors.InvalidInput(fmt.Sprintf("duplicate grocery id %d in order", items[i].GroceryID))
		}
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("begin order transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()
	lines := make([]domain.OrderLine, 0, len(items))
	var totalCost int64

	for _, item := range items {
		// Lock the grocery row to prevent overselling under concurrency.
		var (
			name  string
			price int64
			stock int
		)
		lockQuery := `
			SELECT name, price, stock
			FROM groceries
			WHERE id = $1
			FOR UPDATE`

		err := tx.QueryRow(ctx, lockQuery, item.GroceryID).Scan(&name, &price, &stock)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NotFound("grocery", strconv.FormatInt(item.GroceryID, 10))
			}
			return nil, fmt.Errorf("lock grocery row: %w", err)
		}

		if stock < item.Quantity {
			return nil, apperrors.InsufficientStock(name)
		}

		updateQuery := `
			UPDATE groceries
			SET stock = stock - $1, updated_at = $2
			WHERE id = $3`

		if _, err := tx.Exec(ctx, updateQuery, item.Quantity, now, item.GroceryID); err != nil {
			return nil, fmt.Errorf("decrement stock: %w", err)
		}

		lineTotal := price * int64(item.Quantity)
		lines = append(lines, domain.OrderLine{
			GroceryID:    item.GroceryID,
			Name:         name,
			Ordered:      item.Quantity,
			Remaining:    stock - item.Quantity,
			PricePerUnit: price,
			Total:        lineTotal,
		})
		totalCost += lineTotal
	}

	itemsJSON, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("marshal order lines: %w", err)
	}

	order := &domain.Order{
		UserID:    userID,
		Items:     lines,
		TotalCost: totalCost,
		CreatedAt: now,
	}

	insertQuery := `
		INSERT INTO orders (user_id, items, total_cost, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	if err := tx.QueryRow(ctx, insertQuery, userID, itemsJSON, totalCost, now).Scan(&order.ID); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit order transaction: %w", err)
	}

	// Post-commit side effects are best-effort: the order stands either way.
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	if s.producer != nil {
		if err := s.producer.PublishOrderPlaced(ctx, order); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish order.placed event",
				slog.Int64("order_id", order.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.Int64("order_id", order.ID),
		slog.String("user_id", userID),
		slog.Int("line_count", len(lines)),
		slog.Int64("total_cost", totalCost),
	)

	return order, nil
}

// GetOrder retrieves an order. Non-admin callers only see their own orders;
// someone else's order reads as not found rather than revealing it exists.
func (s *OrderService) GetOrder(ctx context.Context, userID, role string, orderID int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if role != domain.RoleAdmin && order.UserID != userID {
		return nil, apperrors.NotFound("order", strconv.FormatInt(orderID, 10))
	}

	return order, nil
}

// ListOrders returns a page of the caller's own orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID string, params pagination.Params) (*pagination.Result[domain.Order], error) {
	orders, total, err := s.orderRepo.ListByUser(ctx, userID, params.Page, params.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	result := pagination.NewResult(orders, total, params)
	return &result, nil
}
