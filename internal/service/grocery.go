package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/freshcart/grocery-api/internal/domain"
	"github.com/freshcart/grocery-api/internal/event"
	"github.com/freshcart/grocery-api/internal/repository"
	apperrors "github.com/freshcart/grocery-api/pkg/errors"
	"github.com/freshcart/grocery-api/pkg/pagination"
	"github.com/freshcart/grocery-api/pkg/validator"
)

// ListCache caches paginated grocery listings.
type ListCache interface {
	GetList(ctx context.Context, page, perPage int) (*pagination.Result[domain.Grocery], bool)
	SetList(ctx context.Context, page, perPage int, result *pagination.Result[domain.Grocery])
	Invalidate(ctx context.Context)
}

// GroceryService implements inventory management.
type GroceryService struct {
	groceryRepo repository.GroceryRepository
	producer    *event.Producer
	cache       ListCache
	logger      *slog.Logger
}

// NewGroceryService creates a new grocery service.
func NewGroceryService(
	groceryRepo repository.GroceryRepository,
	producer *event.Producer,
	cache ListCache,
	logger *slog.Logger,
) *GroceryService {
	return &GroceryService{
		groceryRepo: groceryRepo,
		producer:    producer,
		cache:       cache,
		logger:      logger,
	}
}

// ListGroceries returns a page of inventory, served from cache when possible.
func (s *GroceryService) ListGroceries(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Grocery], error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetList(ctx, params.Page, params.PerPage); ok {
			return cached, nil
		}
	}

	groceries, total, err := s.groceryRepo.List(ctx, params.Page, params.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list groceries: %w", err)
	}

	result := pagination.NewResult(groceries, total, params)

	if s.cache != nil {
		s.cache.SetList(ctx, params.Page, params.PerPage, &result)
	}

	return &result, nil
}

// GetGrocery retrieves a single grocery by ID.
func (s *GroceryService) GetGrocery(ctx context.Context, id int64) (*domain.Grocery, error) {
	grocery, err := s.groceryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get grocery: %w", err)
	}
	return grocery, nil
}

// CreateGrocery adds a new inventory item. Names are stored lowercase and
// must be unique.
func (s *GroceryService) CreateGrocery(ctx context.Context, req *domain.CreateGroceryRequest) (*domain.Grocery, error) {
	if err := validator.Validate(req); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	grocery := &domain.Grocery{
		Name:  domain.NormalizeName(req.Name),
		Price: req.Price,
		Unit:  req.Unit,
		Stock: req.Stock,
	}
	if grocery.Name == "" {
		return nil, apperrors.InvalidInput("name must not be blank")
	}

	result, err := s.groceryRepo.Create(ctx, grocery)
	if err != nil {
		return nil, fmt.Errorf("create grocery: %w", err)
	}

	s.afterInventoryWrite(ctx, result, "created")

	s.logger.InfoContext(ctx, "grocery created",
		slog.Int64("grocery_id", result.ID),
		slog.String("name", result.Name),
		slog.Int("stock", result.Stock),
	)

	return result, nil
}

// UpdateGrocery modifies an existing item. Nil fields keep their stored
// value; a provided stock replaces the stored level outright.
func (s *GroceryService) UpdateGrocery(ctx context.Context, id int64, req *domain.UpdateGroceryRequest) (*domain.Grocery, error) {
	if err := validator.Validate(req); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	if req.IsEmpty() {
		return nil, apperrors.InvalidInput("at least one field must be provided")
	}

	grocery, err := s.groceryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get grocery for update: %w", err)
	}

	if req.Name != nil {
		name := domain.NormalizeName(*req.Name)
		if name == "" {
			return nil, apperrors.InvalidInput("name must not be blank")
		}
		grocery.Name = name
	}
	if req.Price != nil {
		grocery.Price = *req.Price
	}
	if req.Unit != nil {
		grocery.Unit = *req.Unit
	}
	if req.Stock != nil {
		grocery.Stock = *req.Stock
	}

	result, err := s.groceryRepo.Update(ctx, grocery)
	if err != nil {
		return nil, fmt.Errorf("update grocery: %w", err)
	}

	s.afterInventoryWrite(ctx, result, "updated")

	s.logger.InfoContext(ctx, "grocery updated",
		slog.Int64("grocery_id", result.ID),
		slog.String("name", result.Name),
		slog.Int("stock", result.Stock),
	)

	return result, nil
}

// DeleteGrocery removes an item from the inventory and returns its last
// stored state.
func (s *GroceryService) DeleteGrocery(ctx context.Context, id int64) (*domain.Grocery, error) {
	grocery, err := s.groceryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get grocery for delete: %w", err)
	}

	if err := s.groceryRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete grocery: %w", err)
	}

	grocery.Stock = 0
	s.afterInventoryWrite(ctx, grocery, "deleted")

	s.logger.InfoContext(ctx, "grocery deleted",
		slog.Int64("grocery_id", id),
		slog.String("name", grocery.Name),
	)

	return grocery, nil
}

// afterInventoryWrite invalidates cached listings and publishes the
// inventory.updated event. Both are best-effort.
func (s *GroceryService) afterInventoryWrite(ctx context.Context, g *domain.Grocery, reason string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	if s.producer != nil {
		if err := s.producer.PublishInventoryUpdated(ctx, g, reason); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish inventory.updated event",
				slog.Int64("grocery_id", g.ID),
				slog.String("reason", reason),
				slog.String("error", err.Error()),
			)
		}
	}
}
