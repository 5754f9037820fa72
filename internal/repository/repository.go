package repository

import (
	"context"

	"github.com/freshcart/grocery-api/internal/domain"
)

// GroceryRepository defines persistence operations for inventory items.
type GroceryRepository interface {
	// Create inserts a new grocery and returns the stored row.
	Create(ctx context.Context, g *domain.Grocery) (*domain.Grocery, error)

	// GetByID retrieves a grocery by its unique identifier.
	GetByID(ctx context.Context, id int64) (*domain.Grocery, error)

	// GetByName retrieves a grocery by its normalized name.
	GetByName(ctx context.Context, name string) (*domain.Grocery, error)

	// List returns a page of groceries along with the total count.
	List(ctx context.Context, page, perPage int) ([]domain.Grocery, int, error)

	// Update applies the given fields and returns the updated row.
	Update(ctx context.Context, g *domain.Grocery) (*domain.Grocery, error)

	// Delete removes a grocery by ID.
	Delete(ctx context.Context, id int64) error
}

// OrderRepository defines read operations for placed orders. Order creation
// happens inside the placement transaction owned by the order service.
type OrderRepository interface {
	// GetByID retrieves an order by its unique identifier.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)

	// ListByUser returns a page of a user's orders, newest first, with the
	// total count.
	ListByUser(ctx context.Context, userID string, page, perPage int) ([]domain.Order, int, error)
}

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, u *domain.User) error

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
