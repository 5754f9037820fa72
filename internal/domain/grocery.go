package domain

import (
	"strings"
	"time"
)

// Grocery is a single inventory item. Price is stored in minor currency
// units (cents) to keep arithmetic exact.
type Grocery struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Unit      string    `json:"unit,omitempty"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeName lowercases and trims a grocery name. Names are matched
// case-insensitively, so the canonical form is stored.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CreateGroceryRequest is the admin payload for adding an item.
type CreateGroceryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Price int64  `json:"price" validate:"required,gt=0"`
	Unit  string `json:"unit" validate:"max=50"`
	Stock int    `json:"stock" validate:"gte=0"`
}

// UpdateGroceryRequest is the admin payload for modifying an item.
// Nil fields are left unchanged; a non-nil Stock replaces the stored level.
type UpdateGroceryRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Price *int64  `json:"price" validate:"omitempty,gt=0"`
	Unit  *string `json:"unit" validate:"omitempty,max=50"`
	Stock *int    `json:"stock" validate:"omitempty,gte=0"`
}

// IsEmpty reports whether the update carries no changes at all.
func (r *UpdateGroceryRequest) IsEmpty() bool {
	return r.Name == nil && r.Price == nil && r.Unit == nil && r.Stock == nil
}
