package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/freshcart/grocery-api/internal/domain"
	"github.com/freshcart/grocery-api/pkg/database"
	apperrors "github.com/freshcart/grocery-api/pkg/errors"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// GroceryRepository implements repository.GroceryRepository using PostgreSQL.
type GroceryRepository struct {
	pool database.DBTX
}

// NewGroceryRepository creates a new PostgreSQL-backed grocery repository.
func NewGroceryRepository(pool database.DBTX) *GroceryRepository {
	return &GroceryRepository{pool: pool}
}

// Create inserts a new grocery and returns the stored row.
func (r *GroceryRepository) Create(ctx context.Context, g *domain.Grocery) (*domain.Grocery, error) {
	query := `
		INSERT INTO groceries (name, price, unit, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, name, price, unit, stock, created_at, updated_at`

	var result domain.Grocery
	err := r.pool.QueryRow(ctx, query,
		g.Name,
		g.Price,
		g.Unit,
		g.Stock,
		time.Now().UTC(),
	).Scan(
		&result.ID,
		&result.Name,
		&result.Price,
		&result.Unit,
		&result.Stock,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.AlreadyExists("grocery", "name", g.Name)
		}
		return nil, fmt.Errorf("create grocery: %w", err)
	}

	return &result, nil
}

// GetByID retrieves a grocery by its unique identifier.
func (r *GroceryRepository) GetByID(ctx context.Context, id int64) (*domain.Grocery, error) {
	query := `
		SELECT id, name, price, unit, stock, created_at, updated_at
		FROM groceries
		WHERE id = $1`

	var g domain.Grocery
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&g.ID,
		&g.Name,
		&g.Price,
		&g.Unit,
		&g.Stock,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("grocery", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("get grocery by id: %w", err)
	}

	return &g, nil
}

// GetByName retrieves a grocery by its normalized name.
func (r *GroceryRepository) GetByName(ctx context.Context, name string) (*domain.Grocery, error) {
	query := `
		SELECT id, name, price, unit, stock, created_at, updated_at
		FROM groceries
		WHERE name = $1`

	var g domain.Grocery
	err := r.pool.QueryRow(ctx, query, domain.NormalizeName(name)).Scan(
		&g.ID,
		&g.Name,
		&g.Price,
		&g.Unit,
		&g.Stock,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("grocery", name)
		}
		return nil, fmt.Errorf("get grocery by name: %w", err)
	}

	return &g, nil
}

// List returns a page of groceries ordered by name with the total count.
func (r *GroceryRepository) List(ctx context.Context, page, perPage int) ([]domain.Grocery, int, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}

	offset := (page - 1) * perPage

	query := `
		SELECT id, name, price, unit, stock, created_at, updated_at,
			   count(*) OVER() AS total_count
		FROM groceries
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list groceries: %w", err)
	}
	defer rows.Close()

	var (
		groceries  []domain.Grocery
		totalCount int
	)

	for rows.Next() {
		var g domain.Grocery
		if err := rows.Scan(
			&g.ID,
			&g.Name,
			&g.Price,
			&g.Unit,
			&g.Stock,
			&g.CreatedAt,
			&g.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan grocery row: %w", err)
		}
		groceries = append(groceries, g)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate grocery rows: %w", err)
	}

	if groceries == nil {
		groceries = []domain.Grocery{}
	}

	return groceries, totalCount, nil
}

// Update applies the given fields and returns the updated row.
func (r *GroceryRepository) Update(ctx context.Context, g *domain.Grocery) (*domain.Grocery, error) {
	query := `
		UPDATE groceries
		SET name = $1, price = $2, unit = $3, stock = $4, updated_at = $5
		WHERE id = $6
		RETURNING id, name, price, unit, stock, created_at, updated_at`

	var result domain.Grocery
	err := r.pool.QueryRow(ctx, query,
		g.Name,
		g.Price,
		g.Unit,
		g.Stock,
		time.Now().UTC(),
		g.ID,
	).Scan(
		&result.ID,
		&result.Name,
		&result.Price,
		&result.Unit,
		&result.Stock,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("grocery", strconv.FormatInt(g.ID, 10))
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.AlreadyExists("grocery", "name", g.Name)
		}
		return nil, fmt.Errorf("update grocery: %w", err)
	}

	return &result, nil
}

// Delete removes a grocery by ID.
func (r *GroceryRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM groceries WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete grocery: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("grocery", strconv.FormatInt(id, 10))
	}

	return nil
}
