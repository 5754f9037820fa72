// Package main implements a standalone seed script that populates the
// grocery database with an admin account, a shopper account, and a starter
// inventory. It connects to Postgres directly and is idempotent: existing
// rows are left alone.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type groceryDef struct {
	name  string
	price int64 // minor units
	unit  string
	stock int
}

var groceries = []groceryDef{
	{"apple", 59, "piece", 200},
	{"banana", 29, "piece", 350},
	{"whole milk", 189, "liter", 80},
	{"sourdough bread", 449, "loaf", 40},
	{"free-range eggs", 519, "dozen", 60},
	{"cheddar cheese", 699, "block", 30},
	{"basmati rice", 399, "kg", 120},
	{"olive oil", 1099, "bottle", 25},
	{"roma tomato", 49, "piece", 180},
	{"chicken breast", 899, "kg", 45},
}

func main() {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("POSTGRES_USER", "grocery"),
		getEnv("POSTGRES_PASSWORD", "grocery_secret"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB", "grocery_db"),
		getEnv("POSTGRES_SSL_MODE", "disable"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	if err := seedUser(ctx, pool, getEnv("SEED_ADMIN_EMAIL", "admin@freshcart.local"), getEnv("SEED_ADMIN_PASSWORD", "admin-password"), "admin"); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := seedUser(ctx, pool, getEnv("SEED_USER_EMAIL", "shopper@freshcart.local"), getEnv("SEED_USER_PASSWORD", "shopper-password"), "user"); err != nil {
		log.Fatalf("seed shopper: %v", err)
	}

	seeded := 0
	for _, g := range groceries {
		tag, err := pool.Exec(ctx, `
			INSERT INTO groceries (name, price, unit, stock)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO NOTHING`,
			g.name, g.price, g.unit, g.stock,
		)
		if err != nil {
			log.Fatalf("seed grocery %q: %v", g.name, err)
		}
		seeded += int(tag.RowsAffected())
	}

	log.Printf("seed complete: %d new groceries", seeded)
}

func seedUser(ctx context.Context, pool *pgxpool.Pool, email, password, role string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	tag, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING`,
		uuid.New().String(), email, string(hash), role,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	if tag.RowsAffected() > 0 {
		log.Printf("seeded %s account %s", role, email)
	}
	return nil
}
