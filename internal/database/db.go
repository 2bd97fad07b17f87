// internal/database/db.go
package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the global connection pool. Nil when the server runs memory-only
// (no DATABASE_URL configured); callers must check Enabled first.
var DB *pgxpool.Pool

// Enabled reports whether a profile store is configured.
func Enabled() bool { return DB != nil }

// Connect opens the pool from DATABASE_URL. Returns (false, nil) when the
// variable is unset, which is a supported configuration: guest-only play with
// no durable profiles.
func Connect(ctx context.Context) (bool, error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return false, nil
	}

	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return false, fmt.Errorf("unable to parse pgx config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return false, fmt.Errorf("unable to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return false, fmt.Errorf("db ping error: %w", err)
	}

	DB = pool
	return true, nil
}

// Close releases the pool if one was opened.
func Close() {
	if DB != nil {
		DB.Close()
	}
}
