package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the remote-store schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE EXTENSION IF NOT EXISTS pgcrypto;

		CREATE TABLE IF NOT EXISTS lists (
			id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			list_code      VARCHAR(6) UNIQUE NOT NULL,
			name           TEXT NOT NULL,
			description    TEXT NOT NULL DEFAULT '',
			source         TEXT NOT NULL DEFAULT '',
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_viewed_at TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS products (
			id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			database_id     VARCHAR(6) UNIQUE NOT NULL,
			name            TEXT NOT NULL,
			quantity        INTEGER NOT NULL DEFAULT 0,
			is_completed    BOOLEAN NOT NULL DEFAULT FALSE,
			is_out_of_stock BOOLEAN NOT NULL DEFAULT FALSE,
			image_url       TEXT NOT NULL DEFAULT '',
			image_fit       TEXT NOT NULL DEFAULT 'cover',
			comment         TEXT NOT NULL DEFAULT '',
			category        TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS list_products (
			id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			list_id         UUID NOT NULL REFERENCES lists (id) ON DELETE CASCADE,
			product_id      UUID NOT NULL REFERENCES products (id) ON DELETE CASCADE,
			quantity        INTEGER NOT NULL DEFAULT 0,
			is_completed    BOOLEAN NOT NULL DEFAULT FALSE,
			is_out_of_stock BOOLEAN NOT NULL DEFAULT FALSE,
			UNIQUE (list_id, product_id)
		);

		CREATE INDEX IF NOT EXISTS idx_list_products_list_id ON list_products (list_id);
		CREATE INDEX IF NOT EXISTS idx_list_products_product_id ON list_products (product_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"list_products", "products", "lists"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var count int
	err := pool.QueryRow(context.Background(), fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
	if err != nil {
		t.Fatalf("failed to count rows in %s: %v", table, err)
	}
	return count
}
