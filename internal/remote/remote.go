// Package remote adapts the shared relational store. Remote rows carry
// surrogate UUID identity assigned by the database; the local side only
// knows the natural keys (list_code, database_id) and rediscovers the
// id mappings on every reconciliation pass.
package remote

import (
	"context"
	"time"

	"grocinv/internal/code"

	"github.com/google/uuid"
)

// ListRow is the remote shape of a list, keyed by its share code.
type ListRow struct {
	ListCode     string
	Name         string
	Description  string
	Source       string
	CreatedAt    time.Time
	LastViewedAt *time.Time
}

// ProductRow is the remote shape of a product, keyed by its database id.
type ProductRow struct {
	DatabaseID   string
	Name         string
	Quantity     int
	IsCompleted  bool
	IsOutOfStock bool
	ImageURL     string
	ImageFit     string
	Comment      string
	Category     string
}

// LinkKey is the natural key of a list-product membership.
type LinkKey struct {
	ListID    uuid.UUID
	ProductID uuid.UUID
}

// LinkRow associates a remote list with a remote product, carrying the
// list's view of quantity and status for that product.
type LinkRow struct {
	ListID       uuid.UUID
	ProductID    uuid.UUID
	Quantity     int
	IsCompleted  bool
	IsOutOfStock bool
}

// Store defines the remote operations the reconciliation engine
// consumes. Implementations must make the upserts no-ops when the
// natural key already exists; existing rows are never updated.
type Store interface {
	// ListCodes bulk-reads every list_code present remotely.
	ListCodes(ctx context.Context) (*code.Set, error)

	// ProductDatabaseIDs bulk-reads every product database_id present remotely.
	ProductDatabaseIDs(ctx context.Context) (*code.Set, error)

	// ListIDsByCode bulk-reads the list_code -> remote list id mapping.
	ListIDsByCode(ctx context.Context) (map[string]uuid.UUID, error)

	// ProductIDsByDatabaseID bulk-reads the database_id -> remote product id mapping.
	ProductIDsByDatabaseID(ctx context.Context) (map[string]uuid.UUID, error)

	// Links bulk-reads the existing (list id, product id) membership pairs.
	Links(ctx context.Context) (map[LinkKey]struct{}, error)

	// UpsertList inserts a list row keyed by list_code.
	UpsertList(ctx context.Context, row ListRow) error

	// UpsertProduct inserts a product row keyed by database_id.
	UpsertProduct(ctx context.Context, row ProductRow) error

	// InsertLink inserts a membership row for a (list, product) pair.
	InsertLink(ctx context.Context, row LinkRow) error
}
