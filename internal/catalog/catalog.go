// Package catalog serves the shared read-only product database: a JSON
// document of products keyed by database id, hosted locally or on S3.
// It backs product search when adding items to a list; it is not part
// of the reconciliation push.
package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"grocinv/internal/model"

	"github.com/rs/zerolog"
)

// Database is the catalog document shape.
type Database struct {
	Products    map[string]model.Product `json:"products"`
	LastUpdated time.Time                `json:"lastUpdated"`
	Version     int                      `json:"version"`
}

// Loader defines the interface for fetching the catalog document.
type Loader interface {
	// Load fetches and decodes the catalog document at the given path or key.
	Load(ctx context.Context, path string) (*Database, error)
}

// cacheTTL bounds how long a fetched catalog is reused before refetching.
const cacheTTL = 30 * time.Second

// Service caches the catalog and answers product searches. A load
// failure degrades to an empty catalog rather than an error surfaced to
// the caller.
type Service struct {
	loader Loader
	path   string
	logger zerolog.Logger

	mu        sync.Mutex
	cache     *Database
	lastFetch time.Time
}

// NewService creates a catalog service reading from the given loader
// and document path.
func NewService(loader Loader, path string, logger zerolog.Logger) *Service {
	return &Service{
		loader: loader,
		path:   path,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Search returns catalog products whose name or category contains the
// query, case-insensitively. A blank query returns no results.
func (s *Service) Search(ctx context.Context, query string) []model.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	db := s.database(ctx)

	var results []model.Product
	for _, p := range db.Products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Category), query) {
			results = append(results, p)
		}
	}
	return results
}

// Get returns the catalog product with the given database id, or nil.
func (s *Service) Get(ctx context.Context, databaseID string) *model.Product {
	db := s.database(ctx)
	if p, ok := db.Products[databaseID]; ok {
		return &p
	}
	return nil
}

// database returns the cached catalog, refetching it when the cache has
// expired. Fetch failures fall back to the previous cache, or an empty
// catalog when there is none.
func (s *Service) database(ctx context.Context) *Database {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache != nil && time.Since(s.lastFetch) < cacheTTL {
		return s.cache
	}

	db, err := s.loader.Load(ctx, s.path)
	if err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to load catalog, serving stale or empty")
		if s.cache != nil {
			return s.cache
		}
		return &Database{Products: map[string]model.Product{}}
	}

	if db.Products == nil {
		db.Products = map[string]model.Product{}
	}
	s.cache = db
	s.lastFetch = time.Now()

	s.logger.Info().
		Str("path", s.path).
		Int("products", len(db.Products)).
		Int("version", db.Version).
		Msg("catalog loaded")
	return s.cache
}
