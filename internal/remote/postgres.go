package remote

import (
	"context"
	"fmt"

	"grocinv/internal/code"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresStore implements Store against PostgreSQL.
type postgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresStore creates a PostgreSQL-backed remote store.
func NewPostgresStore(pool *pgxpool.Pool, logger zerolog.Logger) Store {
	return &postgresStore{
		pool:   pool,
		logger: logger.With().Str("repository", "remote").Logger(),
	}
}

// ListCodes bulk-reads every list_code present remotely.
func (s *postgresStore) ListCodes(ctx context.Context) (*code.Set, error) {
	rows, err := s.pool.Query(ctx, `SELECT list_code FROM lists`)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query list codes")
		return nil, fmt.Errorf("failed to query list codes: %w", err)
	}
	defer rows.Close()

	set := code.NewSet(64)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			s.logger.Error().Err(err).Msg("failed to scan list code")
			return nil, fmt.Errorf("failed to scan list code: %w", err)
		}
		set.Add(c)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating list codes")
		return nil, fmt.Errorf("error iterating list codes: %w", err)
	}
	return set, nil
}

// ProductDatabaseIDs bulk-reads every product database_id present remotely.
func (s *postgresStore) ProductDatabaseIDs(ctx context.Context) (*code.Set, error) {
	rows, err := s.pool.Query(ctx, `SELECT database_id FROM products`)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query product database ids")
		return nil, fmt.Errorf("failed to query product database ids: %w", err)
	}
	defer rows.Close()

	set := code.NewSet(64)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			s.logger.Error().Err(err).Msg("failed to scan product database id")
			return nil, fmt.Errorf("failed to scan product database id: %w", err)
		}
		set.Add(id)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating product database ids")
		return nil, fmt.Errorf("error iterating product database ids: %w", err)
	}
	return set, nil
}

// ListIDsByCode bulk-reads the list_code -> remote list id mapping.
func (s *postgresStore) ListIDsByCode(ctx context.Context) (map[string]uuid.UUID, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, list_code FROM lists`)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query list id mapping")
		return nil, fmt.Errorf("failed to query list id mapping: %w", err)
	}
	defer rows.Close()

	mapping := make(map[string]uuid.UUID)
	for rows.Next() {
		var id uuid.UUID
		var c string
		if err := rows.Scan(&id, &c); err != nil {
			s.logger.Error().Err(err).Msg("failed to scan list id row")
			return nil, fmt.Errorf("failed to scan list id row: %w", err)
		}
		mapping[c] = id
	}
	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating list id rows")
		return nil, fmt.Errorf("error iterating list id rows: %w", err)
	}
	return mapping, nil
}

// ProductIDsByDatabaseID bulk-reads the database_id -> remote product id mapping.
func (s *postgresStore) ProductIDsByDatabaseID(ctx context.Context) (map[string]uuid.UUID, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, database_id FROM products`)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query product id mapping")
		return nil, fmt.Errorf("failed to query product id mapping: %w", err)
	}
	defer rows.Close()

	mapping := make(map[string]uuid.UUID)
	for rows.Next() {
		var id uuid.UUID
		var dbID string
		if err := rows.Scan(&id, &dbID); err != nil {
			s.logger.Error().Err(err).Msg("failed to scan product id row")
			return nil, fmt.Errorf("failed to scan product id row: %w", err)
		}
		mapping[dbID] = id
	}
	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating product id rows")
		return nil, fmt.Errorf("error iterating product id rows: %w", err)
	}
	return mapping, nil
}

// Links bulk-reads the existing (list id, product id) membership pairs.
func (s *postgresStore) Links(ctx context.Context) (map[LinkKey]struct{}, error) {
	rows, err := s.pool.Query(ctx, `SELECT list_id, product_id FROM list_products`)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query membership links")
		return nil, fmt.Errorf("failed to query membership links: %w", err)
	}
	defer rows.Close()

	links := make(map[LinkKey]struct{})
	for rows.Next() {
		var key LinkKey
		if err := rows.Scan(&key.ListID, &key.ProductID); err != nil {
			s.logger.Error().Err(err).Msg("failed to scan membership link")
			return nil, fmt.Errorf("failed to scan membership link: %w", err)
		}
		links[key] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating membership links")
		return nil, fmt.Errorf("error iterating membership links: %w", err)
	}
	return links, nil
}

// UpsertList inserts a list row keyed by list_code. An existing row
// with the same code is left untouched.
func (s *postgresStore) UpsertList(ctx context.Context, row ListRow) error {
	query := `
		INSERT INTO lists (list_code, name, description, source, created_at, last_viewed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (list_code) DO NOTHING
	`

	_, err := s.pool.Exec(ctx, query,
		row.ListCode, row.Name, row.Description, row.Source, row.CreatedAt, row.LastViewedAt)
	if err != nil {
		s.logger.Error().Err(err).Str("list_code", row.ListCode).Msg("failed to upsert list")
		return fmt.Errorf("failed to upsert list %s: %w", row.ListCode, err)
	}

	s.logger.Debug().Str("list_code", row.ListCode).Msg("list upserted")
	return nil
}

// UpsertProduct inserts a product row keyed by database_id. An existing
// row with the same id is left untouched.
func (s *postgresStore) UpsertProduct(ctx context.Context, row ProductRow) error {
	query := `
		INSERT INTO products (database_id, name, quantity, is_completed, is_out_of_stock,
			image_url, image_fit, comment, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (database_id) DO NOTHING
	`

	_, err := s.pool.Exec(ctx, query,
		row.DatabaseID, row.Name, row.Quantity, row.IsCompleted, row.IsOutOfStock,
		row.ImageURL, row.ImageFit, row.Comment, row.Category)
	if err != nil {
		s.logger.Error().Err(err).Str("database_id", row.DatabaseID).Msg("failed to upsert product")
		return fmt.Errorf("failed to upsert product %s: %w", row.DatabaseID, err)
	}

	s.logger.Debug().Str("database_id", row.DatabaseID).Msg("product upserted")
	return nil
}

// InsertLink inserts a membership row for a (list, product) pair. The
// pair is the natural key; re-inserting it is a no-op.
func (s *postgresStore) InsertLink(ctx context.Context, row LinkRow) error {
	query := `
		INSERT INTO list_products (list_id, product_id, quantity, is_completed, is_out_of_stock)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (list_id, product_id) DO NOTHING
	`

	_, err := s.pool.Exec(ctx, query,
		row.ListID, row.ProductID, row.Quantity, row.IsCompleted, row.IsOutOfStock)
	if err != nil {
		s.logger.Error().Err(err).
			Str("list_id", row.ListID.String()).
			Str("product_id", row.ProductID.String()).
			Msg("failed to insert membership link")
		return fmt.Errorf("failed to insert membership link: %w", err)
	}

	s.logger.Debug().
		Str("list_id", row.ListID.String()).
		Str("product_id", row.ProductID.String()).
		Msg("membership link inserted")
	return nil
}
