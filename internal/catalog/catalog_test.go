package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"grocinv/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLoader serves a fixed catalog, counting loads and optionally
// failing.
type stubLoader struct {
	db    *Database
	err   error
	loads int
}

func (l *stubLoader) Load(ctx context.Context, path string) (*Database, error) {
	l.loads++
	if l.err != nil {
		return nil, l.err
	}
	return l.db, nil
}

func testDatabase() *Database {
	return &Database{
		Products: map[string]model.Product{
			"bb2a7c": {DatabaseID: "bb2a7c", Name: "Blackberry Tangerine", Category: "Beverages"},
			"bn8f4k": {DatabaseID: "bn8f4k", Name: "Blueberry Nectarine", Category: "Beverages"},
			"mk1234": {DatabaseID: "mk1234", Name: "Whole Milk", Category: "Dairy"},
		},
		LastUpdated: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		Version:     3,
	}
}

func TestService_Search(t *testing.T) {
	svc := NewService(&stubLoader{db: testDatabase()}, "products.json", zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{
			name:     "Match by name",
			query:    "blueberry",
			expected: 1,
		},
		{
			name:     "Match by category",
			query:    "beverages",
			expected: 2,
		},
		{
			name:     "Case insensitive",
			query:    "BLACKBERRY",
			expected: 1,
		},
		{
			name:     "Substring match",
			query:    "berry",
			expected: 2,
		},
		{
			name:     "No match",
			query:    "zucchini",
			expected: 0,
		},
		{
			name:     "Blank query",
			query:    "   ",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := svc.Search(ctx, tt.query)
			assert.Len(t, results, tt.expected)
		})
	}
}

func TestService_Get(t *testing.T) {
	svc := NewService(&stubLoader{db: testDatabase()}, "products.json", zerolog.Nop())
	ctx := context.Background()

	p := svc.Get(ctx, "mk1234")
	require.NotNil(t, p)
	assert.Equal(t, "Whole Milk", p.Name)

	assert.Nil(t, svc.Get(ctx, "zz9999"))
}

func TestService_CachesWithinTTL(t *testing.T) {
	loader := &stubLoader{db: testDatabase()}
	svc := NewService(loader, "products.json", zerolog.Nop())
	ctx := context.Background()

	svc.Search(ctx, "milk")
	svc.Search(ctx, "berry")
	svc.Get(ctx, "mk1234")

	assert.Equal(t, 1, loader.loads, "catalog should be fetched once within the TTL")
}

func TestService_LoadFailure_EmptyCatalog(t *testing.T) {
	loader := &stubLoader{err: errors.New("bucket unreachable")}
	svc := NewService(loader, "products.json", zerolog.Nop())
	ctx := context.Background()

	assert.Empty(t, svc.Search(ctx, "milk"))
	assert.Nil(t, svc.Get(ctx, "mk1234"))
}

func TestService_LoadFailure_ServesStaleCache(t *testing.T) {
	loader := &stubLoader{db: testDatabase()}
	svc := NewService(loader, "products.json", zerolog.Nop())
	ctx := context.Background()

	require.Len(t, svc.Search(ctx, "milk"), 1)

	// Expire the cache, then break the loader
	svc.lastFetch = time.Now().Add(-cacheTTL - time.Second)
	loader.err = errors.New("bucket unreachable")

	assert.Len(t, svc.Search(ctx, "milk"), 1, "stale cache should still serve results")
	assert.Equal(t, 2, loader.loads)
}

func TestService_NilProductsMap(t *testing.T) {
	loader := &stubLoader{db: &Database{Version: 1}}
	svc := NewService(loader, "products.json", zerolog.Nop())

	assert.Empty(t, svc.Search(context.Background(), "milk"))
}
