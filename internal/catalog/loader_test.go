package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	doc := `{
		"products": {
			"bb2a7c": {"id": "cat-1", "database_id": "bb2a7c", "name": "Blackberry Tangerine", "category": "Beverages"},
			"mk1234": {"id": "cat-2", "database_id": "mk1234", "name": "Whole Milk", "category": "Dairy"}
		},
		"lastUpdated": "2025-08-01T00:00:00Z",
		"version": 3
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	loader := NewFileLoader(zerolog.Nop())
	db, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 3, db.Version)
	require.Len(t, db.Products, 2)
	assert.Equal(t, "Whole Milk", db.Products["mk1234"].Name)
}

func TestFileLoader_Load_MissingFile(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	db, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.Nil(t, db)
	assert.Error(t, err)
}

func TestFileLoader_Load_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"products":`), 0o644))

	loader := NewFileLoader(zerolog.Nop())
	db, err := loader.Load(context.Background(), path)
	assert.Nil(t, db)
	assert.Error(t, err)
}
