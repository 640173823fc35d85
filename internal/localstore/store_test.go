package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"grocinv/internal/code"
	"grocinv/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Load_MissingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.json")
	store := New(path, zerolog.Nop())

	lists := store.Load()

	require.Len(t, lists, 2)
	assert.Equal(t, "Toast", lists[0].Name)
	assert.Equal(t, "Sparkling Water", lists[1].Name)

	// Seed lists get fresh codes from normalization
	for _, l := range lists {
		assert.True(t, code.IsValid(l.ListCode))
	}

	// The missing document is not created by Load
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStore_Load_MalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.json")
	corrupt := []byte(`{"not": "a list collection"`)
	require.NoError(t, os.WriteFile(path, corrupt, 0o644))

	store := New(path, zerolog.Nop())
	lists := store.Load()

	require.Len(t, lists, 2)
	assert.Equal(t, "Toast", lists[0].Name)

	// The corrupt bytes stay on disk untouched
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, corrupt, data)
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lists.json")
	store := New(path, zerolog.Nop())

	viewed := time.Date(2025, 8, 1, 12, 30, 0, 0, time.UTC)
	completed := time.Date(2025, 8, 2, 9, 0, 0, 0, time.UTC)
	lists := []model.List{
		{
			ID:           "1722500000000",
			ListCode:     "abc123",
			Name:         "Weekly Shop",
			Description:  "",
			Source:       model.SourceManual,
			CreatedAt:    time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			LastViewedAt: &viewed,
			Products: []model.Product{
				{
					ID:          "1722500000000-0",
					DatabaseID:  "pr0001",
					Name:        "Milk",
					Quantity:    2,
					IsCompleted: true,
					CompletedAt: &completed,
					ImageFit:    model.ImageFitCover,
					Category:    "Dairy",
					Comment:     "whole",
				},
			},
		},
	}

	require.NoError(t, store.Save(lists))

	loaded := store.Load()
	require.Len(t, loaded, 1)
	assert.Equal(t, lists[0].ID, loaded[0].ID)
	assert.Equal(t, "abc123", loaded[0].ListCode)
	require.NotNil(t, loaded[0].LastViewedAt)
	assert.True(t, viewed.Equal(*loaded[0].LastViewedAt))

	require.Len(t, loaded[0].Products, 1)
	p := loaded[0].Products[0]
	assert.Equal(t, "pr0001", p.DatabaseID)
	assert.Equal(t, 2, p.Quantity)
	require.NotNil(t, p.CompletedAt)
	assert.True(t, completed.Equal(*p.CompletedAt))
}

func TestStore_Save_OverwritesInFull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.json")
	store := New(path, zerolog.Nop())

	first := []model.List{
		{ID: "1", ListCode: "abc123", Name: "First", Products: []model.Product{}},
		{ID: "2", ListCode: "def456", Name: "Second", Products: []model.Product{}},
	}
	require.NoError(t, store.Save(first))

	second := []model.List{
		{ID: "3", ListCode: "ghi789", Name: "Only", Products: []model.Product{}},
	}
	require.NoError(t, store.Save(second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var onDisk []model.List
	require.NoError(t, json.Unmarshal(data, &onDisk))
	require.Len(t, onDisk, 1)
	assert.Equal(t, "Only", onDisk[0].Name)
}

func TestNormalize(t *testing.T) {
	lists := []model.List{
		{
			ID:       "1",
			ListCode: "abc123",
			Products: []model.Product{
				{ID: "1-0", DatabaseID: "pr0001"},
				{ID: "1-1", DatabaseID: ""},
			},
		},
		{
			ID:       "2",
			ListCode: "", // missing code
			Products: nil,
		},
		{
			ID:       "3",
			ListCode: "TOOBIG99", // malformed code
			Products: []model.Product{},
		},
	}

	normalized := Normalize(lists)
	require.Len(t, normalized, 3)

	// Valid identities are preserved
	assert.Equal(t, "abc123", normalized[0].ListCode)
	assert.Equal(t, "pr0001", normalized[0].Products[0].DatabaseID)

	// Missing and malformed codes are repaired with distinct valid codes
	assert.True(t, code.IsValid(normalized[1].ListCode))
	assert.True(t, code.IsValid(normalized[2].ListCode))
	assert.NotEqual(t, normalized[1].ListCode, normalized[2].ListCode)
	assert.NotEqual(t, "abc123", normalized[1].ListCode)

	// Missing product ids are filled in
	assert.True(t, code.IsValid(normalized[0].Products[1].DatabaseID))
	assert.NotEqual(t, "pr0001", normalized[0].Products[1].DatabaseID)

	// nil product slices become empty slices
	assert.NotNil(t, normalized[1].Products)
	assert.Empty(t, normalized[1].Products)
}
