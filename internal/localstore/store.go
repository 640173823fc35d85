// Package localstore persists the whole list collection as a single
// JSON document on disk. The document is the source of truth between
// sessions; every mutation rewrites it in full.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"grocinv/internal/code"
	"grocinv/internal/model"

	"github.com/rs/zerolog"
)

// Store reads and writes the on-device list document.
type Store struct {
	path   string
	logger zerolog.Logger
}

// New creates a store persisting to the given file path.
func New(path string, logger zerolog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.With().Str("component", "localstore").Logger(),
	}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted collection. A missing document yields the
// seed collection; an unreadable or malformed document is logged and
// treated the same way, without touching the corrupt bytes. Every
// successful load is normalized: lists lacking a well-formed code and
// products lacking a database id are assigned fresh unique ones.
func (s *Store) Load() []model.List {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info().Str("path", s.path).Msg("no local document found, using seed collection")
		} else {
			s.logger.Error().Err(err).Str("path", s.path).Msg("failed to read local document, using seed collection")
		}
		return Normalize(Seed())
	}

	var lists []model.List
	if err := json.Unmarshal(data, &lists); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("local document is malformed, using seed collection")
		return Normalize(Seed())
	}

	lists = Normalize(lists)
	s.logger.Info().
		Str("path", s.path).
		Int("lists", len(lists)).
		Msg("local document loaded")
	return lists
}

// Save overwrites the document with the full collection.
func (s *Store) Save(lists []model.List) error {
	data, err := json.MarshalIndent(lists, "", "  ")
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode list collection")
		return fmt.Errorf("failed to encode list collection: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.logger.Error().Err(err).Str("dir", dir).Msg("failed to create document directory")
			return fmt.Errorf("failed to create document directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to write local document")
		return fmt.Errorf("failed to write local document: %w", err)
	}

	s.logger.Debug().
		Str("path", s.path).
		Int("lists", len(lists)).
		Msg("local document saved")
	return nil
}

// Normalize repairs identity gaps in a loaded collection: any list
// without a valid 6-character code gets a fresh one, and any product
// without a database id gets a fresh one, each checked against the
// codes already present in the collection.
func Normalize(lists []model.List) []model.List {
	usedCodes := code.UsedListCodes(lists)
	usedIDs := code.UsedProductIDs(lists)

	for i := range lists {
		if !code.IsValid(lists[i].ListCode) {
			c := code.GenerateUnique(usedCodes)
			lists[i].ListCode = c
			usedCodes.Add(c)
		}
		for j := range lists[i].Products {
			if lists[i].Products[j].DatabaseID == "" {
				id := code.GenerateUnique(usedIDs)
				lists[i].Products[j].DatabaseID = id
				usedIDs.Add(id)
			}
		}
		if lists[i].Products == nil {
			lists[i].Products = []model.Product{}
		}
	}
	return lists
}
