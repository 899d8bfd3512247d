package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/logging"
	"github.com/amterp/swatch/internal/model"
	"github.com/sirupsen/logrus"
)

// FileFavoritesStore implements FavoritesStore with a single JSON file.
// The file holds an array of five-element arrays of hex strings.
type FileFavoritesStore struct {
	paths *config.Paths
	log   *logrus.Entry
}

// NewFavoritesStore creates a new favorites store.
func NewFavoritesStore(paths *config.Paths) *FileFavoritesStore {
	return &FileFavoritesStore{
		paths: paths,
		log:   logging.Component("store"),
	}
}

// Path returns the file backing the slot.
func (s *FileFavoritesStore) Path() string {
	return s.paths.FavoritesPath()
}

// Load reads favorites from disk.
// Returns an empty list if the file is missing, unreadable or not a JSON array.
// Entries that are not five valid colors are logged and skipped, and
// duplicates keep their first position.
func (s *FileFavoritesStore) Load() model.FavoritesList {
	path := s.Path()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.WithError(err).WithField("path", path).Warn("Failed to read favorites, starting empty")
		}
		return model.FavoritesList{}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.log.WithError(err).WithField("path", path).Warn("Favorites file is corrupt, starting empty")
		return model.FavoritesList{}
	}

	list := make(model.FavoritesList, 0, len(raw))
	for i, entry := range raw {
		var p model.Palette
		if err := json.Unmarshal(entry, &p); err != nil {
			// Log warning but don't fail - keeps the rest of the list
			s.log.WithError(err).WithField("entry", i).Warn("Skipping malformed favorite")
			continue
		}
		list = append(list, p)
	}

	return list.Dedupe()
}

// Save writes favorites to disk, replacing the previous value.
func (s *FileFavoritesStore) Save(list model.FavoritesList) error {
	path := s.Path()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write favorites: %w", err)
	}
	return nil
}
