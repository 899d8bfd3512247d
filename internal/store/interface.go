package store

import "github.com/amterp/swatch/internal/model"

// FavoritesStore handles the persisted favorites slot.
type FavoritesStore interface {
	// Load never fails: a missing or corrupt slot reads as an empty list.
	Load() model.FavoritesList
	// Save overwrites the slot with the full list.
	Save(list model.FavoritesList) error
}

// ConfigStore handles config persistence.
type ConfigStore interface {
	Load() (*model.Config, error)
	Save(config *model.Config) error
}
