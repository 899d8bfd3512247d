package service

import "github.com/amterp/swatch/internal/model"

// The functions below are the only way session state changes. Each takes a
// state and returns the next one; none of them touch storage or timers.

// Regenerate shows a new palette and drops any copied feedback.
func Regenerate(s model.State, p model.Palette) model.State {
	s.Palette = p
	s.Copied = ""
	return s
}

// SaveCurrent adds the shown palette to favorites unless already saved.
func SaveCurrent(s model.State) model.State {
	return SavePalette(s, s.Palette)
}

// SavePalette adds p to favorites unless already saved.
func SavePalette(s model.State, p model.Palette) model.State {
	s.Favorites = s.Favorites.Add(p)
	return s
}

// RemoveFavorite drops the favorite at index; out of range is a no-op.
func RemoveFavorite(s model.State, index int) model.State {
	s.Favorites = s.Favorites.Remove(index)
	return s
}

// WithFavorites replaces the favorites, e.g. after reading storage.
func WithFavorites(s model.State, list model.FavoritesList) model.State {
	s.Favorites = list
	return s
}

// MarkCopied turns on copied feedback for c.
func MarkCopied(s model.State, c model.Color) model.State {
	s.Copied = c
	return s
}

// ClearCopied turns copied feedback off.
func ClearCopied(s model.State) model.State {
	s.Copied = ""
	return s
}

func favoritesEqual(a, b model.FavoritesList) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
