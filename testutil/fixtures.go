package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/model"
)

// TestPalette builds a palette from five hex strings, failing the test on
// bad input.
func TestPalette(t *testing.T, hexes ...string) model.Palette {
	t.Helper()
	p, err := model.NewPalette(hexes)
	if err != nil {
		t.Fatalf("invalid test palette %v: %v", hexes, err)
	}
	return p
}

// Grays returns a palette of light grays.
func Grays() model.Palette {
	return model.Palette{"#AAAAAA", "#BBBBBB", "#CCCCCC", "#DDDDDD", "#EEEEEE"}
}

// Darks returns a palette of dark grays.
func Darks() model.Palette {
	return model.Palette{"#111111", "#222222", "#333333", "#444444", "#555555"}
}

// Primaries returns a palette of saturated colors.
func Primaries() model.Palette {
	return model.Palette{"#FF0000", "#00FF00", "#0000FF", "#FFFF00", "#00FFFF"}
}

// Sequence returns a palette generator that hands out palettes in order,
// then keeps repeating the last one.
func Sequence(palettes ...model.Palette) func() model.Palette {
	var mu sync.Mutex
	i := 0
	return func() model.Palette {
		mu.Lock()
		defer mu.Unlock()
		p := palettes[i]
		if i < len(palettes)-1 {
			i++
		}
		return p
	}
}

// TempPaths creates config and data directories under t.TempDir.
func TempPaths(t *testing.T) *config.Paths {
	t.Helper()
	base := t.TempDir()
	return config.NewPaths(filepath.Join(base, "config"), filepath.Join(base, "data"))
}

// WriteFavorites writes raw favorites content to the favorites file.
func WriteFavorites(t *testing.T, paths *config.Paths, content string) {
	t.Helper()
	if err := os.MkdirAll(paths.DataDir(), 0755); err != nil {
		t.Fatalf("failed to create data dir: %v", err)
	}
	if err := os.WriteFile(paths.FavoritesPath(), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write favorites: %v", err)
	}
}

// ReadFavorites decodes the favorites file as plain string arrays.
func ReadFavorites(t *testing.T, paths *config.Paths) [][]string {
	t.Helper()
	data, err := os.ReadFile(paths.FavoritesPath())
	if err != nil {
		t.Fatalf("failed to read favorites: %v", err)
	}
	var out [][]string
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("favorites file is not valid JSON: %v", err)
	}
	return out
}
