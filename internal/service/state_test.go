package service

import (
	"testing"

	"github.com/amterp/swatch/internal/model"
)

func TestRegenerate_ClearsCopied(t *testing.T) {
	s := model.State{Palette: paletteA, Copied: "#AAAAAA"}

	next := Regenerate(s, paletteB)

	if next.Palette != paletteB {
		t.Errorf("Palette = %v, want %v", next.Palette, paletteB)
	}
	if next.Copied != "" {
		t.Errorf("Copied = %q, want empty", next.Copied)
	}
	if s.Palette != paletteA {
		t.Error("Input state was modified")
	}
}

func TestSaveCurrent_Idempotent(t *testing.T) {
	s := model.State{Palette: paletteA}

	once := SaveCurrent(s)
	twice := SaveCurrent(once)

	if len(once.Favorites) != 1 || len(twice.Favorites) != 1 {
		t.Errorf("Expected one favorite after saving twice, got %d", len(twice.Favorites))
	}
	if !twice.IsSaved() {
		t.Error("Expected current palette to be saved")
	}
}

func TestRemoveFavorite_OutOfRange(t *testing.T) {
	s := model.State{Favorites: model.FavoritesList{paletteA}}

	for _, index := range []int{-1, 1, 100} {
		next := RemoveFavorite(s, index)
		if len(next.Favorites) != 1 {
			t.Errorf("RemoveFavorite(%d) changed the list: %v", index, next.Favorites)
		}
	}
}

func TestMarkAndClearCopied(t *testing.T) {
	s := MarkCopied(model.State{}, "#123456")
	if s.Copied != "#123456" {
		t.Errorf("Copied = %q", s.Copied)
	}
	if ClearCopied(s).Copied != "" {
		t.Error("ClearCopied left the flag set")
	}
}
