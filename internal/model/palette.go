package model

import (
	"encoding/json"
	"fmt"

	kanerr "github.com/amterp/swatch/internal/errors"
)

// PaletteSize is the number of colors in every palette.
const PaletteSize = 5

// Palette is an ordered set of colors shown together.
// Two palettes are equal only if every position matches.
type Palette [PaletteSize]Color

// NewPalette builds a palette from exactly PaletteSize hex strings.
func NewPalette(colors []string) (Palette, error) {
	var p Palette
	if len(colors) != PaletteSize {
		return p, kanerr.InvalidField("palette",
			fmt.Sprintf("expected %d colors, got %d", PaletteSize, len(colors)))
	}
	for i, s := range colors {
		c, err := ParseColor(s)
		if err != nil {
			return Palette{}, err
		}
		p[i] = c
	}
	return p, nil
}

// Valid reports whether every color in the palette is valid.
func (p Palette) Valid() bool {
	for _, c := range p {
		if !c.Valid() {
			return false
		}
	}
	return true
}

// Strings returns the colors as plain strings.
func (p Palette) Strings() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = string(c)
	}
	return out
}

// UnmarshalJSON rejects arrays that are not exactly PaletteSize valid colors.
func (p *Palette) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewPalette(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
