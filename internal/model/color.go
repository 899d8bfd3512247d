package model

import (
	"regexp"
	"strings"

	kanerr "github.com/amterp/swatch/internal/errors"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an uppercase #RRGGBB hex string.
type Color string

const (
	Black Color = "#000000"
	White Color = "#FFFFFF"
)

// Text on colors lighter than this L* reads better in black.
const lightnessThreshold = 0.6

var colorRegex = regexp.MustCompile(`^#[0-9A-F]{6}$`)

// ParseColor accepts #rrggbb in any case and returns the canonical uppercase form.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", kanerr.InvalidColor(s)
	}
	return c, nil
}

// MustParseColor is like ParseColor but panics on invalid input.
// Intended for constants and tests.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Valid reports whether c is exactly '#' followed by six uppercase hex digits.
func (c Color) Valid() bool {
	return colorRegex.MatchString(string(c))
}

func (c Color) String() string {
	return string(c)
}

// Colorful converts c for color math. Invalid colors convert to black.
func (c Color) Colorful() colorful.Color {
	cc, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{}
	}
	return cc
}

// RGB returns the 8-bit channel values.
func (c Color) RGB() (r, g, b uint8) {
	return c.Colorful().RGB255()
}

// TextColor returns black or white, whichever is more legible on c.
func (c Color) TextColor() Color {
	l, _, _ := c.Colorful().Lab()
	if l > lightnessThreshold {
		return Black
	}
	return White
}
