package generator

import (
	"math/rand/v2"
	"regexp"
	"testing"

	"github.com/amterp/swatch/internal/model"
)

var hexPattern = regexp.MustCompile(`^#[0-9A-F]{6}$`)

func TestGenerate_Format(t *testing.T) {
	for i := 0; i < 500; i++ {
		p := Generate()
		if len(p) != model.PaletteSize {
			t.Fatalf("Palette has %d colors, want %d", len(p), model.PaletteSize)
		}
		for j, c := range p {
			if !hexPattern.MatchString(string(c)) {
				t.Fatalf("Color %d = %q does not match %s", j, c, hexPattern)
			}
		}
	}
}

func TestGenerate_Independent(t *testing.T) {
	first := Generate()
	second := Generate()

	// 2^-120 chance of a false failure
	if first == second {
		t.Errorf("Two calls produced the same palette: %v", first)
	}
}

func TestGenerator_ZeroPadded(t *testing.T) {
	// A source that always yields 0 drives IntN to its lowest value.
	g := New(zeroSource{})

	p := g.Generate()
	for _, c := range p {
		if c != "#000000" {
			t.Errorf("Expected #000000, got %q", c)
		}
	}
}

func TestGenerator_Seeded(t *testing.T) {
	a := New(rand.NewPCG(1, 2)).Generate()
	b := New(rand.NewPCG(1, 2)).Generate()

	if a != b {
		t.Errorf("Same seed produced different palettes: %v vs %v", a, b)
	}
	if !a.Valid() {
		t.Errorf("Seeded palette invalid: %v", a)
	}
}

func TestGenerator_CoversFullRange(t *testing.T) {
	g := New(maxSource{})

	p := g.Generate()
	if p[0] != "#FFFFFF" {
		t.Errorf("Expected the top of the range to be reachable, got %q", p[0])
	}
}

type zeroSource struct{}

func (zeroSource) Uint64() uint64 { return 0 }

type maxSource struct{}

func (maxSource) Uint64() uint64 { return ^uint64(0) }
