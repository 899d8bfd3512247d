package generator

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/amterp/swatch/internal/model"
)

// colorSpace is the number of distinct #RRGGBB values.
const colorSpace = 1 << 24

// Generator draws random palettes.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a generator over src. A nil src uses the runtime's
// randomly seeded source.
func New(src rand.Source) *Generator {
	g := &Generator{}
	if src != nil {
		g.rng = rand.New(src)
	}
	return g
}

var defaultGenerator = New(nil)

// Generate returns a palette from the default generator.
func Generate() model.Palette {
	return defaultGenerator.Generate()
}

// Generate returns model.PaletteSize independent colors, each uniform over
// all 2^24 values.
func (g *Generator) Generate() model.Palette {
	var p model.Palette
	for i := range p {
		p[i] = g.color()
	}
	return p
}

func (g *Generator) color() model.Color {
	return model.Color(fmt.Sprintf("#%06X", g.intN(colorSpace)))
}

func (g *Generator) intN(n int) int {
	if g.rng == nil {
		return rand.IntN(n)
	}
	// *rand.Rand is not safe for concurrent use
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}
