package clipboard

import (
	"github.com/amterp/swatch/internal/model"
	"github.com/atotto/clipboard"
)

// Clipboard copies a color to wherever the user pastes from.
type Clipboard interface {
	Copy(c model.Color) error
}

// System writes to the OS clipboard.
type System struct{}

// NewSystem returns the OS clipboard, or Noop when none is available
// (no xclip/xsel/wl-copy on Linux, headless CI).
func NewSystem() Clipboard {
	if clipboard.Unsupported {
		return Noop{}
	}
	return System{}
}

func (System) Copy(c model.Color) error {
	return clipboard.WriteAll(string(c))
}

// Noop discards copies.
type Noop struct{}

func (Noop) Copy(model.Color) error {
	return nil
}

// Func adapts a function to Clipboard.
type Func func(model.Color) error

func (f Func) Copy(c model.Color) error {
	return f(c)
}
