package resolver

import (
	"errors"
	"fmt"
	"strings"

	kanerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/prompt"
)

// ErrNoFavorites is returned when there is nothing to pick from.
var ErrNoFavorites = errors.New("no favorites yet; save a palette first")

// FavoriteResolver turns the 1-based favorite numbers users type into
// 0-based list positions.
type FavoriteResolver struct {
	prompter prompt.Prompter
}

// NewFavoriteResolver creates a new favorite resolver.
func NewFavoriteResolver(prompter prompt.Prompter) *FavoriteResolver {
	return &FavoriteResolver{prompter: prompter}
}

// Resolve determines which favorite to act on:
// 1. If an explicit number is given, use it (range is not checked)
// 2. If there are no favorites, fail
// 3. Otherwise prompt, failing in non-interactive mode
func (r *FavoriteResolver) Resolve(number int, favorites model.FavoritesList, title string) (int, error) {
	// 1. Explicit number; zero means none given
	if number != 0 {
		return number - 1, nil
	}

	// 2. Nothing to pick
	if len(favorites) == 0 {
		return -1, ErrNoFavorites
	}

	// 3. Prompt
	picked, err := r.prompter.SelectIndex(title, Options(favorites))
	if err != nil {
		if errors.Is(err, prompt.ErrNonInteractive) {
			return -1, fmt.Errorf("specify a favorite number (1-%d) in non-interactive mode", len(favorites))
		}
		return -1, err
	}
	return picked, nil
}

// ResolveExisting is Resolve for commands that need the favorite to exist.
func (r *FavoriteResolver) ResolveExisting(number int, favorites model.FavoritesList, title string) (int, error) {
	i, err := r.Resolve(number, favorites, title)
	if err != nil {
		return -1, err
	}
	if !InRange(i, favorites) {
		return -1, kanerr.FavoriteNotFound(i+1, len(favorites))
	}
	return i, nil
}

// Options labels favorites for a picker.
func Options(favorites model.FavoritesList) []string {
	options := make([]string, len(favorites))
	for i, p := range favorites {
		options[i] = fmt.Sprintf("%d. %s", i+1, strings.Join(p.Strings(), " "))
	}
	return options
}

// InRange reports whether i is a valid 0-based position in favorites.
func InRange(i int, favorites model.FavoritesList) bool {
	return i >= 0 && i < len(favorites)
}
