package cli

import (
	"fmt"
	"os"

	"github.com/amterp/swatch/internal/clipboard"
	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/prompt"
	"github.com/amterp/swatch/internal/resolver"
	"github.com/amterp/swatch/internal/service"
	"github.com/amterp/swatch/internal/store"
)

// App holds all the dependencies for the CLI.
// Uses interfaces for testability.
type App struct {
	Paths          *config.Paths
	Config         *model.Config
	ConfigStore    store.ConfigStore
	FavoritesStore store.FavoritesStore
	Clipboard      clipboard.Clipboard
	Prompter       prompt.Prompter
	Resolver       *resolver.FavoriteResolver
	Session        *service.Session
}

// NewApp creates a new App with all dependencies wired up and favorites loaded.
// If interactive is false, uses NoopPrompter that fails on prompts.
func NewApp(interactive bool) *App {
	paths := config.NewPaths("", "")
	configStore := store.NewConfigStore(paths)

	// A broken config file should not lock the user out of their favorites
	cfg, err := configStore.Load()
	if err != nil {
		PrintWarning("Failed to load config, using defaults: %v", err)
		cfg = model.DefaultConfig()
	}
	paths = paths.WithDataDir(cfg.DataDir)

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	return newAppWith(paths, cfg, configStore, store.NewFavoritesStore(paths), clipboard.NewSystem(), prompter)
}

// newAppWith wires an App from explicit parts.
func newAppWith(
	paths *config.Paths,
	cfg *model.Config,
	configStore store.ConfigStore,
	favorites store.FavoritesStore,
	cb clipboard.Clipboard,
	prompter prompt.Prompter,
) *App {
	session := service.NewSession(favorites, cb, service.SessionOptions{
		CopyFeedback: cfg.CopyFeedback(),
	})
	session.Load()

	return &App{
		Paths:          paths,
		Config:         cfg,
		ConfigStore:    configStore,
		FavoritesStore: favorites,
		Clipboard:      cb,
		Prompter:       prompter,
		Resolver:       resolver.NewFavoriteResolver(prompter),
		Session:        session,
	}
}

// Favorites returns the loaded favorites list.
func (a *App) Favorites() model.FavoritesList {
	return a.Session.State().Favorites
}

// Close releases session timers.
func (a *App) Close() {
	a.Session.Close()
}

// Fatal prints an error and exits.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
