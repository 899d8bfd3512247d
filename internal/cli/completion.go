package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/store"
)

// completionCtx provides lightweight store access for shell completion.
// Completion functions run during ParseOrExit, before NewApp() is called,
// so we can't use the full App. This loads just enough to list favorites.
type completionCtx struct {
	once      sync.Once
	favorites model.FavoritesList
}

var compCtx completionCtx

func initCompletionCtx() {
	compCtx.once.Do(func() {
		paths := config.NewPaths("", "")
		cfg, err := store.NewConfigStore(paths).Load()
		if err == nil {
			paths = paths.WithDataDir(cfg.DataDir)
		}
		// Load never fails; a broken file just completes nothing
		compCtx.favorites = store.NewFavoritesStore(paths).Load()
	})
}

// completeFavorites returns 1-based favorite numbers matching the given prefix.
func completeFavorites(toComplete string) ([]string, ra.CompletionDirective) {
	initCompletionCtx()
	return favoriteIndexCompletions(compCtx.favorites, toComplete), ra.CompletionDirectiveNoFileComp
}

func favoriteIndexCompletions(favorites model.FavoritesList, toComplete string) []string {
	var result []string
	for i := range favorites {
		n := strconv.Itoa(i + 1)
		if strings.HasPrefix(n, toComplete) {
			result = append(result, n)
		}
	}
	return result
}

// registerCompletion adds the "swatch completion <shell>" command.
func registerCompletion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("completion")
	cmd.SetDescription("Output shell completion script")

	ctx.CompletionShell, _ = ra.NewString("shell").
		SetUsage("Shell type").
		SetEnumConstraint([]string{"bash", "zsh"}).
		Register(cmd)

	ctx.CompletionUsed, _ = parent.RegisterCmd(cmd)
}

// runCompletion outputs the shell completion script to stdout.
func runCompletion(shell string, rootCmd *ra.Cmd) {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(os.Stdout)
	default:
		Fatal(fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell))
	}
	if err != nil {
		Fatal(fmt.Errorf("failed to generate completion script: %w", err))
	}
}
