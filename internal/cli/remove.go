package cli

import (
	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/resolver"
)

func registerRemove(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("remove")
	cmd.SetDescription("Remove a favorite palette")

	ctx.RemoveIndex, _ = ra.NewInt("index").
		SetOptional(true).
		SetDefault(0).
		SetUsage("Favorite number as shown by 'swatch list' (prompts if omitted)").
		SetCompletionFunc(completeFavorites).
		Register(cmd)

	ctx.RemoveUsed, _ = parent.RegisterCmd(cmd)
}

func runRemove(index int, interactive bool) {
	app := NewApp(interactive)
	defer app.Close()

	favorites := app.Favorites()
	i, err := app.Resolver.Resolve(index, favorites, "Remove which favorite?")
	if err != nil {
		Fatal(err)
	}

	// Out of range is a no-op, reported but not fatal
	state := app.Session.RemoveFavorite(i)
	if !resolver.InRange(i, favorites) {
		PrintWarning("No favorite #%d (have %d); nothing removed", i+1, len(favorites))
		return
	}

	PrintSuccess("Removed %s", RenderCompactPalette(favorites[i]))
	if len(state.Favorites) == 0 {
		PrintInfo(EmptyFavoritesMessage)
	}
}
