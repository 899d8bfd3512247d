package cli

import (
	"fmt"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/model"
)

// EmptyFavoritesMessage is shown wherever an empty favorites list is rendered.
const EmptyFavoritesMessage = "No favorites yet. Save a palette!"

func registerList(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("list")
	cmd.SetDescription("List favorite palettes")

	ctx.ListJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.ListUsed, _ = parent.RegisterCmd(cmd)
}

func runList(jsonOutput bool) {
	app := NewApp(false)
	defer app.Close()

	favorites := app.Favorites()

	if jsonOutput {
		if err := printJson(NewFavoritesOutput(favorites)); err != nil {
			Fatal(err)
		}
		return
	}

	if len(favorites) == 0 {
		PrintInfo(EmptyFavoritesMessage)
		return
	}

	printFavorites(favorites, model.State{})
}

func printFavorites(favorites model.FavoritesList, state model.State) {
	for i, p := range favorites {
		fmt.Printf("%s %s\n", RenderMuted(fmt.Sprintf("%3d.", i+1)), RenderPalette(p, state))
	}
}
