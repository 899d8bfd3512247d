package cli

import (
	"errors"
	"fmt"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/prompt"
)

func registerInteractive(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("interactive")
	cmd.SetDescription("Generate, copy and save palettes in a prompt loop")

	ctx.InteractiveUsed, _ = parent.RegisterCmd(cmd)
}

// Menu entries of the interactive loop.
const (
	actionGenerate = "Generate new palette"
	actionCopy     = "Copy a color"
	actionSave     = "Save to favorites"
	actionSaved    = "Saved"
	actionRemove   = "Remove a favorite"
	actionQuit     = "Quit"
)

func runInteractive(interactive bool) {
	if !interactive {
		Fatal(prompt.ErrNonInteractive)
	}

	app := NewApp(true)
	defer app.Close()

	fmt.Println(TitleBox("Color Palette Generator"))

	for {
		state := app.Session.State()
		renderInteractive(state)

		action, err := app.Prompter.Select("What next?", interactiveActions(state))
		if err != nil {
			Fatal(err)
		}

		quit, err := handleInteractiveAction(app, action)
		if err != nil {
			PrintError("%v", err)
		}
		if quit {
			return
		}
	}
}

func renderInteractive(state model.State) {
	fmt.Println()
	fmt.Println(RenderPalette(state.Palette, state))
	fmt.Println()
	fmt.Println(StyleTitle.Render("Favorites"))
	if len(state.Favorites) == 0 {
		fmt.Println(RenderMuted(EmptyFavoritesMessage))
	} else {
		printFavorites(state.Favorites, state)
	}
	fmt.Println()
}

// interactiveActions lists the menu. Save turns into a "Saved" marker when
// the shown palette is already a favorite.
func interactiveActions(state model.State) []string {
	actions := []string{actionGenerate, actionCopy}
	if state.IsSaved() {
		actions = append(actions, actionSaved)
	} else {
		actions = append(actions, actionSave)
	}
	if len(state.Favorites) > 0 {
		actions = append(actions, actionRemove)
	}
	return append(actions, actionQuit)
}

func handleInteractiveAction(app *App, action string) (bool, error) {
	switch action {
	case actionGenerate:
		app.Session.Generate()

	case actionCopy:
		c, err := pickColor(app.Prompter, app.Session.State())
		if err != nil {
			return false, err
		}
		if _, err := app.Session.Copy(c); err != nil {
			return false, err
		}

	case actionSave:
		app.Session.SaveCurrent()

	case actionSaved:
		// Already a favorite

	case actionRemove:
		favorites := app.Session.State().Favorites
		i, err := app.Resolver.Resolve(0, favorites, "Remove which favorite?")
		if err != nil {
			return false, err
		}
		app.Session.RemoveFavorite(i)

	case actionQuit:
		return true, nil

	default:
		return false, errors.New("unknown action: " + action)
	}
	return false, nil
}

// pickColor offers every color of the shown palette and of each favorite.
// All of them share one copied indicator.
func pickColor(prompter prompt.Prompter, state model.State) (model.Color, error) {
	var colors []model.Color
	var options []string

	for _, c := range state.Palette {
		colors = append(colors, c)
		options = append(options, fmt.Sprintf("%s  current", c))
	}
	for i, p := range state.Favorites {
		for _, c := range p {
			colors = append(colors, c)
			options = append(options, fmt.Sprintf("%s  favorite %d", c, i+1))
		}
	}

	picked, err := prompter.SelectIndex("Copy which color?", options)
	if err != nil {
		return "", err
	}
	if picked < 0 || picked >= len(colors) {
		return "", fmt.Errorf("no color #%d", picked+1)
	}
	return colors[picked], nil
}
