package cli

import (
	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/model"
)

func registerSave(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("save")
	cmd.SetDescription("Save a palette to favorites")

	ctx.SaveColors, _ = ra.NewStringSlice("colors").
		SetUsage("Five hex colors, e.g. #264653 #2A9D8F #E9C46A #F4A261 #E76F51").
		Register(cmd)

	ctx.SaveUsed, _ = parent.RegisterCmd(cmd)
}

func runSave(colors []string) {
	p, err := model.NewPalette(colors)
	if err != nil {
		Fatal(err)
	}

	app := NewApp(false)
	defer app.Close()

	if app.Favorites().Contains(p) {
		PrintInfo("Already saved")
		return
	}

	state, err := app.Session.SavePalette(p)
	if err != nil {
		Fatal(err)
	}

	PrintSuccess("Saved %s", RenderCompactPalette(p))
	PrintInfo("%d favorite(s)", len(state.Favorites))
}
