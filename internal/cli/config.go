package cli

import (
	"fmt"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/editor"
)

func registerConfig(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("config")
	cmd.SetDescription("Show the effective configuration")

	ctx.ConfigJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.ConfigUsed, _ = parent.RegisterCmd(cmd)
}

func runConfig(jsonOutput bool) {
	app := NewApp(false)
	defer app.Close()

	out := newConfigOutput(app)

	if jsonOutput {
		if err := printJson(out); err != nil {
			Fatal(err)
		}
		return
	}

	const w = 14
	fmt.Println(LabelValue("Config", out.ConfigPath, w))
	fmt.Println(LabelValue("Data dir", out.DataDir, w))
	fmt.Println(LabelValue("Favorites", fmt.Sprintf("%s %s", out.FavoritesPath, RenderMuted(fmt.Sprintf("(%d saved)", len(app.Favorites())))), w))
	fmt.Println(LabelValue("Copy feedback", fmt.Sprintf("%dms", out.CopyFeedbackMs), w))
	fmt.Println(LabelValue("Serve port", fmt.Sprintf("%d", out.ServePort), w))
	fmt.Println(LabelValue("Open browser", fmt.Sprintf("%t", out.OpenBrowser), w))
	fmt.Println(LabelValue("Editor", out.Editor, w))
}

func newConfigOutput(app *App) ConfigOutput {
	return ConfigOutput{
		ConfigPath:     app.Paths.ConfigPath(),
		DataDir:        app.Paths.DataDir(),
		FavoritesPath:  app.Paths.FavoritesPath(),
		CopyFeedbackMs: app.Config.CopyFeedbackMs,
		ServePort:      app.Config.ServePort,
		OpenBrowser:    app.Config.ShouldOpenBrowser(),
		Editor:         editor.NewEditor(app.Config.Editor).Resolve(),
	}
}
