package cli

import (
	"os"

	"github.com/amterp/ra"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/amterp/swatch/internal/logging"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	Verbose        *bool

	// generate command
	GenerateUsed  *bool
	GenerateJson  *bool
	GenerateCount *int

	// save command
	SaveUsed   *bool
	SaveColors *[]string

	// list command
	ListUsed *bool
	ListJson *bool

	// remove command
	RemoveUsed  *bool
	RemoveIndex *int

	// copy command
	CopyUsed  *bool
	CopyColor *string

	// export command
	ExportUsed   *bool
	ExportIndex  *int
	ExportFormat *string
	ExportName   *string

	// interactive command
	InteractiveUsed *bool

	// edit command
	EditUsed *bool

	// serve command
	ServeUsed    *bool
	ServePort    *int
	ServeNoOpen  *bool
	ServeLogJson *bool

	// config command
	ConfigUsed *bool
	ConfigJson *bool

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// Run is the main entry point for the CLI.
func Run() {
	// A .env in the working directory may carry SWATCH_* overrides
	_ = godotenv.Load()

	ctx := &CommandContext{}

	cmd := ra.NewCmd("swatch")
	cmd.SetDescription("Random color palettes and a list of favorites")

	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.Verbose, _ = ra.NewBool("verbose").
		SetShort("v").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Show debug logs").
		Register(cmd, ra.WithGlobal(true))

	registerGenerate(cmd, ctx)
	registerSave(cmd, ctx)
	registerList(cmd, ctx)
	registerRemove(cmd, ctx)
	registerCopy(cmd, ctx)
	registerExport(cmd, ctx)
	registerInteractive(cmd, ctx)
	registerEdit(cmd, ctx)
	registerServe(cmd, ctx)
	registerConfig(cmd, ctx)
	registerCompletion(cmd, ctx)

	cmd.ParseOrExit(os.Args[1:])

	// Commands stay quiet; the server reports requests and reloads
	level := logrus.WarnLevel
	if *ctx.ServeUsed {
		level = logrus.InfoLevel
	}
	logging.Setup(os.Stderr, logging.Options{
		Verbose: *ctx.Verbose,
		JSON:    *ctx.ServeUsed && *ctx.ServeLogJson,
		Level:   level,
	})

	executeCommand(ctx, cmd)
}

func executeCommand(ctx *CommandContext, rootCmd *ra.Cmd) {
	interactive := !*ctx.NonInteractive

	switch {
	case *ctx.GenerateUsed:
		runGenerate(*ctx.GenerateCount, *ctx.GenerateJson)

	case *ctx.SaveUsed:
		runSave(*ctx.SaveColors)

	case *ctx.ListUsed:
		runList(*ctx.ListJson)

	case *ctx.RemoveUsed:
		runRemove(*ctx.RemoveIndex, interactive)

	case *ctx.CopyUsed:
		runCopy(*ctx.CopyColor)

	case *ctx.ExportUsed:
		runExport(*ctx.ExportIndex, *ctx.ExportFormat, *ctx.ExportName, interactive)

	case *ctx.InteractiveUsed:
		runInteractive(interactive)

	case *ctx.EditUsed:
		runEdit(interactive)

	case *ctx.ServeUsed:
		runServe(*ctx.ServePort, *ctx.ServeNoOpen)

	case *ctx.ConfigUsed:
		runConfig(*ctx.ConfigJson)

	case *ctx.CompletionUsed:
		runCompletion(*ctx.CompletionShell, rootCmd)

	default:
		// Bare "swatch" behaves like "swatch generate"
		runGenerate(1, false)
	}
}
