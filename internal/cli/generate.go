package cli

import (
	"fmt"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/generator"
	"github.com/amterp/swatch/internal/model"
)

const maxGenerateCount = 100

func registerGenerate(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("generate")
	cmd.SetDescription("Print random palettes")

	ctx.GenerateCount, _ = ra.NewInt("count").
		SetShort("n").
		SetOptional(true).
		SetDefault(1).
		SetFlagOnly(true).
		SetUsage("Number of palettes to print").
		Register(cmd)

	ctx.GenerateJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.GenerateUsed, _ = parent.RegisterCmd(cmd)
}

func runGenerate(count int, jsonOutput bool) {
	if count < 1 || count > maxGenerateCount {
		Fatal(fmt.Errorf("--count must be between 1 and %d", maxGenerateCount))
	}

	palettes := make([]model.Palette, count)
	for i := range palettes {
		palettes[i] = generator.Generate()
	}

	if jsonOutput {
		if err := printJson(NewGenerateOutput(palettes)); err != nil {
			Fatal(err)
		}
		return
	}

	for _, p := range palettes {
		fmt.Println(RenderPalette(p, model.State{}))
	}
}
