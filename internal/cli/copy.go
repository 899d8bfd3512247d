package cli

import (
	"fmt"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/clipboard"
	"github.com/amterp/swatch/internal/logging"
	"github.com/amterp/swatch/internal/model"
)

var clipboardLog = logging.Component("clipboard")

func registerCopy(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("copy")
	cmd.SetDescription("Copy a hex color to the clipboard")

	ctx.CopyColor, _ = ra.NewString("color").
		SetUsage("Hex color, e.g. #2A9D8F").
		Register(cmd)

	ctx.CopyUsed, _ = parent.RegisterCmd(cmd)
}

func runCopy(arg string) {
	c, err := model.ParseColor(arg)
	if err != nil {
		Fatal(err)
	}

	if copyColor(clipboard.NewSystem(), c) {
		PrintSuccess("%s %s", SwatchLabel(c, false), StyleCopied.Render(CopiedLabel))
		return
	}
	// Nothing reached a clipboard; the hex is still there to paste from
	fmt.Println(c)
}

// copyColor writes c to cb and reports whether it landed. Clipboard failures
// are only logged at debug level.
func copyColor(cb clipboard.Clipboard, c model.Color) bool {
	if _, ok := cb.(clipboard.Noop); ok {
		clipboardLog.WithField("color", c).Debug("No clipboard available")
		return false
	}
	if err := cb.Copy(c); err != nil {
		clipboardLog.WithError(err).WithField("color", c).Debug("Clipboard write failed")
		return false
	}
	return true
}
