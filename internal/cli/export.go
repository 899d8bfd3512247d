package cli

import (
	"fmt"
	"strings"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/util"
)

// Export formats.
const (
	FormatCSS  = "css"
	FormatGPL  = "gpl"
	FormatJSON = "json"
)

var exportFormats = []string{FormatCSS, FormatGPL, FormatJSON}

func registerExport(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("export")
	cmd.SetDescription("Export a favorite palette")

	ctx.ExportIndex, _ = ra.NewInt("index").
		SetOptional(true).
		SetDefault(0).
		SetUsage("Favorite number as shown by 'swatch list' (prompts if omitted)").
		SetCompletionFunc(completeFavorites).
		Register(cmd)

	ctx.ExportFormat, _ = ra.NewString("format").
		SetShort("f").
		SetOptional(true).
		SetDefault(FormatCSS).
		SetFlagOnly(true).
		SetEnumConstraint(exportFormats).
		SetUsage("Output format").
		Register(cmd)

	ctx.ExportName, _ = ra.NewString("name").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Palette name (default: palette-<index>)").
		Register(cmd)

	ctx.ExportUsed, _ = parent.RegisterCmd(cmd)
}

func runExport(index int, format, name string, interactive bool) {
	app := NewApp(interactive)
	defer app.Close()

	favorites := app.Favorites()
	i, err := app.Resolver.ResolveExisting(index, favorites, "Export which favorite?")
	if err != nil {
		Fatal(err)
	}

	if name == "" {
		name = fmt.Sprintf("palette-%d", i+1)
	}

	out, err := renderExport(format, name, favorites[i])
	if err != nil {
		Fatal(err)
	}
	fmt.Print(out)
}

// renderExport renders a palette in the given format.
func renderExport(format, name string, p model.Palette) (string, error) {
	switch format {
	case FormatCSS:
		return renderCSS(name, p), nil
	case FormatGPL:
		return renderGPL(name, p), nil
	case FormatJSON:
		return renderExportJson(name, p)
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(exportFormats, ", "))
	}
}

// renderCSS emits one custom property per color, prefixed by the slugged name.
func renderCSS(name string, p model.Palette) string {
	prefix := util.Slugify(name)
	if prefix == "" {
		prefix = "palette"
	}

	var b strings.Builder
	b.WriteString(":root {\n")
	for i, c := range p {
		fmt.Fprintf(&b, "  --%s-%d: %s;\n", prefix, i+1, c)
	}
	b.WriteString("}\n")
	return b.String()
}

// renderGPL emits a GIMP palette file.
func renderGPL(name string, p model.Palette) string {
	var b strings.Builder
	b.WriteString("GIMP Palette\n")
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Columns: %d\n", len(p))
	b.WriteString("#\n")
	for _, c := range p {
		r, g, bl := c.RGB()
		fmt.Fprintf(&b, "%3d %3d %3d\t%s\n", r, g, bl, c)
	}
	return b.String()
}

type exportJson struct {
	Name   string      `json:"name"`
	Slug   string      `json:"slug"`
	Colors []colorJson `json:"colors"`
}

func renderExportJson(name string, p model.Palette) (string, error) {
	var b strings.Builder
	data, err := jsonIndent(exportJson{
		Name:   name,
		Slug:   util.Slugify(name),
		Colors: paletteToJson(p),
	})
	if err != nil {
		return "", err
	}
	b.Write(data)
	b.WriteString("\n")
	return b.String(), nil
}
