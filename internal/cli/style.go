package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amterp/swatch/internal/model"
)

// Terminal colors follow the browser page: indigo header, amber save,
// red "Copied!". Dark first, light second.
var (
	ColorPrimary = lipgloss.AdaptiveColor{Dark: "#7986CB", Light: "#5C6BC0"}
	ColorSave    = lipgloss.AdaptiveColor{Dark: "#FFB300", Light: "#FF8F00"}
	ColorCopied  = lipgloss.AdaptiveColor{Dark: "#FF5252", Light: "#D32F2F"}
	ColorMuted   = lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"}
	ColorFail    = lipgloss.AdaptiveColor{Dark: "#ef4444", Light: "#dc2626"}
)

var (
	StyleTitle  = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleCopied = lipgloss.NewStyle().Foreground(ColorCopied).Bold(true)
	StyleMuted  = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleURL    = lipgloss.NewStyle().Foreground(ColorPrimary).Underline(true)
)

// CopiedLabel replaces a hex code while its copied indicator is on.
const CopiedLabel = "Copied!"

// swatchBlock is what ColorSwatch paints in the color.
const swatchBlock = "██"

type status struct {
	icon  string
	style lipgloss.Style
	out   func() io.Writer
}

var (
	statusSuccess = status{"✓", lipgloss.NewStyle().Foreground(ColorSave), stdout}
	statusError   = status{"✗", lipgloss.NewStyle().Foreground(ColorFail), stderr}
	statusWarning = status{"!", lipgloss.NewStyle().Foreground(ColorSave), stderr}
	statusInfo    = status{"→", StyleMuted, stdout}
)

func stdout() io.Writer { return os.Stdout }
func stderr() io.Writer { return os.Stderr }

func (s status) print(format string, args ...any) {
	fmt.Fprintf(s.out(), "%s %s\n", s.style.Render(s.icon), fmt.Sprintf(format, args...))
}

// PrintSuccess reports a change that went through.
func PrintSuccess(format string, args ...any) { statusSuccess.print(format, args...) }

// PrintError reports a failure on stderr.
func PrintError(format string, args ...any) { statusError.print(format, args...) }

// PrintWarning reports a no-op or a degraded result on stderr.
func PrintWarning(format string, args ...any) { statusWarning.print(format, args...) }

func PrintInfo(format string, args ...any) { statusInfo.print(format, args...) }

func RenderURL(url string) string { return StyleURL.Render(url) }

func RenderMuted(text string) string { return StyleMuted.Render(text) }

// ColorSwatch paints a small block in c. Invalid colors show a muted block.
func ColorSwatch(c model.Color) string {
	if !c.Valid() {
		return StyleMuted.Render(swatchBlock)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(string(c))).Render(swatchBlock)
}

// SwatchLabel renders the hex code on its own color, in whichever of black
// or white reads better. A copied color shows CopiedLabel instead.
func SwatchLabel(c model.Color, copied bool) string {
	label := string(c)
	if copied {
		label = CopiedLabel
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(string(c))).
		Foreground(lipgloss.Color(string(c.TextColor()))).
		Width(len(model.White) + 2).
		Align(lipgloss.Center).
		Render(label)
}

// RenderPalette renders a palette as a row of labelled swatches.
func RenderPalette(p model.Palette, state model.State) string {
	cells := make([]string, len(p))
	for i, c := range p {
		cells[i] = SwatchLabel(c, state.IsCopied(c))
	}
	return strings.Join(cells, " ")
}

// RenderCompactPalette renders a palette as blocks followed by its hex codes.
func RenderCompactPalette(p model.Palette) string {
	var b strings.Builder
	for _, c := range p {
		b.WriteString(ColorSwatch(c))
	}
	return b.String() + "  " + RenderMuted(strings.Join(p.Strings(), " "))
}

// TitleBox frames the app title, as the page header does.
func TitleBox(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Foreground(ColorPrimary).
		Padding(0, 2).
		Bold(true).
		Render(title)
}

// LabelValue right-aligns label in labelWidth columns before value.
func LabelValue(label, value string, labelWidth int) string {
	return lipgloss.NewStyle().
		Width(labelWidth).
		Align(lipgloss.Right).
		Foreground(ColorMuted).
		Render(label+":") + " " + value
}
