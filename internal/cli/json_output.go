package cli

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/amterp/swatch/internal/model"
)

// colorJson describes one color for JSON output.
type colorJson struct {
	Hex       model.Color `json:"hex"`
	RGB       [3]uint8    `json:"rgb"`
	HSL       hslJson     `json:"hsl"`
	TextColor model.Color `json:"text_color"`
}

// hslJson holds hue in degrees and saturation/lightness as percentages.
type hslJson struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

func colorToJson(c model.Color) colorJson {
	r, g, b := c.RGB()
	h, s, l := c.Colorful().Hsl()
	return colorJson{
		Hex:       c,
		RGB:       [3]uint8{r, g, b},
		HSL:       hslJson{H: int(math.Round(h)), S: int(math.Round(s * 100)), L: int(math.Round(l * 100))},
		TextColor: c.TextColor(),
	}
}

func paletteToJson(p model.Palette) []colorJson {
	out := make([]colorJson, len(p))
	for i, c := range p {
		out[i] = colorToJson(c)
	}
	return out
}

// GenerateOutput wraps generated palettes for JSON output.
type GenerateOutput struct {
	Palettes [][]colorJson `json:"palettes"`
}

// NewGenerateOutput creates a GenerateOutput.
// Always returns an empty array (not null) when there are no palettes.
func NewGenerateOutput(palettes []model.Palette) GenerateOutput {
	result := make([][]colorJson, 0, len(palettes))
	for _, p := range palettes {
		result = append(result, paletteToJson(p))
	}
	return GenerateOutput{Palettes: result}
}

// favoriteJson is one favorite with its 1-based CLI index.
type favoriteJson struct {
	Index  int           `json:"index"`
	Colors []model.Color `json:"colors"`
}

// FavoritesOutput wraps the favorites list for JSON output.
type FavoritesOutput struct {
	Favorites []favoriteJson `json:"favorites"`
}

// NewFavoritesOutput creates a FavoritesOutput.
// Always returns an empty array (not null) when there are no favorites.
func NewFavoritesOutput(list model.FavoritesList) FavoritesOutput {
	result := make([]favoriteJson, 0, len(list))
	for i, p := range list {
		result = append(result, favoriteJson{Index: i + 1, Colors: p[:]})
	}
	return FavoritesOutput{Favorites: result}
}

// ConfigOutput is the effective configuration for JSON output.
type ConfigOutput struct {
	ConfigPath     string `json:"config_path"`
	DataDir        string `json:"data_dir"`
	FavoritesPath  string `json:"favorites_path"`
	CopyFeedbackMs int    `json:"copy_feedback_ms"`
	ServePort      int    `json:"serve_port"`
	OpenBrowser    bool   `json:"open_browser"`
	Editor         string `json:"editor"`
}

func jsonIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// printJson marshals the value as indented JSON and prints it to stdout.
func printJson(v any) error {
	output, err := jsonIndent(v)
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}
