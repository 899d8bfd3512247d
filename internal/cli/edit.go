package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/amterp/ra"

	"github.com/amterp/swatch/internal/editor"
	kanerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
)

func registerEdit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("edit")
	cmd.SetDescription("Edit favorites in your editor")

	ctx.EditUsed, _ = parent.RegisterCmd(cmd)
}

func runEdit(interactive bool) {
	if !interactive {
		Fatal(fmt.Errorf("edit opens an editor and cannot run in non-interactive mode"))
	}

	app := NewApp(true)
	defer app.Close()

	before := app.Favorites()
	ed := editor.NewEditor(app.Config.Editor)

	// Invalid edits re-open the editor on what the user wrote
	content := formatFavoritesForEdit(before)
	var after model.FavoritesList
	for {
		edited, err := ed.Edit(content, ".json")
		if err != nil {
			Fatal(fmt.Errorf("editor failed: %w", err))
		}

		after, err = parseEditedFavorites(edited)
		if err == nil {
			break
		}

		PrintError("%v", err)
		retry, promptErr := app.Prompter.Confirm("Re-open the editor to fix it?", true)
		if promptErr != nil || !retry {
			Fatal(fmt.Errorf("favorites left unchanged"))
		}
		content = edited
	}

	if favoritesEqual(before, after) {
		PrintInfo("No changes")
		return
	}

	if err := app.FavoritesStore.Save(after); err != nil {
		Fatal(err)
	}
	PrintSuccess("Saved %d favorite(s)", len(after))
}

// formatFavoritesForEdit writes one palette per line so that reordering and
// deleting are single-line edits.
func formatFavoritesForEdit(favorites model.FavoritesList) string {
	if len(favorites) == 0 {
		return "[]\n"
	}

	lines := make([]string, len(favorites))
	for i, p := range favorites {
		data, _ := json.Marshal(p.Strings())
		lines[i] = "  " + string(data)
	}
	return "[\n" + strings.Join(lines, ",\n") + "\n]\n"
}

// parseEditedFavorites validates the edited file. Unlike loading, a bad entry
// rejects the whole edit so the user's work is not silently dropped.
// Duplicates keep their first position.
func parseEditedFavorites(content string) (model.FavoritesList, error) {
	if strings.TrimSpace(content) == "" {
		return model.FavoritesList{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, kanerr.InvalidField("favorites", fmt.Sprintf("not a JSON array: %v", err))
	}

	list := make(model.FavoritesList, 0, len(raw))
	for i, entry := range raw {
		var p model.Palette
		if err := json.Unmarshal(entry, &p); err != nil {
			return nil, kanerr.InvalidField("favorites", fmt.Sprintf("entry %d: %v", i+1, err))
		}
		list = append(list, p)
	}
	return list.Dedupe(), nil
}

func favoritesEqual(a, b model.FavoritesList) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
