package cli

import (
	"errors"
	"testing"

	"github.com/amterp/swatch/internal/clipboard"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/prompt"
	"github.com/amterp/swatch/internal/store"
	"github.com/amterp/swatch/testutil"
)

var _ prompt.Prompter = (*scriptedPrompter)(nil)

// scriptedPrompter answers SelectIndex prompts from a fixed list.
type scriptedPrompter struct {
	indices []int
	titles  []string
	options [][]string
}

func (p *scriptedPrompter) Select(title string, options []string) (string, error) {
	i, err := p.SelectIndex(title, options)
	if err != nil {
		return "", err
	}
	return options[i], nil
}

func (p *scriptedPrompter) SelectIndex(title string, options []string) (int, error) {
	p.titles = append(p.titles, title)
	p.options = append(p.options, options)
	if len(p.indices) == 0 {
		return -1, errors.New("no scripted answer")
	}
	i := p.indices[0]
	p.indices = p.indices[1:]
	return i, nil
}

func (p *scriptedPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	return defaultValue, nil
}

func setupTestApp(t *testing.T, prompter prompt.Prompter, initial string) (*App, *[]model.Color) {
	t.Helper()

	paths := testutil.TempPaths(t)
	if initial != "" {
		testutil.WriteFavorites(t, paths, initial)
	}

	var copied []model.Color
	cb := clipboard.Func(func(c model.Color) error {
		copied = append(copied, c)
		return nil
	})

	app := newAppWith(paths, model.DefaultConfig(), store.NewConfigStore(paths), store.NewFavoritesStore(paths), cb, prompter)
	t.Cleanup(app.Close)
	return app, &copied
}

func TestInteractiveActions(t *testing.T) {
	state := model.State{Palette: testutil.Grays(), Favorites: model.FavoritesList{}}

	got := interactiveActions(state)
	want := []string{actionGenerate, actionCopy, actionSave, actionQuit}
	if len(got) != len(want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("action %d = %q, want %q", i, got[i], want[i])
		}
	}

	state.Favorites = model.FavoritesList{testutil.Grays()}
	got = interactiveActions(state)
	if got[2] != actionSaved {
		t.Errorf("Expected %q once saved, got %q", actionSaved, got[2])
	}
	if got[3] != actionRemove {
		t.Errorf("Expected remove action with favorites, got %v", got)
	}
}

func TestHandleInteractiveAction_SaveAndRemove(t *testing.T) {
	prompter := &scriptedPrompter{indices: []int{0}}
	app, _ := setupTestApp(t, prompter, "")
	shown := app.Session.State().Palette

	if quit, err := handleInteractiveAction(app, actionSave); quit || err != nil {
		t.Fatalf("save: quit=%v err=%v", quit, err)
	}
	if got := testutil.ReadFavorites(t, app.Paths); len(got) != 1 || got[0][0] != string(shown[0]) {
		t.Fatalf("Persisted favorites = %v", got)
	}

	if _, err := handleInteractiveAction(app, actionRemove); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(app.Favorites()) != 0 {
		t.Errorf("Expected no favorites, got %v", app.Favorites())
	}
	if got := testutil.ReadFavorites(t, app.Paths); len(got) != 0 {
		t.Errorf("Persisted favorites = %v, want []", got)
	}
}

func TestHandleInteractiveAction_CopyFromFavorites(t *testing.T) {
	// Options are 5 current colors, then 5 per favorite
	prompter := &scriptedPrompter{indices: []int{7}}
	app, copied := setupTestApp(t, prompter, `[["#111111","#222222","#333333","#444444","#555555"]]`)

	if _, err := handleInteractiveAction(app, actionCopy); err != nil {
		t.Fatalf("copy: %v", err)
	}

	if len(*copied) != 1 || (*copied)[0] != "#333333" {
		t.Errorf("Clipboard got %v, want [#333333]", *copied)
	}
	if app.Session.State().Copied != "#333333" {
		t.Errorf("Copied flag = %q", app.Session.State().Copied)
	}
	if len(prompter.options[0]) != 10 {
		t.Errorf("Expected 10 color options, got %d", len(prompter.options[0]))
	}
}

func TestHandleInteractiveAction_GenerateAndQuit(t *testing.T) {
	app, _ := setupTestApp(t, &scriptedPrompter{}, "")

	app.Session.Copy(app.Session.State().Palette[0])
	if _, err := handleInteractiveAction(app, actionGenerate); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if app.Session.State().Copied != "" {
		t.Error("Generating should clear the copied flag")
	}

	quit, err := handleInteractiveAction(app, actionQuit)
	if !quit || err != nil {
		t.Errorf("quit: quit=%v err=%v", quit, err)
	}

	if _, err := handleInteractiveAction(app, "dance"); err == nil {
		t.Error("Expected error for unknown action")
	}
}
