package prompt

import (
	"github.com/charmbracelet/huh"
)

// HuhPrompter prompts in the terminal with charmbracelet/huh.
type HuhPrompter struct {
	theme *huh.Theme
}

// NewHuhPrompter creates a prompter using the Charm theme.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{theme: huh.ThemeCharm()}
}

func (p *HuhPrompter) Select(title string, options []string) (string, error) {
	i, err := p.SelectIndex(title, options)
	if err != nil {
		return "", err
	}
	if i < 0 || i >= len(options) {
		return "", huh.ErrUserAborted
	}
	return options[i], nil
}

// SelectIndex keys options by position, so two favorites that render the
// same still pick distinct entries.
func (p *HuhPrompter) SelectIndex(title string, options []string) (int, error) {
	picked := -1
	err := p.run(huh.NewSelect[int]().
		Title(title).
		Options(indexedOptions(options)...).
		Value(&picked))
	return picked, err
}

func (p *HuhPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	answer := defaultValue
	err := p.run(huh.NewConfirm().
		Title(title).
		Value(&answer))
	return answer, err
}

func (p *HuhPrompter) run(field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).
		WithTheme(p.theme).
		WithShowHelp(false).
		Run()
}

func indexedOptions(labels []string) []huh.Option[int] {
	opts := make([]huh.Option[int], len(labels))
	for i, label := range labels {
		opts[i] = huh.NewOption(label, i)
	}
	return opts
}
