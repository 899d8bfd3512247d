package prompt

import "errors"

// ErrNonInteractive is what every prompt returns under --non-interactive.
var ErrNonInteractive = errors.New("cannot prompt in non-interactive mode")

// Prompter asks the user to pick a color, a favorite or an action.
type Prompter interface {
	// Select returns the chosen option's label.
	Select(title string, options []string) (string, error)

	// SelectIndex returns the chosen option's position. Use it when labels
	// can repeat.
	SelectIndex(title string, options []string) (int, error)

	Confirm(title string, defaultValue bool) (bool, error)
}

// NoopPrompter refuses every prompt. Commands fall back to their flags.
type NoopPrompter struct{}

func (*NoopPrompter) Select(string, []string) (string, error) { return "", ErrNonInteractive }

func (*NoopPrompter) SelectIndex(string, []string) (int, error) { return -1, ErrNonInteractive }

func (*NoopPrompter) Confirm(string, bool) (bool, error) { return false, ErrNonInteractive }
