package editor

import (
	"os"
	"os/exec"
	"strings"
)

const defaultEditor = "vi"

// Editor handles editor resolution and invocation.
type Editor struct {
	configured string
	getenv     func(string) string
}

// NewEditor creates a new Editor. configured comes from the config file
// and may be empty.
func NewEditor(configured string) *Editor {
	return &Editor{configured: configured, getenv: os.Getenv}
}

// Resolve returns the editor command to use.
// Order: config > $VISUAL > $EDITOR > vi
func (e *Editor) Resolve() string {
	// Blank values count as unset
	if editor := strings.TrimSpace(e.configured); editor != "" {
		return editor
	}
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if editor := strings.TrimSpace(e.getenv(key)); editor != "" {
			return editor
		}
	}
	return defaultEditor
}

// Edit opens the editor on a temp file holding content and returns what the
// user saved. ext picks the temp file's extension for syntax highlighting.
func (e *Editor) Edit(content, ext string) (string, error) {
	tmpFile, err := os.CreateTemp("", "swatch-edit-*"+ext)
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		return "", err
	}
	tmpFile.Close()

	// Editors like "code --wait" carry their own arguments
	fields := strings.Fields(e.Resolve())
	if len(fields) == 0 {
		fields = []string{defaultEditor}
	}
	cmd := exec.Command(fields[0], append(fields[1:], tmpPath)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", err
	}

	return string(edited), nil
}
