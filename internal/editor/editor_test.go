package editor

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		env        map[string]string
		want       string
	}{
		{"config wins", "nano", map[string]string{"VISUAL": "code", "EDITOR": "vim"}, "nano"},
		{"visual before editor", "", map[string]string{"VISUAL": "code --wait", "EDITOR": "vim"}, "code --wait"},
		{"editor", "", map[string]string{"EDITOR": "vim"}, "vim"},
		{"fallback", "", nil, "vi"},
		{"blank config ignored", "   ", map[string]string{"EDITOR": "vim"}, "vim"},
		{"blank everywhere", " \t", map[string]string{"VISUAL": "  ", "EDITOR": ""}, "vi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Editor{configured: tt.configured, getenv: func(k string) string { return tt.env[k] }}
			if got := e.Resolve(); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEdit_RoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the editor")
	}

	// A fake editor that appends a line to the file it is given
	script := filepath.Join(t.TempDir(), "fake-editor.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho edited >> \"$1\"\n"), 0755); err != nil {
		t.Fatalf("failed to write fake editor: %v", err)
	}

	e := NewEditor(script)
	got, err := e.Edit("original\n", ".json")
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if got != "original\nedited\n" {
		t.Errorf("Edit = %q", got)
	}
}

func TestEdit_EditorFailure(t *testing.T) {
	e := NewEditor("false")
	if _, err := e.Edit("x", ".json"); err == nil {
		t.Error("Expected error when the editor exits non-zero")
	}
}
