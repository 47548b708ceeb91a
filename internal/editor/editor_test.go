package editor

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDetectEditor(t *testing.T) {
	tests := []struct {
		name   string
		own    string
		editor string
		visual string
		want   string
	}{
		{name: "own variable wins", own: "hx", editor: "nvim", visual: "code", want: "hx"},
		{name: "editor before visual", editor: "nvim", visual: "code", want: "nvim"},
		{name: "visual", visual: "code", want: "code"},
		{name: "blank editor falls through", editor: "   ", visual: "vscode", want: "vscode"},
		{name: "arguments kept", editor: "code --wait", want: "code --wait"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RULERANGER_EDITOR", tt.own)
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", tt.visual)

			if got := detectEditor(); got != tt.want {
				t.Errorf("detectEditor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectEditor_Fallback(t *testing.T) {
	t.Setenv("RULERANGER_EDITOR", "")
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	want := "vi"
	if _, err := exec.LookPath("nano"); err == nil {
		want = "nano"
	}
	if got := detectEditor(); got != want {
		t.Errorf("detectEditor() = %q, want %q", got, want)
	}
}

func TestOpen(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script editor")
	}

	dir := t.TempDir()
	mockEditor := filepath.Join(dir, "mock-editor.sh")
	script := "#!/bin/sh\necho \"$@\"\nprintf 'class: Material\\n' > \"$2\"\n"
	if err := os.WriteFile(mockEditor, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RULERANGER_EDITOR", mockEditor+" --wait")

	target := filepath.Join(dir, "M_Wall.yaml")
	if err := os.WriteFile(target, []byte("class: Blueprint\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := Open(t.Context(), target, Streams{Out: &out, Err: &out}); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if got := strings.TrimSpace(out.String()); got != "--wait "+target {
		t.Errorf("editor args = %q, want %q", got, "--wait "+target)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "class: Material\n" {
		t.Errorf("descriptor = %q, want edited content", data)
	}
}

func TestOpen_EditorFails(t *testing.T) {
	t.Setenv("RULERANGER_EDITOR", filepath.Join(t.TempDir(), "no-such-editor"))

	if err := Open(t.Context(), "x.yaml", Streams{}); err == nil {
		t.Fatal("Open() expected error for missing editor")
	}
}
