package doctor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/host"
)

func writeContent(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestChecks_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	for _, c := range []Check{
		NewContentPermissionCheck(root),
		NewDescriptorSyntaxCheck(root),
		NewEmptyFolderCheck(root),
	} {
		result := c.Run()
		if result.Status != SeverityError {
			t.Errorf("%s: Status = %v, want error", c.Name(), result.Status)
		}
		if !strings.Contains(result.Message, "does not exist") {
			t.Errorf("%s: Message = %q", c.Name(), result.Message)
		}
		if result.Category != "content" {
			t.Errorf("%s: Category = %q, want content", c.Name(), result.Category)
		}
	}
}

func TestDescriptorSyntaxCheck_Run(t *testing.T) {
	t.Run("no descriptors", func(t *testing.T) {
		root := t.TempDir()
		writeContent(t, root, "README.md", "# content")

		result := NewDescriptorSyntaxCheck(root).Run()
		if result.Status != SeverityInfo {
			t.Errorf("Status = %v, want info", result.Status)
		}
	})

	t.Run("all valid", func(t *testing.T) {
		root := t.TempDir()
		writeContent(t, root, "UI/WBP_Menu.yaml", "class: WidgetBlueprint\n")
		writeContent(t, root, "Materials/M_Wall.toml", "class = \"Material\"\n")
		writeContent(t, root, "FX/NS_Fire.json", `{"class": "NiagaraSystem"}`)
		writeContent(t, root, ".cache/broken.yaml", "class: [\n")

		result := NewDescriptorSyntaxCheck(root).Run()
		if result.Status != SeverityPass {
			t.Fatalf("Status = %v, want pass: %s", result.Status, result.Message)
		}
		if got := result.Details["passed"]; got != 3 {
			t.Errorf("passed = %v, want 3 (hidden folders are skipped)", got)
		}
	})

	t.Run("broken descriptors", func(t *testing.T) {
		root := t.TempDir()
		writeContent(t, root, "Good.yaml", "class: Blueprint\n")
		writeContent(t, root, "Bad.json", "{\n  \"class\": \"Blueprint\",\n}")
		writeContent(t, root, "Empty.toml", "")
		writeContent(t, root, "NoClass.yaml", "properties: {A: 1}\n")

		result := NewDescriptorSyntaxCheck(root).Run()
		if result.Status != SeverityError {
			t.Fatalf("Status = %v, want error", result.Status)
		}
		if result.FixHint == "" {
			t.Error("expected a fix hint")
		}

		files, _ := result.Details["files"].([]syntaxFileResult)
		if len(files) != 3 {
			t.Fatalf("files = %+v, want 3 failures", files)
		}
		byName := make(map[string]string)
		for _, f := range files {
			byName[filepath.Base(f.Path)] = f.Message
		}
		if msg := byName["Bad.json"]; !strings.Contains(msg, "JSON syntax error at line 3") {
			t.Errorf("Bad.json message = %q", msg)
		}
		if msg := byName["Empty.toml"]; msg != "descriptor is empty" {
			t.Errorf("Empty.toml message = %q", msg)
		}
		if msg := byName["NoClass.yaml"]; !strings.Contains(msg, "no class") {
			t.Errorf("NoClass.yaml message = %q", msg)
		}
	})
}

func TestDescriptorSyntaxCheck_validateFile(t *testing.T) {
	c := NewDescriptorSyntaxCheck(t.TempDir())

	tests := []struct {
		name     string
		filename string
		content  string
		wantMsg  string
	}{
		{name: "valid yaml", filename: "a.yaml", content: "class: Blueprint\n"},
		{name: "yaml syntax", filename: "a.yaml", content: "class: [Blueprint\n", wantMsg: "YAML syntax error"},
		{name: "yaml type", filename: "a.yml", content: "class: Blueprint\nobjects: 3\n", wantMsg: "YAML type error"},
		{name: "toml syntax", filename: "a.toml", content: "class = \n", wantMsg: "TOML syntax error at line 1"},
		{name: "json type", filename: "a.json", content: `{"class": 7}`, wantMsg: "JSON type error at line 1"},
		{name: "json unknown field", filename: "a.json", content: `{"class": "Blueprint", "extra": 1}`, wantMsg: "invalid descriptor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeContent(t, t.TempDir(), tt.filename, tt.content)
			format, _ := host.FormatOf(p)
			fr := c.validateFile(p, format)

			if tt.wantMsg == "" {
				if fr.Status != "pass" {
					t.Errorf("Status = %q (%s), want pass", fr.Status, fr.Message)
				}
				return
			}
			if fr.Status != "error" {
				t.Fatalf("Status = %q, want error", fr.Status)
			}
			if !strings.Contains(fr.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want it to contain %q", fr.Message, tt.wantMsg)
			}
		})
	}
}

func TestOffsetToLineCol(t *testing.T) {
	data := []byte("ab\ncd\nef")
	tests := []struct {
		offset, line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{7, 3, 2},
		{-4, 1, 1},
		{100, 3, 3},
	}
	for _, tt := range tests {
		line, col := offsetToLineCol(data, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("offsetToLineCol(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}

func TestContentPermissionCheck(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on Windows")
	}

	t.Run("clean tree", func(t *testing.T) {
		root := t.TempDir()
		writeContent(t, root, "Core/BP_Hero.yaml", "class: Blueprint\n")

		c := NewContentPermissionCheck(root)
		result := c.Run()
		if result.Status != SeverityPass {
			t.Fatalf("Status = %v, want pass: %s", result.Status, result.Message)
		}
		if c.CanFix() {
			t.Error("CanFix() = true on a clean tree")
		}
	})

	t.Run("read-only descriptor and world-writable folder", func(t *testing.T) {
		root := t.TempDir()
		file := writeContent(t, root, "Core/BP_Hero.yaml", "class: Blueprint\n")
		writeContent(t, root, "Core/notes.txt", "ignored")
		dir := filepath.Dir(file)
		if err := os.Chmod(file, 0o444); err != nil {
			t.Fatal(err)
		}
		if err := os.Chmod(dir, 0o777); err != nil {
			t.Fatal(err)
		}

		c := NewContentPermissionCheck(root)
		result := c.Run()
		if result.Status != SeverityWarning {
			t.Fatalf("Status = %v, want warning: %s", result.Status, result.Message)
		}
		if !result.Fixable || !c.CanFix() {
			t.Fatal("expected fixable issues")
		}
		if got := result.Details["issue_count"]; got != 2 {
			t.Errorf("issue_count = %v, want 2", got)
		}

		fixes := c.Fix()
		if len(fixes) != 2 {
			t.Fatalf("Fix() returned %d results, want 2", len(fixes))
		}
		for _, f := range fixes {
			if !f.Fixed {
				t.Errorf("fix for %s failed: %s", f.Path, f.Description)
			}
		}

		if info, _ := os.Stat(file); info.Mode().Perm() != 0o644 {
			t.Errorf("file mode = %04o, want 0644", info.Mode().Perm())
		}
		if info, _ := os.Stat(dir); info.Mode().Perm() != 0o775 {
			t.Errorf("dir mode = %04o, want 0775", info.Mode().Perm())
		}

		if again := c.Run(); again.Status != SeverityPass {
			t.Errorf("after fix Status = %v, want pass", again.Status)
		}
	})
}

func TestRepairedPerm(t *testing.T) {
	tests := []struct {
		perm os.FileMode
		dir  bool
		want os.FileMode
	}{
		{0o444, false, 0o644},
		{0o666, false, 0o664},
		{0o755, false, 0o755},
		{0o777, true, 0o775},
		{0o555, true, 0o755},
		{0o000, true, 0o300},
	}
	for _, tt := range tests {
		if got := repairedPerm(tt.perm, tt.dir); got != tt.want {
			t.Errorf("repairedPerm(%04o, %v) = %04o, want %04o", tt.perm, tt.dir, got, tt.want)
		}
	}
}

func TestFixResult_JSON(t *testing.T) {
	data, err := json.Marshal(FixResult{Path: "/content/a", Description: "chmod failed", Error: errors.New("permission denied")})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"error":"permission denied"`) {
		t.Errorf("json = %s", data)
	}
	data, _ = json.Marshal(FixResult{Path: "/content/a", Fixed: true})
	if strings.Contains(string(data), "error") {
		t.Errorf("json = %s, want no error field", data)
	}
}

func TestPermissionFixer_UnknownType(t *testing.T) {
	f := &PermissionFixer{}
	f.setIssues([]pathIssue{
		{Path: "/content/a", Type: "socket", Fixable: true},
		{Path: "/content/b", Type: "file", Fixable: false},
	})

	if f.CountFixable() != 1 {
		t.Errorf("CountFixable() = %d, want 1", f.CountFixable())
	}
	results := f.Fix()
	if len(results) != 1 || results[0].Fixed || results[0].Error == nil {
		t.Errorf("Fix() = %+v, want one failed result", results)
	}
}

func TestEmptyFolderCheck(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "Core/BP_Hero.yaml", "class: Blueprint\n")
	for _, d := range []string{"Old/Nested/Deeper", "Core/Unused", ".git/objects"} {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	writeContent(t, root, "Docs/readme.txt", "kept")

	c := NewEmptyFolderCheck(root)
	result := c.Run()
	if result.Status != SeverityWarning || !result.Fixable {
		t.Fatalf("Status = %v fixable=%v, want fixable warning", result.Status, result.Fixable)
	}

	folders, _ := result.Details["folders"].([]string)
	want := []string{filepath.Join(root, "Core", "Unused"), filepath.Join(root, "Old")}
	if len(folders) != len(want) {
		t.Fatalf("folders = %v, want %v", folders, want)
	}
	for i := range want {
		if folders[i] != want[i] {
			t.Errorf("folders[%d] = %q, want %q", i, folders[i], want[i])
		}
	}

	// A folder that gains a file between Run and Fix is kept.
	writeContent(t, root, "Core/Unused/M_New.yaml", "class: Material\n")

	fixes := c.Fix()
	if len(fixes) != 2 {
		t.Fatalf("Fix() returned %d results, want 2", len(fixes))
	}
	if fixes[0].Fixed || fixes[0].Description != "folder is no longer empty" {
		t.Errorf("fixes[0] = %+v, want skipped", fixes[0])
	}
	if !fixes[1].Fixed {
		t.Errorf("fixes[1] = %+v, want removed", fixes[1])
	}

	if _, err := os.Stat(filepath.Join(root, "Old")); !os.IsNotExist(err) {
		t.Errorf("Old still exists: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, ".git", "objects")); err != nil {
		t.Errorf("hidden folder removed: %v", err)
	}
	if again := c.Run(); again.Status != SeverityPass {
		t.Errorf("after fix Status = %v, want pass", again.Status)
	}
}
