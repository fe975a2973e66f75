package layout

import (
	"os"
	"path/filepath"
	"testing"
)

func mkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	mkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDetect_SourceRootOverride(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, filepath.Join(root, "custom"))

	l, err := Detect(root, "custom")
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	want := filepath.Join(root, "custom")
	if l.SourceRoot != want {
		t.Errorf("SourceRoot = %q, want %q", l.SourceRoot, want)
	}
}

func TestDetect_PyprojectPackageDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pyproject.toml"), `[build-system]
requires = ["setuptools"]

[tool.setuptools]
package-dir = {"" = "lib"}
`)
	mkdirAll(t, filepath.Join(root, "lib"))

	l, err := Detect(root, "")
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	want := filepath.Join(root, "lib")
	if l.SourceRoot != want {
		t.Errorf("SourceRoot = %q, want %q", l.SourceRoot, want)
	}
}

func TestDetect_SrcLayout(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "pkg", "__init__.py"), "")
	mkdirAll(t, filepath.Join(root, "scripts"))

	l, err := Detect(root, "")
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	wantSrc := filepath.Join(root, "src")
	if l.SourceRoot != wantSrc {
		t.Errorf("SourceRoot = %q, want %q", l.SourceRoot, wantSrc)
	}

	found := false
	for _, r := range l.ScriptRoots {
		if r == filepath.Join(root, "scripts") {
			found = true
		}
	}
	if !found {
		t.Errorf("ScriptRoots = %v, want to include scripts/", l.ScriptRoots)
	}
}

func TestDetect_LibPythonLayout(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib", "python", "pkg.py"), "")

	l, err := Detect(root, "")
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	want := filepath.Join(root, "lib", "python")
	if l.SourceRoot != want {
		t.Errorf("SourceRoot = %q, want %q", l.SourceRoot, want)
	}
}

func TestDetect_FlatLayout(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pkg.py"), "")

	l, err := Detect(root, "")
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if l.SourceRoot != root {
		t.Errorf("SourceRoot = %q, want %q (flat layout)", l.SourceRoot, root)
	}
	if len(l.ScriptRoots) != 0 {
		t.Errorf("ScriptRoots = %v, want empty for flat layout", l.ScriptRoots)
	}
}

func TestDetect_BadInput(t *testing.T) {
	if _, err := Detect(filepath.Join(t.TempDir(), "does-not-exist"), ""); err == nil {
		t.Fatal("expected error for non-existent path")
	}
}

func TestDetect_ScriptRootsExcludeVenv(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "pkg", "__init__.py"), "")
	mkdirAll(t, filepath.Join(root, "venv"))
	mkdirAll(t, filepath.Join(root, ".git"))
	mkdirAll(t, filepath.Join(root, "scripts"))

	l, err := Detect(root, "")
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	for _, r := range l.ScriptRoots {
		if filepath.Base(r) == "venv" || filepath.Base(r) == ".git" {
			t.Errorf("ScriptRoots = %v, should exclude venv/.git", l.ScriptRoots)
		}
	}
}
