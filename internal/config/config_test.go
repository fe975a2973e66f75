package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidYml(t *testing.T) {
	tmpDir := t.TempDir()

	content := `version: 1
default_format: mermaid
exclude_scripts:
  - "*_gen.py"
include_orphans: true
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".pyimportsrc.yml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir, "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.DefaultFormat != "mermaid" {
		t.Errorf("DefaultFormat = %q, want mermaid", cfg.DefaultFormat)
	}
	if len(cfg.ExcludeScripts) != 1 || cfg.ExcludeScripts[0] != "*_gen.py" {
		t.Errorf("ExcludeScripts = %v, want [*_gen.py]", cfg.ExcludeScripts)
	}
	if !cfg.IncludeOrphans {
		t.Error("IncludeOrphans = false, want true")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir, "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config for missing file, got %+v", cfg)
	}
}

func TestLoad_InvalidFormat(t *testing.T) {
	tmpDir := t.TempDir()

	content := `version: 1
default_format: svg
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".pyimportsrc.yml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(tmpDir, ""); err == nil {
		t.Fatal("expected error for unknown default_format")
	}
}

func TestLoad_InvalidVersion(t *testing.T) {
	tmpDir := t.TempDir()

	content := "version: 99\n"
	if err := os.WriteFile(filepath.Join(tmpDir, ".pyimportsrc.yml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(tmpDir, ""); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}

func TestLoad_NegativeMaxRank(t *testing.T) {
	tmpDir := t.TempDir()

	content := "version: 1\nmax_rank: -1\n"
	if err := os.WriteFile(filepath.Join(tmpDir, ".pyimportsrc.yml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(tmpDir, ""); err == nil {
		t.Fatal("expected error for negative max_rank")
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	tmpDir := t.TempDir()

	content := "version: 1\ndefault_format: list\n"
	customPath := filepath.Join(tmpDir, "custom-config.yml")
	if err := os.WriteFile(customPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir, customPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DefaultFormat != "list" {
		t.Errorf("DefaultFormat = %q, want list", cfg.DefaultFormat)
	}
}

func TestLoad_YamlExtension(t *testing.T) {
	tmpDir := t.TempDir()

	content := "version: 1\ndefault_format: dot\n"
	if err := os.WriteFile(filepath.Join(tmpDir, ".pyimportsrc.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir, "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config for .pyimportsrc.yaml")
	}
	if cfg.DefaultFormat != "dot" {
		t.Errorf("DefaultFormat = %q, want dot", cfg.DefaultFormat)
	}
}
