package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CacheDir != DefaultCacheDir {
		t.Errorf("CacheDir = %q, want default", cfg.CacheDir)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %q, want text", cfg.Format)
	}
}

func TestLoadFullConfig(t *testing.T) {
	root := writeConfig(t, `cache-dir: /tmp/cache
exclude:
  - "Carthage/**"
  - vendor
format: json
template: '{"n": "$name"}'
`)
	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CacheDir != "/tmp/cache" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if len(cfg.Exclude) != 2 || cfg.Exclude[0] != "Carthage/**" {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q", cfg.Format)
	}
	if !strings.Contains(cfg.Template, "$name") {
		t.Errorf("Template = %q", cfg.Template)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	root := writeConfig(t, "exclude: [docs]\n")
	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CacheDir != DefaultCacheDir {
		t.Errorf("CacheDir default lost: %q", cfg.CacheDir)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	root := writeConfig(t, "excludes: [oops]\n")
	if _, err := Load(root); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadRejectsBadFormat(t *testing.T) {
	root := writeConfig(t, "format: yaml\n")
	if _, err := Load(root); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	root := writeConfig(t, "cache-dir: [\n")
	if _, err := Load(root); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	root := writeConfig(t, "")
	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("empty config must be accepted: %v", err)
	}
	if cfg.CacheDir != DefaultCacheDir {
		t.Errorf("CacheDir = %q, want default", cfg.CacheDir)
	}
}
