package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
default_author = "Geo Team"
default_format = "json-compact"
software = "agsi-desk"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.DefaultAuthor != "Geo Team" {
		t.Errorf("DefaultAuthor = %q, want Geo Team", cfg.DefaultAuthor)
	}
	if cfg.DefaultFormat != "json-compact" {
		t.Errorf("DefaultFormat = %q, want json-compact", cfg.DefaultFormat)
	}
	if cfg.Software != "agsi-desk" {
		t.Errorf("Software = %q, want agsi-desk", cfg.Software)
	}
}

func TestLoadConfigMissingExplicit(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("loadConfig(missing explicit path) = nil, want error")
	}
}

func TestLoadConfigDefaultsFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`default_author = "x"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.DefaultFormat != "json" {
		t.Errorf("DefaultFormat = %q, want json fallback", cfg.DefaultFormat)
	}
}

func TestLoadConfigBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`default_author = [broken`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig(bad toml) = nil, want error")
	}
}
