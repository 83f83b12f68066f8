package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.System.Workdir == "" || cfg.System.Cashier == "" {
		t.Errorf("defaults not filled: %+v", cfg.System)
	}

	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logger.Mode != "development" {
		t.Errorf("missing file should yield defaults, got mode %q", cfg.Logger.Mode)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tillpos.yml")
	body := `
system:
  workdir: /tmp/till
  cashier: Dana Cruz
logger:
  mode: production
  file_enable: true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.System.Workdir != "/tmp/till" {
		t.Errorf("workdir = %q", cfg.System.Workdir)
	}
	if cfg.System.Cashier != "Dana Cruz" {
		t.Errorf("cashier = %q", cfg.System.Cashier)
	}
	if cfg.System.Location != "Local" {
		t.Errorf("location default not applied: %q", cfg.System.Location)
	}
	if cfg.Logger.Filename == "" {
		t.Error("file logging enabled but no filename derived")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("system: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed YAML accepted")
	}
}
