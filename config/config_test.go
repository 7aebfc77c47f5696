package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rtrio/fitsindex/data"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration invalid: %v", err)
	}

	names := cfg.ColumnNames()
	if names[0] != "path" {
		t.Errorf("expected identity column first, got %v", names)
	}
	if len(names) != 9 {
		t.Errorf("expected 9 columns, got %v", names)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(*Config){
		"empty mapping":     func(c *Config) { c.Columns = nil },
		"missing dsn":       func(c *Config) { c.DSN = "" },
		"unknown store":     func(c *Config) { c.Store = "oracle" },
		"reserved name":     func(c *Config) { c.Columns[0].Name = "path" },
		"bad identifier":    func(c *Config) { c.Columns[0].Name = "image-type" },
		"duplicate name":    func(c *Config) { c.Columns[1].Name = c.Columns[0].Name },
		"text without size": func(c *Config) { c.Columns[0].Length = 0 },
		"missing keyword":   func(c *Config) { c.Columns[0].Key = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, data.ErrConfig) {
				t.Errorf("expected ErrConfig, got %v", err)
			}
		})
	}
}

func TestLoad_JSON(t *testing.T) {
	raw := `{
		"basedir": "/data/exposures",
		"dsn": "/data/index.db",
		"columns": [
			{"key": "IMAGETYP", "name": "imagetype", "type": "text", "length": 8},
			{"key": "DATE-OBS", "name": "date", "type": "datetime"}
		]
	}`
	path := filepath.Join(t.TempDir(), "fitsindex.json")
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BaseDir != "/data/exposures" {
		t.Errorf("basedir: got %q", cfg.BaseDir)
	}
	if len(cfg.Columns) != 2 {
		t.Fatalf("expected mapping replaced, got %d columns", len(cfg.Columns))
	}
	if cfg.Columns[1].Type != data.TypeDateTime {
		t.Errorf("date column type: got %v", cfg.Columns[1].Type)
	}
	// Store falls back to the default backend
	if cfg.Store != "sqlite" {
		t.Errorf("store: got %q", cfg.Store)
	}
}

func TestLoad_BadType(t *testing.T) {
	raw := `{"dsn": "x.db", "columns": [{"key": "A", "name": "a", "type": "blob"}]}`
	path := filepath.Join(t.TempDir(), "fitsindex.json")
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(path); !errors.Is(err, data.ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
}

func TestFromEnv_Overlay(t *testing.T) {
	t.Setenv(EnvDSN, "/tmp/env.db")
	t.Setenv(EnvBaseDir, "/tmp/exposures")

	cfg := Default().FromEnv()
	if cfg.DSN != "/tmp/env.db" {
		t.Errorf("dsn: got %q", cfg.DSN)
	}
	if cfg.BaseDir != "/tmp/exposures" {
		t.Errorf("basedir: got %q", cfg.BaseDir)
	}
	if cfg.Store != "sqlite" {
		t.Errorf("store: expected untouched default, got %q", cfg.Store)
	}
}
