// Package config carries the static configuration surface of the
// index: backing store location, exposure base directory and the
// header keyword mapping. A Config is constructed once and passed in
// explicitly; there is no process-wide state.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rtrio/fitsindex/data"
)

type Config struct {
	// Directory the indexed paths are relative to
	BaseDir string `json:"basedir"`
	// Backing store backend, "sqlite" (default) or "postgres"
	Store string `json:"store"`
	// Store file path (sqlite) or connection string (postgres)
	DSN string `json:"dsn"`
	// Header keyword mapping, in table column order
	Columns []data.Column `json:"columns"`
}

// Default returns the stock exposure mapping used at the telescope.
func Default() *Config {
	return &Config{
		BaseDir: ".",
		Store:   "sqlite",
		DSN:     "fitsindex.db",
		Columns: []data.Column{
			{Key: "IMAGETYP", Name: "imagetype", Type: data.TypeText, Length: 8},
			{Key: "EXPTIME", Name: "exptime", Type: data.TypeFloat},
			{Key: "PROJECT", Name: "project", Type: data.TypeText, Length: 16},
			{Key: "OBJECT", Name: "object", Type: data.TypeText, Length: 32},
			{Key: "SLIT", Name: "slit", Type: data.TypeInt},
			{Key: "I2POS", Name: "i2pos", Type: data.TypeInt},
			{Key: "IODID", Name: "iodid", Type: data.TypeInt},
			{Key: "DATE-OBS", Name: "date", Type: data.TypeDateTime},
		},
	}
}

// Load reads a JSON configuration file over the defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", data.ErrConfig, err)
	}

	cfg := Default()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", data.ErrConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces the mapping invariants before any store is opened.
func (c *Config) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("%w: missing store DSN", data.ErrConfig)
	}
	switch c.Store {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: unknown store backend '%s'", data.ErrConfig, c.Store)
	}
	return data.ValidateColumns(c.Columns)
}

// ColumnNames returns the full valid column set, identity first.
func (c *Config) ColumnNames() []string {
	names := make([]string, 0, len(c.Columns)+1)
	names = append(names, data.PathColumn)
	for _, col := range c.Columns {
		names = append(names, col.Name)
	}
	return names
}
