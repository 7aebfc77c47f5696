package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables overlaying the file configuration.
const (
	EnvDSN     = "FITSINDEX_DSN"
	EnvBaseDir = "FITSINDEX_BASEDIR"
	EnvStore   = "FITSINDEX_STORE"
)

// FromEnv overlays the configuration with FITSINDEX_* environment
// variables, loading a .env file first when one is present.
func (c *Config) FromEnv() *Config {
	// A missing .env file is not an error
	_ = godotenv.Load()

	if v := os.Getenv(EnvDSN); v != "" {
		c.DSN = v
	}
	if v := os.Getenv(EnvBaseDir); v != "" {
		c.BaseDir = v
	}
	if v := os.Getenv(EnvStore); v != "" {
		c.Store = v
	}

	return c
}
