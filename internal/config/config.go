// Package config loads the client's environment configuration. An optional
// .env file is read first; explicit environment variables win.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	devBaseURL  = "http://localhost:8080"
	prodBaseURL = "https://api.jober.app"
)

// Config is the environment configuration.
type Config struct {
	Env     string `env:"ALIMTALK_ENV,default=DEV"`
	BaseURL string `env:"ALIMTALK_BASE_URL"`
	DataDir string `env:"ALIMTALK_DATA_DIR"`
	AppName string `env:"ALIMTALK_APP_NAME,default=Alimtalk"`
}

// Load reads an optional .env file, decodes the environment, and fills in
// the environment-dependent defaults: the backend origin is selected by Env
// when not set explicitly.
func Load() (Config, error) {
	// A missing .env file is the normal case outside development.
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("[config.Load] decode environment: %w", err)
	}

	if cfg.BaseURL == "" {
		if cfg.IsDev() {
			cfg.BaseURL = devBaseURL
		} else {
			cfg.BaseURL = prodBaseURL
		}
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("[config.Load] resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".alimtalk")
	}
	return cfg, nil
}

// IsDev reports whether the client targets the development backend.
func (c Config) IsDev() bool {
	return c.Env == "DEV"
}

// SnapshotDir is where the session snapshot database lives.
func (c Config) SnapshotDir() string {
	return filepath.Join(c.DataDir, "snapshot")
}

// CookieFile is where session cookies are persisted between invocations,
// standing in for the browser's cookie store.
func (c Config) CookieFile() string {
	return filepath.Join(c.DataDir, "cookies.json")
}
