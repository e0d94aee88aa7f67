package config

import (
	"os"
	"strings"
)

const (
	defaultDBPath = "./mitsumori.db"
	defaultPort   = "8080"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv     string
	DBPath     string
	Port       string
	Categories []string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		AppEnv: os.Getenv("APP_ENV"),
		DBPath: os.Getenv("DB_PATH"),
		Port:   os.Getenv("PORT"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	// Optional override of the catalog category set, comma separated in
	// display order. Empty means the built-in categories.
	if raw := os.Getenv("CATALOG_CATEGORIES"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cfg.Categories = append(cfg.Categories, part)
			}
		}
	}

	return cfg
}

// IsDev reports whether the app runs in a development environment, where
// migrations are applied automatically on startup.
func (c Config) IsDev() bool {
	return c.AppEnv != "production"
}
