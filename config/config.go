package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath string
	LogLevel     string // debug, info, warn, error
	LogFormat    string // console, json
	Debug        bool
}

func Load() *Config {
	_ = godotenv.Load() // ignore error if no .env

	cfg := &Config{
		DatabasePath: envOr("DATABASE_PATH", "./notes.db"),
		LogLevel:     strings.ToLower(envOr("LOG_LEVEL", "info")),
		LogFormat:    strings.ToLower(envOr("LOG_FORMAT", "console")),
		Debug:        os.Getenv("DEBUG") != "",
	}
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
