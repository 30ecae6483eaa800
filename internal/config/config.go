package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	DBPath    string
	Env       string
	UndoDepth int
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by main) > default.
func Load() Config {
	cfg := Config{}
	cfg.DBPath = getEnv("BOOKKEEPING_DB", "mybookkeeping.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.UndoDepth = parseInt("UNDO_DEPTH", 1)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			log.Printf("invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}
