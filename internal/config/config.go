package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string `validate:"required"`
	DBPath               string `validate:"required"`
	LogLevel             string `validate:"oneof=DEBUG INFO WARN WARNING ERROR"`
	CatalogPath          string // optional xlsx topic catalog; built-in catalog used when empty
	ReminderHour         int    `validate:"min=0,max=23"`
	ProvisionWorkerCount int    `validate:"min=1"`
	ProvisionQueueSize   int    `validate:"min=1"`
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sensible defaults when values are missing or invalid.
func Load() (Config, error) {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	cfg := Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:linguaflash.db"),
		LogLevel:             strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		CatalogPath:          envOr("CATALOG_PATH", ""),
		ReminderHour:         envIntOr("REMINDER_HOUR", 8),
		ProvisionWorkerCount: envIntOr("PROVISION_WORKER_COUNT", 2),
		ProvisionQueueSize:   envIntOr("PROVISION_QUEUE_SIZE", 32),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
