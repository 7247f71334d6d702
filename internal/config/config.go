package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/vbonduro/truckfest/internal/domain"
)

// Storage backends selectable with KV_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendLocal  = "local"
	BackendMemory = "memory"
)

type Config struct {
	ListenAddr       string
	KVBackend        string
	DBPath           string
	DataDir          string
	LogLevel         string
	LogFile          string
	RestockThreshold int
}

// Load reads the configuration from the environment. Variables from envFile
// are applied first without overriding ones already set; a missing envFile
// is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	threshold, err := getEnvInt("RESTOCK_THRESHOLD", domain.DefaultRestockThreshold)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ListenAddr:       getEnv("LISTEN_ADDR", ":8080"),
		KVBackend:        getEnv("KV_BACKEND", BackendSQLite),
		DBPath:           getEnv("DB_PATH", "/data/truckfest.db"),
		DataDir:          getEnv("DATA_DIR", "/data/records"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFile:          getEnv("LOG_FILE", ""),
		RestockThreshold: threshold,
	}

	switch cfg.KVBackend {
	case BackendSQLite, BackendLocal, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown KV_BACKEND %q (want sqlite, local or memory)", cfg.KVBackend)
	}
	if cfg.RestockThreshold < 0 {
		return nil, fmt.Errorf("RESTOCK_THRESHOLD must not be negative, got %d", cfg.RestockThreshold)
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val, exists := os.LookupEnv(key)
	if !exists || val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return n, nil
}
