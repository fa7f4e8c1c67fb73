// Package config provides centralized configuration management.
// All REPDEC_* environment lookups live here instead of being scattered
// across the CLI and server code.
package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Env holds all repdec environment variables.
type Env struct {
	// Addr is the HTTP listen address (REPDEC_ADDR)
	Addr string

	// MaxUploadBytes caps the accepted replay upload size (REPDEC_MAX_UPLOAD)
	MaxUploadBytes int64

	// Workers is the batch decode parallelism (REPDEC_WORKERS)
	Workers int

	// DBPath is the decode-history sqlite file (REPDEC_DB)
	DBPath string
}

const (
	defaultAddr      = ":8710"
	defaultMaxUpload = 16 << 20
	defaultWorkers   = 4
	defaultDBPath    = "repdec.db"
)

var (
	env     *Env
	envOnce sync.Once
)

// LoadDotEnv loads a .env file into the process environment before the
// singleton is built. Missing files are not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// Get returns the singleton environment configuration.
// Thread-safe, loads once on first call.
func Get() *Env {
	envOnce.Do(func() {
		env = &Env{
			Addr:           getEnvDefault("REPDEC_ADDR", defaultAddr),
			MaxUploadBytes: getEnvInt64("REPDEC_MAX_UPLOAD", defaultMaxUpload),
			Workers:        getEnvInt("REPDEC_WORKERS", defaultWorkers),
			DBPath:         getEnvDefault("REPDEC_DB", defaultDBPath),
		}
		if env.Workers < 1 {
			env.Workers = 1
		}
	})
	return env
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
