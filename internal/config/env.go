// Package config provides centralized configuration management.
// Keeps os.Getenv calls in one place instead of scattering them.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// AicostEnv holds all aicost environment variables.
type AicostEnv struct {
	// DataDir is where the catalog database lives (AICOST_DATA_DIR)
	DataDir string

	// BaseURL is the base for generated share URLs (AICOST_BASE_URL)
	BaseURL string

	// State is an initial share token or URL to hydrate from (AICOST_STATE)
	State string

	// FetchTimeout bounds catalog queries (AICOST_FETCH_TIMEOUT, seconds)
	FetchTimeout time.Duration

	// NoColor disables colored output (AICOST_NO_COLOR)
	NoColor bool

	// Debug enables debug-level logging (AICOST_DEBUG)
	Debug bool
}

var (
	env     *AicostEnv
	envOnce sync.Once
)

// Env returns the singleton environment configuration.
// Thread-safe, loads once on first call.
func Env() *AicostEnv {
	envOnce.Do(func() {
		env = &AicostEnv{
			DataDir:      getEnvDefault("AICOST_DATA_DIR", defaultDataDir()),
			BaseURL:      getEnvDefault("AICOST_BASE_URL", "https://aicost.dev/compare"),
			State:        os.Getenv("AICOST_STATE"),
			FetchTimeout: getEnvSeconds("AICOST_FETCH_TIMEOUT", 10*time.Second),
			NoColor:      os.Getenv("AICOST_NO_COLOR") != "",
			Debug:        os.Getenv("AICOST_DEBUG") != "",
		}
	})
	return env
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".aicost")
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
