// ABOUTME: Configuration loader for the shopctl client
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultAPIURL = "https://api-ecom.duthanhduoc.com/"

type Config struct {
	APIURL    string        // base URL of the storefront API
	Timeout   time.Duration // per-request timeout
	ConfigDir string        // where session state and debug logs live
	Debug     bool          // enable debug log file
	CacheTTL  time.Duration // product/category cache lifetime
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored but optional.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:    ensureTrailingSlash(getEnv("SHOPCTL_API_URL", defaultAPIURL)),
		Timeout:   time.Duration(getEnvInt("SHOPCTL_TIMEOUT", 10)) * time.Second,
		ConfigDir: getEnv("SHOPCTL_CONFIG_DIR", DefaultConfigDir()),
		Debug:     getEnvBool("SHOPCTL_DEBUG", false),
		CacheTTL:  time.Duration(getEnvInt("SHOPCTL_CACHE_TTL", 300)) * time.Second,
	}

	return cfg, nil
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "shopctl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "shopctl")
}

func ensureTrailingSlash(u string) string {
	if u == "" {
		return u
	}
	return strings.TrimRight(u, "/") + "/"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
