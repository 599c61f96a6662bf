// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds server and CLI settings.
type Config struct {
	AppEnv            string
	Port              string
	LogLevel          string
	FontDir           string
	MaxUploadMB       int
	AssetFetchTimeout time.Duration
	BatchStagger      time.Duration
	DefaultScale      int
	OutputDir         string

	// Limits on request-controlled sizes.
	MaxScale        int
	MaxExportPixels int64
	MaxQRSize       int
	// AllowRemoteAssets lets image references name http(s) URLs the
	// process fetches itself.
	AllowRemoteAssets bool
}

// Load reads the environment, applying defaults for unset keys.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		FontDir:   os.Getenv("FONT_DIR"),
		OutputDir: getEnv("OUTPUT_DIR", "out"),
	}

	var err error
	if cfg.MaxUploadMB, err = getEnvInt("MAX_UPLOAD_MB", 20); err != nil {
		return nil, err
	}
	if cfg.DefaultScale, err = getEnvInt("DEFAULT_SCALE", 4); err != nil {
		return nil, err
	}
	if cfg.AssetFetchTimeout, err = getEnvDuration("ASSET_FETCH_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.BatchStagger, err = getEnvDuration("BATCH_STAGGER", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.MaxScale, err = getEnvInt("MAX_SCALE", 8); err != nil {
		return nil, err
	}
	maxPixels, err := getEnvInt("MAX_EXPORT_PIXELS", 64<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxExportPixels = int64(maxPixels)
	if cfg.MaxQRSize, err = getEnvInt("MAX_QR_SIZE", 1024); err != nil {
		return nil, err
	}
	if cfg.AllowRemoteAssets, err = getEnvBool("ALLOW_REMOTE_ASSETS", false); err != nil {
		return nil, err
	}

	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", cfg.MaxUploadMB)
	}
	if cfg.DefaultScale < 1 {
		return nil, fmt.Errorf("DEFAULT_SCALE must be at least 1, got %d", cfg.DefaultScale)
	}
	if cfg.MaxScale < cfg.DefaultScale {
		return nil, fmt.Errorf("MAX_SCALE %d is below DEFAULT_SCALE %d", cfg.MaxScale, cfg.DefaultScale)
	}
	if cfg.MaxExportPixels <= 0 || cfg.MaxQRSize <= 0 {
		return nil, fmt.Errorf("MAX_EXPORT_PIXELS and MAX_QR_SIZE must be positive")
	}
	if cfg.BatchStagger < 0 {
		return nil, fmt.Errorf("BATCH_STAGGER must not be negative")
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.FontDir != "" {
		if st, err := os.Stat(cfg.FontDir); err != nil || !st.IsDir() {
			return nil, fmt.Errorf("FONT_DIR %q is not a directory", cfg.FontDir)
		}
	}
	return cfg, nil
}

// MaxUploadBytes is MaxUploadMB in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return i, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}
