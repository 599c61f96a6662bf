package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "APP_ENV", "LOG_LEVEL", "FONT_DIR", "MAX_UPLOAD_MB", "ASSET_FETCH_TIMEOUT", "BATCH_STAGGER", "DEFAULT_SCALE", "OUTPUT_DIR",
		"MAX_SCALE", "MAX_EXPORT_PIXELS", "MAX_QR_SIZE", "ALLOW_REMOTE_ASSETS"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Addr() != ":8080" || cfg.DefaultScale != 4 || cfg.BatchStagger != 500*time.Millisecond {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.MaxScale != 8 || cfg.MaxExportPixels != 64<<20 || cfg.MaxQRSize != 1024 || cfg.AllowRemoteAssets {
		t.Fatalf("unexpected limit defaults %+v", cfg)
	}
	if cfg.MaxUploadBytes() != 20<<20 {
		t.Fatalf("MaxUploadBytes mismatch: %d", cfg.MaxUploadBytes())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_SCALE", "2")
	t.Setenv("ASSET_FETCH_TIMEOUT", "3s")
	t.Setenv("FONT_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("ALLOW_REMOTE_ASSETS", "true")
	t.Setenv("MAX_QR_SIZE", "512")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "9090" || cfg.DefaultScale != 2 || cfg.AssetFetchTimeout != 3*time.Second || !cfg.AllowRemoteAssets || cfg.MaxQRSize != 512 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct{ key, value string }{
		{"DEFAULT_SCALE", "zero"},
		{"DEFAULT_SCALE", "0"},
		{"MAX_UPLOAD_MB", "-1"},
		{"BATCH_STAGGER", "soon"},
		{"LOG_LEVEL", "loud"},
		{"FONT_DIR", "/definitely/not/here"},
		{"MAX_SCALE", "2"},
		{"MAX_QR_SIZE", "0"},
		{"MAX_EXPORT_PIXELS", "-5"},
		{"ALLOW_REMOTE_ASSETS", "perhaps"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel("DEBUG"); err != nil || lvl != zerolog.DebugLevel {
		t.Fatalf("got %v, %v", lvl, err)
	}
	if NewLogger("production", "error").GetLevel() != zerolog.ErrorLevel {
		t.Fatalf("logger level not applied")
	}
}
