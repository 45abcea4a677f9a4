package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jobdeck/jobdeck/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Addr)
	}
	if cfg.DatabasePath != "jobdeck.db" {
		t.Fatalf("unexpected database path %q", cfg.DatabasePath)
	}
	if cfg.TokenDuration != 24*time.Hour {
		t.Fatalf("unexpected token duration %v", cfg.TokenDuration)
	}
	if cfg.RateLimit.RequestsPerSecond <= 0 || cfg.RateLimit.Burst <= 0 {
		t.Fatalf("expected rate limit defaults, got %+v", cfg.RateLimit)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	os.Setenv("JOBDECK_ADDR", ":9999")
	defer os.Unsetenv("JOBDECK_ADDR")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("env override ignored, addr %q", cfg.Addr)
	}
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("addr: \":7070\"\njwt_secret: filetestsecret\ntoken_duration: 2h\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("yaml addr not applied: %q", cfg.Addr)
	}
	if cfg.JWTSecret != "filetestsecret" {
		t.Fatalf("yaml secret not applied")
	}
	if cfg.TokenDuration != 2*time.Hour {
		t.Fatalf("yaml token duration not applied: %v", cfg.TokenDuration)
	}
}

func TestValidate_InsecureJWT_FailsWhenNotDevelopment(t *testing.T) {
	os.Setenv("JOBDECK_ENV", "production")
	defer os.Unsetenv("JOBDECK_ENV")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for insecure JWT in non-development env")
	}
}

func TestValidate_InsecureJWT_AllowsDevelopment(t *testing.T) {
	os.Setenv("JOBDECK_ENV", "development")
	defer os.Unsetenv("JOBDECK_ENV")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected Validate to succeed in development env, got: %v", err)
	}
}

func TestValidate_RejectsEmptyFields(t *testing.T) {
	cfg := &config.Config{Addr: "", JWTSecret: "strongsecret", DatabasePath: "x.db", TokenDuration: time.Hour}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected empty addr to fail validation")
	}

	cfg = &config.Config{Addr: ":8080", JWTSecret: "strongsecret", DatabasePath: "", TokenDuration: time.Hour}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected empty database path to fail validation")
	}

	cfg = &config.Config{Addr: ":8080", JWTSecret: "strongsecret", DatabasePath: "x.db"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected zero token duration to fail validation")
	}
}
