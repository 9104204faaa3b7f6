package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":3000" {
		t.Fatalf("addr=%q, want :3000", cfg.Addr)
	}
	if cfg.TokenTTL != 168*time.Hour {
		t.Fatalf("ttl=%v, want 168h", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("bcrypt cost=%d, want 10", cfg.BcryptCost)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WARPATH_ADDR", ":9999")
	t.Setenv("WARPATH_JWT_SECRET", "s3cret")
	t.Setenv("WARPATH_TOKEN_TTL", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("addr=%q, want :9999", cfg.Addr)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Fatalf("secret=%q", cfg.JWTSecret)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("ttl=%v, want 1h", cfg.TokenTTL)
	}
	if err := cfg.ValidateServe(); err != nil {
		t.Fatalf("ValidateServe: %v", err)
	}
}

func TestValidateServeRequiresSecret(t *testing.T) {
	cfg := Config{TokenTTL: time.Hour}
	if err := cfg.ValidateServe(); err == nil {
		t.Fatalf("expected error without secret")
	}
}
