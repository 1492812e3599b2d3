package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}

	if cfg.Port != "8090" {
		t.Fatalf("expected default port 8090, got %q", cfg.Port)
	}
	if cfg.Mongo.Database != "emp-management" || cfg.Mongo.Collection != "employee" {
		t.Fatalf("unexpected mongo defaults: %+v", cfg.Mongo)
	}
	if cfg.Mongo.Timeout != 10*time.Second {
		t.Fatalf("unexpected mongo timeout: %s", cfg.Mongo.Timeout)
	}
	if cfg.Auth.JWTTTL != 24*time.Hour {
		t.Fatalf("unexpected jwt ttl: %s", cfg.Auth.JWTTTL)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Fatalf("unexpected bcrypt cost: %d", cfg.Auth.BcryptCost)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
		"PORT":       "9000",
		"ENV":        "production",
		"JWT_TTL":    "15m",
		"REDIS_DB":   "3",
	}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}

	if cfg.Port != "9000" || cfg.Auth.JWTTTL != 15*time.Minute || cfg.Redis.DB != 3 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production env")
	}
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}
