package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_SQLiteDefaults(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}
	if !cfg.DB.IsSQLite() {
		t.Fatalf("expected sqlite default driver, got %q", cfg.DB.Driver)
	}
	if cfg.DB.SQLitePath != "agriquote.db" {
		t.Fatalf("unexpected sqlite path %q", cfg.DB.SQLitePath)
	}
	if cfg.Locks.UsesRedis() {
		t.Fatalf("expected local locks by default")
	}
	if cfg.Advisor.Timeout != 15*time.Second {
		t.Fatalf("expected advisor timeout 15s, got %v", cfg.Advisor.Timeout)
	}
	if cfg.JWT.ExpirationMinutes != 1440 {
		t.Fatalf("expected default jwt expiry, got %d", cfg.JWT.ExpirationMinutes)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_PostgresLegacyDSN(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDBDriver, "postgres")
	t.Setenv(EnvDBHost, "db.internal")
	t.Setenv(EnvDBUser, "agri")
	t.Setenv(EnvDBName, "agriquote")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	want := "postgres://agri@db.internal:5432/agriquote?sslmode=disable"
	if cfg.DB.DSN != want {
		t.Fatalf("expected dsn %q, got %q", want, cfg.DB.DSN)
	}
}

func TestLoad_PostgresWithoutDSNFails(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDBDriver, "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing postgres settings to fail")
	}
}

func TestLoad_RedisLocksNeedRedis(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvLockBackend, "redis")

	if _, err := Load(); err == nil {
		t.Fatal("expected redis lock backend without redis url to fail")
	}

	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !cfg.Locks.UsesRedis() {
		t.Fatalf("expected redis locks")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvJWTSecret, "secret")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
