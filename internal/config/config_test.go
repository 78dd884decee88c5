package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFrom_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("expected driver %q, got %q", DriverPostgres, cfg.Database.Driver)
	}
	if got := cfg.Auth.AccessTokenTTL(); got != 3*time.Hour {
		t.Errorf("expected 3h token ttl, got %s", got)
	}
	if cfg.Bootstrap.AdminUsername != "admin" {
		t.Errorf("expected admin username 'admin', got %q", cfg.Bootstrap.AdminUsername)
	}
	if cfg.Lifecycle.Strict {
		t.Error("expected permissive lifecycle by default")
	}
}

func TestLoadFrom_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "config.yaml")
	content := `
database:
  driver: sqlite
  dsn: "file:test.db"
auth:
  issuer: yaml-issuer
  audience: yaml-audience
lifecycle:
  strict: true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("AUTH_JWT_ISSUER", "env-issuer")
	t.Setenv("APP_PORT", "9090")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("expected sqlite driver from yaml, got %q", cfg.Database.Driver)
	}
	if cfg.Auth.Issuer != "env-issuer" {
		t.Errorf("expected env issuer to win, got %q", cfg.Auth.Issuer)
	}
	if cfg.Auth.Audience != "yaml-audience" {
		t.Errorf("expected yaml audience, got %q", cfg.Auth.Audience)
	}
	if !cfg.Lifecycle.Strict {
		t.Error("expected strict lifecycle from yaml")
	}
	if cfg.App.Addr() != "0.0.0.0:9090" {
		t.Errorf("unexpected addr %q", cfg.App.Addr())
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	t.Run("driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mysql")
		_, err := LoadFrom("")
		if err == nil || !strings.Contains(err.Error(), "DB_DRIVER") {
			t.Fatalf("expected driver error, got %v", err)
		}
	})

	t.Run("redis db", func(t *testing.T) {
		t.Setenv("REDIS_DB", "one")
		if _, err := LoadFrom(""); err == nil {
			t.Fatal("expected REDIS_DB parse error")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatal("expected read error")
		}
	})
}

func TestRequestTimeout(t *testing.T) {
	if got := (AppConfig{RequestTimeoutSeconds: 0}).RequestTimeout(); got != 0 {
		t.Errorf("expected 0, got %s", got)
	}
	if got := (AppConfig{RequestTimeoutSeconds: 5}).RequestTimeout(); got != 5*time.Second {
		t.Errorf("expected 5s, got %s", got)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
