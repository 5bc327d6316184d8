package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Name != "marketrate" {
		t.Errorf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Database.SSLMode != "disable" {
		t.Errorf("expected sslmode disable, got %q", cfg.Database.SSLMode)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`port: "9090"
jwt_secret: file-secret
database:
  host: db.internal
  port: "5433"
  user: svc
  name: marketrate_prod
  sslmode: require
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.JWTSecret != "file-secret" {
		t.Errorf("expected secret from file, got %q", cfg.JWTSecret)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.SSLMode != "require" {
		t.Errorf("unexpected database config: %+v", cfg.Database)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: \"9090\"\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("PORT", "7070")
	t.Setenv("DB_PASSWORD", "env-secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("expected env to win over file, got %q", cfg.Port)
	}
	if cfg.Database.Password != "env-secret" {
		t.Errorf("expected env password, got %q", cfg.Database.Password)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestDsn(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: "5432", User: "postgres",
		Password: "pw", Name: "marketrate", SSLMode: "disable",
	}
	want := "host=localhost user=postgres password=pw dbname=marketrate port=5432 sslmode=disable"
	if got := d.Dsn(); got != want {
		t.Errorf("Dsn() = %q, want %q", got, want)
	}
}
