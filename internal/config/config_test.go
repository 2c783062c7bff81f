package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: test-secret
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.DBName != "profrate" {
		t.Errorf("default dbname = %q", cfg.Database.DBName)
	}
	if cfg.JWT.AccessTokenExpiration != "1h" {
		t.Errorf("default access token expiration = %q", cfg.JWT.AccessTokenExpiration)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: test-secret
server:
  port: "9000"
`)

	t.Setenv("SERVER_PORT", "7777")
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "7777" {
		t.Errorf("env override lost: port = %q, want 7777", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("env override lost: host = %q", cfg.Database.Host)
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9000"
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error without a JWT secret")
	}
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: test-secret
  access_token_expiration: "soon"
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for an unparseable duration")
	}
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.Password = "pw"

	want := "postgres://postgres:pw@localhost:5432/profrate?sslmode=disable"
	if got := cfg.GetPostgresConnectionString(); got != want {
		t.Errorf("connection string = %q, want %q", got, want)
	}
}
