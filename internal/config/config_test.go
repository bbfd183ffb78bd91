package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, "jwt:\n  secret: test-secret\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.JWT.AccessTokenExpiration != "24h" {
		t.Errorf("AccessTokenExpiration = %s, want 24h", cfg.JWT.AccessTokenExpiration)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
	}
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
jwt:
  secret: test-secret
  access_token_expiration: 2h
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
	}
	if cfg.JWT.AccessTokenExpiration != "2h" {
		t.Errorf("AccessTokenExpiration = %s, want 2h", cfg.JWT.AccessTokenExpiration)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
jwt:
  secret: file-secret
`)
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("Server.Port = %s, want env override 7070", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("JWT.Secret = %s, want env override", cfg.JWT.Secret)
	}
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: \"9090\"\n")

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig accepted a config without a JWT secret")
	}
}

func TestLoadConfigRejectsBadExpiration(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: test-secret
  access_token_expiration: tomorrow
`)

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig accepted an unparseable token expiration")
	}
}
