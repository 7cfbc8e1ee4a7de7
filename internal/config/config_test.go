package config

import (
	"testing"
	"time"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("OWNER_NUMBER", "")
	t.Setenv("GATEWAY_URL", "")
	t.Setenv("MODEL_NAME", "")
	t.Setenv("USERS_FILE", "")
	t.Setenv("USER_STORE", "")
	t.Setenv("SWEEP_INTERVAL", "")
	t.Setenv("BACKUP_INTERVAL", "")

	cfg := NewConfig()

	if cfg.GetServerPort() != "8080" {
		t.Fatalf("expected default server port 8080, got %s", cfg.GetServerPort())
	}
	if cfg.GetLogLevel() != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.GetLogLevel())
	}
	if cfg.GetOwnerNumber() != "" {
		t.Fatalf("expected default owner number empty, got %s", cfg.GetOwnerNumber())
	}
	if cfg.GetGatewayURL() != "http://localhost:3000" {
		t.Fatalf("expected default gateway url, got %s", cfg.GetGatewayURL())
	}
	if cfg.GetModelName() != "gemini-1.5-flash" {
		t.Fatalf("expected default model name, got %s", cfg.GetModelName())
	}
	if cfg.GetUsersFile() != "users.json" {
		t.Fatalf("expected default users file, got %s", cfg.GetUsersFile())
	}
	if cfg.GetUserStore() != "file" {
		t.Fatalf("expected default user store file, got %s", cfg.GetUserStore())
	}
	if cfg.GetSweepInterval() != 6*time.Hour {
		t.Fatalf("expected default sweep interval 6h, got %s", cfg.GetSweepInterval())
	}
	if cfg.GetBackupInterval() != time.Hour {
		t.Fatalf("expected default backup interval 1h, got %s", cfg.GetBackupInterval())
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OWNER_NUMBER", "628123456789")
	t.Setenv("GATEWAY_URL", "http://gateway:4000")
	t.Setenv("GATEWAY_TOKEN", "test-token")
	t.Setenv("MODEL_NAME", "gemini-1.5-pro")
	t.Setenv("USER_STORE", "supabase")
	t.Setenv("SUPABASE_URL", "http://localhost:54321")
	t.Setenv("SUPABASE_ANON_KEY", "test-key")
	t.Setenv("SWEEP_INTERVAL", "30m")
	t.Setenv("BACKUP_INTERVAL", "10m")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9090" {
		t.Fatalf("expected server port 9090, got %s", cfg.GetServerPort())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Fatalf("expected log level debug, got %s", cfg.GetLogLevel())
	}
	if cfg.GetOwnerNumber() != "628123456789" {
		t.Fatalf("expected owner number 628123456789, got %s", cfg.GetOwnerNumber())
	}
	if cfg.GetGatewayURL() != "http://gateway:4000" {
		t.Fatalf("expected gateway url http://gateway:4000, got %s", cfg.GetGatewayURL())
	}
	if cfg.GetGatewayToken() != "test-token" {
		t.Fatalf("expected gateway token test-token, got %s", cfg.GetGatewayToken())
	}
	if cfg.GetModelName() != "gemini-1.5-pro" {
		t.Fatalf("expected model name gemini-1.5-pro, got %s", cfg.GetModelName())
	}
	if cfg.GetUserStore() != "supabase" {
		t.Fatalf("expected user store supabase, got %s", cfg.GetUserStore())
	}
	if cfg.GetSupabaseURL() != "http://localhost:54321" {
		t.Fatalf("expected supabase url http://localhost:54321, got %s", cfg.GetSupabaseURL())
	}
	if cfg.GetSupabaseKey() != "test-key" {
		t.Fatalf("expected supabase key test-key, got %s", cfg.GetSupabaseKey())
	}
	if cfg.GetSweepInterval() != 30*time.Minute {
		t.Fatalf("expected sweep interval 30m, got %s", cfg.GetSweepInterval())
	}
	if cfg.GetBackupInterval() != 10*time.Minute {
		t.Fatalf("expected backup interval 10m, got %s", cfg.GetBackupInterval())
	}
}

func TestNewConfig_Fallbacks(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("SWEEP_INTERVAL", "not-a-duration")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9091" {
		t.Fatalf("expected server port 9091, got %s", cfg.GetServerPort())
	}
	if cfg.GetSweepInterval() != 6*time.Hour {
		t.Fatalf("expected default sweep interval 6h, got %s", cfg.GetSweepInterval())
	}
}
