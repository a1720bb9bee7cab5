package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/jobs?sslmode=disable")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CheckInterval != 60*time.Minute {
		t.Errorf("CheckInterval = %v, want 60m", cfg.CheckInterval)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %v, want 15s", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.GroupChatID != 0 {
		t.Errorf("GroupChatID = %d, want 0", cfg.GroupChatID)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/jobs")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing TELEGRAM_TOKEN")
	}
}

func TestLoad_MissingDSN(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("POSTGRES_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing POSTGRES_DSN")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("CHECK_INTERVAL_MINUTES", "15")
	t.Setenv("ADMIN_ID", "99")
	t.Setenv("GROUP_CHAT_ID", "-1001234567890")
	t.Setenv("JOOBLE_API_KEY", "jk")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CheckInterval != 15*time.Minute {
		t.Errorf("CheckInterval = %v, want 15m", cfg.CheckInterval)
	}
	if cfg.AdminID != 99 {
		t.Errorf("AdminID = %d, want 99", cfg.AdminID)
	}
	if cfg.GroupChatID != -1001234567890 {
		t.Errorf("GroupChatID = %d", cfg.GroupChatID)
	}
	if cfg.JoobleAPIKey != "jk" {
		t.Errorf("JoobleAPIKey = %q", cfg.JoobleAPIKey)
	}
}

func TestLoad_BadInterval(t *testing.T) {
	setRequired(t)
	t.Setenv("CHECK_INTERVAL_MINUTES", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric interval")
	}
}

func TestValidate_IntervalTooSmall(t *testing.T) {
	setRequired(t)
	t.Setenv("CHECK_INTERVAL_MINUTES", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate to reject sub-minute interval")
	}
}
