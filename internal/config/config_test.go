package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing config file must not be an error: %v", err)
	}
	if cfg.DataSource.Symbol != "NIFTY50" {
		t.Errorf("expected default symbol NIFTY50, got %s", cfg.DataSource.Symbol)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Schedule.MarketCron == "" || cfg.Schedule.SummaryCron == "" {
		t.Error("expected default cron expressions")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
	if cfg.TelegramEnabled() {
		t.Error("telegram must be disabled without credentials")
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
data_source:
  symbol: "SENSEX"
server:
  port: 9000
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SYMBOL", "NIFTYBANK")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataSource.Symbol != "NIFTYBANK" {
		t.Errorf("env override must win, got %s", cfg.DataSource.Symbol)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000 from file, got %d", cfg.Server.Port)
	}
}

func TestValidate_TelegramPair(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Telegram.BotToken = "token-only"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bot token without chat id")
	}
	cfg.Telegram.ChatID = "12345"
	if err := cfg.Validate(); err != nil {
		t.Errorf("token and chat id together must validate: %v", err)
	}
	if !cfg.TelegramEnabled() {
		t.Error("expected telegram enabled")
	}
}
