package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != 5002 {
		t.Fatalf("default port want=5002 got=%d", cfg.Server.Port)
	}
	if cfg.Upload.MaxSizeMB != 16 {
		t.Fatalf("default max upload want=16 got=%d", cfg.Upload.MaxSizeMB)
	}
	if cfg.Excel.ProjectSheet != "Project Table" || cfg.Excel.TableName != "Table1" {
		t.Fatalf("unexpected excel defaults: %+v", cfg.Excel)
	}
	if cfg.Excel.BaseYear != 2024 || cfg.Excel.SkipRows != 2 {
		t.Fatalf("unexpected excel defaults: %+v", cfg.Excel)
	}
	if cfg.Chat.TimeoutSeconds != 60 {
		t.Fatalf("default chat timeout want=60 got=%d", cfg.Chat.TimeoutSeconds)
	}
}

func TestChatTimeout(t *testing.T) {
	c := ChatConfig{TimeoutSeconds: 30}
	if got := c.Timeout(); got != 30*time.Second {
		t.Fatalf("Timeout want=30s got=%v", got)
	}
}

func TestIsPortSpecifiedInToml(t *testing.T) {
	if !isPortSpecifiedInToml([]byte("[server]\nport = 8080\n")) {
		t.Fatalf("port should be detected")
	}
	if isPortSpecifiedInToml([]byte("[server]\ndev_mode = true\n")) {
		t.Fatalf("port should not be detected")
	}
	if isPortSpecifiedInToml([]byte("not toml at all [")) {
		t.Fatalf("invalid toml should not be detected")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CHAT_WEBHOOK_URL", "https://example.com/hook")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Insight.APIKey != "sk-test" {
		t.Fatalf("APIKey not injected: %q", cfg.Insight.APIKey)
	}
	if cfg.Chat.WebhookURL != "https://example.com/hook" {
		t.Fatalf("WebhookURL not injected: %q", cfg.Chat.WebhookURL)
	}
}
