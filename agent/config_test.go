package agent

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfigurationDefaults(t *testing.T) {
	t.Setenv("USER_ID", "")
	t.Setenv("MODEL", "")
	cfg := NewConfiguration(nil)
	if cfg.UserID != "default" {
		t.Errorf("UserID = %q, want default", cfg.UserID)
	}
	if cfg.Model != "openai/gpt-4o-mini" {
		t.Errorf("Model = %q, want openai/gpt-4o-mini", cfg.Model)
	}
	if cfg.SystemPrompt != SystemPrompt {
		t.Error("SystemPrompt does not match the default template")
	}
}

func TestNewConfigurationOverrides(t *testing.T) {
	t.Setenv("USER_ID", "")
	t.Setenv("MODEL", "")
	cfg := NewConfiguration(map[string]string{
		"user_id": "alice",
		"model":   "anthropic/claude-sonnet-4-20250514",
	})
	if cfg.UserID != "alice" {
		t.Errorf("UserID = %q, want alice", cfg.UserID)
	}
	if cfg.Model != "anthropic/claude-sonnet-4-20250514" {
		t.Errorf("Model = %q, want the override", cfg.Model)
	}
	// Untouched fields keep defaults.
	if cfg.TodoPrompt != TodoPrompt {
		t.Error("TodoPrompt should keep the default")
	}
}

func TestNewConfigurationEnvWins(t *testing.T) {
	t.Setenv("USER_ID", "from-env")
	t.Setenv("MODEL", "")

	cfg := NewConfiguration(map[string]string{
		"user_id": "from-overrides",
		"model":   "openai/gpt-4o",
	})
	if cfg.UserID != "from-env" {
		t.Errorf("UserID = %q, want from-env", cfg.UserID)
	}
	// Empty env falls through to the override.
	if cfg.Model != "openai/gpt-4o" {
		t.Errorf("Model = %q, want from-overrides value", cfg.Model)
	}
}

func TestLoadConfigurationFile(t *testing.T) {
	t.Setenv("USER_ID", "")
	t.Setenv("MODEL", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("user_id: bob\nmodel: anthropic/claude-sonnet-4-20250514\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigurationFile(path)
	if err != nil {
		t.Fatalf("LoadConfigurationFile: %v", err)
	}
	if cfg.UserID != "bob" {
		t.Errorf("UserID = %q, want bob", cfg.UserID)
	}
	if cfg.SystemPrompt != SystemPrompt {
		t.Error("unset file fields should keep defaults")
	}
}

func TestLoadConfigurationFileMissing(t *testing.T) {
	if _, err := LoadConfigurationFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for a missing config file")
	}
}
