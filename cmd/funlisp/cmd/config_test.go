package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.InternStrings || !cfg.InternSymbols {
		t.Errorf("defaults should enable interning")
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funlisp.yaml")
	content := "intern_strings: false\nhistory_file: /tmp/custom_history\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.InternStrings {
		t.Errorf("expected intern_strings to be overridden to false")
	}
	if cfg.HistoryFile != "/tmp/custom_history" {
		t.Errorf("got %q, want /tmp/custom_history", cfg.HistoryFile)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HistoryFile == "" {
		t.Errorf("expected a default history file path")
	}
}
