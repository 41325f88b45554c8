package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFirstRunWritesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom on missing file: %v", err)
	}
	if cfg.Gemini.Model != DefaultModel {
		t.Errorf("model = %q, want %q", cfg.Gemini.Model, DefaultModel)
	}
	if cfg.AgendaCron != DefaultAgendaCron {
		t.Errorf("agenda cron = %q, want %q", cfg.AgendaCron, DefaultAgendaCron)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("template not written on first run: %v", err)
	}

	// The written template must itself load cleanly.
	again, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom on template: %v", err)
	}
	if again.Gemini.Model != DefaultModel {
		t.Errorf("template model = %q, want %q", again.Gemini.Model, DefaultModel)
	}
}

func TestLoadStripsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := "// comment line\n{\n  // another\n  \"gemini\": {\"model\": \"gemini-test\"}\n}\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom: %v", err)
	}
	if cfg.Gemini.Model != "gemini-test" {
		t.Errorf("model = %q, want gemini-test", cfg.Gemini.Model)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Gemini.Model != DefaultModel {
		t.Errorf("model = %q, want default", cfg.Gemini.Model)
	}
	if cfg.SchedulePath != filepath.Join(filepath.Dir(path), "schedule.json") {
		t.Errorf("schedule path = %q", cfg.SchedulePath)
	}
}

func TestLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{bad"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFrom(path); err == nil {
		t.Error("expected error for bad JSON, got nil")
	}
}
