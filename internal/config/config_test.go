package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	parsed, err := Parse(defaultYAML)
	if err != nil {
		t.Fatalf("Parse(defaultYAML) error = %v", err)
	}
	d := DefaultConfig()

	if !slices.Equal(parsed.Phrases, d.Phrases) {
		t.Errorf("Phrases = %v, expected %v", parsed.Phrases, d.Phrases)
	}
	if parsed.Submit != d.Submit {
		t.Errorf("Submit = %+v, expected %+v", parsed.Submit, d.Submit)
	}
	if parsed.TUI != d.TUI || parsed.Server != d.Server {
		t.Error("embedded tui/server sections differ from DefaultConfig()")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexfall.yaml")
	content := "seed_index: 2\nphrase_score: true\nsubmit:\n  sink: sqlite\ntui:\n  tick_rate: 0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SeedIndex != 2 || !cfg.PhraseScore || cfg.Submit.Sink != "sqlite" {
		t.Errorf("Load() = %+v", cfg)
	}
	// Omitted keys keep defaults, zero values are repaired.
	if cfg.Submit.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, expected 30", cfg.Submit.TimeoutSeconds)
	}
	if cfg.TUI.TickRate != 60 {
		t.Errorf("TickRate = %d, expected 60", cfg.TUI.TickRate)
	}
	if len(cfg.Phrases) != 5 {
		t.Errorf("Phrases = %v, expected defaults", cfg.Phrases)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of missing file expected error")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("seed_index: [oops"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of invalid YAML expected error")
	}
}

func TestLoadTokenFromEnv(t *testing.T) {
	t.Setenv(EnvAPIToken, "secret")
	path := filepath.Join(t.TempDir(), "hexfall.yaml")
	if err := os.WriteFile(path, []byte("submit:\n  api_token: fromfile\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Submit.APIToken != "secret" {
		t.Errorf("APIToken = %q, expected value from %s", cfg.Submit.APIToken, EnvAPIToken)
	}
}
