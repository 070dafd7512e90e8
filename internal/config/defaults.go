package config

import (
	_ "embed"
)

//go:embed defaults/hexfall.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		SeedIndex:    0,
		Phrases:      []string{"ei!", "r'lyeh", "yuggoth", "ia! ia!", "necronomicon"},
		PhraseScore:  false,
		Strict:       true,
		DatabasePath: "~/.hexfall/hexfall.db",
		Submit: SubmitConfig{
			Sink:           "stdout",
			Path:           "solutions.json",
			URL:            "https://davar.icfpcontest.org/teams/%d/solutions",
			TimeoutSeconds: 30,
		},
		TUI: TUIConfig{
			TickRate:     60,
			PlaybackRate: 20,
			Upcoming:     3,
		},
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               2222,
			HostKeyPath:        ".ssh/hexfall_ed25519",
			IdleTimeoutMinutes: 30,
		},
	}
}

// applyDefaults fills zero values that would make the config unusable.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Submit.Sink == "" {
		c.Submit.Sink = d.Submit.Sink
	}
	if c.Submit.TimeoutSeconds <= 0 {
		c.Submit.TimeoutSeconds = d.Submit.TimeoutSeconds
	}
	if c.TUI.TickRate <= 0 {
		c.TUI.TickRate = d.TUI.TickRate
	}
	if c.TUI.PlaybackRate <= 0 {
		c.TUI.PlaybackRate = d.TUI.PlaybackRate
	}
	if c.TUI.Upcoming < 0 {
		c.TUI.Upcoming = 0
	}
	if c.Server.Port <= 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.IdleTimeoutMinutes <= 0 {
		c.Server.IdleTimeoutMinutes = d.Server.IdleTimeoutMinutes
	}
	if c.SeedIndex < 0 {
		c.SeedIndex = 0
	}
}
