// Package config provides YAML-based configuration loading for hexfall.
package config

// Config is the complete hexfall configuration.
type Config struct {
	ProblemsDir  string         `yaml:"problems_dir"`  // empty uses the built-in samples
	SeedIndex    int            `yaml:"seed_index"`    // default index into sourceSeeds
	Tag          string         `yaml:"tag"`           // solution tag; empty generates one
	Phrases      []string       `yaml:"phrases"`       // phrases of power
	PhraseScore  bool           `yaml:"phrase_score"`  // add phrase bonus to reported scores
	Strict       bool           `yaml:"strict"`        // replay errors score zero
	DatabasePath string         `yaml:"database_path"` // sqlite file for solutions
	Submit       SubmitConfig   `yaml:"submit"`
	Spectate     SpectateConfig `yaml:"spectate"`
	TUI          TUIConfig      `yaml:"tui"`
	Server       ServerConfig   `yaml:"server"`
}

// SubmitConfig selects where finished games are sent.
type SubmitConfig struct {
	Sink           string `yaml:"sink"` // stdout, file, sqlite or http
	Path           string `yaml:"path"` // output file for the file sink
	URL            string `yaml:"url"`  // endpoint for the http sink; %d is replaced by team_id
	APIToken       string `yaml:"api_token"`
	TeamID         int    `yaml:"team_id"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SpectateConfig configures the websocket spectator stream.
type SpectateConfig struct {
	Address string `yaml:"address"` // empty disables spectating
}

// TUIConfig configures the terminal interface.
type TUIConfig struct {
	TickRate     int `yaml:"tick_rate"`     // UI ticks per second
	PlaybackRate int `yaml:"playback_rate"` // commands per second during playback
	Upcoming     int `yaml:"upcoming"`      // queued units shown in the side panel
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}
