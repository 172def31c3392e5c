package config

import "time"

// Config holds runtime settings for the Daybook CLI.
//
// Fields:
//   - ServerEndpointURL: base URL of the sync server, e.g. http://127.0.0.1:8080.
//   - DatabasePath: path of the local SQLite database file.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - MyDayLookbackDays: how many days back the My Day pull window reaches.
type Config struct {
	ServerEndpointURL   string
	DatabasePath        string
	OnlineCheckInterval time.Duration
	MyDayLookbackDays   int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://127.0.0.1:8080"
	c.DatabasePath = "daybook.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.MyDayLookbackDays = 1
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
