package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/nvoronin/daybook/internal/flagx"
	"github.com/nvoronin/daybook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s"
// or as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointURL   string         `json:"server_endpoint_url"`
	DatabasePath        string         `json:"database_path"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	MyDayLookbackDays   int            `json:"myday_lookback_days"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags via flagx.JsonConfigFlags; when no
// path is given the function is a no-op. Read or unmarshal errors panic,
// matching parseFlags.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerEndpointURL = jc.ServerEndpointURL
	cfg.DatabasePath = jc.DatabasePath
	cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	cfg.MyDayLookbackDays = jc.MyDayLookbackDays
}
