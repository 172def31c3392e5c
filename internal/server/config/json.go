package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/nvoronin/daybook/internal/flagx"
	"github.com/nvoronin/daybook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify lifetimes either as strings like "720h"
// or as integer nanoseconds.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
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

	cfg.EndpointAddr = jc.EndpointAddr
	cfg.DatabaseDSN = jc.DatabaseDSN
	cfg.SecretKey = jc.SecretKey
	cfg.TokenValidityDuration = time.Duration(jc.TokenValidityDuration.Duration)
}
