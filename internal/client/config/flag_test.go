package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name:        "Test1 OK",
			args:        []string{"cmd", "-a", "http://127.0.0.1:9090", "-d", "alt.db", "-i", "10", "-l", "2"},
			expectPanic: false,
			expected: &Config{
				ServerEndpointURL:   "http://127.0.0.1:9090",
				DatabasePath:        "alt.db",
				OnlineCheckInterval: 10 * time.Second,
				MyDayLookbackDays:   2,
			},
		},
		{
			name:        "Test2 incorrect check interval",
			args:        []string{"cmd", "-a", "http://127.0.0.1:9090", "-i", "abc"},
			expectPanic: true,
			expected:    &Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Equal(t, tt.expected, config)
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
