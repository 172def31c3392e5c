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
			args:        []string{"cmd", "-a", ":9090", "-d", "postgres://localhost/daybook", "-s", "k", "-t", "24"},
			expectPanic: false,
			expected: &Config{
				EndpointAddr:          ":9090",
				DatabaseDSN:           "postgres://localhost/daybook",
				SecretKey:             "k",
				TokenValidityDuration: 24 * time.Hour,
			},
		},
		{
			name:        "Test2 incorrect validity",
			args:        []string{"cmd", "-t", "abc"},
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
