package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		initial     *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name:     "all flags",
			args:     []string{"cmd", "-a", "http://api:8080", "-d", "/tmp/g.db", "-t", "30", "-l", "debug"},
			expected: &Config{APIBaseURL: "http://api:8080", DataFile: "/tmp/g.db", RequestTimeout: 30 * time.Second, LogLevel: "debug"},
		},
		{
			name:     "unrelated flags ignored",
			args:     []string{"cmd", "-c", "cfg.json", "-t", "5"},
			expected: &Config{RequestTimeout: 5 * time.Second},
		},
		{
			name:     "no -t keeps a sub-second timeout",
			initial:  &Config{RequestTimeout: 500 * time.Millisecond},
			args:     []string{"cmd", "-l", "warn"},
			expected: &Config{RequestTimeout: 500 * time.Millisecond, LogLevel: "warn"},
		},
		{
			name:     "no -t keeps a fractional timeout",
			initial:  &Config{RequestTimeout: 1500 * time.Millisecond},
			args:     []string{"cmd"},
			expected: &Config{RequestTimeout: 1500 * time.Millisecond},
		},
		{
			name:     "-t overrides the file value",
			initial:  &Config{RequestTimeout: 500 * time.Millisecond},
			args:     []string{"cmd", "-t", "3"},
			expected: &Config{RequestTimeout: 3 * time.Second},
		},
		{
			name:        "incorrect timeout",
			args:        []string{"cmd", "-t", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			cfg := &Config{}
			if tt.initial != nil {
				cfg = tt.initial
			}
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
