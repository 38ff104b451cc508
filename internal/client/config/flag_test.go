package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
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
		{name: "Test1 OK", args: []string{"cmd", "-b", "http://api.example:9000", "-t", "600"}, expectPanic: false,
			expected: &Config{BackendHost: "http://api.example:9000", AccessTokenLifetime: 600 * time.Second}},
		{name: "Test2 database path", args: []string{"cmd", "-d", "/tmp/cache.db"}, expectPanic: false,
			expected: &Config{DatabaseDSN: "/tmp/cache.db"}},
		{name: "Test3 incorrect token lifetime", args: []string{"cmd", "-b", "http://api.example:9000", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
