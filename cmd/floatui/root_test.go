package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	type tc struct {
		args []string
	}

	tests := map[string]tc{
		"version command": {args: []string{"version"}},
		"version flag":    {args: []string{"--version"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, _, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, "floatui version "+version), "got %q", out)
		})
	}
}

func TestRoot_Config(t *testing.T) {
	type tc struct {
		config  func(t *testing.T) string
		wantErr string
	}

	tests := map[string]tc{
		"explicit config must exist": {
			config:  func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.toml") },
			wantErr: "reading config",
		},
		"malformed config": {
			config:  func(t *testing.T) string { return writeFile(t, "floatui.toml", "[place\n") },
			wantErr: "reading config",
		},
		"valid config": {
			config: func(t *testing.T) string { return writeFile(t, "floatui.toml", "[place]\npadding = 4\n") },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := execute(t, "", "--config", tt.config(t), "version")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRoot_VerboseLogging(t *testing.T) {
	cfg := writeFile(t, "floatui.toml", "[place]\npadding = 4\n")

	_, quiet, err := execute(t, "", "--config", cfg, "version")
	require.NoError(t, err)
	assert.NotContains(t, quiet, "loaded config")

	_, verbose, err := execute(t, "", "--config", cfg, "-v", "version")
	require.NoError(t, err)
	assert.Contains(t, verbose, "loaded config")
}

func TestRoot_UnknownCommand(t *testing.T) {
	_, _, err := execute(t, "", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
