package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "go-notes.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "127.0.0.1:1440", cfg.Addr)
	assert.Equal(t, "notes", cfg.NotesRoot)
	assert.Equal(t, "none", cfg.Journal.Backend)
	assert.Empty(t, cfg.Admin.Addr)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
addr = "0.0.0.0:8080"
notes_root = "/srv/notes"
max_body_bytes = 1024

[log]
level = "debug"
format = "json"

[admin]
addr = "127.0.0.1:1441"

[journal]
backend = "tarantool"
addr = "db:3301"
space = "journal"
timeout = "750ms"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr)
	assert.Equal(t, "/srv/notes", cfg.NotesRoot)
	assert.Equal(t, int64(1024), cfg.MaxBodyBytes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "127.0.0.1:1441", cfg.Admin.Addr)

	opts := cfg.TarantoolOptions()
	assert.Equal(t, "db:3301", opts.Addr)
	assert.Equal(t, "guest", opts.User)
	assert.Equal(t, "journal", opts.Space)
	assert.Equal(t, 750*time.Millisecond, opts.Timeout)
}

func TestLoadMaxBodyBytes(t *testing.T) {
	cfg, err := Load(writeConfig(t, `addr = "127.0.0.1:1440"`))
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultMaxBody), cfg.MaxBodyBytes, "absent key keeps the default")

	cfg, err = Load(writeConfig(t, "max_body_bytes = 0"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), cfg.MaxBodyBytes, "zero means unlimited")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "syntax", body: `addr = `, want: "config parse failed"},
		{name: "bad duration", body: "[journal]\ntimeout = \"soon\"", want: "config parse failed"},
		{name: "bad format", body: "[log]\nformat = \"xml\"", want: "log format"},
		{name: "bad backend", body: "[journal]\nbackend = \"redis\"", want: "journal backend"},
		{name: "negative body", body: "max_body_bytes = -1", want: "max_body_bytes"},
		{name: "admin without journal", body: "[admin]\naddr = \":1441\"", want: "requires a journal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), "error %q should mention %q", err, tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
