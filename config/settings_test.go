package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galaxygenerator/core"
)

func writeSettings(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *settings)

	params, err := settings.Galaxy.Params()
	require.NoError(t, err)
	assert.Equal(t, core.DefaultParameters(), params)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeSettings(t, t.TempDir(), `
galaxy:
  count: 5000
  branches: 6
  insideColor: "#00ff00"
window:
  width: 800
server:
  enabled: true
  addr: "127.0.0.1:9000"
logging:
  level: debug
`)

	settings, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, settings.Galaxy.Count)
	assert.Equal(t, 6, settings.Galaxy.Branches)
	assert.Equal(t, 10.0, settings.Galaxy.Radius, "unset keys keep defaults")
	assert.Equal(t, 800, settings.Window.Width)
	assert.Equal(t, 720, settings.Window.Height)
	assert.True(t, settings.Server.Enabled)
	assert.Equal(t, "debug", settings.Logging.Level)

	params, err := settings.Galaxy.Params()
	require.NoError(t, err)
	assert.Equal(t, core.RGB{G: 1}, params.InsideColor)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GALAXY_LOG_LEVEL", "warn")
	t.Setenv("GALAXY_SEED", "99")
	t.Setenv("GALAXY_WORKERS", "2")
	t.Setenv("GALAXY_SERVER_ENABLED", "true")

	settings, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "warn", settings.Logging.Level)
	assert.Equal(t, uint64(99), settings.Generation.Seed)
	assert.Equal(t, 2, settings.Generation.Workers)
	assert.True(t, settings.Server.Enabled)

	t.Setenv("GALAXY_WORKERS", "many")
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "GALAXY_WORKERS")
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "galaxy: [", "error parsing"},
		{"branches out of range", "galaxy:\n  branches: 1\n", "branches"},
		{"bad color", "galaxy:\n  outsideColor: blue\n", "outsideColor"},
		{"zero window", "window:\n  width: 0\n", "window size"},
		{"bad level", "logging:\n  level: loud\n", "logging.level"},
		{"rate limit", "server:\n  rateLimit:\n    enabled: true\n    burstSize: 0\n", "rateLimit"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSettings(t, t.TempDir(), tc.body)
			_, err := Load(path)
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestLoadGalaxy(t *testing.T) {
	path := writeSettings(t, t.TempDir(), "galaxy:\n  spin: -2.5\n")
	params, err := LoadGalaxy(path)
	require.NoError(t, err)
	assert.Equal(t, -2.5, params.Spin)
	assert.Equal(t, 100000, params.Count)
}

func TestWatchReloadsGalaxy(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, "galaxy:\n  branches: 3\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan core.ParameterSet, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(p core.ParameterSet) { changes <- p })
	}()

	// give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	writeSettings(t, dir, "galaxy:\n  branches: 9\n")

	select {
	case p := <-changes:
		assert.Equal(t, 9, p.Branches)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after writing settings")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
