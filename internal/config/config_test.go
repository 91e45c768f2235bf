package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Chdir(t.TempDir())

	l, err := Load("")
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), l.Config()); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, l.File())
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "famledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
ai:
  provider: openai
  api_key: sk-test
  timeout: 15s
thresholds:
  review: 0.6
`), 0o600))
	t.Setenv("FAMLEDGER_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("FAMLEDGER_LOG_LEVEL", "debug")

	l, err := Load(path)
	require.NoError(t, err)
	c := l.Config()

	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, "/tmp/override.db", c.Database.Path)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "openai", c.AI.Provider)
	assert.Equal(t, 15*time.Second, c.AI.Timeout)
	assert.Equal(t, 0.6, c.Thresholds.Review)
	assert.Equal(t, 0.9, c.Thresholds.AutoApply)
	assert.Equal(t, path, l.File())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, false},
		{"provider without key", func(c *Config) { c.AI.Provider = "gemini" }, false},
		{"unknown provider", func(c *Config) { c.AI.Provider = "llama"; c.AI.APIKey = "k" }, false},
		{"review above apply", func(c *Config) { c.Thresholds.Review = 0.95 }, false},
		{"empty secret", func(c *Config) { c.JWT.Secret = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "famledger.yaml")
	want := Default()
	want.AI.Timeout = 90 * time.Second

	require.NoError(t, Save(path, want, false))
	assert.Error(t, Save(path, want, false), "existing file needs force")
	require.NoError(t, Save(path, want, true))

	l, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(want, l.Config()); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "famledger.yaml")
	require.NoError(t, Save(path, Default(), false))

	l, err := Load(path)
	require.NoError(t, err)

	changed := make(chan *Config, 4)
	l.Watch(func(c *Config) { changed <- c })

	c := Default()
	c.Log.Level = "warn"
	require.NoError(t, Save(path, c, true))

	// A write can surface as several events; wait for the final content.
	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-changed:
			if got.Log.Level == "warn" {
				assert.Equal(t, "warn", l.Config().Log.Level)
				return
			}
		case <-timeout:
			t.Fatal("config change not observed")
		}
	}
}
