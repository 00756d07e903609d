package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "GIN_MODE", "MODEL_BACKEND", "MODEL_PATH", "MODEL_REMOTE_URL", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, BackendFile, cfg.Model.Backend)
	assert.Equal(t, filepath.Join("models", "classification_model.json"), cfg.Model.Path)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  port: 8080
  mode: debug
  shutdown_timeout: 10s
model:
  backend: remote
  remote_url: http://ml:6000
  timeout: 2s
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, BackendRemote, cfg.Model.Backend)
	assert.Equal(t, "http://ml:6000", cfg.Model.RemoteURL)
	assert.Equal(t, 2*time.Second, cfg.Model.Timeout)
	assert.Equal(t, "json", cfg.Log.Format)
	// untouched keys keep their defaults
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, int64(16<<20), cfg.Server.MaxUploadBytes)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("MODEL_PATH", "/opt/model.json")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/opt/model.json", cfg.Model.Path)
	assert.Equal(t, "/opt/model.json", cfg.ResolveModelPath())
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("PORT", "abc")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }},
		{name: "bad mode", mutate: func(c *Config) { c.Server.Mode = "fast" }},
		{name: "unknown backend", mutate: func(c *Config) { c.Model.Backend = "s3" }},
		{name: "remote without url", mutate: func(c *Config) { c.Model.Backend = BackendRemote }},
		{name: "file without path", mutate: func(c *Config) { c.Model.Path = "" }},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestResolveModelPathRelativeToWorkingDir(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	require.NoError(t, os.WriteFile("model.json", []byte("{}"), 0o600))
	cfg := Default()
	cfg.Model.Path = "model.json"
	assert.Equal(t, "model.json", cfg.ResolveModelPath())

	cfg.Model.Path = "absent.json"
	exe, err := os.Executable()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(exe), "absent.json"), cfg.ResolveModelPath())
}
