package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	BackendFile   = "file"
	BackendRemote = "remote"
)

type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		Mode            string        `yaml:"mode"`
		AllowedOrigins  []string      `yaml:"allowed_origins"`
		MaxBodyBytes    int64         `yaml:"max_body_bytes"`
		MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Model struct {
		Backend   string        `yaml:"backend"`
		Path      string        `yaml:"path"`
		RemoteURL string        `yaml:"remote_url"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"model"`
	Log struct {
		Level      string `yaml:"level"`
		Format     string `yaml:"format"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var c Config
	c.Server.Port = 5000
	c.Server.Mode = "release"
	c.Server.AllowedOrigins = []string{"*"}
	c.Server.MaxBodyBytes = 1 << 20
	c.Server.MaxUploadBytes = 16 << 20
	c.Server.ShutdownTimeout = 5 * time.Second
	c.Model.Backend = BackendFile
	c.Model.Path = filepath.Join("models", "classification_model.json")
	c.Model.Timeout = 5 * time.Second
	c.Log.Level = "info"
	c.Log.Format = "console"
	c.Log.MaxSizeMB = 100
	c.Log.MaxBackups = 3
	c.Log.MaxAgeDays = 28
	c.Metrics.Enabled = true
	c.Metrics.Path = "/metrics"
	return &c
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = port
	}
	overrides := map[string]*string{
		"GIN_MODE":         &c.Server.Mode,
		"MODEL_BACKEND":    &c.Model.Backend,
		"MODEL_PATH":       &c.Model.Path,
		"MODEL_REMOTE_URL": &c.Model.RemoteURL,
		"LOG_LEVEL":        &c.Log.Level,
	}
	for key, dst := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid server mode %q", c.Server.Mode)
	}
	switch c.Model.Backend {
	case BackendFile:
		if c.Model.Path == "" {
			return errors.New("model.path is required for the file backend")
		}
	case BackendRemote:
		if c.Model.RemoteURL == "" {
			return errors.New("model.remote_url is required for the remote backend")
		}
	default:
		return fmt.Errorf("unknown model backend %q", c.Model.Backend)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// ResolveModelPath finds the artifact relative to the working directory
// first, then relative to the running executable.
func (c *Config) ResolveModelPath() string {
	path := c.Model.Path
	if filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	exe, err := os.Executable()
	if err != nil {
		return path
	}
	return filepath.Join(filepath.Dir(exe), path)
}
