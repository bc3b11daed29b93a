package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"rewardtrack/internal/store"
)

// EnvPrefix prefixes every environment variable read into Config.
const EnvPrefix = "REWARDTRACK_"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string        `yaml:"home" env:"HOME_DIR"`   // data directory, e.g. $HOME/.rewardtrack
	Backend    store.Backend `yaml:"backend" env:"BACKEND"` // file, encrypted, leveldb, sqlite or memory
	Passphrase string        `yaml:"-" env:"PASSPHRASE"`    // encrypted backend only; never read from the file
	Remote     string        `yaml:"remote" env:"REMOTE"`   // when set, the CLI talks to this server instead

	Log struct {
		Level string `yaml:"level" env:"LEVEL"`
		File  string `yaml:"file" env:"FILE"`
	} `yaml:"log" envPrefix:"LOG_"`

	HTTP struct {
		Listen string `yaml:"listen" env:"LISTEN"`
	} `yaml:"http" envPrefix:"HTTP_"`
}

// Default returns the configuration used when nothing else is set.
func Default(userHome string) Config {
	cfg := Config{}
	cfg.Home = filepath.Join(userHome, ".rewardtrack")
	cfg.Backend = store.BackendFile
	cfg.Log.Level = "warn"
	cfg.HTTP.Listen = "127.0.0.1:8080"
	return cfg
}

// DefaultPath is the config file read when no path is given.
func DefaultPath(cfg Config) string { return filepath.Join(cfg.Home, "config.yaml") }

// Load layers the YAML file at path and then the environment over base.
// A missing file is only an error when required is true.
func Load(base Config, path string, required bool) (Config, error) {
	cfg := base
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist) && !required:
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Write saves cfg as YAML at path.
func Write(path string, cfg Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
