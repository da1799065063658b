// Package config loads tasklist settings.
//
// Values come from built-in defaults, then an optional config file
// (config.yaml, config.yml or config.toml in the user config directory, or an
// explicit path), then TASKLIST_* environment variables. Command-line flags
// are applied last by the cmd package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"tasklist/kv"
)

const appName = "tasklist"

var ErrInvalidStorage = errors.New("invalid storage backend")

// Config holds all settings.
type Config struct {
	// DataDir holds the key-value store and the log file.
	DataDir string `yaml:"data_dir" toml:"data_dir"`
	// Storage selects the kv backend: file, sqlite or memory.
	Storage string `yaml:"storage" toml:"storage"`
	Log     Log    `yaml:"log" toml:"log"`
}

type Log struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
	// File is relative to DataDir unless absolute. "-" logs to stderr.
	File string `yaml:"file" toml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir: defaultDataDir(),
		Storage: kv.BackendFile,
		Log: Log{
			Level:  "info",
			Format: "text",
			File:   appName + ".log",
		},
	}
}

// Load builds the configuration. With an empty path the user config
// directory is searched; a missing file is not an error. An explicit path
// must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("config file: %w", err)
	}
	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	loadFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that have a fixed set of choices.
func (c Config) Validate() error {
	switch c.Storage {
	case kv.BackendFile, kv.BackendSQLite, kv.BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStorage, c.Storage)
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data dir must not be empty")
	}
	return nil
}

// LogPath resolves Log.File against DataDir. It returns "" for stderr.
func (c Config) LogPath() string {
	switch c.Log.File {
	case "-":
		return ""
	case "":
		return filepath.Join(c.DataDir, appName+".log")
	}
	if filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, c.Log.File)
}

func loadFile(cfg *Config, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err := toml.DecodeFile(path, cfg)
		return err
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKLIST_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TASKLIST_STORAGE"); v != "" {
		cfg.Storage = strings.ToLower(v)
	}
	if v := os.Getenv("TASKLIST_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TASKLIST_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func findConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		candidate := filepath.Join(dir, appName, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "."+appName)
	}
	return "." + appName
}
