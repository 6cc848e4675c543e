package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/deevus/congress-tui/internal/loader"
	"github.com/deevus/congress-tui/internal/source"
)

// Config is the top-level configuration.
type Config struct {
	LogFile  string                   `toml:"log_file"`
	Datasets map[string]DatasetConfig `toml:"datasets"`
}

// DatasetConfig describes where one pair of metadata and records resources lives.
type DatasetConfig struct {
	Source   string            `toml:"source"`
	Metadata string            `toml:"metadata"`
	Records  string            `toml:"records"`
	Title    string            `toml:"title"`
	S3       source.S3Config   `toml:"s3"`
	SSH      *source.SSHConfig `toml:"ssh"`
}

// DefaultPath returns the default config file path using XDG conventions.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "congress-tui", "config.toml")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".cache")
	}
	return filepath.Join(dir, "congress-tui", "congress-tui.log")
}

// LoadFrom reads and parses the config file at the given path.
// It applies defaults for dataset paths and SSH fields after parsing.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if len(cfg.Datasets) == 0 {
		return nil, fmt.Errorf("config has no datasets defined")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogPath()
	}
	cfg.LogFile = expandPath(cfg.LogFile)

	for name, ds := range cfg.Datasets {
		if ds.Source == "" {
			return nil, fmt.Errorf("dataset %q has no source", name)
		}
		if !strings.Contains(ds.Source, "://") {
			ds.Source = expandPath(ds.Source)
		}
		if ds.Metadata == "" {
			ds.Metadata = loader.DefaultMetadataPath
		}
		if ds.Records == "" {
			ds.Records = loader.DefaultRecordsPath
		}
		if ds.Title == "" {
			ds.Title = name
		}
		if ds.SSH != nil {
			if ds.SSH.Port == 0 {
				ds.SSH.Port = 22
			}
			if ds.SSH.Username == "" {
				ds.SSH.Username = os.Getenv("USER")
			}
			ds.SSH.PrivateKeyPath = expandPath(ds.SSH.PrivateKeyPath)
		}
		cfg.Datasets[name] = ds
	}
	return &cfg, nil
}

// expandPath expands ~ to $HOME and then expands all environment variables.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		path = "$HOME" + path[1:]
	}
	return os.ExpandEnv(path)
}

// DatasetNames returns the sorted list of dataset profile names.
func (c *Config) DatasetNames() []string {
	names := make([]string, 0, len(c.Datasets))
	for name := range c.Datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SourceOptions returns the backend options for opening ds.Source.
func (ds DatasetConfig) SourceOptions() source.Options {
	return source.Options{S3: ds.S3, SSH: ds.SSH}
}
