// Package config handles the XDG configuration directory, the optional
// config.toml file and the task file location.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "tasklist"

	// ConfigFile is the optional TOML settings file inside the config dir.
	ConfigFile = "config.toml"

	// DefaultDataFile is the task file, relative to the working directory.
	DefaultDataFile = "tasks.txt"

	// DataFileEnv overrides the task file location.
	DataFileEnv = "TASKS_FILE"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// DataFile is the task file path.
	DataFile string `toml:"data_file"`

	// RemoteList is the Google Tasks list used by sync. Empty means the
	// default list.
	RemoteList string `toml:"remote_list"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tasklist or $HOME/.config/tasklist.
// Values are layered: defaults, then config.toml, then the environment.
func New(configDir string) (*Config, error) {
	cfg := Defaults(configDir)
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	if v := os.Getenv(DataFileEnv); v != "" {
		cfg.DataFile = v
	}
	return cfg, nil
}

// Defaults returns the built-in configuration, ignoring config.toml and the
// environment. An empty configDir selects DefaultConfigDir.
func Defaults(configDir string) *Config {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:      dir,
		DataFile: DefaultDataFile,
	}
}

// loadFile decodes config.toml over the current values if it exists.
func (c *Config) loadFile() error {
	path := c.FilePath()
	if _, err := toml.DecodeFile(path, c); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	if c.DataFile == "" {
		c.DataFile = DefaultDataFile
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
