package config

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// RcloneBinary overrides PATH lookup for the rclone executable.
	RcloneBinary string `yaml:"rclone_binary"`
	// RCAddr is the address the managed rc server listens on.
	RCAddr string `yaml:"rc_addr"`
	// RootDir is where the directory tree starts.
	RootDir string `yaml:"root_dir"`
	// Remaps are extra key sequence remaps, source to target, in the
	// same notation as the :map command (e.g. "ZZ": "q").
	Remaps   map[string]string `yaml:"remaps"`
	LogPath  string            `yaml:"log_path"`
	LogLevel string            `yaml:"log_level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		RCAddr:   "localhost:5572",
		RootDir:  homeDir,
		LogLevel: "info",
	}
}

// configPath returns the path to the config file
func configPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "rcpilot", "config.yaml")
}

// Load reads the configuration from the config file
// Falls back to defaults if the file doesn't exist
func Load() (*Config, error) {
	return LoadFrom(configPath())
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, eris.Wrapf(err, "failed to read config %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, eris.Wrapf(err, "failed to parse config %s", path)
	}

	cfg.RootDir = expandPath(cfg.RootDir)
	cfg.RcloneBinary = expandPath(cfg.RcloneBinary)
	cfg.LogPath = expandPath(cfg.LogPath)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.RCAddr == "" {
		return eris.New("rc_addr cannot be empty")
	}
	if c.RootDir == "" {
		return eris.New("root_dir cannot be empty")
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// ConfigPath returns the path where the config file should be located
func ConfigPath() string {
	return configPath()
}
