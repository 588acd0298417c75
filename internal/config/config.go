// Package config resolves gemchat settings from an optional yaml file
// and the environment. Precedence is flag > environment > file; flags
// are merged by the command layer.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the persisted settings.
type Config struct {
	APIKey  string   `yaml:"api_key"`
	Model   string   `yaml:"model"`
	BaseURL string   `yaml:"base_url"`
	Dirs    []string `yaml:"dirs"`
}

// Path returns the config file location, ~/.config/gemchat/config.yaml.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "gemchat", "config.yaml")
}

// Load reads the config file (a missing file is not an error) and
// applies environment overrides. The returned Config is always usable:
// when the file is unreadable the error reports it, but the Config
// still carries the environment values so the key fallback keeps
// working.
func Load() (*Config, error) {
	return load(Path())
}

func load(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		cfg = &Config{}
	}
	cfg.applyEnvOverrides()
	return cfg, err
}

func loadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides lets the environment win over the file.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.APIKey = key
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		c.Model = model
	}
}
