// Package config resolves hubscope settings from, in order of precedence:
// process environment (optionally topped up from a local .env file), then a
// YAML config file at ~/.config/hubscope/config.yaml, then built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config carries everything the CLI needs to build a client.
type Config struct {
	// Token is a GitHub personal access token. GH_TOKEN is honored as a
	// fallback for gh-CLI users.
	Token string `envconfig:"GITHUB_TOKEN" yaml:"token"`

	// APIBaseURL overrides the GitHub API endpoint, e.g. to point at a
	// GitHub Enterprise instance or a local github-mock server.
	APIBaseURL string `envconfig:"HUBSCOPE_API_URL" yaml:"api_url"`

	// GitHub App installation credentials; all three must be set to be used,
	// and they take precedence over Token.
	AppID          int64  `envconfig:"GITHUB_APP_ID" yaml:"app_id"`
	InstallationID int64  `envconfig:"GITHUB_APP_INSTALLATION_ID" yaml:"installation_id"`
	PrivateKeyPath string `envconfig:"GITHUB_APP_PRIVATE_KEY_PATH" yaml:"private_key_path"`

	// RetryMax is the number of transparent retries for transient HTTP
	// failures.
	RetryMax int `envconfig:"HUBSCOPE_RETRY_MAX" yaml:"retry_max"`
}

const defaultRetryMax = 2

// Load resolves the configuration. A missing .env or config file is fine;
// a config file that exists but does not parse is an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv("GH_TOKEN")
	}

	if err := fillFromFile(&cfg, configFilePath()); err != nil {
		return nil, err
	}

	if cfg.RetryMax == 0 {
		cfg.RetryMax = defaultRetryMax
	}
	return &cfg, nil
}

// UseApp reports whether complete GitHub App credentials are present.
func (c *Config) UseApp() bool {
	return c.AppID != 0 && c.InstallationID != 0 && c.PrivateKeyPath != ""
}

// Authenticated reports whether any credential is configured.
func (c *Config) Authenticated() bool {
	return c.Token != "" || c.UseApp()
}

// fillFromFile merges the YAML config file into cfg, filling only fields the
// environment left unset so env always wins.
func fillFromFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if cfg.Token == "" {
		cfg.Token = file.Token
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = file.APIBaseURL
	}
	if cfg.AppID == 0 {
		cfg.AppID = file.AppID
	}
	if cfg.InstallationID == 0 {
		cfg.InstallationID = file.InstallationID
	}
	if cfg.PrivateKeyPath == "" {
		cfg.PrivateKeyPath = file.PrivateKeyPath
	}
	if cfg.RetryMax == 0 {
		cfg.RetryMax = file.RetryMax
	}
	return nil
}

func configFilePath() string {
	if p := os.Getenv("HUBSCOPE_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hubscope", "config.yaml")
}
