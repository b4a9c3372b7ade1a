package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ErrNoCredentials is returned when no GitHub token can be resolved from the
// environment or the credentials file.
var ErrNoCredentials = fmt.Errorf("no GitHub credentials found")

// defaultCredentialsFile is the fallback token location, relative to the
// user's home directory.
const defaultCredentialsFile = ".github_credentials.json"

// Config holds all configuration for the application
type Config struct {
	GitHubToken  string
	Concurrency  int
	CountCommits bool
	DatabaseDSN  string
	LogLevel     string

	// CredentialsFile overrides the default token file location when set
	// before Load is called.
	CredentialsFile string
}

// NewConfig creates a new Config instance
func NewConfig() *Config {
	return &Config{}
}

// Load resolves configuration from environment variables, falling back to the
// credentials file for the token. A missing token is fatal: the program must
// not reach the network without one.
func (c *Config) Load() error {
	viper.AutomaticEnv()

	c.LogLevel = viper.GetString("LOG_LEVEL")
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	c.Concurrency = viper.GetInt("GITHUB_REPORT_CONCURRENCY")
	if c.Concurrency <= 0 {
		c.Concurrency = 10
	}

	c.CountCommits = viper.GetBool("GITHUB_REPORT_COUNT_COMMITS")
	c.DatabaseDSN = viper.GetString("DATABASE_DSN")

	c.GitHubToken = viper.GetString("GITHUB_TOKEN")
	if c.GitHubToken == "" {
		token, err := c.loadFileToken()
		if err != nil {
			return err
		}
		c.GitHubToken = token
	}

	return nil
}

// loadFileToken reads the token from the JSON credentials file.
func (c *Config) loadFileToken() (string, error) {
	path := c.CredentialsFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("%w: cannot resolve home directory: %v", ErrNoCredentials, err)
		}
		path = filepath.Join(home, defaultCredentialsFile)
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: set GITHUB_TOKEN or create %s", ErrNoCredentials, path)
	}

	creds := viper.New()
	creds.SetConfigFile(path)
	creds.SetConfigType("json")
	if err := creds.ReadInConfig(); err != nil {
		return "", fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}

	token := creds.GetString("token")
	if token == "" {
		return "", fmt.Errorf("%w: %s has no token field", ErrNoCredentials, path)
	}

	return token, nil
}
