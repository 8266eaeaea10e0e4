package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Firebase    FirebaseConfig  `yaml:"firebase"`
	Log         LogConfig       `yaml:"log"`
	Scheduler   SchedulerConfig `yaml:"scheduler"`
	Reference   ReferenceConfig `yaml:"reference"`
	Preferences Preferences     `yaml:"preferences"`
}

// FirebaseConfig identifies the Firebase project backing the store and the
// auth provider.
type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings.
type SchedulerConfig struct {
	MarkLateLoans string `yaml:"mark_late_loans"`
}

// ReferenceConfig controls the remote refresh of the currency catalog.
type ReferenceConfig struct {
	CurrenciesURL  string `yaml:"currencies_url"`
	RefreshTTLDays int    `yaml:"refresh_ttl_days"`
}

// Load reads configuration from a YAML file, applies environment variable
// overrides, and validates the result.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables.
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Firebase.ProjectID = val
	}
	if val := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); val != "" {
		c.Firebase.CredentialsFile = val
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
	if val := os.Getenv("SWEEP_SCHEDULE"); val != "" {
		c.Scheduler.MarkLateLoans = val
	}
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.Firebase.ProjectID == "" {
		return fmt.Errorf("firebase project id is required")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Nightly sweep at 2 AM UTC unless configured otherwise.
	if c.Scheduler.MarkLateLoans == "" {
		c.Scheduler.MarkLateLoans = "0 0 2 * * *"
	}

	if c.Reference.CurrenciesURL == "" {
		c.Reference.CurrenciesURL = "https://restcountries.com/v3.1/all?fields=currencies"
	}
	if c.Reference.RefreshTTLDays <= 0 {
		c.Reference.RefreshTTLDays = 30
	}

	c.Preferences.applyDefaults()
	return nil
}
