// Package config resolves application settings from the environment using
// Viper. A .env file, when present, is loaded into the environment by the
// binaries (godotenv) before Load is called.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Port is the HTTP listen port (e.g. 8080).
	Port string `mapstructure:"PORT"`
	// DBPath is the SQLite database file backing the employees resource.
	DBPath string `mapstructure:"DB_PATH"`
	// DBAutoMigrate applies the bundled migrations at startup instead of
	// relying on `mage dbup`.
	DBAutoMigrate bool `mapstructure:"DB_AUTO_MIGRATE"`
	// EmployeesAPIURL is the collection URL the record service talks to.
	// Empty means the resource served by this process.
	EmployeesAPIURL string `mapstructure:"EMPLOYEES_API_URL"`
	// EmailDomain is the domain every employee email must belong to.
	EmailDomain string `mapstructure:"EMAIL_DOMAIN"`
	// APITimeout bounds each record service request.
	APITimeout time.Duration `mapstructure:"API_TIMEOUT"`
	// SessionIdleTimeout closes form sessions left unused this long.
	SessionIdleTimeout time.Duration `mapstructure:"SESSION_IDLE_TIMEOUT"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// LogFormat is text or json.
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

// Defaults registers every key with its default value on v.
func Defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_PATH", "employees.db")
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("EMPLOYEES_API_URL", "")
	v.SetDefault("EMAIL_DOMAIN", "sysbiz.com")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("SESSION_IDLE_TIMEOUT", "30m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Load builds and validates Config from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	Defaults(v)
	return FromViper(v)
}

// FromViper unmarshals and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return errors.New("config: PORT must be set")
	}
	if c.EmailDomain == "" || strings.Contains(c.EmailDomain, "@") {
		return errors.New("config: EMAIL_DOMAIN must be a bare domain such as sysbiz.com")
	}
	if c.EmployeesAPIURL != "" {
		u, err := url.Parse(c.EmployeesAPIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: EMPLOYEES_API_URL %q is not an absolute URL", c.EmployeesAPIURL)
		}
	}
	if c.APITimeout <= 0 {
		return errors.New("config: API_TIMEOUT must be positive")
	}
	if c.SessionIdleTimeout < time.Second {
		return fmt.Errorf("config: SESSION_IDLE_TIMEOUT must be at least 1s, got %s", c.SessionIdleTimeout)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("config: LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	return l, nil
}

// APIURL returns the collection URL the record service should use.
func (c *Config) APIURL() string {
	if c.EmployeesAPIURL != "" {
		return c.EmployeesAPIURL
	}
	return "http://localhost:" + c.Port + "/api/employees"
}
