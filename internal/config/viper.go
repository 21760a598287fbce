// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Source kinds.
const (
	SourceHTTP = "http"
	SourceFile = "file"
	SourceSQL  = "sql"
)

// Output formats.
const (
	OutputTable = "table"
	OutputCSV   = "csv"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// EnvPrefix prefixes every environment override, e.g. FINTRACK_SOURCE_KIND.
const EnvPrefix = "FINTRACK"

// LogConfig selects log verbosity and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// SourceConfig selects where records are loaded from.
type SourceConfig struct {
	Kind           string `mapstructure:"kind" yaml:"kind"`
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Dir            string `mapstructure:"dir" yaml:"dir"`
	Format         string `mapstructure:"format" yaml:"format"`
	Driver         string `mapstructure:"driver" yaml:"driver"`
	DSN            string `mapstructure:"dsn" yaml:"-"` // may carry credentials
}

// Timeout returns TimeoutSeconds as a duration.
func (s SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// ViewConfig controls how records are compared and displayed.
type ViewConfig struct {
	Locale   string `mapstructure:"locale" yaml:"locale"`
	Currency string `mapstructure:"currency" yaml:"currency"`
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
}

// Location resolves Timezone; "" and "Local" mean the system zone.
func (v ViewConfig) Location() (*time.Location, error) {
	if v.Timezone == "" || v.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(v.Timezone)
}

// OutputConfig controls how tables and series are printed.
type OutputConfig struct {
	Format    string `mapstructure:"format" yaml:"format"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// Config represents the complete application configuration
type Config struct {
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Source SourceConfig `mapstructure:"source" yaml:"source"`
	View   ViewConfig   `mapstructure:"view" yaml:"view"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

// InitializeConfig loads the configuration with LoadConfig and validates it.
func InitializeConfig() (*Config, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// LoadConfig reads the configuration with hierarchical loading: defaults,
// then config.yaml, then FINTRACK_* environment variables. It does not
// validate, so callers may still override values before calling Validate.
func LoadConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.fintrack")
	v.AddConfigPath(".fintrack")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("source.kind", SourceHTTP)
	v.SetDefault("source.base_url", "http://localhost:8080")
	v.SetDefault("source.timeout_seconds", 10)
	v.SetDefault("source.dir", "data")
	v.SetDefault("source.format", "auto")
	v.SetDefault("source.driver", "sqlite")
	v.SetDefault("source.dsn", "fintrack.db")

	v.SetDefault("view.locale", "en")
	v.SetDefault("view.currency", "")
	v.SetDefault("view.timezone", "Local")

	v.SetDefault("output.format", OutputTable)
	v.SetDefault("output.delimiter", ",")
}

// Validate checks every setting that would otherwise fail late.
func Validate(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Source.Kind {
	case SourceHTTP:
		if config.Source.BaseURL == "" {
			return fmt.Errorf("source.base_url is required for the http source")
		}
	case SourceFile:
		if config.Source.Dir == "" {
			return fmt.Errorf("source.dir is required for the file source")
		}
		switch config.Source.Format {
		case "auto", "json", "yaml", "csv":
		default:
			return fmt.Errorf("invalid source.format: %s (must be 'auto', 'json', 'yaml' or 'csv')", config.Source.Format)
		}
	case SourceSQL:
		if config.Source.Driver != "sqlite" && config.Source.Driver != "postgres" {
			return fmt.Errorf("invalid source.driver: %s (must be 'sqlite' or 'postgres')", config.Source.Driver)
		}
		if config.Source.DSN == "" {
			return fmt.Errorf("source.dsn is required for the sql source")
		}
	default:
		return fmt.Errorf("invalid source.kind: %s (must be 'http', 'file' or 'sql')", config.Source.Kind)
	}
	if config.Source.TimeoutSeconds < 1 || config.Source.TimeoutSeconds > 300 {
		return fmt.Errorf("source.timeout_seconds must be between 1 and 300, got: %d", config.Source.TimeoutSeconds)
	}

	if _, err := language.Parse(config.View.Locale); err != nil {
		return fmt.Errorf("invalid view.locale: %s", config.View.Locale)
	}
	if _, err := config.View.Location(); err != nil {
		return fmt.Errorf("invalid view.timezone: %s", config.View.Timezone)
	}

	switch config.Output.Format {
	case OutputTable, OutputCSV, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid output.format: %s (must be 'table', 'csv', 'json' or 'yaml')", config.Output.Format)
	}
	if len([]rune(config.Output.Delimiter)) != 1 {
		return fmt.Errorf("output delimiter must be a single character, got: %s", config.Output.Delimiter)
	}

	return nil
}
