package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnvVars = []string{
	"FINTRACK_LOG_LEVEL",
	"FINTRACK_LOG_FORMAT",
	"FINTRACK_SOURCE_KIND",
	"FINTRACK_SOURCE_BASE_URL",
	"FINTRACK_SOURCE_TIMEOUT_SECONDS",
	"FINTRACK_SOURCE_DIR",
	"FINTRACK_SOURCE_FORMAT",
	"FINTRACK_SOURCE_DRIVER",
	"FINTRACK_SOURCE_DSN",
	"FINTRACK_VIEW_LOCALE",
	"FINTRACK_VIEW_CURRENCY",
	"FINTRACK_VIEW_TIMEZONE",
	"FINTRACK_OUTPUT_FORMAT",
	"FINTRACK_OUTPUT_DELIMITER",
}

// clearTestEnvVars blanks every override for the duration of the test.
// t.Setenv restores the previous values afterwards; Unsetenv makes viper see
// the variables as missing rather than empty.
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range testEnvVars {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(original))
	})
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, SourceHTTP, config.Source.Kind)
	assert.Equal(t, "http://localhost:8080", config.Source.BaseURL)
	assert.Equal(t, 10*time.Second, config.Source.Timeout())
	assert.Equal(t, "auto", config.Source.Format)
	assert.Equal(t, "sqlite", config.Source.Driver)
	assert.Equal(t, "en", config.View.Locale)
	assert.Equal(t, OutputTable, config.Output.Format)
	assert.Equal(t, ",", config.Output.Delimiter)
	assert.Equal(t, config, Default())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	t.Setenv("FINTRACK_LOG_LEVEL", "debug")
	t.Setenv("FINTRACK_LOG_FORMAT", "json")
	t.Setenv("FINTRACK_SOURCE_KIND", "file")
	t.Setenv("FINTRACK_SOURCE_DIR", "/var/lib/fintrack")
	t.Setenv("FINTRACK_SOURCE_TIMEOUT_SECONDS", "45")
	t.Setenv("FINTRACK_VIEW_CURRENCY", "CHF")
	t.Setenv("FINTRACK_OUTPUT_DELIMITER", ";")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, SourceFile, config.Source.Kind)
	assert.Equal(t, "/var/lib/fintrack", config.Source.Dir)
	assert.Equal(t, 45, config.Source.TimeoutSeconds)
	assert.Equal(t, "CHF", config.View.Currency)
	assert.Equal(t, ";", config.Output.Delimiter)
}

func TestInitializeConfig_ConfigFileAndPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()

	content := `
log:
  level: "warn"
source:
  kind: "sql"
  driver: "postgres"
  dsn: "postgres://tracker@localhost/finance?sslmode=disable"
view:
  locale: "de-CH"
  timezone: "UTC"
output:
  format: "json"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	chdir(t, dir)

	t.Setenv("FINTRACK_LOG_LEVEL", "error")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level, "environment wins over file")
	assert.Equal(t, SourceSQL, config.Source.Kind)
	assert.Equal(t, "postgres", config.Source.Driver)
	assert.Equal(t, "postgres://tracker@localhost/finance?sslmode=disable", config.Source.DSN)
	assert.Equal(t, "de-CH", config.View.Locale)
	assert.Equal(t, OutputJSON, config.Output.Format)

	loc, err := config.View.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestInitializeConfig_InvalidFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unclosed"), 0o644))
	chdir(t, dir)

	_, err := InitializeConfig()
	assert.Error(t, err)
}

func TestLoadConfig_LeavesValidationToCaller(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())
	t.Setenv("FINTRACK_OUTPUT_FORMAT", "xml")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "xml", config.Output.Format)
	assert.Error(t, Validate(config))

	config.Output.Format = OutputCSV
	assert.NoError(t, Validate(config))

	_, err = InitializeConfig()
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{"invalid log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"invalid log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"unknown source kind", func(c *Config) { c.Source.Kind = "ftp" }, "invalid source.kind"},
		{"http without url", func(c *Config) { c.Source.BaseURL = "" }, "source.base_url is required"},
		{"file without dir", func(c *Config) { c.Source.Kind = SourceFile; c.Source.Dir = "" }, "source.dir is required"},
		{"file bad format", func(c *Config) { c.Source.Kind = SourceFile; c.Source.Format = "xml" }, "invalid source.format"},
		{"sql bad driver", func(c *Config) { c.Source.Kind = SourceSQL; c.Source.Driver = "mysql" }, "invalid source.driver"},
		{"sql without dsn", func(c *Config) { c.Source.Kind = SourceSQL; c.Source.DSN = "" }, "source.dsn is required"},
		{"zero timeout", func(c *Config) { c.Source.TimeoutSeconds = 0 }, "source.timeout_seconds must be between 1 and 300"},
		{"bad locale", func(c *Config) { c.View.Locale = "not a locale!" }, "invalid view.locale"},
		{"bad timezone", func(c *Config) { c.View.Timezone = "Mars/Olympus" }, "invalid view.timezone"},
		{"bad output format", func(c *Config) { c.Output.Format = "html" }, "invalid output.format"},
		{"multi-char delimiter", func(c *Config) { c.Output.Delimiter = "||" }, "output delimiter must be a single character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			require.NoError(t, Validate(config))

			tt.modifyConfig(config)
			err := Validate(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("FINTRACK_DOTENV_VALUE", "")
	require.NoError(t, os.Unsetenv("FINTRACK_DOTENV_VALUE"))

	loaded, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "", loaded)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FINTRACK_DOTENV_VALUE=from-file\n"), 0o644))
	loaded, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", loaded)
	assert.Equal(t, "from-file", os.Getenv("FINTRACK_DOTENV_VALUE"))
}
