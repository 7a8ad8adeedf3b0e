// Package config loads the settle configuration file.
//
// The file is named by the --config flag or the SETTLE_CONFIG environment
// variable. Files ending in .json or .jsonc are read as JSON with comments and
// trailing commas; everything else is read as YAML. Without a file the
// defaults apply, and command-line flags override whatever the file sets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "SETTLE_CONFIG"

// Config is the full configuration of the settle command.
type Config struct {
	// LogLevel is debug, info, warn or error. LOG_LEVEL overrides it.
	LogLevel string `yaml:"log_level"`

	// Format is the default output format (table, json, csv, html).
	Format string `yaml:"format"`

	Columns  ColumnsConfig  `yaml:"columns"`
	Sheets   SheetsConfig   `yaml:"sheets"`
	Security SecurityConfig `yaml:"security"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ColumnsConfig adds header aliases on top of the built-in tables.
// Keys are header text as it appears in the sheet, values are field names
// such as "name", "residentId" or "grossAmount".
type ColumnsConfig struct {
	Roster   map[string]string `yaml:"roster"`
	Activity map[string]string `yaml:"activity"`
}

// SheetsConfig configures Google Sheets retrieval.
type SheetsConfig struct {
	// APIKey authenticates "sheets:ID" sources. Without it Application
	// Default Credentials are used.
	APIKey string `yaml:"api_key"`

	// Range is the A1 range read through the Sheets API. Empty reads the
	// whole first sheet.
	Range string `yaml:"range"`

	// ExportBaseURL is the prefix for xlsx export downloads.
	ExportBaseURL string `yaml:"export_base_url"`

	// Timeout bounds every HTTP request.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`
}

// SecurityConfig configures unmasked display.
type SecurityConfig struct {
	// PassphraseHash is the bcrypt hash printed by "settle hash-passphrase".
	// Without it sensitive fields are always masked.
	PassphraseHash string `yaml:"passphrase_hash"`

	// ScryptWorkFactor is the log2 scrypt work factor for sealed fields.
	// Zero keeps the library default.
	ScryptWorkFactor int `yaml:"scrypt_work_factor"`
}

// ArchiveConfig configures the run archive.
type ArchiveConfig struct {
	// Path is the SQLite file runs are exported to. Empty disables the archive.
	Path string `yaml:"path"`
}

// MetricsConfig configures the metrics textfile.
type MetricsConfig struct {
	// File is where run gauges are written in Prometheus text format.
	// Empty disables metrics output.
	File string `yaml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Format:   "table",
		Sheets: SheetsConfig{
			ExportBaseURL: "https://docs.google.com/spreadsheets/d/",
			Timeout:       30 * time.Second,
		},
	}
}

// Load reads the file named by path, falling back to SETTLE_CONFIG.
// With neither set it returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a YAML or JSONC config file on top of the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, err := Parse(data, isJSON(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes config data on top of the defaults and validates it.
// JSON input may contain comments and trailing commas.
func Parse(data []byte, json bool) (*Config, error) {
	if json {
		// Plain JSON is valid YAML, so one set of struct tags serves both.
		data = jsonc.ToJSON(data)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isJSON(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return true
	}
	return false
}

// Formats lists the accepted output formats.
var Formats = []string{"table", "json", "csv", "html"}

// Validate checks the configuration for values the command cannot use.
func (c *Config) Validate() error {
	var errs []error

	if !validFormat(c.Format) {
		errs = append(errs, fmt.Errorf("format %q is not one of %s", c.Format, strings.Join(Formats, ", ")))
	}
	if c.Sheets.Timeout < 0 {
		errs = append(errs, fmt.Errorf("sheets.timeout must not be negative"))
	}
	if f := c.Security.ScryptWorkFactor; f != 0 && (f < 1 || f > 30) {
		errs = append(errs, fmt.Errorf("security.scrypt_work_factor %d out of range 1-30", f))
	}
	for header, field := range c.Columns.Roster {
		if field == "" {
			errs = append(errs, fmt.Errorf("columns.roster[%q] has no field", header))
		}
	}
	for header, field := range c.Columns.Activity {
		if field == "" {
			errs = append(errs, fmt.Errorf("columns.activity[%q] has no field", header))
		}
	}

	return errors.Join(errs...)
}

func validFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
