// =============================================================================
// Sales Calculator - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file. Every setting has a
// default, so the calculator runs without any configuration at all; command
// line flags override whatever the file sets.
//
// EXAMPLE (config.yaml):
//   output_dir: ./results
//   results_file: "SalesResults_{timestamp}.txt"
//   report_formats: [text, xlsx]
//   duplicate_titles: override
//   log_level: info
//   log_format: json
//   input:
//     csv_delimiter: ";"
//     xlsx_sheet: Prices
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/compute-sales/internal/loader"
	"github.com/ginjaninja78/compute-sales/internal/sales"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "config.yaml"

// Report format names accepted in report_formats.
const (
	FormatText = "text"
	FormatXLSX = "xlsx"
	FormatXML  = "xml"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds all application settings.
type Config struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is the directory the result artifacts are written to.
	// Default: "."
	OutputDir string `yaml:"output_dir"`

	// ResultsFile is the file name of the text artifact. Placeholders
	// {uuid}, {timestamp}, {date} and {time} are expanded.
	// Default: "SalesResults.txt"
	ResultsFile string `yaml:"results_file"`

	// ReportFormats lists the artifacts to write. "text" is always written;
	// "xlsx" and "xml" add a workbook and an XML document next to it.
	ReportFormats []string `yaml:"report_formats"`

	// Quiet disables mirroring the result to the console.
	Quiet bool `yaml:"quiet"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// DuplicateTitles selects how repeated catalogue titles are resolved:
	// "override" (last wins), "keep_first" or "reject".
	// Default: "override"
	DuplicateTitles string `yaml:"duplicate_titles"`

	// Input holds parsing settings shared by both input documents.
	Input InputSettings `yaml:"input"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls diagnostic verbosity: debug, info, warn, error.
	// Default: "warn"
	LogLevel string `yaml:"log_level"`

	// LogFormat is "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`
}

// InputSettings tunes the document loader.
type InputSettings struct {
	// Format forces the input format for both documents. Empty means
	// detect it from each file's extension.
	Format string `yaml:"format"`

	// CSVDelimiter is the field separator for CSV input.
	// Default: ","
	CSVDelimiter string `yaml:"csv_delimiter"`

	// XLSXSheet is the worksheet to read from XLSX input.
	// Default: the first sheet.
	XLSXSheet string `yaml:"xlsx_sheet"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

// Load reads the configuration file at configPath. The file must exist.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOptional is Load, except that a missing file yields Default().
func LoadOptional(configPath string) (*Config, error) {
	config, err := Load(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return config, err
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.OutputDir == "" {
		config.OutputDir = "."
	}
	if config.ResultsFile == "" {
		config.ResultsFile = "SalesResults.txt"
	}
	if len(config.ReportFormats) == 0 {
		config.ReportFormats = []string{FormatText}
	}
	if config.DuplicateTitles == "" {
		config.DuplicateTitles = string(sales.DuplicateOverride)
	}
	if config.LogLevel == "" {
		config.LogLevel = "warn"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
	if config.Input.CSVDelimiter == "" {
		config.Input.CSVDelimiter = ","
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks every enumerated setting. It is called by Load and again
// by the CLI after flags are applied.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format: unknown format %q", c.LogFormat))
	}

	for _, format := range c.ReportFormats {
		switch strings.ToLower(format) {
		case FormatText, FormatXLSX, FormatXML:
		default:
			errs = append(errs, fmt.Errorf("report_formats: unknown format %q", format))
		}
	}

	if _, err := sales.ParseDuplicatePolicy(c.DuplicateTitles); err != nil {
		errs = append(errs, fmt.Errorf("duplicate_titles: %w", err))
	}

	if _, err := loader.ParseFormat(c.Input.Format); err != nil {
		errs = append(errs, fmt.Errorf("input.format: %w", err))
	}

	if strings.TrimSpace(c.ResultsFile) == "" {
		errs = append(errs, errors.New("results_file: must not be blank"))
	}

	return errors.Join(errs...)
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// DuplicatePolicy returns the parsed duplicate_titles setting.
func (c *Config) DuplicatePolicy() sales.DuplicatePolicy {
	policy, err := sales.ParseDuplicatePolicy(c.DuplicateTitles)
	if err != nil {
		return sales.DuplicateOverride
	}
	return policy
}

// LoaderOptions returns the loader settings for both input documents.
func (c *Config) LoaderOptions() loader.Options {
	format, _ := loader.ParseFormat(c.Input.Format)
	return loader.Options{
		Format:    format,
		Delimiter: c.Input.CSVDelimiter,
		Sheet:     c.Input.XLSXSheet,
	}
}

// WantsFormat reports whether an artifact format is enabled. The text
// artifact is always enabled.
func (c *Config) WantsFormat(format string) bool {
	if format == FormatText {
		return true
	}
	for _, f := range c.ReportFormats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}
