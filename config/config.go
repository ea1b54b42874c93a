// Package config loads the settings of the tabular command line tool from a YAML file and
// from environment variables prefixed with TABULAR, such as TABULAR_ANALYSIS_K. Environment
// variables take precedence over the file, which takes precedence over the defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes the environment variables read by Load
const EnvPrefix = "TABULAR"

// Config holds every setting of the command line tool
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Input    InputConfig    `yaml:"input" envconfig:"INPUT"`
	Output   OutputConfig   `yaml:"output" envconfig:"OUTPUT"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// LoggingConfig configures the logger
type LoggingConfig struct {
	Level string `yaml:"level" envconfig:"LEVEL"`
}

// InputConfig configures how input files are parsed
type InputConfig struct {
	Delimiter  string `yaml:"delimiter" envconfig:"DELIMITER"` // Overrides the delimiter implied by the file extension
	NilValue   string `yaml:"nil_value" envconfig:"NIL_VALUE"`
	Sheet      string `yaml:"sheet" envconfig:"SHEET"`
	InferTypes bool   `yaml:"infer_types" envconfig:"INFER_TYPES"`
}

// OutputConfig configures how results are written
type OutputConfig struct {
	NilValue string `yaml:"nil_value" envconfig:"NIL_VALUE"`
	Sheet    string `yaml:"sheet" envconfig:"SHEET"`
	MaxRows  int    `yaml:"max_rows" envconfig:"MAX_ROWS"` // Rows printed to stdout; negative prints every row
}

// AnalysisConfig holds defaults for the analysis commands
type AnalysisConfig struct {
	NQuantiles  int     `yaml:"n_quantiles" envconfig:"N_QUANTILES"`
	Signif      int     `yaml:"signif" envconfig:"SIGNIF"`
	Parallelism int     `yaml:"parallelism" envconfig:"PARALLELISM"`
	K           int     `yaml:"k" envconfig:"K"`
	Seed        int64   `yaml:"seed" envconfig:"SEED"` // Zero draws a random seed
	StdCutoff   float64 `yaml:"std_cutoff" envconfig:"STD_CUTOFF"`
	Reps        int     `yaml:"reps" envconfig:"REPS"`
	TopN        int     `yaml:"top_n" envconfig:"TOP_N"`
}

// Default returns a Config holding the default settings
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Input:   InputConfig{InferTypes: true},
		Output:  OutputConfig{MaxRows: 50},
		Analysis: AnalysisConfig{
			NQuantiles:  10,
			Signif:      2,
			Parallelism: 1,
			K:           5,
			StdCutoff:   3,
			Reps:        1,
			TopN:        5,
		},
	}
}

// Load reads the defaults, then the YAML file at path (if path is not empty), then the
// environment, and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	switch strings.ToUpper(c.Logging.Level) {
	case "TRACE", "DEBUG", "INFO", "WARN", "WARNING", "ERROR", "FATAL":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	if c.Input.Delimiter != "" && utf8.RuneCountInString(c.Input.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, was %q", c.Input.Delimiter)
	}
	a := c.Analysis
	if a.NQuantiles < 1 {
		return fmt.Errorf("n_quantiles must be positive: %d", a.NQuantiles)
	}
	if a.Parallelism < 1 {
		return fmt.Errorf("parallelism must be positive: %d", a.Parallelism)
	}
	if a.K < 2 {
		return fmt.Errorf("k must be at least 2: %d", a.K)
	}
	if a.StdCutoff <= 0 {
		return fmt.Errorf("std_cutoff must be positive: %g", a.StdCutoff)
	}
	if a.Reps < 1 {
		return fmt.Errorf("reps must be positive: %d", a.Reps)
	}
	return nil
}

// DelimiterRune returns the configured input delimiter, or 0 if none is configured
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Input.Delimiter)
	if r == utf8.RuneError {
		return 0
	}
	return r
}
