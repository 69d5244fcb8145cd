package config

import (
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"tradepulse/internal/errors"
)

// Config is the complete pipeline configuration.
type Config struct {
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// PathsConfig locates the input tables and output directories.
type PathsConfig struct {
	ImportsFile           string `yaml:"imports_file" envconfig:"IMPORTS_FILE"`
	ExportsFile           string `yaml:"exports_file" envconfig:"EXPORTS_FILE"`
	HistoricalImportsFile string `yaml:"historical_imports_file" envconfig:"HISTORICAL_IMPORTS_FILE"`
	HistoricalExportsFile string `yaml:"historical_exports_file" envconfig:"HISTORICAL_EXPORTS_FILE"`
	DeflatorFile          string `yaml:"deflator_file" envconfig:"DEFLATOR_FILE"`
	OutputDir      string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	DatabaseFile   string `yaml:"database_file" envconfig:"DATABASE_FILE"`
}

// PipelineConfig tunes the reconciliation stages.
type PipelineConfig struct {
	BaseYear  int  `yaml:"base_year" envconfig:"BASE_YEAR" validate:"gt=0"`
	Annualize bool `yaml:"annualize" envconfig:"ANNUALIZE"`
	// ScaleFactor converts monthly input units to output units, for
	// example 1e9 when the wide tables are in billions of dollars.
	ScaleFactor float64 `yaml:"scale_factor" envconfig:"SCALE_FACTOR" validate:"gt=0"`
	// Exclusions are aggregate row labels to drop from monthly tables.
	// Empty means the built-in set.
	Exclusions []string `yaml:"exclusions" envconfig:"EXCLUSIONS"`
}

// AnalysisConfig tunes the derived-metric stages.
type AnalysisConfig struct {
	LookbackYears   int     `yaml:"lookback_years" envconfig:"LOOKBACK_YEARS" validate:"gt=0"`
	GrowthThreshold float64 `yaml:"growth_threshold" envconfig:"GROWTH_THRESHOLD" validate:"gte=0"`
	MinFinalShare   float64 `yaml:"min_final_share" envconfig:"MIN_FINAL_SHARE" validate:"gte=0"`
	BreakWindow     int     `yaml:"break_window" envconfig:"BREAK_WINDOW" validate:"gte=2"`
	BreakThreshold  float64 `yaml:"break_threshold" envconfig:"BREAK_THRESHOLD" validate:"gt=0"`
	TopMovers       int     `yaml:"top_movers" envconfig:"TOP_MOVERS" validate:"gt=0"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
}

// Default returns the configuration used when nothing overrides it.
// Defaults live here rather than in struct tags so a yaml file can
// override them without the env layer stomping the file's values.
func Default() Config {
	return Config{
		Paths: PathsConfig{
			OutputDir:    "output",
			DatabaseFile: "output/trade.db",
		},
		Pipeline: PipelineConfig{
			BaseYear:    2020,
			ScaleFactor: 1,
		},
		Analysis: AnalysisConfig{
			LookbackYears:   10,
			GrowthThreshold: 100,
			MinFinalShare:   1.0,
			BreakWindow:     5,
			BreakThreshold:  2.0,
			TopMovers:       10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration in three layers: code defaults, then an
// optional yaml file, then TRADE_-prefixed environment variables. The
// environment wins. The result is validated before use.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, errors.NewConfigError("failed to read config file", err).
				WithContext("path", configFile)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.NewConfigError("failed to parse config file", err).
				WithContext("path", configFile)
		}
	}

	if err := envconfig.Process("TRADE", &cfg); err != nil {
		return nil, errors.NewConfigError("failed to read environment", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.NewConfigError("invalid configuration", err)
	}

	return &cfg, nil
}

// Logger builds a slog.Logger per the logging section, writing to w.
func (c *Config) Logger(w *os.File) *slog.Logger {
	var level slog.Level
	switch c.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Logging.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
