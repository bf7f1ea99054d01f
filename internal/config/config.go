package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alexiusacademia/rcsched/internal/aci"
	"github.com/alexiusacademia/rcsched/internal/design"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. RCSCHED_LOG_LEVEL
const EnvPrefix = "RCSCHED"

// Config holds all application configuration.
type Config struct {
	Design DesignConfig `mapstructure:"design"`
	Batch  BatchConfig  `mapstructure:"batch"`
	Log    LogConfig    `mapstructure:"log"`
	Report ReportConfig `mapstructure:"report"`
}

// DesignConfig holds the project-level design choices.
type DesignConfig struct {
	// MaxLayers caps the number of flexural layers tried per station.
	MaxLayers int `mapstructure:"max_layers"`

	// FlagMapping is "any" (either moment flag overstresses both faces) or
	// "per-face" (negative to top, positive to bottom).
	FlagMapping string `mapstructure:"flag_mapping"`

	ContinuitySpan float64 `mapstructure:"continuity_span"`
	DeepBeamDepth  float64 `mapstructure:"deep_beam_depth"`
}

// BatchConfig holds batch processing configuration.
type BatchConfig struct {
	// Workers is the number of beams designed concurrently. Zero uses all cores.
	Workers int `mapstructure:"workers"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReportConfig holds schedule report configuration.
type ReportConfig struct {
	Project string `mapstructure:"project"`
	Title   string `mapstructure:"title"`
}

// Load reads configuration from defaults, an optional file and the
// environment. With an empty path, rcsched.yaml is looked up in the working
// directory and the user config directory; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("design.max_layers", aci.DefaultMaxLayers)
	v.SetDefault("design.flag_mapping", "any")
	v.SetDefault("design.continuity_span", aci.ContinuitySpan)
	v.SetDefault("design.deep_beam_depth", aci.DeepBeamDepth)
	v.SetDefault("batch.workers", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("report.project", "")
	v.SetDefault("report.title", "Beam Reinforcement Schedule")

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("rcsched")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "rcsched"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// DesignOptions converts the design section into designer options.
func (c *Config) DesignOptions() (design.Options, error) {
	mapping, err := design.ParseFlagMapping(c.Design.FlagMapping)
	if err != nil {
		return design.Options{}, err
	}
	if c.Design.MaxLayers < 1 {
		return design.Options{}, fmt.Errorf("design.max_layers must be at least 1, got %d", c.Design.MaxLayers)
	}
	return design.Options{
		MaxLayers:      c.Design.MaxLayers,
		FlagMapping:    mapping,
		ContinuitySpan: c.Design.ContinuitySpan,
		DeepBeamDepth:  c.Design.DeepBeamDepth,
	}, nil
}

// Workers returns the batch pool size, defaulting to the number of cores.
func (c *Config) Workers() int {
	if c.Batch.Workers > 0 {
		return c.Batch.Workers
	}
	return runtime.NumCPU()
}

// SetupLogger creates a logger with the configured level and format.
func SetupLogger(cfg LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
