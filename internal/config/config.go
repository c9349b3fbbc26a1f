package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gomood/adapters/stats/detectors"
	"gomood/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Config represents the complete application configuration
type Config struct {
	Analyzer AnalyzerConfig
	Log      LogConfig
}

// AnalyzerConfig holds pattern-detection thresholds and execution settings
type AnalyzerConfig struct {
	ConfidenceFloor float64 `validate:"gte=0.5,lte=1"`
	Parallelism     int     `validate:"gte=1,lte=64"`

	TrendMaxWindow      int     `validate:"gte=3"`
	TrendSlopeThreshold float64 `validate:"gt=0"`

	CycleMinPeriod            int     `validate:"gte=1"`
	CycleCorrelationThreshold float64 `validate:"gt=0"`
	CycleMetric               string  `validate:"oneof=raw normalized"`

	ShiftChangeThreshold float64 `validate:"gt=0"`
	ShiftSustainRatio    float64 `validate:"gt=0,lte=1"`
	ShiftDeltaThreshold  float64 `validate:"gte=0"`

	StabilityThreshold float64 `validate:"gt=0"`
	StabilityMinRun    int     `validate:"gte=2"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `validate:"omitempty,oneof=ERROR WARN WARNING INFO DEBUG TRACE"`
}

// DefaultAnalyzerConfig returns the standard detection thresholds
func DefaultAnalyzerConfig() AnalyzerConfig {
	d := detectors.DefaultConfig()
	return AnalyzerConfig{
		ConfidenceFloor:           0.5,
		Parallelism:               4,
		TrendMaxWindow:            d.TrendMaxWindow,
		TrendSlopeThreshold:       d.TrendSlopeThreshold,
		CycleMinPeriod:            d.CycleMinPeriod,
		CycleCorrelationThreshold: d.CycleCorrelationThreshold,
		CycleMetric:               string(d.CycleMetric),
		ShiftChangeThreshold:      d.ShiftChangeThreshold,
		ShiftSustainRatio:         d.ShiftSustainRatio,
		ShiftDeltaThreshold:       d.ShiftDeltaThreshold,
		StabilityThreshold:        d.StabilityThreshold,
		StabilityMinRun:           d.StabilityMinRun,
	}
}

// Detectors converts the analyzer settings into detector thresholds
func (c AnalyzerConfig) Detectors() detectors.Config {
	d := detectors.DefaultConfig()
	d.TrendMaxWindow = c.TrendMaxWindow
	d.TrendSlopeThreshold = c.TrendSlopeThreshold
	d.CycleMinPeriod = c.CycleMinPeriod
	d.CycleCorrelationThreshold = c.CycleCorrelationThreshold
	d.CycleMetric = detectors.CycleMetric(c.CycleMetric)
	d.ShiftChangeThreshold = c.ShiftChangeThreshold
	d.ShiftSustainRatio = c.ShiftSustainRatio
	d.ShiftDeltaThreshold = c.ShiftDeltaThreshold
	d.StabilityThreshold = c.StabilityThreshold
	d.StabilityMinRun = c.StabilityMinRun
	return d
}

var validate = validator.New()

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Analyzer: loadAnalyzerConfig(),
		Log:      loadLogConfig(),
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Validate checks struct constraints on a configuration
func Validate(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("invalid configuration: %v", err))
	}
	return nil
}

func loadAnalyzerConfig() AnalyzerConfig {
	d := DefaultAnalyzerConfig()
	return AnalyzerConfig{
		ConfidenceFloor:           getEnvFloatOrDefault("PATTERN_CONFIDENCE_FLOOR", d.ConfidenceFloor),
		Parallelism:               getEnvIntOrDefault("ANALYZER_PARALLELISM", d.Parallelism),
		TrendMaxWindow:            getEnvIntOrDefault("TREND_MAX_WINDOW", d.TrendMaxWindow),
		TrendSlopeThreshold:       getEnvFloatOrDefault("TREND_SLOPE_THRESHOLD", d.TrendSlopeThreshold),
		CycleMinPeriod:            getEnvIntOrDefault("CYCLE_MIN_PERIOD", d.CycleMinPeriod),
		CycleCorrelationThreshold: getEnvFloatOrDefault("CYCLE_CORRELATION_THRESHOLD", d.CycleCorrelationThreshold),
		CycleMetric:               strings.ToLower(getEnvOrDefault("CYCLE_METRIC", d.CycleMetric)),
		ShiftChangeThreshold:      getEnvFloatOrDefault("SHIFT_CHANGE_THRESHOLD", d.ShiftChangeThreshold),
		ShiftSustainRatio:         getEnvFloatOrDefault("SHIFT_SUSTAIN_RATIO", d.ShiftSustainRatio),
		ShiftDeltaThreshold:       getEnvFloatOrDefault("SHIFT_DELTA_THRESHOLD", d.ShiftDeltaThreshold),
		StabilityThreshold:        getEnvFloatOrDefault("STABILITY_THRESHOLD", d.StabilityThreshold),
		StabilityMinRun:           getEnvIntOrDefault("STABILITY_MIN_RUN", d.StabilityMinRun),
	}
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level: strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
