package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/RyanBlaney/sonido-shrp/algorithms/shr"
	"github.com/RyanBlaney/sonido-shrp/logging"
)

// ErrInvalidConfig is returned when a configuration value is out of range
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the measurement settings shared by every analysis
type Config struct {
	// Measurement grid
	FrameShift     float64 `json:"frame_shift"`     // ms between reported points
	WindowSize     float64 `json:"window_size"`     // analysis frame width (ms)
	FramePrecision int     `json:"frame_precision"` // alignment tolerance, in frame shifts

	// Output
	NaNString string `json:"nan"`
	LogLevel  string `json:"log_level"` // "debug", "info", "warn", "error"

	SHR SHRConfig `json:"shr"`
}

// SHRConfig holds the SHR pitch settings
type SHRConfig struct {
	MinF0     float64 `json:"min_f0"`
	MaxF0     float64 `json:"max_f0"`
	Threshold float64 `json:"threshold"`
	Ceiling   float64 `json:"ceiling"`
	Workers   int     `json:"workers,omitempty"`
}

// Default returns the measurement defaults: 25 ms windows every 1 ms,
// F0 searched between 40 and 500 Hz.
func Default() *Config {
	return &Config{
		FrameShift:     1,
		WindowSize:     25,
		FramePrecision: 1,
		NaNString:      "NaN",
		LogLevel:       "info",
		SHR: SHRConfig{
			MinF0:     40,
			MaxF0:     500,
			Threshold: 0.4,
			Ceiling:   1250,
		},
	}
}

// Load reads a JSON settings file on top of Default. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "config",
		"function":  "Load",
		"path":      path,
	})

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		logger.Error(err, "Failed to parse config file")
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Config loaded", logging.Fields{
		"frame_shift": cfg.FrameShift,
		"window_size": cfg.WindowSize,
		"shr_min_f0":  cfg.SHR.MinF0,
		"shr_max_f0":  cfg.SHR.MaxF0,
	})
	return cfg, nil
}

// Validate checks the grid and output settings, then the SHR section
func (c *Config) Validate() error {
	switch {
	case !(c.FrameShift > 0) || math.IsInf(c.FrameShift, 0):
		return fmt.Errorf("%w: frame shift %g ms", ErrInvalidConfig, c.FrameShift)
	case !(c.WindowSize > 0) || math.IsInf(c.WindowSize, 0):
		return fmt.Errorf("%w: window size %g ms", ErrInvalidConfig, c.WindowSize)
	case c.FramePrecision < 0:
		return fmt.Errorf("%w: frame precision %d", ErrInvalidConfig, c.FramePrecision)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: shr: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Params converts the configuration to SHR analysis parameters
func (c *Config) Params() shr.Params {
	p := c.SHR.Params()
	p.FrameLength = c.WindowSize
	p.FrameShift = c.FrameShift
	return p
}

// Params converts the SHR section, keeping the remaining analysis defaults
func (s SHRConfig) Params() shr.Params {
	p := shr.DefaultParams()
	p.MinF0 = s.MinF0
	p.MaxF0 = s.MaxF0
	p.Threshold = s.Threshold
	p.Ceiling = s.Ceiling
	p.Workers = s.Workers
	return p
}

// Pitch measures F0 and SHR of a mono signal on the configured grid of
// frame shifts covering the whole signal
func (c *Config) Pitch(samples []float64, sampleRate float64) (f0, ratio []float64, err error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	dataLen := shr.DataLen(len(samples), sampleRate, c.FrameShift)
	return shr.Pitch(samples, sampleRate, dataLen, c.FramePrecision, c.Params())
}

// Level parses LogLevel. An empty string means info.
func (c *Config) Level() (logging.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return logging.DebugLevel, nil
	case "", "info":
		return logging.InfoLevel, nil
	case "warn", "warning":
		return logging.WarnLevel, nil
	case "error":
		return logging.ErrorLevel, nil
	default:
		return logging.InfoLevel, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
}

// FormatValue renders a measurement with three decimals, or NaNString
// when the value does not exist.
func (c *Config) FormatValue(v float64) string {
	if math.IsNaN(v) {
		return c.NaNString
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// FormatValues renders every value of a measurement track
func (c *Config) FormatValues(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = c.FormatValue(v)
	}
	return out
}
