// Package config loads tapstorm settings from TOML files and TAPSTORM_*
// environment variables. Environment values override file values, which
// override the defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/tapstorm/internal/gesture"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds all tapstorm settings.
type Config struct {
	Gesture   GestureSettings   `toml:"gesture"`
	Analytics AnalyticsSettings `toml:"analytics"`
	Log       LogSettings       `toml:"log"`
}

// GestureSettings tunes the tap recognizer.
type GestureSettings struct {
	// TapTimeoutMS is the countdown started by a press, in milliseconds.
	TapTimeoutMS int `toml:"tap_timeout_ms"`

	// MaxTravel is the drift allowed while the countdown runs. Movement
	// strictly beyond this many units cancels the countdown.
	MaxTravel int `toml:"max_travel"`

	// StopPropagation stops the release event after a recognized tap.
	StopPropagation bool `toml:"stop_propagation"`

	// UseCapture registers listeners for the capture phase.
	UseCapture bool `toml:"use_capture"`
}

// AnalyticsSettings tunes the tap recorder.
type AnalyticsSettings struct {
	// LogLimit bounds the recorded tap log. Zero keeps every tap.
	LogLimit int `toml:"log_limit"`
}

// LogSettings configures diagnostic output.
type LogSettings struct {
	// Level is one of debug, info, warn, or error.
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	gc := gesture.DefaultConfig()
	return Config{
		Gesture: GestureSettings{
			TapTimeoutMS:    int(gc.TapTimeout / time.Millisecond),
			MaxTravel:       gc.MaxTravel,
			StopPropagation: gc.StopPropagation,
			UseCapture:      gc.UseCapture,
		},
		Analytics: AnalyticsSettings{LogLimit: 256},
		Log:       LogSettings{Level: "info"},
	}
}

// Load builds the configuration from defaults, the TOML file at path, and
// the environment, in increasing priority. A missing file is not an error;
// an empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults stand in for an absent file.
		case err != nil:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays TAPSTORM_* environment variables.
func (c *Config) applyEnv() error {
	if err := envInt("TAPSTORM_TAP_TIMEOUT_MS", &c.Gesture.TapTimeoutMS); err != nil {
		return err
	}
	if err := envInt("TAPSTORM_MAX_TRAVEL", &c.Gesture.MaxTravel); err != nil {
		return err
	}
	if err := envBool("TAPSTORM_STOP_PROPAGATION", &c.Gesture.StopPropagation); err != nil {
		return err
	}
	if err := envBool("TAPSTORM_USE_CAPTURE", &c.Gesture.UseCapture); err != nil {
		return err
	}
	if err := envInt("TAPSTORM_LOG_LIMIT", &c.Analytics.LogLimit); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("TAPSTORM_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	return nil
}

func envInt(name string, dst *int) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("config: %s=%q: %w", name, v, err)
	}
	*dst = n
	return nil
}

func envBool(name string, dst *bool) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("config: %s=%q: %w", name, v, err)
	}
	*dst = b
	return nil
}

// Validate checks for values the recognizer cannot run with.
func (c *Config) Validate() error {
	if c.Gesture.TapTimeoutMS <= 0 {
		return fmt.Errorf("%w: gesture.tap_timeout_ms must be positive, got %d",
			ErrInvalidConfig, c.Gesture.TapTimeoutMS)
	}
	if c.Gesture.MaxTravel < 0 {
		return fmt.Errorf("%w: gesture.max_travel must not be negative, got %d",
			ErrInvalidConfig, c.Gesture.MaxTravel)
	}
	if c.Analytics.LogLimit < 0 {
		return fmt.Errorf("%w: analytics.log_limit must not be negative, got %d",
			ErrInvalidConfig, c.Analytics.LogLimit)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q is not one of debug, info, warn, error",
			ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

// GestureConfig projects the settings into the recognizer's configuration.
func (c *Config) GestureConfig() gesture.Config {
	return gesture.Config{
		TapTimeout:      time.Duration(c.Gesture.TapTimeoutMS) * time.Millisecond,
		MaxTravel:       c.Gesture.MaxTravel,
		StopPropagation: c.Gesture.StopPropagation,
		UseCapture:      c.Gesture.UseCapture,
	}
}
