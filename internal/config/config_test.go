package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Gesture.TapTimeoutMS != 300 {
		t.Errorf("TapTimeoutMS = %d, want 300", cfg.Gesture.TapTimeoutMS)
	}
	if cfg.Gesture.MaxTravel != 20 {
		t.Errorf("MaxTravel = %d, want 20", cfg.Gesture.MaxTravel)
	}
	if !cfg.Gesture.StopPropagation {
		t.Error("StopPropagation = false, want true")
	}
	if cfg.Gesture.UseCapture {
		t.Error("UseCapture = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tapstorm.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[gesture]
tap_timeout_ms = 450
max_travel = 8
stop_propagation = false
use_capture = true

[analytics]
log_limit = 16

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Gesture.TapTimeoutMS != 450 || cfg.Gesture.MaxTravel != 8 {
		t.Errorf("gesture = %+v, want 450/8", cfg.Gesture)
	}
	if cfg.Gesture.StopPropagation || !cfg.Gesture.UseCapture {
		t.Errorf("gesture flags = %+v", cfg.Gesture)
	}
	if cfg.Analytics.LogLimit != 16 {
		t.Errorf("LogLimit = %d, want 16", cfg.Analytics.LogLimit)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[gesture]\ntap_timeout_ms = 100\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Gesture.TapTimeoutMS != 100 {
		t.Errorf("TapTimeoutMS = %d, want 100", cfg.Gesture.TapTimeoutMS)
	}
	if cfg.Gesture.MaxTravel != 20 {
		t.Errorf("MaxTravel = %d, want default 20", cfg.Gesture.MaxTravel)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Level = %q, want default info", cfg.Log.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() on a missing file: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "[gesture\ntap_timeout_ms = 100\n")

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("Load() error = %v, want one naming %s", err, path)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[gesture]\ntap_timeout_ms = 450\n")

	t.Setenv("TAPSTORM_TAP_TIMEOUT_MS", "120")
	t.Setenv("TAPSTORM_MAX_TRAVEL", "5")
	t.Setenv("TAPSTORM_STOP_PROPAGATION", "false")
	t.Setenv("TAPSTORM_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Gesture.TapTimeoutMS != 120 {
		t.Errorf("TapTimeoutMS = %d, want env 120", cfg.Gesture.TapTimeoutMS)
	}
	if cfg.Gesture.MaxTravel != 5 {
		t.Errorf("MaxTravel = %d, want env 5", cfg.Gesture.MaxTravel)
	}
	if cfg.Gesture.StopPropagation {
		t.Error("StopPropagation = true, want env false")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Level = %q, want env warn", cfg.Log.Level)
	}
}

func TestEnvMalformed(t *testing.T) {
	t.Setenv("TAPSTORM_TAP_TIMEOUT_MS", "soon")

	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "TAPSTORM_TAP_TIMEOUT_MS") {
		t.Errorf("Load() error = %v, want one naming the variable", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timeout", func(c *Config) { c.Gesture.TapTimeoutMS = 0 }},
		{"negative travel", func(c *Config) { c.Gesture.MaxTravel = -1 }},
		{"negative log limit", func(c *Config) { c.Analytics.LogLimit = -1 }},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestGestureConfig(t *testing.T) {
	cfg := Default()
	cfg.Gesture.TapTimeoutMS = 250
	cfg.Gesture.MaxTravel = 12

	gc := cfg.GestureConfig()
	if gc.TapTimeout != 250*time.Millisecond {
		t.Errorf("TapTimeout = %v, want 250ms", gc.TapTimeout)
	}
	if gc.MaxTravel != 12 {
		t.Errorf("MaxTravel = %d, want 12", gc.MaxTravel)
	}
	if !gc.StopPropagation || gc.UseCapture {
		t.Errorf("flags = %+v", gc)
	}
}
