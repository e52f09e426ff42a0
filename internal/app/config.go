package app

import (
	"fmt"
	"strings"
)

// Config holds the command-line level settings of one run. Project settings
// live in the jsonui.hcl file and are loaded by NewApp.
type Config struct {
	// ConfigPath is the project file; empty means search upward from WorkDir.
	ConfigPath string
	WorkDir    string

	LogFormat string
	LogLevel  string
	// WorkerCount overrides the project's worker count when above zero.
	WorkerCount int

	// Force regenerates layouts the build cache reports as fresh.
	Force bool
	// NoCache disables the build cache entirely.
	NoCache bool

	// DataFile overrides the project's preview data fixture.
	DataFile string
	// Width is the preview width in cells; zero uses the project setting.
	Width int
	// Interactive runs the preview as a terminal program instead of printing
	// one frame.
	Interactive bool
	// HotReloadURL subscribes the interactive preview to a running server.
	HotReloadURL string
}

var (
	logFormats = []string{"auto", "text", "json"}
	logLevels  = []string{"debug", "info", "warn", "error"}
)

// NewConfig validates cfg and returns a copy with normalized fields.
func NewConfig(cfg Config) (*Config, error) {
	var errs []string

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "auto"
	}
	if !contains(logFormats, cfg.LogFormat) {
		errs = append(errs, fmt.Sprintf("invalid log-format '%s': must be one of %s", cfg.LogFormat, strings.Join(logFormats, ", ")))
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !contains(logLevels, cfg.LogLevel) {
		errs = append(errs, fmt.Sprintf("invalid log-level '%s': must be one of %s", cfg.LogLevel, strings.Join(logLevels, ", ")))
	}

	if cfg.WorkerCount < 0 {
		errs = append(errs, "workers must not be negative")
	}
	if cfg.Width < 0 {
		errs = append(errs, "width must not be negative")
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration:\n- %s", strings.Join(errs, "\n- "))
	}
	return &cfg, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
