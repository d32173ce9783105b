// Package logging builds the zerolog logger used across cubesim.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/SeamusWaldron/cubesim/internal/config"
)

const (
	EnvLogLevel   = "CUBESIM_LOG_LEVEL"
	EnvLogFormat  = "CUBESIM_LOG_FORMAT"
	EnvLogNoColor = "CUBESIM_LOG_NOCOLOR"
)

// New creates a logger from cfg. Output goes to cfg.File when set and to
// fallback otherwise. The returned closer releases the file, if any.
func New(cfg config.LogConfig, fallback io.Writer) (zerolog.Logger, io.Closer, error) {
	applyEnvOverrides(&cfg)

	var closer io.Closer = nopCloser{}
	writer := fallback
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return zerolog.Nop(), closer, err
		}
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		writer, closer = file, file
	}

	if strings.EqualFold(cfg.Format, "console") {
		noColor := cfg.File != ""
		if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
			noColor = v
		}
		writer = zerolog.ConsoleWriter{
			Out:        writer,
			TimeFormat: time.RFC3339,
			NoColor:    noColor,
		}
	}

	level, _ := parseLevel(cfg.Level)
	logger := zerolog.New(writer).Level(level).With().Timestamp().Str("app", "cubesim").Logger()
	return logger, closer, nil
}

func applyEnvOverrides(cfg *config.LogConfig) {
	if raw := os.Getenv(EnvLogLevel); raw != "" {
		if _, ok := parseLevel(raw); ok {
			cfg.Level = raw
		}
	}
	if raw := strings.TrimSpace(os.Getenv(EnvLogFormat)); raw != "" {
		cfg.Format = raw
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
