// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup()                   // level from LOG_LEVEL env
//	logging.SetupWithLevel("debug")   // explicit level
//	logging.SetLevel("warn")          // change the level at runtime
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// level is shared by every handler Setup installs so SetLevel takes effect
// without rebuilding the logger.
var level = new(slog.LevelVar)

// Setup configures colored logging at the level specified by LOG_LEVEL env var
// (default: INFO).
func Setup() {
	SetupWithLevel(os.Getenv("LOG_LEVEL"))
}

// SetupWithLevel configures colored logging on stderr at the given level name.
func SetupWithLevel(name string) {
	SetupWriter(os.Stderr, name)
}

// SetupWriter installs the default logger writing to w.
func SetupWriter(w io.Writer, name string) {
	level.Set(ParseLevel(name))
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
			NoColor:    w != os.Stderr,
		}),
	))
}

// SetLevel changes the level of the installed logger.
func SetLevel(name string) {
	lvl := ParseLevel(name)
	if lvl != level.Level() {
		level.Set(lvl)
		slog.Info("Log level changed", "level", lvl.String())
	}
}

// Level returns the current level.
func Level() slog.Level {
	return level.Level()
}

// ParseLevel maps debug, info, warn and error to slog levels; anything else is info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
