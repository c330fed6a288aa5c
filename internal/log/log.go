// Package log provides structured, colored logging for ethkey.
//
// All log output goes to stderr so that stdout carries only the report.
package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Logger is the global logger instance.
var Logger zerolog.Logger

// Component loggers for different parts of the tool.
var (
	Keys    zerolog.Logger
	Address zerolog.Logger
	Wallet  zerolog.Logger
	CLI     zerolog.Logger
)

// output is where Init and the default logger write. Tests swap it.
var output io.Writer = os.Stderr

func init() {
	// Default to colored console output, warnings only, so a plain run
	// prints nothing but the report.
	Logger = NewConsoleLogger(output, "warn")
	initComponentLoggers()
}

// Init initializes the logger with the given level and format.
func Init(level string, jsonOutput bool) {
	if jsonOutput {
		Logger = NewJSONLogger(output, level)
	} else {
		Logger = NewConsoleLogger(output, level)
	}
	initComponentLoggers()
}

// SetOutput redirects all subsequent logging and rebuilds the loggers.
func SetOutput(w io.Writer, level string, jsonOutput bool) {
	output = w
	Init(level, jsonOutput)
}

// NewConsoleLogger creates a console logger. Colors are only used when w is
// a terminal.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    !isTerminal(w),
	}

	lvl := ParseLevel(level)
	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewJSONLogger creates a structured JSON logger.
func NewJSONLogger(w io.Writer, level string) zerolog.Logger {
	lvl := ParseLevel(level)
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// ParseLevel converts a string level to zerolog.Level. Unknown levels map
// to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ValidLevel reports whether level is one of debug, info, warn, error.
func ValidLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// initComponentLoggers initializes loggers for each component.
func initComponentLoggers() {
	Keys = Logger.With().Str("component", "keys").Logger()
	Address = Logger.With().Str("component", "address").Logger()
	Wallet = Logger.With().Str("component", "wallet").Logger()
	CLI = Logger.With().Str("component", "cli").Logger()
}

// Benchmark helper for timing operations.
func Benchmark(name string) func() {
	start := time.Now()
	return func() {
		Logger.Debug().
			Str("operation", name).
			Dur("duration", time.Since(start)).
			Msg("benchmark")
	}
}
