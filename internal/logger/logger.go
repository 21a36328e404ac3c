// Package logger wraps the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

// Init configures the global logger. level can be "debug", "info", "warn"
// or "error"; unknown levels fall back to info. At debug level the output
// is the human-friendly console format.
func Init(level string, w io.Writer) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if w == nil {
		w = os.Stderr
	}

	if lvl == zerolog.DebugLevel {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	log = zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func init() {
	// Default logger before Init() is called
	Init("warn", os.Stderr)
}

// Info starts an info event on the process logger.
func Info() *zerolog.Event { return log.Info() }

// Named returns a child logger tagged with a component name.
func Named(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
