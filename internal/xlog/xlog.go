// Package xlog wires the command-line tools' console output through
// zerolog, matching the structured-logging idiom used across the
// examples this module draws on. The xmlparse package itself never
// imports this package: library code reports failures through
// returned errors, never by logging.
package xlog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console-friendly zerolog.Logger. verbose lowers the
// level to debug; otherwise only info and above are emitted.
func New(w io.Writer, verbose bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}
