// Package logger builds the structured loggers shared by all components.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Options configures a logger.
type Options struct {
	Level  string
	Format string // text, json or logfmt
	Output io.Writer
}

// New creates a logger from options. Unknown levels fall back to info.
func New(opts Options) *log.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level, err := log.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = log.InfoLevel
	}

	return log.NewWithOptions(out, log.Options{
		Prefix:          "intltel",
		Level:           level,
		ReportTimestamp: level == log.DebugLevel,
		Formatter:       parseFormatter(opts.Format),
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

func parseFormatter(s string) log.Formatter {
	switch strings.ToLower(s) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
