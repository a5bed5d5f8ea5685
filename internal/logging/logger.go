// Package logging configures the structured logger shared by the poeta
// commands. The grammar library itself only logs through a logger handed
// to it.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Options controls New.
type Options struct {
	// Level is one of debug, info, warn, error, fatal (default info).
	Level string
	// Format is text, json or logfmt (default text).
	Format string
	// Output defaults to stderr.
	Output io.Writer
	// Timestamps adds the time to every record.
	Timestamps bool
}

// New builds a logger from opts.
func New(opts Options) (*log.Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = l
	}

	formatter := log.TextFormatter
	switch strings.ToLower(opts.Format) {
	case "", "text":
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return log.NewWithOptions(out, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: opts.Timestamps,
	}), nil
}

// Component returns a child logger whose records carry name as prefix.
func Component(base *log.Logger, name string) *log.Logger {
	if base == nil {
		base = log.Default()
	}
	return base.WithPrefix(name)
}

// Discard returns a logger that drops everything, for tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
