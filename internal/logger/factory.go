// Package logger adapts charmbracelet/log for hanseg: factories for
// prefixed loggers, and SetGlobalLevel for the process-wide level that
// cmd/hanseg sets from its -d flag.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Default creates a prefixed logger that respects the global log level.
func Default(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a prefixed logger with explicit options,
// for callers that need to override the process-wide level.
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, formatter log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       formatter,
	})
}

// SetGlobalLevel sets the package-wide default level used by Default
// and by log.*f calls made directly against charmbracelet/log.
// cmd/hanseg calls it once at startup with its -d flag.
func SetGlobalLevel(debug bool) {
	if debug {
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetLevel(log.InfoLevel)
}
