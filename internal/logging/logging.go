package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// Setup configures the global log level. Per-file extraction diagnostics
// are logged at debug level and only shown with --verbose.
func Setup(verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// New returns a properly configured zerolog logger instance for the
// given component.
func New(component string) zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Str("component", component).Logger()
}
