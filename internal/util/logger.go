package util

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a logger tagged with the given component name, writing
// severity-tagged human-readable lines to stderr.
func New(component string) zerolog.Logger {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(w).With().Timestamp().Str("component", component).Logger()
}

// SetLevel applies a config log level ("off", "error", "warn", "info",
// "debug") to the process. Unknown values fall back to info.
func SetLevel(level string) {
	switch strings.ToLower(level) {
	case "off":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
