package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns the application logger: console output on stderr with the
// given level ("debug", "info", "warn", "error"; unknown values fall back
// to info).
func New(level string) zerolog.Logger {
	lvl := parseLevel(level)
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
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
