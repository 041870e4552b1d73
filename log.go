package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds the console logger used for a single run. An empty level
// falls back to LOG_LEVEL and then to info.
func newLogger(level string, out io.Writer) zerolog.Logger {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	lvl := zerolog.InfoLevel
	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}

	writer := zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(lvl).With().
		Timestamp().
		Str("component", appName).
		Logger()
}
