package cli

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"obsui/internal/httpapi"
	"obsui/internal/todo"
)

// newLogger builds the process logger. "off" disables logging; unknown
// levels fall back to info.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "off", "disabled":
		lvl = zerolog.Disabled
	case "":
	default:
		if l, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil {
			lvl = l
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()
}

// installLogger hands l to the packages that log.
func installLogger(l zerolog.Logger) {
	todo.SetLogger(l)
	httpapi.SetLogger(l)
}
