package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Development mode writes human readable lines.
func New(level string, development bool) *zerolog.Logger {
	return NewWithWriter(os.Stdout, level, development)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level string, development bool) *zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if development {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()

	return &logger
}
