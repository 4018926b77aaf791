package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

const (
	LogFormatAuto    = "auto"
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// NewLogger builds a logger writing to w. Format "json" writes raw JSON
// lines, "console" a human-readable format, and "auto" picks console only
// when w is a terminal. The level defaults to info when it cannot be parsed.
func NewLogger(w io.Writer, level string, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if format == LogFormatAuto || format == "" {
		format = LogFormatJSON
		if isTerminal(w) {
			format = LogFormatConsole
		}
	}
	if format != LogFormatJSON {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// InitLogger installs the process logger on stderr.
func InitLogger(level string, format string) {
	log.Logger = NewLogger(os.Stderr, level, format)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
