// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	// Level is one of trace, debug, info, warn, error.
	Level string
	// Pretty enables the human-readable console writer; otherwise
	// output is JSON lines.
	Pretty bool
}

// New builds a logger writing to w according to cfg. Unknown levels
// fall back to info.
func New(w io.Writer, cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Setup builds a stderr logger and installs its level globally.
func Setup(cfg Config) zerolog.Logger {
	log := New(os.Stderr, cfg)
	zerolog.SetGlobalLevel(log.GetLevel())
	return log
}
