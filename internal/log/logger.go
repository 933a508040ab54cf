package log

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the global logger.
type Config struct {
	Level  string    // optional log level ("debug", "info", etc.)
	Path   string    // optional log file path (defaults to discard)
	Output io.Writer // optional writer, overrides Path when set
}

var (
	once sync.Once
	base zerolog.Logger
)

// Configure initialises the global zerolog logger exactly once.
//
// The terminal belongs to the TUI while the program runs, so by default
// log output goes to a file rather than stdout. With neither Path nor
// Output set, logging is discarded.
func Configure(cfg Config) error {
	var initErr error
	once.Do(func() {
		level := zerolog.InfoLevel
		if cfg.Level != "" {
			if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
				level = parsed
			}
		} else if env := os.Getenv("RCPILOT_LOG_LEVEL"); env != "" {
			if parsed, err := zerolog.ParseLevel(env); err == nil {
				level = parsed
			}
		}
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = time.RFC3339

		writer := cfg.Output
		if writer == nil {
			if cfg.Path == "" {
				writer = io.Discard
			} else {
				if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
					initErr = err
					return
				}
				f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					initErr = err
					return
				}
				writer = f
			}
		}

		base = zerolog.New(writer).With().
			Timestamp().
			Str("service", "rcpilot").
			Logger()
	})
	return initErr
}

func logger() zerolog.Logger {
	_ = Configure(Config{})
	return base
}

// Base returns the configured base logger instance.
func Base() zerolog.Logger {
	return logger()
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	l := logger().With().Str("component", component).Logger()
	return l
}
