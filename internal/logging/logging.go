// Package logging configures the zerolog logger shared by sweep components.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Output formats.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config controls logger construction.
type Config struct {
	Level  string
	Format string
}

var (
	mu   sync.RWMutex
	base = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// ParseLevel maps a level name to a zerolog level. Empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", level)
	}
	return parsed, nil
}

// ValidFormat reports whether format names a supported output format.
func ValidFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatAuto, FormatConsole, FormatJSON:
		return true
	}
	return false
}

// Init configures the process-wide logger writing to stderr.
func Init(cfg Config) error {
	return InitWithWriter(cfg, os.Stderr)
}

// InitWithWriter configures the process-wide logger writing to w.
func InitWithWriter(cfg Config, w io.Writer) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	if !ValidFormat(cfg.Format) {
		return fmt.Errorf("invalid log format %q", cfg.Format)
	}

	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	if format == "" || format == FormatAuto {
		format = FormatJSON
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = FormatConsole
		}
	}

	out := w
	if format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	mu.Lock()
	base = zerolog.New(out).With().Timestamp().Logger().Level(level)
	mu.Unlock()
	return nil
}

// Logger returns the process-wide logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}
