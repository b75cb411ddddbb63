package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var (
	mu            sync.RWMutex
	defaultLogger *log.Logger
)

// New creates a logger on stderr at the given level. Unknown levels fall
// back to info.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger that writes to w.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          "srcfix",
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel maps a level name to a log.Level. "warning" is accepted as an
// alias for "warn".
func ParseLevel(level string) log.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	parsed, err := log.ParseLevel(level)
	if err != nil || level == "" {
		return log.InfoLevel
	}
	return parsed
}

// Default returns the package-level logger.
func Default() *log.Logger {
	mu.RLock()
	logger := defaultLogger
	mu.RUnlock()
	if logger != nil {
		return logger
	}

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New("info")
	}
	return defaultLogger
}

// SetDefault replaces the package-level logger.
func SetDefault(logger *log.Logger) {
	mu.Lock()
	defaultLogger = logger
	mu.Unlock()
}

// SetLevel updates the level of the package-level logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
