package debug

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logFile *os.File
	logger  *slog.Logger
	mu      sync.Mutex
)

// Init initializes debug logging to the specified file path.
// If path is empty, uses "ace-debug.log" in the current directory.
// Records are written as JSON at the given level.
func Init(path string, level slog.Level) error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked(path, level)
}

// initLocked does the actual init work. Caller must hold mu.
func initLocked(path string, level slog.Level) error {
	if path == "" {
		path = "ace-debug.log"
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return nil
}

// Close closes the debug log file and falls back to the default logger.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	logger = nil
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

// SetLogger replaces the logger used by this package. Passing nil restores
// the environment-derived default.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Discard silences all logging. Tests use it to keep output clean.
func Discard() {
	SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelWarn, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// current returns the active logger, creating it from ACE_DEBUG and
// ACE_LOG_LEVEL on first use.
func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		return logger
	}

	level, err := ParseLevel(os.Getenv("ACE_LOG_LEVEL"))
	if err != nil {
		level = slog.LevelWarn
	}
	if path := os.Getenv("ACE_DEBUG"); path != "" {
		if err := initLocked(path, slog.LevelDebug); err == nil {
			return logger
		}
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return logger
}

// Logger returns the logger in use, for callers that want to attach
// their own attributes with With.
func Logger() *slog.Logger {
	return current()
}

// Log writes a printf-style message at debug level.
func Log(format string, args ...any) {
	l := current()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug(fmt.Sprintf(format, args...))
}

// Info writes a structured record at info level.
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn writes a structured record at warn level.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error writes a structured record at error level.
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}
