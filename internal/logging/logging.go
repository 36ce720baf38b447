package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// LevelDebug is the debug log level
	LevelDebug LogLevel = iota
	// LevelInfo is the info log level
	LevelInfo
	// LevelWarn is the warning log level
	LevelWarn
	// LevelError is the error log level
	LevelError
)

// Config controls where and how log lines are written.
type Config struct {
	// Level is one of debug, info, warn or error. Empty keeps the level
	// taken from the environment.
	Level string
	// Format is "text" (default) or "json".
	Format string
	// File enables size-based rotation into the named file instead of stderr.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var (
	std = newLogger(envLevel())
	// access carries lines that are written regardless of the level.
	access = newLogger(LevelDebug)

	mu      sync.Mutex
	rotator *lumberjack.Logger
)

func newLogger(level LogLevel) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(level.logrus())
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// envLevel reads the level from DEBUG, then LOG_LEVEL.
func envLevel() LogLevel {
	switch strings.ToLower(os.Getenv("DEBUG")) {
	case "1", "true", "yes", "on":
		return LevelDebug
	}
	level, _ := ParseLevel(os.Getenv("LOG_LEVEL"))
	return level
}

func (l LogLevel) logrus() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func fromLogrus(l logrus.Level) LogLevel {
	switch {
	case l >= logrus.DebugLevel:
		return LevelDebug
	case l == logrus.InfoLevel:
		return LevelInfo
	case l == logrus.WarnLevel:
		return LevelWarn
	default:
		return LevelError
	}
}

// ParseLevel converts a level name to a LogLevel. Unknown names map to
// LevelInfo and report false.
func ParseLevel(s string) (LogLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

// Setup applies cfg to the process-wide logger.
func Setup(cfg Config) error {
	if cfg.Level != "" {
		level, ok := ParseLevel(cfg.Level)
		if !ok {
			return fmt.Errorf("invalid log level %q", cfg.Level)
		}
		SetLevel(level)
	}

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		setFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		setFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q", cfg.Format)
	}

	if cfg.File != "" {
		maxSize := cfg.MaxSizeMB
		if maxSize == 0 {
			maxSize = 100
		}
		maxBackups := cfg.MaxBackups
		if maxBackups == 0 {
			maxBackups = 3
		}
		maxAge := cfg.MaxAgeDays
		if maxAge == 0 {
			maxAge = 28
		}

		mu.Lock()
		if rotator != nil {
			_ = rotator.Close()
		}
		rotator = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			MaxAge:     maxAge,
			Compress:   cfg.Compress,
		}
		mu.Unlock()
		SetOutput(rotator)
	}

	return nil
}

// Close flushes and closes the rotating log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	SetOutput(os.Stderr)
	return err
}

// SetOutput redirects log output to w.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
	access.SetOutput(w)
}

func setFormatter(f logrus.Formatter) {
	std.SetFormatter(f)
	access.SetFormatter(f)
}

// Logger returns the underlying logrus logger.
func Logger() *logrus.Logger {
	return std
}

// SetLevel overrides the level taken from the environment.
func SetLevel(level LogLevel) {
	std.SetLevel(level.logrus())
}

// GetLevel returns the current log level
func GetLevel() LogLevel {
	return fromLogrus(std.GetLevel())
}

// IsDebugEnabled returns true if debug logging is enabled
func IsDebugEnabled() bool {
	return std.IsLevelEnabled(logrus.DebugLevel)
}

// Debug logs a debug message (only if DEBUG=true or LOG_LEVEL=debug)
func Debug(format string, args ...interface{}) {
	std.Debugf(format, args...)
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	std.Infof(format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	std.Warnf(format, args...)
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	std.Errorf(format, args...)
}

// Fatal logs an error message and exits
func Fatal(format string, args ...interface{}) {
	std.Fatalf(format, args...)
}

// Printf logs at info level regardless of the configured level.
func Printf(format string, args ...interface{}) {
	access.Infof(format, args...)
}

// Println logs at info level regardless of the configured level.
func Println(args ...interface{}) {
	access.Infoln(args...)
}

// PrintFields logs msg with fields at info level regardless of the
// configured level.
func PrintFields(fields logrus.Fields, msg string) {
	access.WithFields(fields).Info(msg)
}

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}
