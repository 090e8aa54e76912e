// Package logging is a small levelled logger. Level tags are coloured when
// the output is a terminal.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/gookit/color"
)

// Level is a log severity
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// String returns the level name
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

var levelStyles = map[Level]color.Style{
	DEBUG: {color.FgGray},
	INFO:  {color.FgCyan},
	WARN:  {color.FgYellow, color.OpBold},
	ERROR: {color.FgRed, color.OpBold},
}

// ParseLevel converts a level name (case-insensitive) to a Level
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO", "":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", name)
	}
}

// Logger writes messages at or above its level
type Logger struct {
	mu      sync.Mutex
	out     *log.Logger
	level   Level
	colored bool
}

// New creates a logger writing to w
func New(w io.Writer, level Level, colored bool) *Logger {
	return &Logger{
		out:     log.New(w, "", log.LstdFlags),
		level:   level,
		colored: colored,
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New(io.Discard, ERROR+1, false)
}

var defaultLogger = New(os.Stderr, INFO, false)

// Default returns the package logger
func Default() *Logger {
	return defaultLogger
}

// SetDefault replaces the package logger
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// SetLevel changes the minimum level written
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Enabled reports whether messages at level would be written
func (l *Logger) Enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}

	tag := "[" + level.String() + "]"
	if l.colored {
		tag = levelStyles[level].Sprint(tag)
	}
	l.out.Printf("%s %s", tag, fmt.Sprintf(format, args...))
}

// Debugf logs at DEBUG
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(DEBUG, format, args...)
}

// Infof logs at INFO
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(INFO, format, args...)
}

// Warnf logs at WARN
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(WARN, format, args...)
}

// Errorf logs at ERROR
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(ERROR, format, args...)
}

// Debug logs at DEBUG on the package logger
func Debug(format string, args ...interface{}) {
	defaultLogger.Debugf(format, args...)
}

// Info logs at INFO on the package logger
func Info(format string, args ...interface{}) {
	defaultLogger.Infof(format, args...)
}

// Warn logs at WARN on the package logger
func Warn(format string, args ...interface{}) {
	defaultLogger.Warnf(format, args...)
}

// Error logs at ERROR on the package logger
func Error(format string, args ...interface{}) {
	defaultLogger.Errorf(format, args...)
}
