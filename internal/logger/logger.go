// Package logger provides structured logging for weir over a zap backend.
// The run driver and CLI log through the package-level helpers; tests can
// swap the global logger for a silent or buffered one.
package logger

import (
	"strings"
	"sync"
)

// Level represents the logging level
type Level int

const (
	// DebugLevel logs everything
	DebugLevel Level = iota
	// InfoLevel logs info, warnings, and errors
	InfoLevel
	// ErrorLevel logs only errors
	ErrorLevel
)

// Logger provides structured logging with contextual fields
type Logger struct {
	zap *ZapLogger
}

var (
	globalLogger *Logger
	globalMu     sync.Mutex
)

func init() {
	if zapLogger, err := NewZapLoggerFromEnv(); err == nil {
		globalLogger = &Logger{zap: zapLogger}
	} else {
		globalLogger = Nop()
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{}
}

// WithField adds a single field to the logger context
func (l *Logger) WithField(key string, value interface{}) *Logger {
	if l.zap == nil {
		return l
	}
	return l.zap.WithField(key, value)
}

// WithFields adds multiple fields to the logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	if l.zap == nil {
		return l
	}
	return l.zap.WithFields(fields)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string) {
	if l.zap != nil {
		l.zap.Debug(msg)
	}
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.zap != nil {
		l.zap.Debugf(format, args...)
	}
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	if l.zap != nil {
		l.zap.Info(msg)
	}
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	if l.zap != nil {
		l.zap.Infof(format, args...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(msg string) {
	if l.zap != nil {
		l.zap.Warn(msg)
	}
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	if l.zap != nil {
		l.zap.Warnf(format, args...)
	}
}

// Error logs an error message
func (l *Logger) Error(msg string) {
	if l.zap != nil {
		l.zap.Error(msg)
	}
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	if l.zap != nil {
		l.zap.Errorf(format, args...)
	}
}

// GetLogger returns the global logger instance
func GetLogger() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalLogger
}

// SetLogger sets the global logger instance
func SetLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// LevelFromString converts a string to a log level
func LevelFromString(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}
