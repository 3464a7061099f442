package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger wraps zap.Logger to provide our logging interface
type ZapLogger struct {
	*zap.Logger
	sugar *zap.SugaredLogger
}

// NewZapLogger creates a new ZapLogger with the specified configuration
func NewZapLogger(level Level, development bool) (*ZapLogger, error) {
	var config zap.Config

	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	// Log to stderr so the rendered event stream on stdout stays clean.
	config.OutputPaths = []string{"stderr"}

	switch level {
	case DebugLevel:
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case InfoLevel:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case ErrorLevel:
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	logger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return &ZapLogger{
		Logger: logger,
		sugar:  logger.Sugar(),
	}, nil
}

// NewZapLoggerFromEnv creates a logger configured from environment variables
func NewZapLoggerFromEnv() (*ZapLogger, error) {
	levelStr := os.Getenv("WEIR_LOG_LEVEL")
	if levelStr == "" {
		levelStr = "error" // Stay quiet unless asked; the renderer owns stdout.
	}

	level := LevelFromString(levelStr)
	development := os.Getenv("WEIR_LOG_FORMAT") != "json"

	logger, err := NewZapLogger(level, development)
	if err != nil {
		return nil, err
	}

	if os.Getenv("WEIR_LOG_CALLER") == "true" {
		logger.Logger = logger.WithOptions(zap.AddCaller())
	}

	return logger, nil
}

// WithField adds a single field to the logger context
func (l *ZapLogger) WithField(key string, value interface{}) *Logger {
	newZapLogger := &ZapLogger{
		Logger: l.With(zap.Any(key, value)),
		sugar:  l.Logger.With(zap.Any(key, value)).Sugar(),
	}
	return &Logger{zap: newZapLogger}
}

// WithFields adds multiple fields to the logger context
func (l *ZapLogger) WithFields(fields map[string]interface{}) *Logger {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	newZapLogger := &ZapLogger{
		Logger: l.With(zapFields...),
		sugar:  l.Logger.With(zapFields...).Sugar(),
	}
	return &Logger{zap: newZapLogger}
}

func (l *ZapLogger) Debug(msg string) {
	l.Logger.Debug(msg)
}

func (l *ZapLogger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *ZapLogger) Info(msg string) {
	l.Logger.Info(msg)
}

func (l *ZapLogger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *ZapLogger) Warn(msg string) {
	l.Logger.Warn(msg)
}

func (l *ZapLogger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *ZapLogger) Error(msg string) {
	l.Logger.Error(msg)
}

func (l *ZapLogger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes any buffered log entries
func (l *ZapLogger) Sync() error {
	return l.Logger.Sync()
}
