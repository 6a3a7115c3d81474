package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *zap.Logger

// LogLevelEnvVar controls logging verbosity. When unset or empty, logging is
// silent (no zap output). Valid values: "debug", "info", "warn", "error".
const LogLevelEnvVar = "JENKINS_USERS_LOG_LEVEL"

// LogFileEnvVar redirects log output to a rotating file instead of stdout.
// The terminal form owns stdout, so this is the way to log while it runs.
const LogFileEnvVar = "JENKINS_USERS_LOG_FILE"

// Rotation limits for the log file.
const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 14
)

// Options selects the level and destination of log output.
// Empty fields fall back to the environment variables above.
type Options struct {
	Level string
	File  string
}

// Initialize creates the package logger.
// If no level is given and JENKINS_USERS_LOG_LEVEL is unset, logging is
// disabled (silent mode).
func Initialize(opts Options) error {
	level := opts.Level
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	file := opts.File
	if file == "" {
		file = os.Getenv(LogFileEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel := parseLevel(level)

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	if file != "" {
		// No ANSI colours in files.
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   file,
				MaxSize:    maxLogSizeMB,
				MaxBackups: maxLogBackups,
				MaxAge:     maxLogAgeDays,
			}),
			zapLevel,
		)
		logger = zap.New(core, zap.AddCaller())
		return nil
	}

	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger purely from the environment.
func InitializeFromEnv() error {
	return Initialize(Options{})
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		// Explicitly set to something unknown: be informative rather than silent
		return zapcore.InfoLevel
	}
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Silent unless initialized, so CLI output stays clean
		logger = zap.NewNop()
	}
	return logger
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogRequest logs one round trip to the Jenkins server.
func LogRequest(method, path string, statusCode int, elapsed time.Duration) {
	Debug("Jenkins request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", statusCode),
		zap.Duration("elapsed", elapsed),
	)
}

// LogAction logs the outcome of a dispatched user action.
// id correlates the action with the request lines it produced.
func LogAction(id, action, subject string, success bool, err error) {
	fields := []zap.Field{
		zap.String("action_id", id),
		zap.String("action", action),
		zap.Bool("success", success),
	}
	if subject != "" {
		fields = append(fields, zap.String("subject", subject))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
		Warn("Action failed", fields...)
		return
	}
	Info("Action completed", fields...)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
