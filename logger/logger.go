package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// Flag to track if JSON output is enabled
	JSONOutput bool
)

func init() {
	// Initialize with a safe no-op logger at package load time
	// This prevents nil pointer panics if logger is used before Initialize() is called
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger. Console output goes to stderr so
// stdout stays reserved for command results; verbosity is the -v count.
func Initialize(jsonOutput bool, verbosity int) error {
	return initialize(os.Stderr, jsonOutput, verbosity)
}

func initialize(w io.Writer, jsonOutput bool, verbosity int) error {
	JSONOutput = jsonOutput
	level := VerbosityToLevel(verbosity)

	loadThemeFromEnv()

	var zapLogger *zap.Logger
	if jsonOutput {
		// JSON structured output for machine consumption
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		zapLogger = zap.New(zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			zapcore.AddSync(w),
			level,
		))
	} else {
		// Human-readable console output with minimal, calm formatting
		zapLogger = zap.New(zapcore.NewCore(
			newMinimalEncoder(),
			zapcore.AddSync(w),
			level,
		))
	}

	Logger = zapLogger.Sugar()
	return nil
}

// loadThemeFromEnv lets UF90_LOG_THEME override the configured theme.
func loadThemeFromEnv() {
	if theme := os.Getenv("UF90_LOG_THEME"); theme != "" {
		SetTheme(theme)
	}
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Infow logs an info message with structured fields
func Infow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Infow(msg, keysAndValues...)
	}
}

// Errorw logs an error message with structured fields
func Errorw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Errorw(msg, keysAndValues...)
	}
}

// Warnw logs a warning message with structured fields
func Warnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Warnw(msg, keysAndValues...)
	}
}

// Debugw logs a debug message with structured fields
func Debugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Debugw(msg, keysAndValues...)
	}
}
