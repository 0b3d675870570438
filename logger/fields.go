package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across uf90.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldCommand = "command"

	// Operations
	FieldOperation = "operation"
	FieldPath      = "path"
	FieldRoot      = "root"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount   = "count"
	FieldPending = "pending"
	FieldPruned  = "pruned"
	FieldWorkers = "workers"

	// Files and sources
	FieldFile     = "file"
	FieldOutput   = "output"
	FieldDigest   = "digest"
	FieldPosition = "position" // line:column in a source file
	FieldSymbol   = "symbol"   // a Unicode code point, e.g. "U+03B1"
	FieldConfig   = "config"

	// Build tool
	FieldTool     = "tool"
	FieldArgs     = "args"
	FieldExitCode = "exit_code"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	opts.Logger = logger.ComponentLogger("sync")
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
