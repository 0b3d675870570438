// Package errors provides error handling for uf90.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints rendered by the CLI
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "write the Unicode symbol instead")
//
//	// Check errors
//	if errors.Is(err, errors.ErrNamingCollision) {
//	    // handle collision
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Sentinel errors for the translation pipeline.
// Use these with errors.Is() and wrap them with errors.Wrap() to add
// context while preserving the type.
var (
	// ErrSourceNotFound indicates the input path does not exist
	ErrSourceNotFound = New("source not found")

	// ErrNamingCollision indicates the Unicode source already spells out a
	// name the translator generates for a Greek letter
	ErrNamingCollision = New("naming collision")

	// ErrUnmappedSymbol indicates translated code still contains non-ASCII
	// characters (strict mode only)
	ErrUnmappedSymbol = New("unmapped symbol")

	// ErrInvalidConfig indicates the configuration failed validation
	ErrInvalidConfig = New("invalid configuration")

	// ErrBuildToolNotFound indicates the external build tool is not on PATH
	ErrBuildToolNotFound = New("build tool not found")
)

// IsSourceNotFound checks if an error is or wraps ErrSourceNotFound
func IsSourceNotFound(err error) bool {
	return err != nil && Is(err, ErrSourceNotFound)
}

// IsNamingCollision checks if an error is or wraps ErrNamingCollision
func IsNamingCollision(err error) bool {
	return err != nil && Is(err, ErrNamingCollision)
}

// NewSourceNotFoundError creates a source-not-found error for path
func NewSourceNotFoundError(path string) error {
	err := Wrapf(ErrSourceNotFound, "%s", path)
	return WithHint(err, "check the path; uf90 translates existing files only")
}

// NewInvalidConfigError creates an invalid-config error with a formatted message
func NewInvalidConfigError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidConfig, Newf(format, args...).Error())
}
