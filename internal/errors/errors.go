// Package errors provides error handling for constgen.
//
// This package re-exports github.com/cockroachdb/errors and defines the
// failure kinds a generation cycle can end with. Kinds are attached with
// Mark so callers can test them with Is after any amount of wrapping:
//
//	if err := drv.Generate(); errors.Is(err, errors.ErrIdentifierCollision) {
//	    // rename one of the entries
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
	Is           = crdb.Is
	IsAny        = crdb.IsAny
	As           = crdb.As
	Unwrap       = crdb.Unwrap
	UnwrapAll    = crdb.UnwrapAll
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Failure kinds. Every failure is local to one domain.
var (
	// ErrRetrieval: the source adapter failed or returned malformed data.
	ErrRetrieval = New("retrieval failure")

	// ErrPersistence: the baseline could not be loaded or saved.
	ErrPersistence = New("persistence failure")

	// ErrIdentifierCollision: two distinct names sanitize to the same identifier.
	ErrIdentifierCollision = New("identifier collision")

	// ErrWrite: the output file could not be written or deleted.
	ErrWrite = New("write failure")
)

// Warning kinds. These are reported, never returned as errors.
var (
	// ErrForceGenerateOnAbsent: force generate found no file to delete.
	ErrForceGenerateOnAbsent = New("force generate on absent file")

	// ErrUpdateOnMissing: update on reload is enabled but the file is absent.
	ErrUpdateOnMissing = New("update on missing file")
)

// Kind names the failure kind of err for reports. Unknown errors are "error".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrRetrieval):
		return "retrieval"
	case Is(err, ErrPersistence):
		return "persistence"
	case Is(err, ErrIdentifierCollision):
		return "collision"
	case Is(err, ErrWrite):
		return "write"
	case Is(err, ErrForceGenerateOnAbsent), Is(err, ErrUpdateOnMissing):
		return "warning"
	default:
		return "error"
	}
}

// Retrieval marks err as a retrieval failure with context.
func Retrieval(err error, format string, args ...interface{}) error {
	return Mark(Wrapf(err, format, args...), ErrRetrieval)
}

// Persistence marks err as a persistence failure with context.
func Persistence(err error, format string, args ...interface{}) error {
	return Mark(Wrapf(err, format, args...), ErrPersistence)
}

// Write marks err as a write failure with context.
func Write(err error, format string, args ...interface{}) error {
	return Mark(Wrapf(err, format, args...), ErrWrite)
}
