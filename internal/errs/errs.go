// Package errs provides error handling for carefinder.
//
// It re-exports github.com/cockroachdb/errors and defines the sentinel
// errors every handler maps to an HTTP status:
//
//	ErrValidation → 400
//	ErrNotFound   → 404
//	ErrUpstream   → 500
//
// Wrap upstream failures with errs.Upstream so the transport layer can
// classify them with errors.Is.
package errs

import (
	crdb "github.com/cockroachdb/errors"
)

var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf
	Is    = crdb.Is
	As    = crdb.As
)

// Sentinel errors matching the request error taxonomy.
var (
	// ErrValidation indicates a missing or invalid request parameter.
	ErrValidation = New("invalid request")

	// ErrNotFound indicates a resource (typically a postcode) could not
	// be resolved.
	ErrNotFound = New("not found")

	// ErrUpstream indicates a third-party API returned a non-success
	// status or the call failed outright.
	ErrUpstream = New("upstream error")
)

// Validationf creates a validation error with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return Wrap(ErrValidation, Newf(format, args...).Error())
}

// NotFoundf creates a not-found error with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// Upstream wraps an error as an upstream failure with context.
func Upstream(err error, context string) error {
	return Wrap(Wrap(ErrUpstream, err.Error()), context)
}

// Upstreamf creates an upstream error with a formatted message.
func Upstreamf(format string, args ...interface{}) error {
	return Wrap(ErrUpstream, Newf(format, args...).Error())
}
