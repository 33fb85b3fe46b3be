// Package common defines shared constants and sentinel errors used across
// client and server layers of docsync. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrStoreBusy signals that the local store could not be wiped or
	// transacted because another connection still holds it.
	ErrStoreBusy = errors.New("store is busy")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors raised before any write is attempted.
	ErrValidation       = errors.New("validation error")
	ErrNoPages          = errors.New("document has no pages")
	ErrUnknownStatus    = errors.New("unknown sync status")
	ErrorAlreadyExists  = errors.New("already exists")
	ErrorIncorrectInput = errors.New("incorrect input, expected name=value")

	// Transport errors raised while talking to the sync endpoint.
	ErrTransport = errors.New("transport failure")
	ErrRejected  = errors.New("rejected by sync endpoint")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
