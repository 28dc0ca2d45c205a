// Package common defines shared constants and sentinel errors used across
// client and server layers of GophDrop. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// ErrorStorage wraps any failure of the underlying namespace store
	// (I/O error, permission denial, unreachable backend).
	ErrorStorage = errors.New("storage failure")

	// Validation errors.
	ErrorValidation        = errors.New("validation error")
	ErrorInvalidVisibility = fmt.Errorf("%w: invalid visibility", ErrorValidation)
	ErrorInvalidFileName   = fmt.Errorf("%w: invalid file name", ErrorValidation)

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
