// Package common defines shared constants and sentinel errors used across
// nutridiary components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidUnit     = errors.New("unknown unit")
	ErrInvalidGrade    = errors.New("invalid nutri-score grade")
	ErrEmptyName       = errors.New("name must not be empty")

	// Auth errors (invalid, malformed or expired session token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
