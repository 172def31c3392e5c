// Package common defines shared constants and sentinel errors used across
// client and server layers of Daybook. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrUnauthorized = errors.New("unauthorized")

	// Remote transport errors.
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
