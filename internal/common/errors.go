// Package common defines shared constants and sentinel errors used across
// the WatchB client packages. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// transport-level errors
	ErrUnavailable = errors.New("server unavailable")

	// auth errors
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidToken        = errors.New("invalid token")
	ErrNotLoggedIn         = errors.New("not logged in")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// account errors
	ErrWrongPassword          = errors.New("wrong current password")
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// lookup errors
	ErrNotFound = errors.New("not found")
)
