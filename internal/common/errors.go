// Package common defines sentinel errors shared by the repositories, the
// token service and the transports. Callers should match them with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound        = errors.New("not found")
	ErrNoFilterForDelete = errors.New("delete by criteria requires a filter")
	ErrIDAlreadyAssigned = errors.New("id already assigned")

	// Service-level errors.
	ErrorInternal       = errors.New("internal error")
	ErrorUnauthorized   = errors.New("unauthorized")
	ErrWrongCredentials = errors.New("wrong username or password")

	// Token errors. ErrInvalidToken covers bad signatures, malformed tokens
	// and expired tokens alike.
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenNotFound = errors.New("authentication token not found")
)
