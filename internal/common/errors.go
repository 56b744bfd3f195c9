package common

import "errors"

var (
	// ErrNotFound is returned by local repositories for a missing key.
	ErrNotFound = errors.New("not found")

	// ErrInvalidToken marks an access token that cannot be parsed.
	ErrInvalidToken = errors.New("invalid token")
)
