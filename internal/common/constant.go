// Package common contains constants and sentinel errors shared by the
// console's packages.
package common

// Storage keys of the persisted session. They survive process restarts and
// are cleared on logout or when the session can no longer be renewed.
const (
	AccessTokenKey = "accessToken"
	ProfileKey     = "user"
)

// HTTP header names used on outbound API calls.
const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
	BearerPrefix        = "Bearer "
)

// AdminRole is the only role allowed into the console.
const AdminRole = "admin"
