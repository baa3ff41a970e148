package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidEndpoint indicates a missing or non-HTTP(S) EWS endpoint URL.
	ErrInvalidEndpoint = errors.New("invalid exchange endpoint")
	// ErrMissingCredentials indicates an empty user name or password.
	ErrMissingCredentials = errors.New("missing exchange credentials")
	// ErrInvalidTimeout indicates a non-positive request timeout.
	ErrInvalidTimeout = errors.New("invalid request timeout")
)
