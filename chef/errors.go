package chef

import "errors"

// Configuration errors.
var (
	// ErrNoHost is returned when Config has an empty Host.
	ErrNoHost = errors.New("chef: host must not be empty")

	// ErrNoUserID is returned when Config has an empty UserID.
	ErrNoUserID = errors.New("chef: user id must not be empty")

	// ErrNoKey is returned when Config has no private key material.
	ErrNoKey = errors.New("chef: private key must not be empty")
)
