package chefauth

import "errors"

// Signing errors.
var (
	// ErrNoUserID is returned when SignConfig has an empty UserID.
	ErrNoUserID = errors.New("chefauth: user id must not be empty")

	// ErrNoKey is returned when SignConfig has no private key configured.
	ErrNoKey = errors.New("chefauth: private key must not be nil")

	// ErrKeyTooSmall is returned when the RSA key's modulus is too small
	// to encrypt the canonical request string.
	ErrKeyTooSmall = errors.New("chefauth: key too small for canonical request")
)

// Key material errors.
var (
	// ErrInvalidKey is returned when key material cannot be parsed as a
	// PEM-encoded RSA private key.
	ErrInvalidKey = errors.New("chefauth: invalid private key material")
)
