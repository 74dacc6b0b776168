// Package auth gates dataset-editing commands behind the configured
// passcode. The check is per invocation; nothing about a successful check
// is remembered anywhere.
package auth

import (
	"crypto/subtle"
	"errors"
)

var (
	// ErrPasscodeRequired means a passcode is configured but none was given.
	ErrPasscodeRequired = errors.New("auth: passcode required")
	// ErrPasscodeMismatch means the given passcode does not match.
	ErrPasscodeMismatch = errors.New("auth: passcode mismatch")
)

// Check compares a provided passcode against the configured one. An empty
// configured passcode disables the gate entirely.
func Check(configured, provided string) error {
	if configured == "" {
		return nil
	}
	if provided == "" {
		return ErrPasscodeRequired
	}
	if subtle.ConstantTimeCompare([]byte(configured), []byte(provided)) != 1 {
		return ErrPasscodeMismatch
	}
	return nil
}
