package errors

import (
	"errors"
	"fmt"
)

// Common error types for the tarot server
var (
	// Configuration errors (fatal at startup)
	ErrMissingConfiguration = errors.New("missing required configuration")

	// Login flow errors
	ErrStateMismatch        = errors.New("state parameter mismatch")
	ErrLoginAttemptNotFound = errors.New("no pending login attempt")
	ErrExchangeFailed       = errors.New("authorization code exchange failed")
	ErrTokenVerification    = errors.New("token verification failed")

	// Session token errors
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrSessionAbsent = errors.New("no session credential presented")

	// Session store errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	// Reading errors
	ErrReadingNotFound = errors.New("reading not found")
	ErrInvalidRequest  = errors.New("invalid request")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
