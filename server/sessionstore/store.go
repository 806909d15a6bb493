// Package sessionstore holds the server-side state of one browser session:
// the pending login attempt between the login redirect and the callback,
// and the provider ID token retained for federated logout. Each record is
// scoped to exactly one browser session; there is no cross-session sharing.
package sessionstore

import (
	"time"

	"github.com/tarotlabs/go-tarot-server/auth"
)

// Data is the state owned by a single browser session.
type Data struct {
	// Attempt is the in-flight login attempt, nil when none is pending.
	Attempt *auth.LoginAttempt

	// IDToken is the provider's raw ID token from the last successful
	// login, kept only as the federated logout hint.
	IDToken string

	CreatedAt time.Time
}

// Store is keyed by browser session ID. Implementations must be safe for
// concurrent use by independent sessions.
type Store interface {
	Get(sessionID string) (*Data, error)
	Set(sessionID string, data *Data) error
	Delete(sessionID string) error
}
