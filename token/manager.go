// Package token mints and verifies the first-party session tokens issued
// after a successful login. A session token is a signed, time-bounded
// assertion of identity; signature and expiry must both validate before any
// claim in it is trusted.
package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tarotlabs/go-tarot-server/auth"
	apperrors "github.com/tarotlabs/go-tarot-server/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// DefaultLifetime is the session token lifetime when none is configured.
const DefaultLifetime = 24 * time.Hour

// SessionClaims is the claim set carried by a session token.
type SessionClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwtlib.RegisteredClaims
}

// Manager issues and verifies session tokens with a single signer. It holds
// no mutable state and is safe for concurrent use.
type Manager struct {
	signer   Signer
	lifetime time.Duration
}

// NewManager creates a session token manager. A zero lifetime falls back to
// DefaultLifetime.
func NewManager(signer Signer, lifetime time.Duration) *Manager {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Manager{
		signer:   signer,
		lifetime: lifetime,
	}
}

// Lifetime returns the configured token lifetime.
func (m *Manager) Lifetime() time.Duration {
	return m.lifetime
}

// Issue mints a signed session token asserting the given identity.
func (m *Manager) Issue(identity auth.Identity) (string, error) {
	now := NowTimeFunc()
	claims := SessionClaims{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  identity.Name,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(m.lifetime)),
			ID:        uuid.New().String(),
		},
	}
	signedToken, err := m.signer.Sign(claims)
	if err != nil {
		return "", apperrors.Wrapf(err, "failed to issue session token")
	}
	return signedToken, nil
}

// Verify validates a raw session token's signature and expiry and returns
// the identity it asserts. A token with a valid signature but elapsed
// expiry is rejected, never silently renewed.
func (m *Manager) Verify(rawToken string) (auth.Identity, error) {
	claims := &SessionClaims{}
	parsed, err := jwtlib.ParseWithClaims(rawToken, claims, m.signer.GetVerificationKey,
		jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		if apperrors.Is(err, jwtlib.ErrTokenExpired) {
			return auth.Identity{}, apperrors.ErrTokenExpired
		}
		return auth.Identity{}, apperrors.Wrapf(apperrors.ErrInvalidToken, "%v", err)
	}
	if !parsed.Valid {
		return auth.Identity{}, apperrors.ErrInvalidToken
	}
	return auth.Identity{ID: claims.ID, Email: claims.Email, Name: claims.Name}, nil
}
