// Package auth holds the building blocks of the login flow: state and PKCE
// generation, the identity model, and the client for the external identity
// provider.
package auth

// Identity is the authenticated user as asserted by the identity provider.
// It is constructed only from verified token claims and is immutable once
// extracted.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenSet is the transient result of an authorization code exchange. The
// ID token must be verified before any claim in it is trusted. A TokenSet
// is never persisted beyond the callback that produced it.
type TokenSet struct {
	IDToken     string
	AccessToken string
}
