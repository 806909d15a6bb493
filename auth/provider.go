package auth

import "context"

// Provider is the client-side view of the external identity provider. The
// concrete implementation wraps OIDC discovery and the oauth2 code
// exchange; tests substitute a double so the login flow can be exercised
// without a live provider.
type Provider interface {
	// AuthCodeURL builds the provider's authorization endpoint URL for
	// the given anti-CSRF state and PKCE code challenge.
	AuthCodeURL(state, codeChallenge string) string

	// Exchange redeems an authorization code, presenting the PKCE code
	// verifier, and returns the provider's token set.
	Exchange(ctx context.Context, code, codeVerifier string) (*TokenSet, error)

	// VerifyIDToken checks the raw ID token's signature, issuer,
	// audience and expiry against the provider's published keys and maps
	// its claims to an Identity. Claims are never exposed unverified.
	VerifyIDToken(ctx context.Context, rawIDToken string) (*Identity, error)

	// EndSessionURL returns the provider's federated logout URL for the
	// given ID token hint, or "" when the provider does not advertise an
	// end-session endpoint.
	EndSessionURL(idTokenHint string) string
}
