package auth

import (
	"context"
	"fmt"
	"net/url"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	apperrors "github.com/tarotlabs/go-tarot-server/internal/errors"
)

// ProviderConfig carries the identity provider settings needed to build an
// OIDCProvider.
type ProviderConfig struct {
	Issuer                string
	ClientID              string
	ClientSecret          string
	RedirectURL           string
	PostLogoutRedirectURL string
}

// OIDCProvider implements Provider against a real OIDC identity provider
// using discovery, the standard oauth2 code exchange, and go-oidc ID token
// verification.
type OIDCProvider struct {
	oauth2Config          *oauth2.Config
	verifier              *oidc.IDTokenVerifier
	endSessionEndpoint    string
	postLogoutRedirectURL string
}

var _ Provider = (*OIDCProvider)(nil)

// NewOIDCProvider discovers the issuer's endpoints and constructs the
// provider client. Discovery failure is fatal to startup.
func NewOIDCProvider(ctx context.Context, cfg ProviderConfig) (*OIDCProvider, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider %q: %w", cfg.Issuer, err)
	}

	// end_session_endpoint is optional in discovery metadata; federated
	// logout is skipped when the provider does not advertise one.
	var providerClaims struct {
		EndSessionEndpoint string `json:"end_session_endpoint"`
	}
	_ = provider.Claims(&providerClaims)

	return &OIDCProvider{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier:              provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		endSessionEndpoint:    providerClaims.EndSessionEndpoint,
		postLogoutRedirectURL: cfg.PostLogoutRedirectURL,
	}, nil
}

func (p *OIDCProvider) AuthCodeURL(state, codeChallenge string) string {
	return p.oauth2Config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", CodeChallengeMethodS256),
	)
}

func (p *OIDCProvider) Exchange(ctx context.Context, code, codeVerifier string) (*TokenSet, error) {
	oauth2Token, err := p.oauth2Config.Exchange(ctx, code,
		oauth2.SetAuthURLParam("code_verifier", codeVerifier),
	)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrExchangeFailed, "%v", err)
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, apperrors.Wrapf(apperrors.ErrExchangeFailed, "no id_token in token response")
	}

	return &TokenSet{
		IDToken:     rawIDToken,
		AccessToken: oauth2Token.AccessToken,
	}, nil
}

func (p *OIDCProvider) VerifyIDToken(ctx context.Context, rawIDToken string) (*Identity, error) {
	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrTokenVerification, "%v", err)
	}

	var claims struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrTokenVerification, "failed to extract claims: %v", err)
	}

	name := claims.Name
	if name == "" {
		name = claims.Email
	}
	return &Identity{ID: claims.Sub, Email: claims.Email, Name: name}, nil
}

func (p *OIDCProvider) EndSessionURL(idTokenHint string) string {
	if p.endSessionEndpoint == "" {
		return ""
	}
	u, err := url.Parse(p.endSessionEndpoint)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set("id_token_hint", idTokenHint)
	if p.postLogoutRedirectURL != "" {
		q.Set("post_logout_redirect_uri", p.postLogoutRedirectURL)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
