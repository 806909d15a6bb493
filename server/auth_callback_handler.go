package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/tarotlabs/go-tarot-server/auth"
)

// authFailedRedirect is where the browser lands after any callback
// failure. Every rejection collapses to the same generic indicator so the
// response never reveals which validation step failed.
const authFailedRedirect = "/?error=authentication_failed"

// AuthCallbackHandler completes the login flow: it validates the returned
// state against the pending attempt, exchanges the authorization code with
// the PKCE verifier, verifies the provider's ID token, and issues the
// first-party session token. The pending attempt is consumed exactly once,
// whether the callback succeeds or not.
func (s *Server) AuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		state := r.URL.Query().Get("state")
		providerError := r.URL.Query().Get("error")

		reject := func(reason string, err error) {
			log.Warn().Err(err).Str("reason", reason).Msg("login callback rejected")
			http.Redirect(w, r, authFailedRedirect, http.StatusFound)
		}

		if providerError != "" {
			// The raw provider error is logged, never surfaced.
			reject("provider returned error: "+providerError, nil)
			return
		}
		if code == "" || state == "" {
			reject("missing code or state parameter", nil)
			return
		}

		sessionCookie, err := r.Cookie(browserSessionCookieName)
		if err != nil || sessionCookie.Value == "" {
			reject("no browser session", err)
			return
		}
		sessionID := sessionCookie.Value

		data, err := s.sessions.Get(sessionID)
		if err != nil || data == nil || data.Attempt == nil {
			reject("no pending login attempt", err)
			return
		}

		// Consume the attempt before anything else: a state is valid for
		// one callback only, successful or not.
		attempt := data.Attempt
		data.Attempt = nil
		if err := s.sessions.Set(sessionID, data); err != nil {
			reject("failed to consume login attempt", err)
			return
		}

		if subtle.ConstantTimeCompare([]byte(state), []byte(attempt.State)) != 1 {
			reject("state mismatch", nil)
			return
		}

		if attempt.CodeVerifier == "" {
			reject("missing code verifier", nil)
			return
		}

		if s.provider == nil {
			reject("identity provider not configured", nil)
			return
		}

		tokenSet, err := s.provider.Exchange(r.Context(), code, attempt.CodeVerifier)
		if err != nil {
			reject("code exchange failed", err)
			return
		}

		identity, err := s.provider.VerifyIDToken(r.Context(), tokenSet.IDToken)
		if err != nil {
			reject("id token verification failed", err)
			return
		}

		signedToken, err := s.tokens.Issue(*identity)
		if err != nil {
			reject("failed to issue session token", err)
			return
		}

		// Retain the raw ID token as the federated logout hint; the rest
		// of the provider token set is dropped here.
		data.IDToken = tokenSet.IDToken
		if err := s.sessions.Set(sessionID, data); err != nil {
			log.Error().Err(err).Msg("failed to retain id token for logout")
		}

		s.SetSessionTokenCookie(w, r, signedToken)
		logIdentity(identity)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

func logIdentity(identity *auth.Identity) {
	log.Info().Str("sub", identity.ID).Str("email", identity.Email).Msg("login completed")
}
