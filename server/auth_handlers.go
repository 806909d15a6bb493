package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tarotlabs/go-tarot-server/auth"
)

// LoginStateHandler begins a new login attempt: it generates the anti-CSRF
// state, stores it server-side keyed to the browser session, and returns it
// for inclusion in the authorization request. Any previous pending attempt
// for this session is replaced.
func (s *Server) LoginStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := auth.NewState()
		if err != nil {
			log.Error().Err(err).Msg("state generation failed")
			respondError(w, http.StatusInternalServerError, "Failed to generate auth state")
			return
		}

		sessionID := s.browserSessionID(w, r)
		data := s.sessionData(sessionID)
		data.Attempt = &auth.LoginAttempt{State: state, CreatedAt: time.Now()}
		if err := s.sessions.Set(sessionID, data); err != nil {
			log.Error().Err(err).Msg("failed to store login attempt")
			respondError(w, http.StatusInternalServerError, "Failed to generate auth state")
			return
		}

		respondData(w, http.StatusOK, map[string]string{"state": state})
	}
}

// PKCEChallengeHandler generates the PKCE pair for the pending login
// attempt. The verifier is stored server-side only; the browser receives
// the derived challenge and the method identifier, never the verifier.
func (s *Server) PKCEChallengeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		verifier, err := auth.NewCodeVerifier()
		if err != nil {
			log.Error().Err(err).Msg("code verifier generation failed")
			respondError(w, http.StatusInternalServerError, "Failed to generate PKCE challenge")
			return
		}

		sessionID := s.browserSessionID(w, r)
		data := s.sessionData(sessionID)
		if data.Attempt == nil {
			data.Attempt = &auth.LoginAttempt{CreatedAt: time.Now()}
		}
		data.Attempt.CodeVerifier = verifier
		if err := s.sessions.Set(sessionID, data); err != nil {
			log.Error().Err(err).Msg("failed to store code verifier")
			respondError(w, http.StatusInternalServerError, "Failed to generate PKCE challenge")
			return
		}

		respondData(w, http.StatusOK, map[string]string{
			"codeChallenge":       auth.CodeChallengeS256(verifier),
			"codeChallengeMethod": auth.CodeChallengeMethodS256,
		})
	}
}

// LoginRedirectHandler sends the user agent to the identity provider's
// authorization endpoint. The state and challenge must have been obtained
// from the two handlers above; refusing to redirect without them keeps a
// half-initialised attempt from reaching the provider.
func (s *Server) LoginRedirectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")
		codeChallenge := r.URL.Query().Get("codeChallenge")
		if state == "" || codeChallenge == "" {
			respondError(w, http.StatusBadRequest, "state and codeChallenge are required")
			return
		}

		if s.provider == nil {
			respondError(w, http.StatusInternalServerError, "Identity provider is not configured")
			return
		}

		http.Redirect(w, r, s.provider.AuthCodeURL(state, codeChallenge), http.StatusFound)
	}
}

// LogoutHandler clears the session cookie unconditionally and destroys all
// server-side session state. When a provider session reference exists the
// user agent is sent on to the provider's federated logout.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ClearSessionTokenCookie(w, r)

		var idToken string
		if cookie, err := r.Cookie(browserSessionCookieName); err == nil && cookie.Value != "" {
			if data, err := s.sessions.Get(cookie.Value); err == nil && data != nil {
				idToken = data.IDToken
			}
			if err := s.sessions.Delete(cookie.Value); err != nil {
				log.Error().Err(err).Msg("failed to delete session data")
			}
			s.clearBrowserSessionCookie(w, r)
		}

		if idToken != "" && s.provider != nil {
			if logoutURL := s.provider.EndSessionURL(idToken); logoutURL != "" {
				http.Redirect(w, r, logoutURL, http.StatusFound)
				return
			}
		}

		respondMessage(w, http.StatusOK, "Logged out successfully")
	}
}

// CurrentUserHandler returns the authenticated identity. It runs behind
// RequireAuth, so the identity is always present in the context.
func (s *Server) CurrentUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		respondData(w, http.StatusOK, identity)
	}
}
