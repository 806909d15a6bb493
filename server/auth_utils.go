package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tarotlabs/go-tarot-server/server/sessionstore"
)

// SetSessionTokenCookie delivers the signed session token to the browser.
// The cookie is HttpOnly so scripts can never read the token.
func (s *Server) SetSessionTokenCookie(w http.ResponseWriter, r *http.Request, signedToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionTokenCookieName,
		Value:    signedToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.IsProduction() || getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.tokens.Lifetime() / time.Second),
	})
}

// ClearSessionTokenCookie expires the session token cookie.
func (s *Server) ClearSessionTokenCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionTokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.IsProduction() || getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// browserSessionID returns the current browser session ID, establishing one
// when the request carries none. The ID itself is opaque; all login state
// lives server-side keyed by it.
func (s *Server) browserSessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(browserSessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sessionID := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     browserSessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.IsProduction() || getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.LoginSessionTTL / time.Second),
	})
	return sessionID
}

// clearBrowserSessionCookie expires the browser session cookie.
func (s *Server) clearBrowserSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     browserSessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.IsProduction() || getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// sessionData loads the server-side state for a browser session, returning
// fresh state when none exists yet or the stored state has expired.
func (s *Server) sessionData(sessionID string) *sessionstore.Data {
	data, err := s.sessions.Get(sessionID)
	if err != nil || data == nil {
		return &sessionstore.Data{CreatedAt: time.Now()}
	}
	return data
}
