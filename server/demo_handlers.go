package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tarotlabs/go-tarot-server/auth"
)

// DemoLoginHandler mints a session token without contacting the identity
// provider. It is registered only when demo mode is enabled at wiring time.
func (s *Server) DemoLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if body.Email == "" {
			body.Email = "user@example.com"
		}

		name := body.Email
		if at := strings.Index(body.Email, "@"); at > 0 {
			name = body.Email[:at]
		}

		demoUser := auth.Identity{
			ID:    uuid.New().String(),
			Email: body.Email,
			Name:  name,
		}

		signedToken, err := s.tokens.Issue(demoUser)
		if err != nil {
			log.Error().Err(err).Msg("failed to issue demo session token")
			respondError(w, http.StatusInternalServerError, "Demo login failed")
			return
		}

		s.SetSessionTokenCookie(w, r, signedToken)
		respondJSON(w, http.StatusOK, apiResponse{
			Success: true,
			Message: "Demo login successful",
			Data: map[string]any{
				"user":  demoUser,
				"token": signedToken,
			},
		})
	}
}

// DemoLogoutHandler clears the session token cookie.
func (s *Server) DemoLogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ClearSessionTokenCookie(w, r)
		respondMessage(w, http.StatusOK, "Demo logout successful")
	}
}
