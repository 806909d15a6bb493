package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/tarotlabs/go-tarot-server/internal/errors"
	"github.com/tarotlabs/go-tarot-server/readings"
)

// GenerateReadingHandler produces a free-tier reading. No authentication
// required; the route is rate limited like the rest of the API.
func (s *Server) GenerateReadingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req readings.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		reading, err := s.readings.GenerateBasic(r.Context(), req)
		if err != nil {
			s.respondReadingError(w, err)
			return
		}

		respondData(w, http.StatusOK, map[string]any{
			"theme":          reading.Theme,
			"interpretation": reading.Interpretation,
			"isPremium":      false,
		})
	}
}

// PremiumReadingHandler produces an authenticated-tier reading.
func (s *Server) PremiumReadingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := IdentityFromContext(r.Context())

		var req readings.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		reading, err := s.readings.GeneratePremium(r.Context(), req, identity.Email)
		if err != nil {
			s.respondReadingError(w, err)
			return
		}

		respondData(w, http.StatusOK, map[string]any{
			"theme":          reading.Theme,
			"interpretation": reading.Interpretation,
			"isPremium":      true,
			"cards":          reading.Cards,
		})
	}
}

// SaveReadingHandler stores a reading in the authenticated user's history.
func (s *Server) SaveReadingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := IdentityFromContext(r.Context())

		var reading readings.Reading
		if err := json.NewDecoder(r.Body).Decode(&reading); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		reading.ID = ""
		reading.UserID = identity.ID

		saved, err := s.readingRepo.Save(reading)
		if err != nil {
			log.Error().Err(err).Msg("failed to save reading")
			respondError(w, http.StatusInternalServerError, "Failed to save reading")
			return
		}

		respondJSON(w, http.StatusCreated, apiResponse{
			Success: true,
			Message: "Reading saved successfully",
			Data:    saved,
		})
	}
}

// ListReadingsHandler returns the authenticated user's saved readings.
func (s *Server) ListReadingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := IdentityFromContext(r.Context())

		saved, err := s.readingRepo.ListByUser(identity.ID)
		if err != nil {
			log.Error().Err(err).Msg("failed to list readings")
			respondError(w, http.StatusInternalServerError, "Failed to fetch readings")
			return
		}

		respondData(w, http.StatusOK, saved)
	}
}

// DeleteReadingHandler removes one of the authenticated user's readings.
func (s *Server) DeleteReadingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := IdentityFromContext(r.Context())

		readingID := r.PathValue("id")
		if err := s.readingRepo.Delete(identity.ID, readingID); err != nil {
			if apperrors.Is(err, apperrors.ErrReadingNotFound) {
				respondError(w, http.StatusNotFound, "Reading not found")
				return
			}
			log.Error().Err(err).Msg("failed to delete reading")
			respondError(w, http.StatusInternalServerError, "Failed to delete reading")
			return
		}

		respondMessage(w, http.StatusOK, "Reading deleted successfully")
	}
}

// TrendsHandler analyses the authenticated user's reading history.
func (s *Server) TrendsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := IdentityFromContext(r.Context())

		saved, err := s.readingRepo.ListByUser(identity.ID)
		if err != nil {
			log.Error().Err(err).Msg("failed to list readings for trends")
			respondError(w, http.StatusInternalServerError, "Failed to analyse trends")
			return
		}

		respondData(w, http.StatusOK, readings.AnalyseTrends(saved))
	}
}

func (s *Server) respondReadingError(w http.ResponseWriter, err error) {
	if apperrors.Is(err, apperrors.ErrInvalidRequest) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Error().Err(err).Msg("reading generation failed")
	respondError(w, http.StatusInternalServerError, "Failed to generate reading")
}
