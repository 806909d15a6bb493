// Package readings generates, stores and analyses tarot readings.
package readings

import (
	"time"

	apperrors "github.com/tarotlabs/go-tarot-server/internal/errors"
)

const (
	minCards = 1
	maxCards = 5
)

// Card is a drawn tarot card as submitted by the client.
type Card struct {
	Title  string `json:"title"`
	Number string `json:"number"`
}

// Request is a reading generation request.
type Request struct {
	Query string `json:"query"`
	Cards []Card `json:"cards"`
	Style string `json:"style"`
}

// Validate checks the request's required fields and card count.
func (r Request) Validate() error {
	if r.Query == "" || r.Style == "" || len(r.Cards) == 0 {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "query, cards, and style are required")
	}
	if len(r.Cards) < minCards || len(r.Cards) > maxCards {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "cards must contain %d-%d elements", minCards, maxCards)
	}
	return nil
}

// Reading is a generated interpretation, optionally saved to a user's
// history.
type Reading struct {
	ID             string    `json:"id"`
	UserID         string    `json:"-"`
	Date           time.Time `json:"date"`
	Query          string    `json:"query"`
	Theme          string    `json:"theme"`
	Cards          []Card    `json:"cards"`
	Style          string    `json:"style"`
	Interpretation string    `json:"interpretation"`
	IsPremium      bool      `json:"isPremium"`
}

// CardCount is a card's occurrence count in a user's saved readings.
type CardCount struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// Trends summarises a user's reading history.
type Trends struct {
	FrequentThemes   []string    `json:"frequentThemes"`
	FrequentCards    []CardCount `json:"frequentCards"`
	RecommendedFocus string      `json:"recommendedFocus"`
}
