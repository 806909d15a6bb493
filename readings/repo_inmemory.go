package readings

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/tarotlabs/go-tarot-server/internal/errors"
)

// InMemoryRepo is a thread-safe in-memory implementation of Repo.
type InMemoryRepo struct {
	mu       sync.RWMutex
	readings map[string][]Reading // userID -> readings
}

// NewInMemoryRepo creates a new in-memory reading repository.
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		readings: make(map[string][]Reading),
	}
}

// Save stores a reading, assigning an ID when absent.
func (r *InMemoryRepo) Save(reading Reading) (Reading, error) {
	if reading.UserID == "" {
		return Reading{}, errors.New("userID is required")
	}
	if reading.ID == "" {
		reading.ID = uuid.New().String()
	}
	if reading.Date.IsZero() {
		reading.Date = NowTimeFunc()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.readings[reading.UserID] = append(r.readings[reading.UserID], reading)
	return reading, nil
}

// ListByUser returns a user's saved readings, newest first.
func (r *InMemoryRepo) ListByUser(userID string) ([]Reading, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.readings[userID]
	result := make([]Reading, len(stored))
	copy(result, stored)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

// Delete removes a user's reading by ID.
func (r *InMemoryRepo) Delete(userID, readingID string) error {
	if userID == "" || readingID == "" {
		return errors.New("userID and readingID are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.readings[userID]
	for i, reading := range stored {
		if reading.ID == readingID {
			r.readings[userID] = append(stored[:i:i], stored[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrReadingNotFound
}
