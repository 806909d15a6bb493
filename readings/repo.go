package readings

// Repo stores users' saved readings.
type Repo interface {
	// Save stores a reading under its UserID and returns the stored copy
	// with its assigned ID.
	Save(reading Reading) (Reading, error)

	// ListByUser returns a user's saved readings, newest first.
	ListByUser(userID string) ([]Reading, error)

	// Delete removes a user's reading by ID. Deleting another user's
	// reading fails the same way as deleting a missing one.
	Delete(userID, readingID string) error
}
