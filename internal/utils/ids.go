package utils

import "github.com/google/uuid"

// NewID returns a time-ordered unique identifier. UUIDv7 keeps inserts
// roughly append-ordered in sqlite; the v4 fallback only fires if the
// system clock source is unavailable.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
