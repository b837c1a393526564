package store

import "github.com/google/uuid"

// NewID returns a collision-resistant identifier for a new entity. IDs are
// opaque strings, generated once at creation time and never reused.
func NewID() string {
	return uuid.NewString()
}
