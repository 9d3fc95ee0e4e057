package common

import (
	"github.com/google/uuid"
)

// NewSessionID generates a unique review-session ID with the "sess_" prefix
// Format: sess_<uuid>
func NewSessionID() string {
	return "sess_" + uuid.New().String()
}

// NewSessionToken generates the double-submit token paired with a session.
func NewSessionToken() string {
	return uuid.New().String()
}
