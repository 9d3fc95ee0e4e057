package models

import "time"

// Redirect is one administrator-configured old-URL to new-URL mapping.
// Only published redirects participate in matching.
type Redirect struct {
	ID        int       `json:"id"`
	OldURL    string    `json:"old_url"`
	NewURL    string    `json:"new_url"`
	Published bool      `json:"published"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RedirectRule is the validated projection of a Redirect used by the
// scanner: fields trimmed, external and malformed absolute targets already
// filtered out.
type RedirectRule struct {
	OldURL string `json:"old_url"`
	NewURL string `json:"new_url"`
}
