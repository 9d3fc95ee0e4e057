package models

import "time"

// Article represents one content record in the store. IntroText and FullText
// are the two bodies scanned for hyperlinks and rewritten in place.
type Article struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	IntroText string `json:"introtext"`
	FullText  string `json:"fulltext"`

	// CheckedOut holds the owning editing-session marker. Zero means free;
	// any positive value means another session holds the record and the
	// fixer must not write to it.
	CheckedOut     int        `json:"checked_out"`
	CheckedOutTime *time.Time `json:"checked_out_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsCheckedOut reports whether an editing session holds the record.
func (a *Article) IsCheckedOut() bool {
	return a.CheckedOut > 0
}

// Content returns the combined text searched for links. The two bodies are
// joined with a single space; replacement is applied per field.
func (a *Article) Content() string {
	return a.IntroText + " " + a.FullText
}

// ArticleStats summarizes the content store for the status endpoint.
type ArticleStats struct {
	TotalArticles  int       `json:"total_articles"`
	CheckedOut     int       `json:"checked_out"`
	PublishedRules int       `json:"published_rules"`
	LastUpdated    time.Time `json:"last_updated"`
}
