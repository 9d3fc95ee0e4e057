package models

// Match is one confirmed occurrence of a redirect's old URL inside a
// specific article. OldURL keeps the literal spelling found in the content
// (not the normalized form) so the rewrite can replace the exact substring.
type Match struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	OldURL string `json:"old_url"`
	NewURL string `json:"new_url"`
}

// URLEdit is one user-approved replacement submitted from the review screen.
type URLEdit struct {
	OldURL string `json:"old_url" validate:"required"`
	NewURL string `json:"new_url" validate:"required"`
}

// ArticleEdit groups the approved replacements for one article.
type ArticleEdit struct {
	ID   int       `json:"id" validate:"required,gt=0"`
	URLs []URLEdit `json:"urls" validate:"required,min=1,dive"`
}

// FixRequest is the payload of a fix submission. UpdateAll applies every
// submitted article; otherwise UpdateSingleID selects one target article.
type FixRequest struct {
	UpdateAll      bool          `json:"update_all"`
	UpdateSingleID int           `json:"update_single_id"`
	Articles       []ArticleEdit `json:"articles" validate:"required,min=1,dive"`
}

// ArticleMatches is the review-screen grouping of matches per article.
type ArticleMatches struct {
	ID    int       `json:"id"`
	Title string    `json:"title"`
	URLs  []URLEdit `json:"urls"`
}

// GroupMatches folds a flat match list into per-article groups, preserving
// first-seen article order.
func GroupMatches(matches []Match) []ArticleMatches {
	index := make(map[int]int)
	var grouped []ArticleMatches

	for _, m := range matches {
		i, ok := index[m.ID]
		if !ok {
			i = len(grouped)
			index[m.ID] = i
			grouped = append(grouped, ArticleMatches{ID: m.ID, Title: m.Title})
		}
		grouped[i].URLs = append(grouped[i].URLs, URLEdit{OldURL: m.OldURL, NewURL: m.NewURL})
	}

	return grouped
}
