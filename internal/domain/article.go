package domain

import (
	"fmt"
	"time"
)

// Article is a news-article candidate returned by the team news search.
type Article struct {
	ID           string
	Headline     string
	Description  string
	URL          string
	PublishedAt  time.Time
	LastModified time.Time
	// Body holds the full article text; populated only after selection.
	Body string
}

// Digest renders the one-line description shown to the selection model.
func (a Article) Digest() string {
	return fmt.Sprintf("Article ID: %s, Headline: %s, Description: %s, Published: %s",
		a.ID, a.Headline, a.Description, a.PublishedAt.Format(time.RFC3339))
}
