package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item is one discrete piece of content (article or video) stored for a feed.
// Identity is (FeedID, ExternalID); items never duplicate within a feed.
type Item struct {
	ID           uuid.UUID `json:"id" db:"id"`
	FeedID       uuid.UUID `json:"feed_id" db:"feed_id"`
	ExternalID   string    `json:"external_id" db:"external_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Link         string    `json:"link" db:"link"`
	ThumbnailURL string    `json:"thumbnail_url" db:"thumbnail_url"`
	Author       string    `json:"author" db:"author"`
	PublishedAt  time.Time `json:"published_at" db:"published_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ParsedFeed is the normalized output of a format parser, before anything is
// written to storage.
type ParsedFeed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Link        string       `json:"link"`
	IconURL     string       `json:"icon_url"`
	Items       []ParsedItem `json:"items"`
}

// ParsedItem is a single entry as extracted from the source document.
// Optional fields are empty strings / zero times, never absent.
type ParsedItem struct {
	GUID         string    `json:"guid"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Link         string    `json:"link"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Author       string    `json:"author"`
	PublishedAt  time.Time `json:"published_at"`
}

// ExternalID returns the deduplication key for the item: the source GUID when
// present, the link otherwise, and the title as a last resort. Two items with
// identical titles and no guid/link collide; that loss is accepted.
func (p *ParsedItem) ExternalID() string {
	if p.GUID != "" {
		return p.GUID
	}
	if p.Link != "" {
		return p.Link
	}
	return p.Title
}
