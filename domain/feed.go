package domain

import (
	"time"

	"github.com/google/uuid"
)

// SourceKind identifies how a feed's content is fetched and parsed.
type SourceKind string

const (
	SourceKindRSS     SourceKind = "rss"
	SourceKindAtom    SourceKind = "atom"
	SourceKindYouTube SourceKind = "youtube"
)

// Valid reports whether the kind is one of the supported source kinds.
func (k SourceKind) Valid() bool {
	switch k {
	case SourceKindRSS, SourceKindAtom, SourceKindYouTube:
		return true
	}
	return false
}

// Feed is a user-subscribed external content source.
type Feed struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	OwnerID       uuid.UUID  `json:"owner_id" db:"owner_id"`
	URL           string     `json:"url" db:"url"`
	SourceKind    SourceKind `json:"source_kind" db:"source_kind"`
	Title         string     `json:"title" db:"title"`
	Description   string     `json:"description" db:"description"`
	IconURL       string     `json:"icon_url" db:"icon_url"`
	Category      string     `json:"category" db:"category"`
	IsActive      bool       `json:"is_active" db:"is_active"`
	LastFetchedAt *time.Time `json:"last_fetched_at" db:"last_fetched_at"`
	LastUpdatedAt *time.Time `json:"last_updated_at" db:"last_updated_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// IsStale reports whether the feed is due for a refresh: never fetched, or
// last fetched longer ago than the refresh interval.
func (f *Feed) IsStale(now time.Time, refreshInterval time.Duration) bool {
	if f.LastFetchedAt == nil {
		return true
	}
	return f.LastFetchedAt.Before(now.Add(-refreshInterval))
}

// IsSyncable reports whether the pipeline may touch this feed at all.
// Soft-deleted and inactive feeds are excluded from every pipeline stage.
func (f *Feed) IsSyncable() bool {
	return f.DeletedAt == nil && f.IsActive
}
