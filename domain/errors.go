package domain

import (
	"errors"
	"fmt"
)

var (
	// フィード関連エラー
	ErrFeedNotFound      = errors.New("feed not found")
	ErrFeedAlreadyExists = errors.New("feed already exists")
	ErrFeedDeleted       = errors.New("feed is deleted")
	ErrFeedInactive      = errors.New("feed is inactive")

	// アイテム関連エラー
	ErrItemNotFound = errors.New("item not found")

	// スクレイピング関連エラー
	ErrScrapeDisallowed = errors.New("scraping disallowed by robots.txt")

	// 認証関連エラー
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidUserContext = errors.New("invalid user context")
)

// FetchErrorKind categorizes outbound fetch failures.
type FetchErrorKind string

const (
	FetchTimeout        FetchErrorKind = "timeout"
	FetchNetworkFailure FetchErrorKind = "network_failure"
	FetchHTTPStatus     FetchErrorKind = "http_status"
)

// FetchError is a failed attempt to retrieve a feed source over HTTP.
type FetchError struct {
	Kind   FetchErrorKind
	URL    string
	Status int
	Cause  error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHTTPStatus:
		return fmt.Sprintf("fetch %q: unexpected status %d", e.URL, e.Status)
	case FetchTimeout:
		return fmt.Sprintf("fetch %q: timed out", e.URL)
	default:
		return fmt.Sprintf("fetch %q: network failure: %v", e.URL, e.Cause)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ParseErrorKind categorizes parse failures. Malformed content might parse on
// a later cycle; content that is not a feed at all never will.
type ParseErrorKind string

const (
	ParseMalformed ParseErrorKind = "malformed"
	ParseNotAFeed  ParseErrorKind = "not_a_feed"
)

// ParseError is a failure to turn fetched content into a ParsedFeed.
type ParseError struct {
	Kind  ParseErrorKind
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse: %s: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("parse: %s", e.Kind)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// StorageErrorKind categorizes storage failures. A conflict on item insert is
// an expected race outcome, not a failure.
type StorageErrorKind string

const (
	StorageConflict    StorageErrorKind = "conflict"
	StorageUnavailable StorageErrorKind = "unavailable"
)

// StorageError is a failure at the storage boundary.
type StorageError struct {
	Kind  StorageErrorKind
	Cause error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage: %s: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("storage: %s", e.Kind)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
