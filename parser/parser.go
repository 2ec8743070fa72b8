// Package parser turns raw fetched bytes into a normalized domain.ParsedFeed.
// One implementation exists per source kind; all of them cap the number of
// returned items and substitute zero values for missing optional fields.
package parser

import (
	"skim/domain"
)

// Parser converts raw source content into a normalized feed. Implementations
// are pure: no I/O, no shared mutable state, safe for concurrent use.
type Parser interface {
	Parse(raw []byte) (*domain.ParsedFeed, error)
}

// ForKind returns the parser for the given source kind. maxItems bounds the
// number of items a single parse may return; truncation keeps the source's
// original ordering.
func ForKind(kind domain.SourceKind, maxItems int) Parser {
	switch kind {
	case domain.SourceKindYouTube:
		return NewYouTubeParser(maxItems)
	default:
		return NewRSSParser(maxItems)
	}
}

func capItems(items []domain.ParsedItem, maxItems int) []domain.ParsedItem {
	if maxItems > 0 && len(items) > maxItems {
		return items[:maxItems]
	}
	return items
}
