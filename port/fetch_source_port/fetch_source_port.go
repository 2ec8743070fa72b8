package fetch_source_port

import (
	"context"

	"skim/domain"
)

// FetchSourcePort retrieves the raw content of a feed source.
type FetchSourcePort interface {
	Fetch(ctx context.Context, url string, kind domain.SourceKind) (*domain.RawContent, error)
}
