package parser

import (
	"bytes"
	"errors"
	"time"

	"github.com/mmcdole/gofeed"

	"skim/domain"
)

// RSSParser parses RSS and Atom documents via gofeed. A fresh gofeed parser
// is constructed per call because gofeed parsers are not safe for concurrent
// use.
type RSSParser struct {
	maxItems int
}

func NewRSSParser(maxItems int) *RSSParser {
	return &RSSParser{maxItems: maxItems}
}

func (p *RSSParser) Parse(raw []byte) (*domain.ParsedFeed, error) {
	fp := gofeed.NewParser()
	feed, err := fp.Parse(bytes.NewReader(raw))
	if err != nil {
		if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
			return nil, &domain.ParseError{Kind: domain.ParseNotAFeed, Cause: err}
		}
		return nil, &domain.ParseError{Kind: domain.ParseMalformed, Cause: err}
	}

	parsed := &domain.ParsedFeed{
		Title:       feed.Title,
		Description: feed.Description,
		Link:        feed.Link,
	}
	if feed.Image != nil {
		parsed.IconURL = feed.Image.URL
	}

	for _, item := range feed.Items {
		parsed.Items = append(parsed.Items, convertItem(item))
	}
	parsed.Items = capItems(parsed.Items, p.maxItems)

	return parsed, nil
}

func convertItem(item *gofeed.Item) domain.ParsedItem {
	var published time.Time
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}

	var author string
	if item.Author != nil {
		author = item.Author.Name
	} else if len(item.Authors) > 0 {
		author = item.Authors[0].Name
	}

	var thumbnail string
	if item.Image != nil {
		thumbnail = item.Image.URL
	} else {
		thumbnail = mediaThumbnail(item)
	}

	return domain.ParsedItem{
		GUID:         item.GUID,
		Title:        item.Title,
		Description:  item.Description,
		Link:         item.Link,
		ThumbnailURL: thumbnail,
		Author:       author,
		PublishedAt:  published,
	}
}

// mediaThumbnail digs a thumbnail URL out of the Media RSS extension, which
// is how YouTube's channel feeds carry video thumbnails.
func mediaThumbnail(item *gofeed.Item) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, group := range media["group"] {
		for _, thumb := range group.Children["thumbnail"] {
			if url := thumb.Attrs["url"]; url != "" {
				return url
			}
		}
	}
	for _, thumb := range media["thumbnail"] {
		if url := thumb.Attrs["url"]; url != "" {
			return url
		}
	}
	return ""
}
