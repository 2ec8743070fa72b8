package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"skim/domain"
)

// initialDataMarker is the script variable YouTube embeds its page data in.
// The whole scrape path hangs off this marker and fails closed when it moves.
const initialDataMarker = "ytInitialData"

// YouTubeParser handles YouTube channel sources. The channel's public
// video-feed XML endpoint is plain Atom, so that path reuses the RSS parser.
// When the fetched content is a channel HTML page instead, the embedded
// ytInitialData JSON blob is scraped for video entries.
type YouTubeParser struct {
	maxItems int
	rss      *RSSParser
}

func NewYouTubeParser(maxItems int) *YouTubeParser {
	return &YouTubeParser{maxItems: maxItems, rss: NewRSSParser(maxItems)}
}

func (p *YouTubeParser) Parse(raw []byte) (*domain.ParsedFeed, error) {
	feed, err := p.rss.Parse(raw)
	if err == nil {
		return feed, nil
	}

	var parseErr *domain.ParseError
	if !errors.As(err, &parseErr) || parseErr.Kind != domain.ParseNotAFeed {
		return nil, err
	}

	return p.parseChannelHTML(raw)
}

func (p *YouTubeParser) parseChannelHTML(raw []byte) (*domain.ParsedFeed, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, &domain.ParseError{Kind: domain.ParseNotAFeed, Cause: err}
	}

	var blob string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if strings.Contains(text, initialDataMarker) {
			blob = extractJSONObject(text, initialDataMarker)
			return blob == ""
		}
		return true
	})

	if blob == "" {
		return nil, &domain.ParseError{
			Kind:  domain.ParseNotAFeed,
			Cause: fmt.Errorf("marker %q not found in page", initialDataMarker),
		}
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(blob), &data); err != nil {
		return nil, &domain.ParseError{Kind: domain.ParseMalformed, Cause: err}
	}

	feed := &domain.ParsedFeed{}
	fillChannelMetadata(feed, data)

	var items []domain.ParsedItem
	collectVideoRenderers(data, &items)
	if len(items) == 0 {
		return nil, &domain.ParseError{
			Kind:  domain.ParseNotAFeed,
			Cause: errors.New("no video entries in page data"),
		}
	}
	feed.Items = capItems(items, p.maxItems)

	return feed, nil
}

// extractJSONObject returns the balanced JSON object assigned to marker in
// script text, or "" when no well-formed object follows the marker.
func extractJSONObject(text, marker string) string {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return ""
	}
	start := strings.Index(text[idx:], "{")
	if start < 0 {
		return ""
	}
	start += idx

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

func fillChannelMetadata(feed *domain.ParsedFeed, data map[string]any) {
	meta, ok := dig(data, "metadata", "channelMetadataRenderer").(map[string]any)
	if !ok {
		return
	}
	feed.Title, _ = meta["title"].(string)
	feed.Description, _ = meta["description"].(string)
	feed.Link, _ = meta["channelUrl"].(string)
	if thumbs, ok := dig(meta, "avatar", "thumbnails").([]any); ok && len(thumbs) > 0 {
		if t, ok := thumbs[0].(map[string]any); ok {
			feed.IconURL, _ = t["url"].(string)
		}
	}
}

// collectVideoRenderers walks the decoded page data and gathers every
// videoRenderer / gridVideoRenderer node in document order.
func collectVideoRenderers(v any, out *[]domain.ParsedItem) {
	switch node := v.(type) {
	case map[string]any:
		for _, key := range []string{"videoRenderer", "gridVideoRenderer"} {
			if vr, ok := node[key].(map[string]any); ok {
				if item, ok := videoRendererToItem(vr); ok {
					*out = append(*out, item)
				}
			}
		}
		for _, child := range node {
			collectVideoRenderers(child, out)
		}
	case []any:
		for _, child := range node {
			collectVideoRenderers(child, out)
		}
	}
}

func videoRendererToItem(vr map[string]any) (domain.ParsedItem, bool) {
	videoID, _ := vr["videoId"].(string)
	if videoID == "" {
		return domain.ParsedItem{}, false
	}

	item := domain.ParsedItem{
		GUID:  videoID,
		Title: runsText(vr["title"]),
		Link:  "https://www.youtube.com/watch?v=" + videoID,
	}
	item.Description = runsText(vr["descriptionSnippet"])
	item.Author = runsText(vr["ownerText"])

	if thumbs, ok := dig(vr, "thumbnail", "thumbnails").([]any); ok && len(thumbs) > 0 {
		// Last entry is the highest resolution.
		if t, ok := thumbs[len(thumbs)-1].(map[string]any); ok {
			item.ThumbnailURL, _ = t["url"].(string)
		}
	}

	return item, true
}

// runsText flattens YouTube's {runs:[{text:...}]} / {simpleText:...} text
// shapes into a plain string.
func runsText(v any) string {
	node, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	if simple, ok := node["simpleText"].(string); ok {
		return simple
	}
	runs, ok := node["runs"].([]any)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, r := range runs {
		if m, ok := r.(map[string]any); ok {
			if text, ok := m["text"].(string); ok {
				b.WriteString(text)
			}
		}
	}
	return b.String()
}

func dig(v any, keys ...string) any {
	current := v
	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[key]
	}
	return current
}
