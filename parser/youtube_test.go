package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skim/domain"
)

const youtubeAtomFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015"
      xmlns:media="http://search.yahoo.com/mrss/"
      xmlns="http://www.w3.org/2005/Atom">
  <title>Example Channel</title>
  <link rel="alternate" href="https://www.youtube.com/channel/UC123"/>
  <entry>
    <id>yt:video:abc123</id>
    <yt:videoId>abc123</yt:videoId>
    <title>Video One</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc123"/>
    <author><name>Example Channel</name></author>
    <published>2024-05-01T10:00:00+00:00</published>
    <media:group>
      <media:title>Video One</media:title>
      <media:thumbnail url="https://i.ytimg.com/vi/abc123/hqdefault.jpg" width="480" height="360"/>
      <media:description>A video about things.</media:description>
    </media:group>
  </entry>
</feed>`

const youtubeHTMLFixture = `<!DOCTYPE html>
<html><head><title>Example Channel - YouTube</title></head>
<body>
<script>var other = 1;</script>
<script>var ytInitialData = {
  "metadata": {
    "channelMetadataRenderer": {
      "title": "Example Channel",
      "description": "Videos about examples",
      "channelUrl": "https://www.youtube.com/channel/UC123",
      "avatar": {"thumbnails": [{"url": "https://yt3.example.com/avatar.jpg"}]}
    }
  },
  "contents": {
    "tabs": [
      {"tabRenderer": {"content": {"items": [
        {"gridVideoRenderer": {
          "videoId": "vid-1",
          "title": {"runs": [{"text": "First "}, {"text": "Video"}]},
          "ownerText": {"runs": [{"text": "Example Channel"}]},
          "thumbnail": {"thumbnails": [
            {"url": "https://i.ytimg.com/vi/vid-1/default.jpg"},
            {"url": "https://i.ytimg.com/vi/vid-1/maxres.jpg"}
          ]}
        }},
        {"videoRenderer": {
          "videoId": "vid-2",
          "title": {"simpleText": "Second Video"},
          "descriptionSnippet": {"runs": [{"text": "About stuff"}]}
        }},
        {"videoRenderer": {"title": {"simpleText": "No id, dropped"}}}
      ]}}}
    ]
  }
}; if (window) { doStuff({"nested": "braces } in strings stay intact"}); }</script>
</body></html>`

func TestYouTubeParser_ChannelFeedXML(t *testing.T) {
	p := NewYouTubeParser(50)

	feed, err := p.Parse([]byte(youtubeAtomFixture))
	require.NoError(t, err)

	assert.Equal(t, "Example Channel", feed.Title)
	require.Len(t, feed.Items, 1)
	item := feed.Items[0]
	assert.Equal(t, "yt:video:abc123", item.GUID)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", item.Link)
	assert.Equal(t, "https://i.ytimg.com/vi/abc123/hqdefault.jpg", item.ThumbnailURL)
	assert.Equal(t, "Example Channel", item.Author)
}

func TestYouTubeParser_ChannelHTML(t *testing.T) {
	p := NewYouTubeParser(50)

	feed, err := p.Parse([]byte(youtubeHTMLFixture))
	require.NoError(t, err)

	assert.Equal(t, "Example Channel", feed.Title)
	assert.Equal(t, "Videos about examples", feed.Description)
	assert.Equal(t, "https://www.youtube.com/channel/UC123", feed.Link)
	assert.Equal(t, "https://yt3.example.com/avatar.jpg", feed.IconURL)

	require.Len(t, feed.Items, 2)

	first := feed.Items[0]
	assert.Equal(t, "vid-1", first.GUID)
	assert.Equal(t, "First Video", first.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid-1", first.Link)
	assert.Equal(t, "Example Channel", first.Author)
	assert.Equal(t, "https://i.ytimg.com/vi/vid-1/maxres.jpg", first.ThumbnailURL)

	second := feed.Items[1]
	assert.Equal(t, "vid-2", second.GUID)
	assert.Equal(t, "Second Video", second.Title)
	assert.Equal(t, "About stuff", second.Description)
}

func TestYouTubeParser_HTMLWithoutMarker(t *testing.T) {
	p := NewYouTubeParser(50)

	_, err := p.Parse([]byte(`<!DOCTYPE html><html><body><p>consent wall</p></body></html>`))
	require.Error(t, err)

	var parseErr *domain.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, domain.ParseNotAFeed, parseErr.Kind)
}

func TestYouTubeParser_MarkerWithBrokenJSON(t *testing.T) {
	p := NewYouTubeParser(50)

	// Balanced braces but invalid JSON: the page layout matched, the
	// payload did not, so this is malformed rather than not-a-feed.
	html := `<html><body><script>var ytInitialData = {broken: yes,};</script></body></html>`
	_, err := p.Parse([]byte(html))
	require.Error(t, err)

	var parseErr *domain.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, domain.ParseMalformed, parseErr.Kind)
}

func TestYouTubeParser_MarkerWithoutVideos(t *testing.T) {
	p := NewYouTubeParser(50)

	html := `<html><body><script>var ytInitialData = {"contents": {}};</script></body></html>`
	_, err := p.Parse([]byte(html))
	require.Error(t, err)

	var parseErr *domain.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, domain.ParseNotAFeed, parseErr.Kind)
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "simple assignment",
			text: `var ytInitialData = {"a": 1};`,
			want: `{"a": 1}`,
		},
		{
			name: "nested objects",
			text: `ytInitialData = {"a": {"b": {"c": 2}}}; trailing()`,
			want: `{"a": {"b": {"c": 2}}}`,
		},
		{
			name: "braces inside strings are ignored",
			text: `ytInitialData = {"a": "close } brace", "b": "esc \" {"};`,
			want: `{"a": "close } brace", "b": "esc \" {"}`,
		},
		{
			name: "marker missing",
			text: `var somethingElse = {"a": 1};`,
			want: "",
		},
		{
			name: "unterminated object",
			text: `ytInitialData = {"a": {"b": 1}`,
			want: "",
		},
		{
			name: "no object after marker",
			text: `ytInitialData = null;`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSONObject(tt.text, initialDataMarker))
		})
	}
}

func TestRunsText(t *testing.T) {
	assert.Equal(t, "plain", runsText(map[string]any{"simpleText": "plain"}))
	assert.Equal(t, "a b", runsText(map[string]any{
		"runs": []any{
			map[string]any{"text": "a "},
			map[string]any{"text": "b"},
		},
	}))
	assert.Empty(t, runsText(nil))
	assert.Empty(t, runsText("not a map"))
}
