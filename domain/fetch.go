package domain

// RawContent is the undecoded result of fetching a feed source.
type RawContent struct {
	Body        []byte `json:"-"`
	ContentType string `json:"content_type"`
	StatusCode  int    `json:"status_code"`
}
