package model

// MessageEvent is one inbound social-media message, delivered by the stream
// transport with any OCR-extracted image text already appended to Text.
type MessageEvent struct {
	Text      string `json:"text"`
	Author    string `json:"author"`
	Permalink string `json:"permalink"`
}
