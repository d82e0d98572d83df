package stream

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/otiai10/gosseract/v2"
)

// Recognizer extracts embedded text from an image. Pluggable so tests do not
// need a tesseract installation.
type Recognizer interface {
	Recognize(image []byte) (string, error)
}

// TesseractRecognizer runs OCR through the local tesseract engine.
type TesseractRecognizer struct{}

func (TesseractRecognizer) Recognize(image []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("load image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// MediaFetcher downloads attached photos and runs them through a Recognizer.
type MediaFetcher struct {
	http       *resty.Client
	recognizer Recognizer
}

func NewMediaFetcher(timeout time.Duration, recognizer Recognizer) *MediaFetcher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &MediaFetcher{
		http:       resty.New().SetTimeout(timeout),
		recognizer: recognizer,
	}
}

// ExtractText fetches one image URL and returns the text embedded in it.
func (m *MediaFetcher) ExtractText(ctx context.Context, url string) (string, error) {
	if m.recognizer == nil {
		return "", nil
	}

	resp, err := m.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch media: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("fetch media: HTTP %d", resp.StatusCode())
	}

	return m.recognizer.Recognize(resp.Body())
}
