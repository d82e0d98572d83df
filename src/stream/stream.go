// Package stream is the inbound boundary: it consumes raw message events
// from a websocket feed, filters them by the configured follow list, merges
// OCR text from attached photos into the message body and hands one
// MessageEvent at a time to the pipeline.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"

	"tweettrader/src/model"
)

// textSeparator joins the original body with OCR-extracted image text.
const textSeparator = " . "

// Event is the raw wire shape delivered by the stream transport.
type Event struct {
	ID       string      `json:"id"`
	Text     string      `json:"text"`
	Author   string      `json:"author"`
	AuthorID string      `json:"author_id"`
	Media    []MediaItem `json:"media"`
}

type MediaItem struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Handler receives one fully-assembled message event at a time. Processing
// is synchronous; the listener does not read the next frame until the
// handler returns.
type Handler interface {
	HandleMessage(msg model.MessageEvent)
}

type Listener struct {
	url            string
	follow         map[string]struct{}
	handler        Handler
	media          *MediaFetcher
	reconnectDelay time.Duration
}

func NewListener(cfg Config, handler Handler, recognizer Recognizer) *Listener {
	follow := make(map[string]struct{}, len(cfg.FollowIDs))
	for _, id := range cfg.FollowIDs {
		id = strings.TrimSpace(id)
		if id != "" {
			follow[id] = struct{}{}
		}
	}

	return &Listener{
		url:            cfg.StreamURL,
		follow:         follow,
		handler:        handler,
		media:          NewMediaFetcher(cfg.MediaTimeout, recognizer),
		reconnectDelay: cfg.ReconnectDelay,
	}
}

// Run connects to the stream and consumes events until ctx is cancelled.
// Connection failures are logged and retried with a flat delay; they degrade
// the feed, never the process.
func (l *Listener) Run(ctx context.Context) error {
	for {
		if err := l.consume(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.WithError(err).Error("Stream connection lost, reconnecting")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.reconnectDelay):
		}
	}
}

func (l *Listener) consume(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 15 * time.Second,
		Proxy:            http.ProxyFromEnvironment,
	}

	conn, _, err := dialer.DialContext(ctx, l.url, nil)
	if err != nil {
		return fmt.Errorf("ws dial failed: %w", err)
	}
	defer conn.Close()

	logger.WithField("url", l.url).Info("Stream connected")

	// Unblock ReadMessage when the context ends. The done channel releases
	// the watchdog when this connection dies first, so reconnects do not
	// pile up goroutines.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("ws read failed: %w", err)
		}

		var event Event
		if err := json.Unmarshal(raw, &event); err != nil {
			logger.WithError(err).Warn("Skipping malformed stream frame")
			continue
		}

		l.handleEvent(ctx, event)
	}
}

// handleEvent filters, augments and forwards one raw event.
func (l *Listener) handleEvent(ctx context.Context, event Event) {
	if _, followed := l.follow[event.AuthorID]; !followed {
		return
	}

	text := strings.ReplaceAll(event.Text, `\`, "")

	// Best effort: a failed fetch or OCR pass skips the augmentation step
	// only, the message itself still flows through the pipeline.
	for _, item := range event.Media {
		if item.Type != "photo" {
			continue
		}
		extracted, err := l.media.ExtractText(ctx, item.URL)
		if err != nil {
			logger.WithError(err).WithField("url", item.URL).Warn("Image text extraction skipped")
			continue
		}
		if extracted != "" {
			text += textSeparator + extracted
		}
	}

	l.handler.HandleMessage(model.MessageEvent{
		Text:      text,
		Author:    event.Author,
		Permalink: fmt.Sprintf("https://twitter.com/%s/status/%s", event.Author, event.ID),
	})
}
