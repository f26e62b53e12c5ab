package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"FinDocSignal/internal/model"

	"github.com/mmcdole/gofeed"
)

// FeedReader turns RSS/Atom items into documents.
type FeedReader struct {
	parser   *gofeed.Parser
	MaxItems int
}

func NewFeedReader(maxItems int) *FeedReader {
	return &FeedReader{parser: gofeed.NewParser(), MaxItems: maxItems}
}

// FetchFeed downloads a feed and returns one document per item in feed order.
// Items without any text are skipped.
func (r *FeedReader) FetchFeed(ctx context.Context, url string) ([]model.Document, error) {
	feed, err := r.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}
	return r.documents(feed), nil
}

// ParseFeed is FetchFeed over an already downloaded body.
func (r *FeedReader) ParseFeed(body string) ([]model.Document, error) {
	feed, err := r.parser.ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return r.documents(feed), nil
}

func (r *FeedReader) documents(feed *gofeed.Feed) []model.Document {
	docs := make([]model.Document, 0, len(feed.Items))
	for _, item := range feed.Items {
		if r.MaxItems > 0 && len(docs) >= r.MaxItems {
			break
		}
		body := item.Content
		if body == "" {
			body = item.Description
		}
		var parts []string
		for _, part := range []string{item.Title, StripHTML(body)} {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) == 0 {
			continue
		}
		text := strings.Join(parts, ". ")

		added := time.Now()
		if item.PublishedParsed != nil {
			added = *item.PublishedParsed
		}
		name := item.Link
		if name == "" {
			name = item.Title
		}
		docs = append(docs, model.Document{
			Name:    name,
			Type:    "feed",
			Source:  model.SourceFeed,
			Content: text,
			AddedAt: added,
		})
	}
	return docs
}
