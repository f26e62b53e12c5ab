package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"FinDocSignal/internal/model"

	"github.com/go-resty/resty/v2"
)

// Fetcher downloads web pages and feeds for ingestion.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a Fetcher. proxyURL may be empty.
func NewFetcher(timeout time.Duration, proxyURL string) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "findoc/1.0")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &Fetcher{client: client}
}

// FetchURL downloads a page and keeps its text. Only HTML and plain text
// responses are accepted.
func (f *Fetcher) FetchURL(ctx context.Context, url string) (model.Document, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return model.Document{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return model.Document{}, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}

	ct := strings.ToLower(resp.Header().Get("Content-Type"))
	var content, typ string
	switch {
	case strings.Contains(ct, "html"):
		content, typ = StripHTML(resp.String()), "html"
	case strings.HasPrefix(ct, "text/"):
		content, typ = resp.String(), "txt"
	default:
		return model.Document{}, fmt.Errorf("fetch %s: content type %q: %w", url, ct, ErrUnsupported)
	}

	return model.Document{
		Name:    url,
		Type:    typ,
		Source:  model.SourceURL,
		Content: content,
		AddedAt: time.Now(),
	}, nil
}
