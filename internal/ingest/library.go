package ingest

import (
	"strings"
	"sync"
	"time"

	"FinDocSignal/internal/model"
	"FinDocSignal/internal/sentiment"
)

// MaxDocuments is how many documents a Library keeps.
const MaxDocuments = 6

// Library holds the most recently ingested documents, newest first.
// It is safe for concurrent use.
type Library struct {
	mu    sync.RWMutex
	docs  []model.Document
	limit int
}

// NewLibrary creates a library holding up to limit documents (MaxDocuments when limit <= 0).
func NewLibrary(limit int) *Library {
	if limit <= 0 {
		limit = MaxDocuments
	}
	return &Library{limit: limit}
}

// Add stores doc, evicting the oldest document once the cap is reached.
// Documents with no text are ignored.
func (l *Library) Add(doc model.Document) bool {
	if strings.TrimSpace(doc.Content) == "" {
		return false
	}
	if doc.AddedAt.IsZero() {
		doc.AddedAt = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.docs = append([]model.Document{doc}, l.docs...)
	if len(l.docs) > l.limit {
		l.docs = l.docs[:l.limit]
	}
	return true
}

// Documents returns a copy of the stored documents, newest first.
func (l *Library) Documents() []model.Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Document, len(l.docs))
	copy(out, l.docs)
	return out
}

func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.docs)
}

// Clear removes every document.
func (l *Library) Clear() {
	l.mu.Lock()
	l.docs = nil
	l.mu.Unlock()
}

// Text joins the content of every document.
func (l *Library) Text() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	parts := make([]string, len(l.docs))
	for i, d := range l.docs {
		parts[i] = d.Content
	}
	return strings.Join(parts, "\n\n")
}

// Sentiment scores every stored document and sums the counts.
// It returns nil when the library is empty.
func (l *Library) Sentiment() *model.SentimentScores {
	docs := l.Documents()
	if len(docs) == 0 {
		return nil
	}
	scores := make([]model.SentimentScores, len(docs))
	for i, d := range docs {
		scores[i] = sentiment.Score(d.Content)
	}
	total := sentiment.Combine(scores...)
	return &total
}
