package scheduler

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"FinDocSignal/internal/assistant"
	"FinDocSignal/internal/collector"
	"FinDocSignal/internal/ingest"
	"FinDocSignal/internal/model"
	"FinDocSignal/internal/notifier"
	"FinDocSignal/internal/recorder"
	"FinDocSignal/internal/watchlist"

	"github.com/robfig/cron/v3"
)

// Notifier delivers reports to the chat.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// FeedSource turns a feed URL into documents.
type FeedSource interface {
	FetchFeed(ctx context.Context, url string) ([]model.Document, error)
}

// Asker answers free-form questions about the ingested documents.
type Asker interface {
	ProcessDocument(ctx context.Context, text string) error
	Ask(ctx context.Context, question, ticker string) (*assistant.Answer, error)
}

// Scheduler manages all cron tasks and chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Library   *ingest.Library
	Watchlist *watchlist.Manager
	Notifier  Notifier
	Recorder  recorder.Recorder
	Feeds     FeedSource
	FeedURLs  []string
	Assistant Asker // optional
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, lib *ingest.Library, wl *watchlist.Manager, n Notifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Library:   lib,
		Watchlist: wl,
		Notifier:  n,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// RegisterAll registers the watchlist and feed refresh tasks. An empty
// feedCron disables the feed refresh.
func (s *Scheduler) RegisterAll(watchlistCron, feedCron string) error {
	if _, err := s.Cron.AddFunc(watchlistCron, s.watchlistTask); err != nil {
		return fmt.Errorf("register watchlist task: %w", err)
	}
	if feedCron != "" && s.Feeds != nil && len(s.FeedURLs) > 0 {
		if _, err := s.Cron.AddFunc(feedCron, s.feedTask); err != nil {
			return fmt.Errorf("register feed task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunWatchlistNow executes the watchlist task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunWatchlistNow() {
	s.watchlistTask()
}

// RefreshFeedsNow executes the feed refresh immediately.
func (s *Scheduler) RefreshFeedsNow() {
	s.feedTask()
}

func (s *Scheduler) watchlistTask() {
	symbols := s.Watchlist.Symbols()
	log.Printf("[INFO] running watchlist task (%d symbols)", len(symbols))
	if len(symbols) == 0 {
		return
	}

	results := s.Collector.AnalyzeMany(s.Ctx, symbols, s.Library.Sentiment())
	var changes []string
	for _, r := range results {
		if r.Err != nil {
			log.Printf("[ERROR] analyze %s: %v", r.Symbol, r.Err)
			continue
		}
		s.record(r.Analysis)
		label := r.Analysis.Recommend.Label
		if prev, changed := s.Watchlist.UpdateLabel(r.Symbol, label); changed {
			changes = append(changes, fmt.Sprintf("🔔 <b>%s</b>: %s → %s", html.EscapeString(r.Symbol), prev, label))
		}
	}

	s.trySend(notifier.FormatWatchlist(results))
	if len(changes) > 0 {
		s.trySend(strings.Join(changes, "\n"))
	}
}

func (s *Scheduler) feedTask() {
	log.Printf("[INFO] refreshing %d feeds", len(s.FeedURLs))
	added := 0
	for _, url := range s.FeedURLs {
		docs, err := s.Feeds.FetchFeed(s.Ctx, url)
		if err != nil {
			log.Printf("[WARN] feed %s: %v", url, err)
			continue
		}
		for i := range docs {
			if s.addDocument(&docs[i]) {
				added++
			}
		}
	}
	log.Printf("[INFO] feed refresh added %d documents", added)
}

func (s *Scheduler) addDocument(doc *model.Document) bool {
	if !s.Library.Add(*doc) {
		return false
	}
	if err := s.Recorder.RecordDocument(doc); err != nil {
		log.Printf("[ERROR] record document: %v", err)
	}
	if s.Assistant != nil {
		if err := s.Assistant.ProcessDocument(s.Ctx, doc.Content); err != nil {
			log.Printf("[WARN] backend index %s: %v", doc.Name, err)
		}
	}
	return true
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText()
	}
	cmd := strings.ToLower(fields[0])
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		cmd = cmd[:i] // "/analyze@MyBot"
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}
	// replies go out in HTML parse mode
	sym := html.EscapeString(strings.ToUpper(arg))

	switch cmd {
	case "/analyze":
		if arg == "" {
			return "Usage: /analyze SYMBOL"
		}
		a, err := s.Collector.Analyze(s.Ctx, strings.ToUpper(arg), s.Library.Sentiment())
		if err != nil {
			log.Printf("[ERROR] analyze %s: %v", arg, err)
			return errorReply(fmt.Errorf("analysis failed: %w", err))
		}
		s.record(a)
		return notifier.FormatAnalysis(a)
	case "/watchlist":
		s.watchlistTask()
		return ""
	case "/watch":
		if arg == "" {
			return "Usage: /watch SYMBOL"
		}
		added, err := s.Watchlist.Add(arg)
		if err != nil {
			return errorReply(err)
		}
		if !added {
			return sym + " is already watched"
		}
		return "✅ watching " + sym
	case "/unwatch":
		removed, err := s.Watchlist.Remove(arg)
		if err != nil {
			return errorReply(err)
		}
		if !removed {
			return sym + " is not watched"
		}
		return "✅ stopped watching " + sym
	case "/sentiment":
		return fmt.Sprintf("📰 %d documents\n%s", s.Library.Len(), notifier.FormatSentiment(s.Library.Sentiment()))
	case "/history":
		if arg == "" {
			return "Usage: /history SYMBOL"
		}
		entries, err := s.Recorder.RecentAnalyses(strings.ToUpper(arg), 10)
		if err != nil {
			return errorReply(err)
		}
		return notifier.FormatHistory(strings.ToUpper(arg), entries)
	case "/ask":
		if s.Assistant == nil {
			return "Q&A back-end is not configured"
		}
		question := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(command), fields[0]))
		ans, err := s.Assistant.Ask(s.Ctx, question, "")
		if err != nil {
			return errorReply(err)
		}
		return assistant.AnswerHTML(ans.Text)
	default:
		return helpText()
	}
}

func errorReply(err error) string {
	return "❌ " + html.EscapeString(err.Error())
}

func helpText() string {
	return "Available commands:\n" +
		"• /analyze SYMBOL\n" +
		"• /watchlist\n" +
		"• /watch SYMBOL | /unwatch SYMBOL\n" +
		"• /sentiment\n" +
		"• /history SYMBOL\n" +
		"• /ask QUESTION"
}

func (s *Scheduler) record(a *model.Analysis) {
	if err := s.Recorder.RecordAnalysis(a); err != nil {
		log.Printf("[ERROR] record analysis: %v", err)
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
