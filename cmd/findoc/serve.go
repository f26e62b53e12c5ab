package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"FinDocSignal/internal/assistant"
	"FinDocSignal/internal/ingest"
	"FinDocSignal/internal/notifier"
	"FinDocSignal/internal/scheduler"
	"FinDocSignal/internal/watchlist"

	"github.com/spf13/cobra"
)

var runOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot with scheduled watchlist reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateBot(); err != nil {
			return err
		}
		log.Println("[INFO] findoc bot starting...")

		col := newCollector(cfg)
		lib := ingest.NewLibrary(ingest.MaxDocuments)

		if err := os.MkdirAll(dirOf(cfg.Watchlist.StateFile), 0o755); err != nil {
			log.Printf("[WARN] create state dir: %v", err)
		}
		wl, err := watchlist.NewManager(cfg.Watchlist.StateFile, cfg.DataSource.Symbols)
		if err != nil {
			return err
		}

		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		rec := openRecorder(cfg)
		defer rec.Close()

		// Context for graceful shutdown
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sched := scheduler.NewScheduler(ctx, col, lib, wl, tn, rec)
		sched.Feeds = ingest.NewFeedReader(cfg.Feeds.MaxItems)
		sched.FeedURLs = cfg.Feeds.URLs
		if cfg.Backend.BaseURL != "" {
			sched.Assistant = assistant.New(cfg.Backend.BaseURL, 0)
		}
		if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.FeedCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")

		if runOnStart || os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] run on start enabled, refreshing feeds and watchlist now")
			go func() {
				if len(sched.FeedURLs) > 0 {
					sched.RefreshFeedsNow()
				}
				sched.RunWatchlistNow()
			}()
		}

		log.Println("[INFO] findoc is running. Press Ctrl+C to stop.")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
			log.Println("[INFO] shutdown signal received, stopping...")
		case <-ctx.Done():
		}
		cancel()
		log.Println("[INFO] findoc stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&runOnStart, "run-now", false, "analyze the watchlist immediately after start")
}

func dirOf(path string) string {
	return filepath.Dir(path)
}
