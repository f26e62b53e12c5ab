package main

import (
	"log"
	"os"

	"FinDocSignal/internal/collector"
	"FinDocSignal/internal/config"
	"FinDocSignal/internal/recorder"

	"github.com/spf13/cobra"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "findoc",
	Short:         "Price indicators and document sentiment for stock symbols",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}
		return cfg.Validate()
	},
}

func init() {
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultPath, "configuration file")
	rootCmd.AddCommand(serveCmd, analyzeCmd, sentimentCmd, askCmd, versionCmd)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

func newFetcher(c *config.Config) collector.Fetcher {
	switch c.DataSource.Provider {
	case "yahoo":
		return collector.NewYahooFetcher(c.DataSource.HistoryDays)
	case "mock":
		return &collector.MockFetcher{Price: 100, Days: c.DataSource.HistoryDays}
	default:
		return collector.NewAlphaVantageFetcher(c.AlphaVantage.BaseURL, c.AlphaVantage.APIKey,
			c.AlphaVantage.RequestsPerMinute, c.Proxy)
	}
}

func newCollector(c *config.Config) *collector.Collector {
	params := collector.DefaultParams()
	params.MAWindow = c.Analysis.MAWindow
	params.SlopeWindow = c.Analysis.SlopeWindow
	params.DropThreshold = c.Analysis.DropThreshold
	params.StrictInput = c.Analysis.StrictInput
	params.Concurrency = c.Analysis.Concurrency

	fetcher := newFetcher(c)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	return collector.NewCollector(fetcher, params)
}

func openRecorder(c *config.Config) recorder.Recorder {
	if c.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	if err := os.MkdirAll(dirOf(c.Database.SQLitePath), 0o755); err != nil {
		log.Printf("[WARN] create data dir: %v", err)
	}
	sr, err := recorder.NewSQLiteRecorder(c.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}
