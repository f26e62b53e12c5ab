package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"FinDocSignal/internal/assistant"
	"FinDocSignal/internal/ingest"
	"FinDocSignal/internal/model"

	"github.com/spf13/cobra"
)

var (
	docPaths   []string
	noRecord   bool
	showSeries bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [SYMBOL...]",
	Short: "Compute indicators and a recommendation for symbols",
	Long: "Fetches daily closes, computes the moving average, trend slope, sharp drops and RSI,\n" +
		"then combines the trend with the sentiment of any documents passed with --doc.\n" +
		"Without symbols the configured watchlist is analyzed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		symbols := args
		if len(symbols) == 0 {
			symbols = cfg.DataSource.Symbols
		}
		for i := range symbols {
			symbols[i] = strings.ToUpper(symbols[i])
		}

		lib := ingest.NewLibrary(ingest.MaxDocuments)
		if err := loadDocuments(ctx, lib, docPaths); err != nil {
			return err
		}

		rec := openRecorder(cfg)
		defer rec.Close()

		failed := 0
		for _, r := range newCollector(cfg).AnalyzeMany(ctx, symbols, lib.Sentiment()) {
			if r.Err != nil {
				failed++
				fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("%s: %v", r.Symbol, r.Err)))
				continue
			}
			if !noRecord {
				if err := rec.RecordAnalysis(r.Analysis); err != nil {
					fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("record %s: %v", r.Symbol, err)))
				}
			}
			fmt.Println(renderAnalysis(r.Analysis, showSeries))
		}
		if failed == len(symbols) {
			return fmt.Errorf("all %d symbols failed", failed)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringSliceVarP(&docPaths, "doc", "d", nil, "document file or URL to score (repeatable)")
	analyzeCmd.Flags().BoolVar(&noRecord, "no-record", false, "do not store the analysis in the history database")
	analyzeCmd.Flags().BoolVar(&showSeries, "series", false, "print the trailing closes with their moving average")
}

// loadDocuments adds local files and URLs to lib. PDFs need the back-end.
func loadDocuments(ctx context.Context, lib *ingest.Library, refs []string) error {
	if len(refs) == 0 {
		return nil
	}
	var pdf ingest.PDFExtractor
	if cfg.Backend.BaseURL != "" {
		pdf = assistant.New(cfg.Backend.BaseURL, 0)
	}
	web := ingest.NewFetcher(0, cfg.Proxy)

	for _, ref := range refs {
		var (
			doc model.Document
			err error
		)
		if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
			doc, err = web.FetchURL(ctx, ref)
		} else {
			doc, err = ingest.LoadFile(ctx, ref, pdf)
		}
		if err != nil {
			return err
		}
		if !lib.Add(doc) {
			fmt.Fprintln(os.Stderr, mutedStyle.Render(fmt.Sprintf("%s: no text, skipped", doc.Name)))
		}
	}
	return nil
}
