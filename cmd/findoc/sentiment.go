package main

import (
	"fmt"
	"io"
	"os"

	"FinDocSignal/internal/ingest"
	"FinDocSignal/internal/model"
	"FinDocSignal/internal/sentiment"

	"github.com/spf13/cobra"
)

var sentimentCmd = &cobra.Command{
	Use:   "sentiment [FILE|URL...]",
	Short: "Score the tone of documents (stdin when no argument is given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			s := sentiment.Score(string(data))
			fmt.Println(renderSentiment("stdin", &s))
			return nil
		}

		lib := ingest.NewLibrary(len(args))
		if err := loadDocuments(cmd.Context(), lib, args); err != nil {
			return err
		}
		for _, doc := range lib.Documents() {
			s := sentiment.Score(doc.Content)
			fmt.Println(renderSentiment(doc.Name, &s))
		}
		if lib.Len() > 1 {
			fmt.Println(renderSentiment("combined", lib.Sentiment()))
		}
		return nil
	},
}

func renderSentiment(name string, s *model.SentimentScores) string {
	if s == nil {
		return mutedStyle.Render(name + ": no text")
	}
	return fmt.Sprintf("%s  %s %d  %s %.1f  %s %d  balance %+.2f",
		titleStyle.Render(name),
		buyStyle.Render("positive"), s.Positive,
		holdStyle.Render("neutral"), s.Neutral,
		sellStyle.Render("negative"), s.Negative,
		sentiment.Balance(s))
}
