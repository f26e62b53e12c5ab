package main

import (
	"errors"
	"fmt"
	"strings"

	"FinDocSignal/internal/assistant"

	"github.com/spf13/cobra"
)

var (
	askTicker string
	askDocs   []string
)

var askCmd = &cobra.Command{
	Use:   "ask QUESTION",
	Short: "Ask the document Q&A back-end a question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Backend.BaseURL == "" {
			return errors.New("backend.base_url is not configured")
		}
		ctx := cmd.Context()
		client := assistant.New(cfg.Backend.BaseURL, 0)

		for _, path := range askDocs {
			if strings.HasSuffix(strings.ToLower(path), ".pdf") {
				if _, err := loadPDF(ctx, client, path); err != nil {
					return err
				}
				continue
			}
			if err := indexDocument(ctx, client, path); err != nil {
				return err
			}
		}

		ans, err := client.Ask(ctx, strings.Join(args, " "), askTicker)
		if err != nil {
			return err
		}
		fmt.Println(answerStyle.Render(ans.Text))
		for i, src := range ans.Sources {
			fmt.Println(mutedStyle.Render(fmt.Sprintf("[%d] %s", i+1, src.Content)))
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askTicker, "ticker", "t", "", "ticker the question is about")
	askCmd.Flags().StringSliceVarP(&askDocs, "doc", "d", nil, "document to index before asking (repeatable)")
}
