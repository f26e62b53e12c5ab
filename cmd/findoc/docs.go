package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"FinDocSignal/internal/assistant"
	"FinDocSignal/internal/ingest"
)

// loadPDF uploads a PDF; the back-end indexes it as a side effect.
func loadPDF(ctx context.Context, client *assistant.Client, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return client.ProcessPDF(ctx, filepath.Base(path), data)
}

// indexDocument sends the text of a local file or URL to the back-end.
func indexDocument(ctx context.Context, client *assistant.Client, ref string) error {
	lib := ingest.NewLibrary(1)
	if err := loadDocuments(ctx, lib, []string{ref}); err != nil {
		return err
	}
	if lib.Len() == 0 {
		return nil
	}
	return client.ProcessDocument(ctx, lib.Text())
}
