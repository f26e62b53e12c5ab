package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"FinDocSignal/internal/model"
)

// ErrUnsupported is returned for file types that cannot be turned into text.
var ErrUnsupported = errors.New("unsupported document type")

// PDFExtractor turns a PDF into plain text.
type PDFExtractor interface {
	ExtractPDF(ctx context.Context, name string, data []byte) (string, error)
}

// LoadFile reads a local document. Plain text is used as is, HTML is stripped
// to its text and PDFs go through pdf, which may be nil when no extractor is
// configured.
func LoadFile(ctx context.Context, path string, pdf PDFExtractor) (model.Document, error) {
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(name))

	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("read %s: %w", name, err)
	}

	var content string
	switch ext {
	case ".txt", ".md":
		content = string(data)
	case ".html", ".htm":
		content = StripHTML(string(data))
	case ".pdf":
		if pdf == nil {
			return model.Document{}, fmt.Errorf("%s: no PDF extractor configured: %w", name, ErrUnsupported)
		}
		if content, err = pdf.ExtractPDF(ctx, name, data); err != nil {
			return model.Document{}, fmt.Errorf("extract %s: %w", name, err)
		}
	default:
		return model.Document{}, fmt.Errorf("%s: %w", name, ErrUnsupported)
	}

	return model.Document{
		Name:    name,
		Type:    strings.TrimPrefix(ext, "."),
		Source:  model.SourceUpload,
		Content: content,
		AddedAt: time.Now(),
	}, nil
}
