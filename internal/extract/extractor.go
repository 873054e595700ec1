package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// PageOCR recognizes text on a single-page PDF that carries no extractable
// text layer. Implementations are expected to be slow and rate limited;
// callers bound them with the request context.
type PageOCR interface {
	Recognize(ctx context.Context, pagePDF []byte) (string, error)
}

// Extractor turns a raw document byte stream into plain text.
type Extractor struct {
	ocr    PageOCR
	logger *errors.Logger

	// ocrConcurrency bounds parallel OCR calls for one document. Pages are
	// independent, so running them concurrently does not change the result.
	ocrConcurrency int
}

// NewExtractor creates a text extractor. ocr may be nil, in which case
// image-only pages contribute no text.
func NewExtractor(ocr PageOCR, logger *errors.Logger) *Extractor {
	return &Extractor{
		ocr:            ocr,
		logger:         logger,
		ocrConcurrency: 4,
	}
}

// Extract produces the plain text of doc, or fails when no text path and no
// OCR path yields any content.
func (e *Extractor) Extract(ctx context.Context, doc types.Document) (string, error) {
	var (
		text string
		err  error
	)

	switch doc.Format {
	case types.FormatPDF:
		text, err = e.extractPDF(ctx, doc.Content)
	case types.FormatDOCX:
		text, err = extractDOCX(doc.Content)
	case types.FormatText:
		text = normalizeNewlines(string(doc.Content))
	default:
		return "", errors.NewExtractionError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("Unsupported document format: %q", doc.Format), nil)
	}

	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"No text could be recovered from the document", nil).
			WithContext("format", string(doc.Format)).
			WithContext("size_bytes", len(doc.Content))
	}
	return text, nil
}

// normalizeNewlines collapses Windows line endings so downstream line scans
// see uniform separators.
func normalizeNewlines(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}

func isEmptyPage(text string) bool {
	return strings.TrimSpace(text) == ""
}

// joinPages concatenates page outputs with newline separators, preserving
// page order.
func joinPages(pages []string) string {
	var b bytes.Buffer
	for _, p := range pages {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		b.WriteString(p)
		b.WriteString("\n")
	}
	return b.String()
}
