package extract

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/sync/errgroup"

	"resumelens/internal/errors"
)

// extractPDF walks the pages in order, preferring the embedded text layer.
// Pages without one (scanned images) are carved out as single-page PDFs and
// handed to the OCR collaborator. Mixed documents are common: some pages
// native text, some scans, so the fallback is per page, not per document.
func (e *Extractor) extractPDF(ctx context.Context, content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"Failed to open PDF", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, numPages)
	var ocrPages []int

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			ocrPages = append(ocrPages, i)
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil || isEmptyPage(text) {
			if err != nil && e.logger != nil {
				e.logger.Debug("Text layer extraction failed, queueing page for OCR",
					"page", i, "error", err.Error())
			}
			ocrPages = append(ocrPages, i)
			continue
		}
		pages[i-1] = normalizeNewlines(text)
	}

	if len(ocrPages) > 0 && e.ocr != nil {
		if err := e.runOCR(ctx, content, ocrPages, pages); err != nil {
			return "", err
		}
	}

	return joinPages(pages), nil
}

// runOCR recognizes the listed pages concurrently and writes results back
// into the page slice so document order is preserved.
func (e *Extractor) runOCR(ctx context.Context, content []byte, pageNums []int, pages []string) error {
	if e.logger != nil {
		e.logger.Info("Running OCR fallback", "pages", len(pageNums))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.ocrConcurrency)

	for _, pageNum := range pageNums {
		g.Go(func() error {
			pageBytes, err := extractSinglePage(content, pageNum)
			if err != nil {
				return err
			}

			text, err := e.ocr.Recognize(ctx, pageBytes)
			if err != nil {
				// One unreadable page does not fail the document; the
				// all-empty case is caught by the caller.
				if e.logger != nil {
					e.logger.Warn("OCR failed for page", "page", pageNum, "error", err.Error())
				}
				return nil
			}
			pages[pageNum-1] = normalizeNewlines(text)
			return nil
		})
	}
	return g.Wait()
}

// extractSinglePage carves page n out of the source PDF as a standalone
// single-page document suitable for an OCR request.
func extractSinglePage(content []byte, n int) ([]byte, error) {
	var buf bytes.Buffer
	if err := api.Trim(bytes.NewReader(content), &buf, []string{strconv.Itoa(n)}, nil); err != nil {
		return nil, errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			fmt.Sprintf("Failed to isolate page %d for OCR", n), err)
	}
	return buf.Bytes(), nil
}
