package extract

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"

	"resumelens/internal/types"
)

type fakeOCR struct {
	text  string
	calls int
}

func (f *fakeOCR) Recognize(ctx context.Context, pagePDF []byte) (string, error) {
	f.calls++
	return f.text, nil
}

func buildPDF(t *testing.T, lines ...string) []byte {
	t.Helper()

	doc := fpdf.New("P", "pt", "Letter", "")
	doc.AddPage()
	if len(lines) > 0 {
		doc.SetFont("Helvetica", "", 12)
		for _, line := range lines {
			doc.Cell(0, 16, line)
			doc.Ln(16)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("failed to build PDF: %v", err)
	}
	return buf.Bytes()
}

func TestExtractPDFTextLayer(t *testing.T) {
	e := NewExtractor(nil, nil)

	content := buildPDF(t, "Jane Doe", "Skills include Go and SQL")
	text, err := e.Extract(context.Background(), types.Document{
		Content: content,
		Format:  types.FormatPDF,
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(text, "Jane Doe") {
		t.Errorf("extracted text %q missing %q", text, "Jane Doe")
	}
}

func TestExtractPDFFallsBackToOCR(t *testing.T) {
	ocr := &fakeOCR{text: "Scanned resume text"}
	e := NewExtractor(ocr, nil)

	// A page without a text layer behaves like a scan.
	content := buildPDF(t)
	text, err := e.Extract(context.Background(), types.Document{
		Content: content,
		Format:  types.FormatPDF,
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if ocr.calls != 1 {
		t.Errorf("OCR called %d times, want 1", ocr.calls)
	}
	if text != "Scanned resume text" {
		t.Errorf("Extract = %q, want OCR output", text)
	}
}

func TestExtractPDFEmptyPageWithoutOCR(t *testing.T) {
	e := NewExtractor(nil, nil)

	content := buildPDF(t)
	_, err := e.Extract(context.Background(), types.Document{
		Content: content,
		Format:  types.FormatPDF,
	})
	if err == nil {
		t.Fatal("expected error when no text path and no OCR path yields content")
	}
}
