package common

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

func TestReadDocumentFormatInference(t *testing.T) {
	fp := NewFileProcessor(errors.NewLogger(slog.LevelError))
	dir := t.TempDir()

	tests := []struct {
		name       string
		filename   string
		wantFormat types.DocumentFormat
		wantErr    bool
	}{
		{"pdf extension", "resume.pdf", types.FormatPDF, false},
		{"docx extension", "resume.docx", types.FormatDOCX, false},
		{"uppercase extension", "resume.PDF", types.FormatPDF, false},
		{"plain text extension", "resume.txt", types.FormatText, false},
		{"unsupported extension", "resume.odt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.filename)
			if err := os.WriteFile(path, []byte("content"), 0600); err != nil {
				t.Fatalf("failed to write fixture: %v", err)
			}

			doc, err := fp.ReadDocument(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unsupported extension")
				}
				var appErr *errors.AppError
				if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrCodeUnsupportedFormat {
					t.Errorf("expected %s error, got %v", errors.ErrCodeUnsupportedFormat, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadDocument() error: %v", err)
			}
			if doc.Format != tt.wantFormat {
				t.Errorf("format = %q, want %q", doc.Format, tt.wantFormat)
			}
			if string(doc.Content) != "content" {
				t.Errorf("content = %q", doc.Content)
			}
		})
	}
}

func TestReadDocumentMissingFile(t *testing.T) {
	fp := NewFileProcessor(errors.NewLogger(slog.LevelError))

	_, err := fp.ReadDocument(filepath.Join(t.TempDir(), "absent.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
