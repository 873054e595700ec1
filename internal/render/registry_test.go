package render

import (
	"bytes"
	stderrors "errors"
	"reflect"
	"strings"
	"testing"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

var sampleFields = types.ResumeFields{
	Name:       "Jane Doe",
	Email:      "jane@example.com",
	Phone:      "+1 555-123-4567",
	Education:  "BSc Computer Science",
	Experience: "Software Engineer at Acme",
	Skills:     "Go, SQL, Kubernetes",
}

func TestTemplateNames(t *testing.T) {
	r := NewRegistry(nil)

	want := []string{"classic", "creative", "executive", "minimalist", "modern"}
	if got := r.TemplateNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("TemplateNames = %v, want %v", got, want)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r := NewRegistry(nil)

	_, _, err := r.Render(types.RenderRequest{
		Fields:   sampleFields,
		Template: "fancy",
		Format:   types.FormatPDF,
	})
	if err == nil {
		t.Fatal("expected error for unknown template")
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeTemplateNotFound {
		t.Errorf("error code = %s, want %s", appErr.Code, errors.ErrCodeTemplateNotFound)
	}
	if !strings.Contains(appErr.Message, "Template 'fancy' not found") {
		t.Errorf("message %q missing template name", appErr.Message)
	}
	if !strings.Contains(appErr.Message, "modern") {
		t.Errorf("message %q should list available templates", appErr.Message)
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	r := NewRegistry(nil)

	_, _, err := r.Render(types.RenderRequest{
		Fields:   sampleFields,
		Template: "modern",
		Format:   types.DocumentFormat("txt"),
	})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrCodeUnsupportedFormat {
		t.Errorf("expected %s error, got %v", errors.ErrCodeUnsupportedFormat, err)
	}
}

func TestRenderPDFAllTemplates(t *testing.T) {
	r := NewRegistry(nil)

	for _, name := range r.TemplateNames() {
		t.Run(name, func(t *testing.T) {
			data, contentType, err := r.Render(types.RenderRequest{
				Fields:   sampleFields,
				Template: name,
				Format:   types.FormatPDF,
			})
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if contentType != ContentTypePDF {
				t.Errorf("content type = %q, want %q", contentType, ContentTypePDF)
			}
			if !bytes.HasPrefix(data, []byte("%PDF")) {
				t.Errorf("rendered output does not look like a PDF")
			}
		})
	}
}

func TestRenderEmptyFormatDefaultsToPDF(t *testing.T) {
	r := NewRegistry(nil)

	_, contentType, err := r.Render(types.RenderRequest{
		Fields:   sampleFields,
		Template: "classic",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if contentType != ContentTypePDF {
		t.Errorf("content type = %q, want %q", contentType, ContentTypePDF)
	}
}

func TestRenderPDFWithEmptyFields(t *testing.T) {
	r := NewRegistry(nil)

	data, _, err := r.Render(types.RenderRequest{
		Fields:   types.ResumeFields{},
		Template: "minimalist",
		Format:   types.FormatPDF,
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty output for empty fields")
	}
}

func TestSanitizeFields(t *testing.T) {
	got := sanitizeFields(types.ResumeFields{
		Name:  "Jane\x00Doe",
		Email: "jane@example.com\x01",
	})
	if got.Name != "JaneDoe" {
		t.Errorf("Name = %q, want control characters stripped", got.Name)
	}
	if got.Email != "jane@example.com" {
		t.Errorf("Email = %q, want control characters stripped", got.Email)
	}
}
