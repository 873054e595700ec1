// Package render turns structured resume fields into downloadable
// PDF and DOCX documents through a registry of named templates.
package render

import (
	"fmt"
	"sort"
	"strings"

	"resumelens/internal/analysis"
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// Content types for rendered documents
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Registry resolves template names and renders documents
type Registry struct {
	templates map[string]templateStyle
	logger    *errors.Logger
}

// NewRegistry creates a registry with the built-in templates
func NewRegistry(logger *errors.Logger) *Registry {
	return &Registry{
		templates: builtinTemplates,
		logger:    logger,
	}
}

// TemplateNames returns the valid template names in sorted order
func (r *Registry) TemplateNames() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render produces the document bytes and content type for a request.
// All field values are sanitized before they reach a template.
func (r *Registry) Render(req types.RenderRequest) ([]byte, string, error) {
	style, ok := r.templates[req.Template]
	if !ok {
		return nil, "", errors.NewRenderError(errors.ErrCodeTemplateNotFound,
			fmt.Sprintf("Template '%s' not found. Available templates: %s",
				req.Template, strings.Join(r.TemplateNames(), ", ")), nil)
	}

	fields := sanitizeFields(req.Fields)

	switch req.Format {
	case types.FormatDOCX:
		data, err := renderDOCX(fields)
		if err != nil {
			return nil, "", errors.NewRenderError(errors.ErrCodeRenderFailed,
				"Failed to render DOCX resume", err)
		}
		return data, ContentTypeDOCX, nil
	case types.FormatPDF, "":
		data, err := renderPDF(style, fields)
		if err != nil {
			return nil, "", errors.NewRenderError(errors.ErrCodeRenderFailed,
				"Failed to render PDF resume", err)
		}
		return data, ContentTypePDF, nil
	default:
		return nil, "", errors.NewRenderError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("Unsupported output format: %s", req.Format), nil)
	}
}

func sanitizeFields(f types.ResumeFields) types.ResumeFields {
	return types.ResumeFields{
		Name:       analysis.Sanitize(f.Name),
		Email:      analysis.Sanitize(f.Email),
		Phone:      analysis.Sanitize(f.Phone),
		Education:  analysis.Sanitize(f.Education),
		Experience: analysis.Sanitize(f.Experience),
		Skills:     analysis.Sanitize(f.Skills),
	}
}
