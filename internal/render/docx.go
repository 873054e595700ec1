package render

import (
	"bytes"

	"github.com/unidoc/unioffice/document"

	"resumelens/internal/types"
)

// renderDOCX writes each populated field as a heading followed by its
// content. DOCX output is template-independent.
func renderDOCX(fields types.ResumeFields) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	sections := []struct {
		title string
		body  string
	}{
		{"Name", fields.Name},
		{"Email", fields.Email},
		{"Phone", fields.Phone},
		{"Education", fields.Education},
		{"Experience", fields.Experience},
		{"Skills", fields.Skills},
	}

	for _, section := range sections {
		if section.body == "" {
			continue
		}
		heading := doc.AddParagraph()
		heading.SetStyle("Heading1")
		heading.AddRun().AddText(section.title)

		para := doc.AddParagraph()
		para.AddRun().AddText(section.body)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
