package render

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"

	"resumelens/internal/types"
)

// templateStyle describes the look of a PDF template. All templates
// share the same layout; only fonts, sizes, and colors vary.
type templateStyle struct {
	nameFont    string
	nameStyle   string
	nameSize    float64
	contactFont string
	contactStyle string
	bodyFont    string
	headerFont  string
	headerStyle string
	headerSize  float64
	headerColor [3]int
	headerGray  bool
}

var builtinTemplates = map[string]templateStyle{
	"modern": {
		nameFont: "Helvetica", nameStyle: "B", nameSize: 18,
		contactFont: "Helvetica", bodyFont: "Helvetica",
		headerFont: "Helvetica", headerStyle: "B", headerSize: 14,
	},
	"classic": {
		nameFont: "Times", nameStyle: "B", nameSize: 18,
		contactFont: "Times", bodyFont: "Times",
		headerFont: "Times", headerStyle: "B", headerSize: 14,
	},
	"creative": {
		nameFont: "Helvetica", nameStyle: "B", nameSize: 20,
		contactFont: "Helvetica", contactStyle: "I", bodyFont: "Helvetica",
		headerFont: "Helvetica", headerStyle: "B", headerSize: 16,
		headerColor: [3]int{51, 102, 204},
	},
	"executive": {
		nameFont: "Helvetica", nameStyle: "B", nameSize: 22,
		contactFont: "Helvetica", bodyFont: "Helvetica",
		headerFont: "Helvetica", headerStyle: "B", headerSize: 16,
	},
	"minimalist": {
		nameFont: "Helvetica", nameStyle: "B", nameSize: 18,
		contactFont: "Helvetica", bodyFont: "Helvetica",
		headerFont: "Helvetica", headerStyle: "", headerSize: 14,
		headerGray: true,
	},
}

const (
	pageMargin    = 50.0
	lineHeight    = 16.0
	sectionGap    = 14.0
	bodyFontSize  = 12.0
)

// renderPDF lays out the resume with a name header, a contact line, and
// one block per section.
func renderPDF(style templateStyle, fields types.ResumeFields) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	name := fields.Name
	if name == "" {
		name = "Anonymous"
	}
	pdf.SetFont(style.nameFont, style.nameStyle, style.nameSize)
	pdf.CellFormat(0, style.nameSize+4, name, "", 1, "L", false, 0, "")

	pdf.SetFont(style.contactFont, style.contactStyle, bodyFontSize)
	pdf.CellFormat(0, lineHeight, contactLine(fields), "", 1, "L", false, 0, "")
	pdf.Ln(sectionGap)

	sections := []struct {
		title string
		body  string
	}{
		{"Education", fields.Education},
		{"Experience", fields.Experience},
		{"Skills", fields.Skills},
	}

	for _, section := range sections {
		pdf.SetFont(style.headerFont, style.headerStyle, style.headerSize)
		switch {
		case style.headerColor != [3]int{}:
			pdf.SetTextColor(style.headerColor[0], style.headerColor[1], style.headerColor[2])
		case style.headerGray:
			pdf.SetTextColor(51, 51, 51)
		}
		pdf.CellFormat(0, style.headerSize+4, section.title, "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)

		pdf.SetFont(style.bodyFont, "", bodyFontSize)
		body := section.body
		if body == "" {
			body = "N/A"
		}
		pdf.MultiCell(0, lineHeight, body, "", "L", false)
		pdf.Ln(sectionGap)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func contactLine(fields types.ResumeFields) string {
	email := fields.Email
	if email == "" {
		email = "N/A"
	}
	phone := fields.Phone
	if phone == "" {
		phone = "N/A"
	}
	return strings.Join([]string{email, phone}, " | ")
}
