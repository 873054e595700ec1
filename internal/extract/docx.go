package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"resumelens/internal/errors"
)

// extractDOCX concatenates paragraph texts from word/document.xml in
// document order, one newline per paragraph. A DOCX file is a zip archive;
// the main body lives in a single XML part.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"Failed to open DOCX archive", err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
				"Failed to open document body", err)
		}
		defer rc.Close()
		return parseDocumentXML(rc)
	}

	return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
		"DOCX archive has no document body", nil)
}

// parseDocumentXML streams the WordprocessingML body, collecting the
// character data of w:t runs and closing each w:p paragraph with a newline.
func parseDocumentXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
				"Malformed document body", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
