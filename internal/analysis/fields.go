package analysis

import (
	"strings"
	"unicode"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// Section capture lengths: how many lines after a matched header line are
// taken as the section body.
const (
	educationCaptureLines  = 4
	experienceCaptureLines = 6
	skillsCaptureLines     = 4
)

// FieldExtractor scans extracted resume text line by line with positional
// heuristics. It never fails; fields that cannot be located stay empty.
type FieldExtractor struct {
	logger *errors.Logger
}

func NewFieldExtractor(logger *errors.Logger) *FieldExtractor {
	return &FieldExtractor{logger: logger}
}

// Extract runs a single forward pass over the lines of text. Each field is
// assigned at most once (first match wins); a later line matching an
// already-assigned field is ignored. Section bodies deliberately capture the
// following N raw lines even when that crosses into an adjacent section.
// Callers depend on that exact behavior.
func (fe *FieldExtractor) Extract(text string) types.ResumeFields {
	var fields types.ResumeFields

	if strings.TrimSpace(text) == "" {
		if fe.logger != nil {
			fe.logger.Warn("Field extraction received empty text")
		}
		return fields
	}

	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		if fields.Name == "" && !strings.Contains(line, "@") && !containsDigit(line) {
			fields.Name = line
		}
		if fields.Email == "" && strings.Contains(line, "@") {
			fields.Email = line
		}
		if fields.Phone == "" && looksLikePhone(line) {
			fields.Phone = line
		}
		if fields.Education == "" && strings.Contains(lower, "education") {
			fields.Education = captureSection(lines, i, educationCaptureLines)
		}
		if fields.Experience == "" && (strings.Contains(lower, "experience") || strings.Contains(lower, "work")) {
			fields.Experience = captureSection(lines, i, experienceCaptureLines)
		}
		if fields.Skills == "" && strings.Contains(lower, "skills") {
			fields.Skills = captureSection(lines, i, skillsCaptureLines)
		}
	}

	fields.Name = Sanitize(fields.Name)
	fields.Email = Sanitize(fields.Email)
	fields.Phone = Sanitize(fields.Phone)
	fields.Education = Sanitize(fields.Education)
	fields.Experience = Sanitize(fields.Experience)
	fields.Skills = Sanitize(fields.Skills)

	return fields
}

// captureSection joins the n lines following the header line at index i.
// When the header is the last line, the header itself is the body.
func captureSection(lines []string, i, n int) string {
	if i+1 >= len(lines) {
		return strings.TrimSpace(lines[i])
	}
	end := min(i+1+n, len(lines))
	return strings.TrimSpace(strings.Join(lines[i+1:end], "\n"))
}

// looksLikePhone accepts a line with at least one digit whose length,
// ignoring space and dash separators, falls in [8,15].
func looksLikePhone(line string) bool {
	if !containsDigit(line) {
		return false
	}
	stripped := strings.ReplaceAll(strings.ReplaceAll(line, " ", ""), "-", "")
	return len(stripped) >= 8 && len(stripped) <= 15
}

func containsDigit(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}
