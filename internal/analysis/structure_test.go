package analysis

import (
	"slices"
	"testing"
)

func TestMissingSections(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "all sections present as standalone tokens",
			text: "experience education skills",
			want: nil,
		},
		{
			name: "no sections present",
			text: "A resume with none of the expected headers.",
			want: []string{"experience", "education", "skills"},
		},
		{
			name: "pluralized header does not count",
			text: "Experiences\neducation\nskills",
			want: []string{"experience"},
		},
		{
			name: "case insensitive match",
			text: "EXPERIENCE Education skills",
			want: nil,
		},
		{
			name: "multi-word mention does not rescue a missing header",
			text: "work history\neducation\nskills",
			want: []string{"experience"},
		},
		{
			name: "empty document",
			text: "",
			want: []string{"experience", "education", "skills"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MissingSections(tt.text)
			if !slices.Equal(got, tt.want) {
				t.Errorf("MissingSections(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
