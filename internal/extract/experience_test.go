package extract

import (
	"slices"
	"testing"

	"cvmatch/internal/types"
)

func TestExtractExperience(t *testing.T) {
	tests := []struct {
		name    string
		full    string
		section string
		want    []string
	}{
		{
			name:    "marker sentences from section",
			full:    "irrelevant",
			section: "Experience at Acme. Data Intern at Acme Corp. Enjoys hiking",
			want:    []string{"Experience at Acme", "Data Intern at Acme Corp"},
		},
		{
			name:    "indonesian markers",
			full:    "irrelevant",
			section: "Pengalaman kerja dulu. Magang di PT Contoh. Staf administrasi kantor",
			want:    []string{"Magang di PT Contoh", "Staf administrasi kantor"},
		},
		{
			name:    "short section falls back to full text",
			full:    "Summary line here. Project lead for the billing system",
			section: "Work",
			want:    []string{"Project lead for the billing system"},
		},
		{
			name:    "duplicates collapsed case insensitively",
			full:    "irrelevant",
			section: "Intern at Acme. intern at acme. Intern at Acme",
			want:    []string{"Intern at Acme"},
		},
		{
			name:    "sentinel when nothing qualifies",
			full:    "short resume with no work history sentences",
			section: "",
			want:    []string{types.NotDetected},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractExperience(tt.full, tt.section)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ExtractExperience() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractExperienceNeverEmpty(t *testing.T) {
	got := ExtractExperience("", "")
	if len(got) == 0 {
		t.Fatal("ExtractExperience() returned empty slice, want sentinel")
	}
	if got[0] != types.NotDetected {
		t.Errorf("ExtractExperience() = %v, want sentinel entry", got)
	}
}
