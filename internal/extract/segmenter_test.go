package extract

import (
	"strings"
	"testing"
)

func TestSplitSections(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		section  string
		contains string
	}{
		{
			name:     "education heading opens education section",
			text:     "John Doe\nEducation\nUniversitas Contoh\nSkills\nPython",
			section:  SectionEducation,
			contains: "Universitas Contoh",
		},
		{
			name:     "indonesian heading is recognized",
			text:     "John Doe\nPendidikan\nInstitut Teknologi Contoh",
			section:  SectionEducation,
			contains: "Institut Teknologi Contoh",
		},
		{
			name:     "skills heading opens skills section",
			text:     "Intro\nSkills\nPython, SQL",
			section:  SectionSkills,
			contains: "Python, SQL",
		},
		{
			name:     "work heading opens experience section",
			text:     "Intro\nWork History\nIntern at Acme",
			section:  SectionExperience,
			contains: "Intern at Acme",
		},
		{
			name:     "preamble lands in general",
			text:     "John Doe\nJakarta\nEducation\nUniversitas Contoh",
			section:  SectionGeneral,
			contains: "Jakarta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := SplitSections(tt.text)
			got := sections[tt.section]
			if !strings.Contains(got, tt.contains) {
				t.Errorf("section %q = %q, want it to contain %q", tt.section, got, tt.contains)
			}
		})
	}
}

func TestSplitSectionsNoHeadings(t *testing.T) {
	sections := SplitSections("John Doe\nJakarta\nPython developer")

	if _, ok := sections[SectionEducation]; ok {
		t.Error("expected no education section for a heading-less document")
	}
	if !strings.Contains(sections[SectionGeneral], "Python developer") {
		t.Errorf("general section = %q, want full document content", sections[SectionGeneral])
	}
}

func TestSplitSectionsForwardOnly(t *testing.T) {
	// A later heading switches the open section; earlier lines stay put.
	text := "Skills\nPython\nEducation\nUniversitas Contoh"
	sections := SplitSections(text)

	if strings.Contains(sections[SectionSkills], "Universitas") {
		t.Errorf("skills section = %q, must not absorb lines after a later heading", sections[SectionSkills])
	}
	if !strings.Contains(sections[SectionEducation], "Universitas Contoh") {
		t.Errorf("education section = %q, want trailing lines", sections[SectionEducation])
	}
}
