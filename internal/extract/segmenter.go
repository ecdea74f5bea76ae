package extract

import "strings"

// Section names produced by SplitSections.
const (
	SectionGeneral    = "general"
	SectionEducation  = "education"
	SectionExperience = "experience"
	SectionSkills     = "skills"
)

// headingKeywords maps a heading keyword to the section it opens. Resumes
// are linear documents, so a heading governs every following line until the
// next heading is seen.
var headingKeywords = []struct {
	keyword string
	section string
}{
	{"education", SectionEducation},
	{"pendidikan", SectionEducation},
	{"experience", SectionExperience},
	{"pengalaman", SectionExperience},
	{"work", SectionExperience},
	{"skill", SectionSkills},
	{"keahlian", SectionSkills},
}

// SplitSections walks the document line by line and assigns each line to the
// currently open section. The walk is a single forward pass: there is no
// backtracking, and a document without any heading ends up entirely in the
// "general" bucket. Callers must tolerate absent sections.
func SplitSections(text string) map[string]string {
	parts := make(map[string][]string)
	current := SectionGeneral

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)

		for _, h := range headingKeywords {
			if strings.Contains(lower, h.keyword) {
				current = h.section
				break
			}
		}

		parts[current] = append(parts[current], trimmed)
	}

	sections := make(map[string]string, len(parts))
	for name, lines := range parts {
		sections[name] = strings.TrimSpace(strings.Join(lines, " "))
	}
	return sections
}
