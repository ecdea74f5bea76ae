package extract

import (
	"regexp"
	"strings"

	"cvmatch/internal/types"
)

// experienceMarkers flag a sentence as describing work history. Indonesian
// and English forms are both accepted since the corpus mixes the two.
var experienceMarkers = []string{
	"intern", "magang", "staf", "staff", "project", "experience",
}

var sentenceSplitRe = regexp.MustCompile(`[.\n]`)

// ExtractExperience pulls work-history sentences out of the document. It is
// purely lexical and never fails; when nothing qualifies the single-element
// sentinel list is returned so the profile field is always populated.
func ExtractExperience(fullText, experienceSection string) []string {
	// Sections under 11 trimmed characters are heading-only artifacts of the
	// segmenter; scan the whole document instead.
	source := experienceSection
	if len(strings.TrimSpace(source)) <= 10 {
		source = fullText
	}

	seen := make(map[string]bool)
	var entries []string
	for _, raw := range sentenceSplitRe.Split(source, -1) {
		sentence := strings.TrimSpace(raw)
		if len(sentence) <= 5 || !containsMarker(sentence) {
			continue
		}
		key := strings.ToLower(sentence)
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, sentence)
	}

	if len(entries) == 0 {
		return []string{types.NotDetected}
	}
	return entries
}

func containsMarker(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, marker := range experienceMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
