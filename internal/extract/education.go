package extract

import (
	"context"
	"regexp"
	"strings"

	"cvmatch/internal/ai"
	"cvmatch/internal/errors"
	"cvmatch/internal/types"
)

// majorKeywords is the ordered fallback list of known degree/field names,
// word-searched against the document when the tagger finds nothing. More
// specific multi-word names come before their substrings so the first hit is
// the most specific one.
var majorKeywords = []string{
	"teknik informatika", "informatika", "ilmu komputer", "computer science",
	"sistem informasi", "information systems", "information system",
	"teknologi informasi", "information technology",
	"rekayasa perangkat lunak", "software engineering",
	"data science", "data analytics", "data engineering", "data analyst",
	"artificial intelligence", "machine learning", "deep learning",
	"cyber security", "keamanan siber", "jaringan komputer", "computer network",
	"it", "ai",
}

var universityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(universitas\s+[A-Za-z0-9.\-&' ]{2,60})`),
	regexp.MustCompile(`([A-Z][a-z]+(?:\s[A-Z][a-z]+){0,4}\sUniversity)`),
	regexp.MustCompile(`(?i)(University\s+of\s+[A-Za-z0-9.\-&' ]{2,60})`),
	regexp.MustCompile(`(?i)(Institut\s+[A-Za-z0-9.\-&' ]{2,60})`),
	regexp.MustCompile(`(?i)(Politeknik\s+[A-Za-z0-9.\-&' ]{2,60})`),
}

var majorLeadInRe = regexp.MustCompile(`(?i).*(majoring in|majors in|major in)\s*`)

// university is one regex hit with its character span in the scanned text.
type university struct {
	name  string
	start int
	end   int
}

// EducationExtractor resolves the "University - Major" education line.
type EducationExtractor struct {
	tagger ai.Tagger
	logger *errors.Logger
}

func NewEducationExtractor(tagger ai.Tagger, logger *errors.Logger) *EducationExtractor {
	return &EducationExtractor{tagger: tagger, logger: logger}
}

// Extract returns the formatted education string. A missing university or
// major is never an error; the sentinel "-" is returned when neither is
// found.
func (ee *EducationExtractor) Extract(ctx context.Context, fullText, educationSection string) (string, error) {
	source := educationSection
	if strings.TrimSpace(source) == "" {
		source = fullText
	}

	major, err := ee.detectMajor(ctx, source, fullText)
	if err != nil {
		return "", err
	}

	universities := findUniversities(source)
	chosenUniversity := chooseUniversity(universities, major, fullText)

	return formatEducation(chosenUniversity, major), nil
}

// detectMajor asks the tagger for major entities and keeps the longest
// candidate: longer spans are typically the more specific, complete answer.
// Tagger misses fall back to a keyword search over the whole document.
func (ee *EducationExtractor) detectMajor(ctx context.Context, source, fullText string) (string, error) {
	entities, _, err := ee.tagger.TagMajors(ctx, source)
	if err != nil {
		return "", errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Major tagging failed", err).WithStage("major_tagger")
	}

	var longest string
	for _, ent := range entities {
		label := strings.ToUpper(ent.Label)
		if !strings.Contains(label, "LABEL_1") && !strings.Contains(label, "MAJOR") {
			continue
		}
		cleaned := strings.TrimSpace(majorLeadInRe.ReplaceAllString(ent.Text, ""))
		if len(cleaned) > len(longest) {
			longest = cleaned
		}
	}
	if longest != "" {
		return titleCase(longest), nil
	}

	// Whole-word matching: short keywords like "it" and "ai" would otherwise
	// hit inside unrelated words.
	lower := strings.ToLower(fullText)
	for _, kw := range majorKeywords {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		if re.MatchString(lower) {
			return titleCase(kw), nil
		}
	}

	return types.NotDetected, nil
}

// findUniversities scans the text with every pattern and collapses
// case-insensitive duplicates, keeping the first occurrence and its span.
func findUniversities(text string) []university {
	var found []university
	for _, pat := range universityPatterns {
		for _, m := range pat.FindAllStringSubmatchIndex(text, -1) {
			name := multiSpaceRe.ReplaceAllString(strings.TrimSpace(text[m[2]:m[3]]), " ")
			found = append(found, university{name: name, start: m[2], end: m[3]})
		}
	}

	seen := make(map[string]bool)
	var result []university
	for _, u := range found {
		key := strings.ToLower(u.name)
		if !seen[key] {
			seen[key] = true
			result = append(result, u)
		}
	}
	return result
}

// chooseUniversity disambiguates multiple hits. With a detected major the
// winner is the university whose span sits closest to the major's first
// occurrence (majors are stated right after the relevant institution);
// without one, the last-listed university wins since education sections run
// most-recent-first.
func chooseUniversity(universities []university, major, fullText string) string {
	if len(universities) == 0 {
		return ""
	}

	chosen := universities[len(universities)-1].name
	if major != types.NotDetected {
		pos := strings.Index(strings.ToLower(fullText), strings.ToLower(major))
		best, bestDist := "", -1
		for _, u := range universities {
			dist := 0
			if pos != -1 {
				dist = abs(u.start - pos)
			}
			if bestDist == -1 || dist < bestDist {
				best, bestDist = u.name, dist
			}
		}
		chosen = best
	}

	return titleCase(multiSpaceRe.ReplaceAllString(strings.TrimSpace(chosen), " "))
}

// formatEducation joins "University - Major", omitting whichever part is
// missing and skipping the major when the university name already contains
// it.
func formatEducation(institution, major string) string {
	var parts []string
	if institution != "" {
		parts = append(parts, institution)
	}
	if major != "" && major != types.NotDetected &&
		!strings.Contains(strings.ToLower(institution), strings.ToLower(major)) {
		parts = append(parts, major)
	}
	if len(parts) == 0 {
		return types.EducationSentinel
	}
	return strings.Join(parts, " - ")
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
