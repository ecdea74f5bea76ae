package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"cvmatch/internal/ai"
	"cvmatch/internal/errors"
)

// skillLabels are the tagger label variants that mark a skill entity. The
// two backing models use different label schemes, so all are accepted.
var skillLabels = map[string]bool{
	"SKILL":   true,
	"LABEL_1": true,
	"S":       true,
}

// fallbackKeywords is scanned against the whole document when both the
// tagger and the section parse come up empty.
var fallbackKeywords = []string{
	"python", "java", "sql", "excel", "word", "powerpoint", "html", "css",
	"javascript", "react", "tableau", "canva", "git", "linux", "docker",
	"figma", "pandas", "numpy", "tensorflow", "vue", "angular", "nodejs",
	"machine learning", "deep learning", "data science", "google sheets",
	"google docs",
}

var (
	surfaceCleanRe  = regexp.MustCompile(`[^a-zA-Z0-9+#\-. ]+`)
	candidateFilter = regexp.MustCompile(`[^A-Za-z0-9+#\- ]`)
	leadingBulletRe = regexp.MustCompile(`^[\-\*\s\d.]+`)
	separatorRe     = regexp.MustCompile(`[,;|]`)
	conjunctionRe   = regexp.MustCompile(`(?i)\band\b|&`)
	slashRe         = regexp.MustCompile(`\s*/\s*`)
	numericRe       = regexp.MustCompile(`^\d+$`)
)

// SkillExtractor derives the canonical skill list for a document from the
// tagger output and an independent parse of the skills section.
type SkillExtractor struct {
	tagger ai.Tagger
	logger *errors.Logger
}

func NewSkillExtractor(tagger ai.Tagger, logger *errors.Logger) *SkillExtractor {
	return &SkillExtractor{tagger: tagger, logger: logger}
}

// Extract returns the display-formatted skill list. The result is never
// nil; when nothing is found anywhere it is an empty slice. No two entries
// normalize to the same canonical form.
func (se *SkillExtractor) Extract(ctx context.Context, fullText, skillSection string) ([]string, error) {
	// A skills section shorter than 6 characters carries no signal; tag the
	// whole document instead.
	textForTagger := skillSection
	if len(strings.TrimSpace(skillSection)) <= 5 {
		textForTagger = fullText
	}

	entities, usage, err := se.tagger.TagSkills(ctx, textForTagger)
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Skill tagging failed", err).WithStage("skill_tagger")
	}
	if usage != nil && se.logger != nil {
		se.logger.Debug("Skill tagger token usage",
			"input_tokens", usage.InputTokens,
			"total_tokens", usage.TotalTokens)
	}

	detected := make([]string, 0, len(entities))
	for _, ent := range entities {
		if !skillLabels[strings.ToUpper(ent.Label)] {
			continue
		}
		word := cleanSurface(ent.Text)
		if len(word) < 2 {
			continue
		}
		detected = append(detected, NormalizeTerm(word))
	}

	merged := MergeFragments(detected)
	sectionCandidates := SplitSkillCandidates(skillSection)

	// Union of tagger-derived and section-parsed skills, first seen wins.
	seen := make(map[string]bool)
	ordered := make([]string, 0, len(merged)+len(sectionCandidates))
	for _, val := range append(merged, sectionCandidates...) {
		key := strings.ToLower(val)
		if key == "" || len(key) < 2 || seen[key] {
			continue
		}
		seen[key] = true
		ordered = append(ordered, key)
	}

	if len(ordered) == 0 {
		ordered = scanFallbackKeywords(fullText, seen)
	}

	final := make([]string, 0, len(ordered))
	finalSeen := make(map[string]bool)
	for _, s := range ordered {
		if len(s) < 2 || numericRe.MatchString(s) || IsNoiseFragment(s) {
			continue
		}
		pretty := PrettyTerm(NormalizeTerm(s))
		key := strings.ToLower(pretty)
		if finalSeen[key] {
			continue
		}
		finalSeen[key] = true
		final = append(final, pretty)
	}

	return final, nil
}

// cleanSurface strips subword continuation markers and any character the
// skill vocabulary never contains.
func cleanSurface(word string) string {
	word = strings.ReplaceAll(word, "##", "")
	word = surfaceCleanRe.ReplaceAllString(word, " ")
	return strings.TrimSpace(word)
}

// SplitSkillCandidates parses the raw skills-section text into normalized
// candidate phrases, independent of the tagger. Bullets and slashes become
// separators, then each piece is split on commas, semicolons, pipes, and
// conjunctions.
func SplitSkillCandidates(sectionText string) []string {
	if sectionText == "" {
		return nil
	}

	text := strings.NewReplacer("•", "\n", "·", "\n").Replace(sectionText)
	text = slashRe.ReplaceAllString(text, ",")

	var candidates []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(leadingBulletRe.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		for _, part := range separatorRe.Split(line, -1) {
			for _, sub := range conjunctionRe.Split(part, -1) {
				sub = strings.TrimSpace(sub)
				if len(sub) > 1 {
					candidates = append(candidates, sub)
				}
			}
		}
	}

	seen := make(map[string]bool)
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		norm := NormalizeTerm(candidateFilter.ReplaceAllString(c, " "))
		if norm != "" && !seen[norm] {
			seen[norm] = true
			out = append(out, norm)
		}
	}
	return out
}

// scanFallbackKeywords does a whole-word scan of the document for a static
// keyword list. Last line of defense so the skill list is a best-effort
// result instead of an error.
func scanFallbackKeywords(fullText string, seen map[string]bool) []string {
	lower := strings.ToLower(fullText)
	var hits []string
	for _, kw := range fallbackKeywords {
		if seen[kw] {
			continue
		}
		re := regexp.MustCompile(fmt.Sprintf(`\b%s\b`, regexp.QuoteMeta(kw)))
		if re.MatchString(lower) {
			seen[kw] = true
			hits = append(hits, kw)
		}
	}
	return hits
}
