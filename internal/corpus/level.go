package corpus

import (
	"regexp"
	"strings"
)

var (
	juniorAbbrevRe = regexp.MustCompile(`\bjr\b`)
	seniorAbbrevRe = regexp.MustCompile(`\bsr\b`)
)

// InferLevel derives a seniority level from a job title. Used to backfill
// corpus rows whose level column is empty.
func InferLevel(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "intern") || strings.Contains(t, "magang"):
		return "Intern"
	case strings.Contains(t, "junior") || juniorAbbrevRe.MatchString(t):
		return "Junior"
	case strings.Contains(t, "senior") || seniorAbbrevRe.MatchString(t):
		return "Senior"
	case strings.Contains(t, "lead") || strings.Contains(t, "principal") || strings.Contains(t, "head"):
		return "Lead/Principal"
	default:
		return "Mid/Unspecified"
	}
}
