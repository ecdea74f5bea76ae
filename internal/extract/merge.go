package extract

import (
	"slices"
	"strings"
)

// mergeRule describes one known decomposition: a subword tagger trained on
// short spans sometimes emits a single real-world term as two adjacent
// fragments. When the current fragment matches one of firsts and the next
// fragment matches one of seconds, both are replaced by the canonical term.
// A "*" in canonical is substituted with the second fragment.
type mergeRule struct {
	firsts    []string
	seconds   []string
	canonical string
}

var mergeRules = []mergeRule{
	{[]string{"table", "tab"}, []string{"au", "eau"}, "tableau"},
	{[]string{"fig", "fi"}, []string{"ma", "gma"}, "figma"},
	{[]string{"can"}, []string{"va", "vas"}, "canva"},
	{[]string{"google"}, []string{"sheets", "sheet", "docs", "doc"}, "google *"},
	{[]string{"machine"}, []string{"learning"}, "machine learning"},
	{[]string{"deep"}, []string{"learning"}, "deep learning"},
	{[]string{"data"}, []string{"science", "analytics", "analyst"}, "data *"},
	{[]string{"node"}, []string{"js", "javascript"}, "nodejs"},
	{[]string{"react"}, []string{"js", "javascript"}, "reactjs"},
}

// partialFragments remaps a fragment that always belongs to exactly one
// term. This is the fallback for chunk-boundary truncation: when a long
// text is tagged in chunks, the paired fragment may land in a different
// chunk and never appear adjacent in the stream.
var partialFragments = map[string]string{
	"eau": "tableau",
	"gma": "figma",
	"vas": "canva",
}

// noiseFragments are fragment tokens that only ever occur as halves of a
// decomposition; if one survives merging unpaired, it is dropped as noise
// rather than reported as a skill.
var noiseFragments = map[string]bool{
	"au": true, "eau": true, "ma": true, "gma": true,
	"fig": true, "fi": true, "tab": true, "table": true,
	"va": true, "vas": true, "can": true,
}

// MergeFragments repairs tagger output by scanning the fragment stream left
// to right with a single-token lookahead. Fragments of one real term are
// always adjacent in emission order, so the merge is purely local: match a
// (current, next) pair against the rule table, emit the canonical term and
// advance two, or keep the current fragment and advance one. Merging is
// idempotent because no canonical term appears in any rule's fragment sets.
func MergeFragments(fragments []string) []string {
	merged := make([]string, 0, len(fragments))

	for i := 0; i < len(fragments); i++ {
		current := strings.ToLower(fragments[i])

		if i+1 < len(fragments) {
			next := strings.ToLower(fragments[i+1])
			if canonical, ok := matchMergeRule(current, next); ok {
				merged = append(merged, canonical)
				i++
				continue
			}
		}

		if term, ok := partialFragments[current]; ok {
			merged = append(merged, term)
			continue
		}

		merged = append(merged, current)
	}

	return merged
}

func matchMergeRule(current, next string) (string, bool) {
	for _, rule := range mergeRules {
		if slices.Contains(rule.firsts, current) && slices.Contains(rule.seconds, next) {
			return strings.ReplaceAll(rule.canonical, "*", next), true
		}
	}
	return "", false
}

// IsNoiseFragment reports whether a candidate term is a bare decomposition
// fragment that should not surface in final output.
func IsNoiseFragment(s string) bool {
	return noiseFragments[strings.ToLower(s)]
}
