package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"cvmatch/internal/types"
)

func sampleProfile() types.Profile {
	return types.Profile{
		Education:  "Universitas Contoh - Informatika",
		Skills:     []string{"Python", "SQL"},
		Experience: []string{"Data analyst intern"},
		Location:   "Jakarta",
	}
}

func sampleMatchOutput() types.MatchOutput {
	return types.MatchOutput{
		Profile: sampleProfile(),
		Matches: []types.MatchResult{
			{
				Title:    "Data Analyst",
				Company:  "PT Contoh",
				Location: "Jakarta",
				Level:    "Junior",
				Link:     "https://example.com/jobs/1",
				Score:    0.87654,
			},
			{
				Title:    "Backend Developer",
				Company:  "PT Lain",
				Location: "Bandung",
				Score:    0.5,
			},
		},
	}
}

func TestScorePercent(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.87654, "87.65%"},
		{1, "100.00%"},
		{0, "0.00%"},
	}
	for _, tt := range tests {
		if got := scorePercent(tt.score); got != tt.want {
			t.Errorf("scorePercent(%f) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestRegistryDispatchesByType(t *testing.T) {
	registry := NewFormatterRegistry()

	profileOut, err := registry.Format(sampleProfile(), "text")
	if err != nil {
		t.Fatalf("Format(Profile, text) error = %v", err)
	}
	if !strings.Contains(profileOut, "=== EXTRACTED PROFILE ===") {
		t.Error("profile text output missing the profile header")
	}
	if strings.Contains(profileOut, "TOP MATCHES") {
		t.Error("profile text output should not contain match sections")
	}

	matchOut, err := registry.Format(sampleMatchOutput(), "text")
	if err != nil {
		t.Fatalf("Format(MatchOutput, text) error = %v", err)
	}
	for _, want := range []string{"=== TOP MATCHES ===", "1. Data Analyst", "Similarity: 87.65%", "https://example.com/jobs/1"} {
		if !strings.Contains(matchOut, want) {
			t.Errorf("match text output missing %q", want)
		}
	}
	if strings.Contains(matchOut, "Level:      \n") {
		t.Error("empty level should be omitted from match text output")
	}
}

func TestRegistryJSONFallback(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(sampleMatchOutput(), "json")
	if err != nil {
		t.Fatalf("Format(MatchOutput, json) error = %v", err)
	}

	var decoded types.MatchOutput
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("json output does not parse: %v", err)
	}
	if len(decoded.Matches) != 2 {
		t.Errorf("decoded %d matches, want 2", len(decoded.Matches))
	}
	if decoded.Matches[0].Score != 0.87654 {
		t.Errorf("decoded score = %f, want exact value preserved", decoded.Matches[0].Score)
	}
}

func TestRegistryUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()

	if _, err := registry.Format(sampleProfile(), "yaml"); err == nil {
		t.Error("expected an error for an unregistered format")
	}
}

func TestMarkdownMatchTable(t *testing.T) {
	out, err := (&MatchMarkdownFormatter{}).Format(sampleMatchOutput())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if !strings.Contains(out, "| 1 | [Data Analyst](https://example.com/jobs/1) | PT Contoh | Jakarta | Junior | 87.65% |") {
		t.Error("linked title row not rendered as expected")
	}
	if !strings.Contains(out, "| 2 | Backend Developer |") {
		t.Error("unlinked title should be rendered as plain text")
	}
}

func TestMarkdownEmptyMatches(t *testing.T) {
	out, err := (&MatchMarkdownFormatter{}).Format(types.MatchOutput{Profile: sampleProfile()})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(out, "_No matching jobs found._") {
		t.Error("empty match list should render the placeholder line")
	}
}

func TestFormatterTypeMismatch(t *testing.T) {
	if _, err := (&ProfileTextFormatter{}).Format("not a profile"); err == nil {
		t.Error("ProfileTextFormatter should reject non-Profile data")
	}
	if _, err := (&MatchTextFormatter{}).Format(sampleProfile()); err == nil {
		t.Error("MatchTextFormatter should reject non-MatchOutput data")
	}
}
