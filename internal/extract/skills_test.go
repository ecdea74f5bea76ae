package extract

import (
	"context"
	"slices"
	"testing"

	"cvmatch/internal/ai"
)

// fakeTagger returns canned entities so extractor behavior can be pinned
// without a live model.
type fakeTagger struct {
	skills []ai.Entity
	majors []ai.Entity
}

func (f *fakeTagger) TagSkills(ctx context.Context, text string) ([]ai.Entity, *ai.TokenUsage, error) {
	return f.skills, nil, nil
}

func (f *fakeTagger) TagMajors(ctx context.Context, text string) ([]ai.Entity, *ai.TokenUsage, error) {
	return f.majors, nil, nil
}

func TestSkillExtractorMergesTaggerFragments(t *testing.T) {
	tagger := &fakeTagger{skills: []ai.Entity{
		{Label: "SKILL", Text: "tab", Start: 0},
		{Label: "SKILL", Text: "eau", Start: 3},
	}}
	se := NewSkillExtractor(tagger, nil)

	got, err := se.Extract(context.Background(), "Tableau dashboards", "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := []string{"Tableau"}
	if !slices.Equal(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestSkillExtractorUnionWithSectionParse(t *testing.T) {
	tagger := &fakeTagger{skills: []ai.Entity{
		{Label: "SKILL", Text: "Python", Start: 0},
		{Label: "O", Text: "Jakarta", Start: 10},
	}}
	se := NewSkillExtractor(tagger, nil)

	got, err := se.Extract(context.Background(), "irrelevant", "Python, Java; SQL")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := []string{"Python", "Java", "SQL"}
	if !slices.Equal(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestSkillExtractorFallbackKeywordScan(t *testing.T) {
	se := NewSkillExtractor(&fakeTagger{}, nil)

	got, err := se.Extract(context.Background(), "I automate reports with python every week", "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := []string{"Python"}
	if !slices.Equal(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestSkillExtractorNoDuplicateCanonicalForms(t *testing.T) {
	tagger := &fakeTagger{skills: []ai.Entity{
		{Label: "SKILL", Text: "Phyton", Start: 0},
		{Label: "LABEL_1", Text: "python", Start: 7},
		{Label: "S", Text: "MS Excel", Start: 14},
	}}
	se := NewSkillExtractor(tagger, nil)

	got, err := se.Extract(context.Background(), "text", "python, excel")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	seen := make(map[string]bool)
	for _, s := range got {
		key := NormalizeTerm(s)
		if seen[key] {
			t.Errorf("duplicate canonical form %q in %v", key, got)
		}
		seen[key] = true
	}
	if !slices.Contains(got, "Python") {
		t.Errorf("Extract() = %v, want it to contain Python", got)
	}
	if !slices.Contains(got, "Microsoft Excel") {
		t.Errorf("Extract() = %v, want it to contain Microsoft Excel", got)
	}
}

func TestSkillExtractorNeverNil(t *testing.T) {
	se := NewSkillExtractor(&fakeTagger{}, nil)

	got, err := se.Extract(context.Background(), "no recognizable content here", "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got == nil {
		t.Error("Extract() returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty", got)
	}
}

func TestSplitSkillCandidates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "comma separated",
			in:   "Python, Java, SQL",
			want: []string{"python", "java", "sql"},
		},
		{
			name: "bullets and conjunctions",
			in:   "• Excel and Word\n• Canva",
			want: []string{"excel", "word", "canva"},
		},
		{
			name: "slash separated",
			in:   "HTML / CSS",
			want: []string{"html", "css"},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSkillCandidates(tt.in)
			if !slices.Equal(got, tt.want) {
				t.Errorf("SplitSkillCandidates(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
