package extract

import (
	"context"
	"testing"

	"cvmatch/internal/ai"
	"cvmatch/internal/types"
)

func TestEducationExtractorKeywordFallback(t *testing.T) {
	// Tagger finds nothing; the keyword scan must still resolve the major.
	ee := NewEducationExtractor(&fakeTagger{}, nil)
	text := "Universitas Contoh, majoring in Data Science"

	got, err := ee.Extract(context.Background(), text, text)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := "Universitas Contoh - Data Science"
	if got != want {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestEducationExtractorKeywordNeedsWordBoundary(t *testing.T) {
	// "with" and "paid" contain "it" and "ai" as substrings; neither may
	// resolve to a major.
	ee := NewEducationExtractor(&fakeTagger{}, nil)
	text := "Seasoned professional with strong communication skills and paid internships"

	got, err := ee.Extract(context.Background(), text, "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != types.EducationSentinel {
		t.Errorf("Extract() = %q, want the sentinel %q", got, types.EducationSentinel)
	}
}

func TestEducationExtractorTaggedMajor(t *testing.T) {
	tagger := &fakeTagger{majors: []ai.Entity{
		{Label: "MAJOR", Text: "majoring in Informatika", Start: 20},
	}}
	ee := NewEducationExtractor(tagger, nil)
	text := "Institut Teknologi Contoh, majoring in Informatika"

	got, err := ee.Extract(context.Background(), text, text)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := "Institut Teknologi Contoh - Informatika"
	if got != want {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestEducationExtractorLongestTaggedCandidateWins(t *testing.T) {
	tagger := &fakeTagger{majors: []ai.Entity{
		{Label: "LABEL_1", Text: "Data", Start: 10},
		{Label: "LABEL_1", Text: "Data Analytics", Start: 10},
		{Label: "OTHER", Text: "much longer irrelevant span here", Start: 0},
	}}
	ee := NewEducationExtractor(tagger, nil)

	got, err := ee.Extract(context.Background(), "studied Data Analytics", "studied Data Analytics")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := "Data Analytics"
	if got != want {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestEducationExtractorMajorInsideUniversityNameOmitted(t *testing.T) {
	ee := NewEducationExtractor(&fakeTagger{}, nil)
	text := "Institut Teknologi Informatika Contoh"

	got, err := ee.Extract(context.Background(), text, text)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	// "informatika" is detected as major but already part of the name.
	want := "Institut Teknologi Informatika Contoh"
	if got != want {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestEducationExtractorSentinelWhenNothingFound(t *testing.T) {
	ee := NewEducationExtractor(&fakeTagger{}, nil)
	text := "freelance barista, no formal studies listed"

	got, err := ee.Extract(context.Background(), text, text)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != types.EducationSentinel {
		t.Errorf("Extract() = %q, want sentinel %q", got, types.EducationSentinel)
	}
}

func TestFindUniversities(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "universitas pattern",
			text: "studied at Universitas Contoh, then moved on",
			want: []string{"Universitas Contoh"},
		},
		{
			name: "english suffix pattern",
			text: "graduated from Contoh State University, class of 2020",
			want: []string{"Contoh State University"},
		},
		{
			name: "case insensitive dedupe",
			text: "UNIVERSITAS CONTOH. Universitas Contoh,",
			want: []string{"UNIVERSITAS CONTOH"},
		},
		{
			name: "no university",
			text: "self-taught developer",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findUniversities(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("findUniversities(%q) = %v, want %d hits", tt.text, got, len(tt.want))
			}
			for i, u := range got {
				if u.name != tt.want[i] {
					t.Errorf("hit %d = %q, want %q", i, u.name, tt.want[i])
				}
			}
		})
	}
}
