package match

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"cvmatch/internal/types"
)

// keywordEmbedder produces deterministic vectors from keyword counts so
// ranking order can be asserted without a live embedding model.
type keywordEmbedder struct {
	err error
}

func (e *keywordEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	if e.err != nil {
		return nil, e.err
	}
	vecs := make([][]float64, len(texts))
	for i, text := range texts {
		lower := strings.ToLower(text)
		vec := []float64{
			float64(strings.Count(lower, "golang")),
			float64(strings.Count(lower, "sales")),
			1, // constant component so no vector is zero
		}
		var norm float64
		for _, v := range vec {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		for j := range vec {
			vec[j] /= norm
		}
		vecs[i] = vec
	}
	return vecs, nil
}

func testProfile() types.Profile {
	return types.Profile{
		Education:  "Universitas Contoh - Informatika",
		Skills:     []string{"Golang", "SQL"},
		Experience: []string{"Backend intern using golang"},
		Location:   "Jakarta",
	}
}

func TestProfileCompositeTextWeighting(t *testing.T) {
	profile := testProfile()

	text := ProfileCompositeText(profile)

	if got := strings.Count(text, "Backend intern using golang"); got != 2 {
		t.Errorf("experience repeated %d times, want 2", got)
	}
	if got := strings.Count(text, "Golang SQL"); got != 2 {
		t.Errorf("skills repeated %d times, want 2", got)
	}
	if got := strings.Count(text, "Jakarta"); got != 1 {
		t.Errorf("location repeated %d times, want 1", got)
	}
}

func TestJobCompositeTextWeighting(t *testing.T) {
	rec := types.JobRecord{
		Title:       "Backend Developer",
		JobField:    "Software",
		Category:    "teknologi",
		Requirement: "golang and sql",
		Level:       "Senior",
		Location:    "Jakarta",
	}

	text := JobCompositeText(rec)

	if got := strings.Count(text, "golang and sql Senior"); got != 2 {
		t.Errorf("requirement block repeated %d times, want 2", got)
	}
	if got := strings.Count(text, "Backend Developer Software teknologi"); got != 2 {
		t.Errorf("role block repeated %d times, want 2", got)
	}
	if got := strings.Count(text, "Jakarta"); got != 1 {
		t.Errorf("location repeated %d times, want 1", got)
	}
}

func TestRankOrdersBySimilarity(t *testing.T) {
	ranker := NewRanker(&keywordEmbedder{}, nil)
	corpus := []types.JobRecord{
		{Title: "Sales Manager", Requirement: "sales sales sales", Location: "Jakarta"},
		{Title: "Golang Developer", Requirement: "golang golang golang", Location: "Jakarta"},
		{Title: "Mixed Role", Requirement: "golang sales", Location: "Jakarta"},
	}

	results, err := ranker.Rank(context.Background(), testProfile(), corpus, LocationAll, 3)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Rank() returned %d results, want 3", len(results))
	}
	if results[0].Title != "Golang Developer" {
		t.Errorf("top result = %q, want Golang Developer", results[0].Title)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("scores not non-increasing at %d: %f > %f", i, results[i].Score, results[i-1].Score)
		}
	}
}

func TestRankResultCountTruncation(t *testing.T) {
	ranker := NewRanker(&keywordEmbedder{}, nil)
	corpus := make([]types.JobRecord, 10)
	for i := range corpus {
		corpus[i] = types.JobRecord{Title: fmt.Sprintf("Job %d", i), Requirement: "golang", Location: "Jakarta"}
	}

	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"fewer than corpus", 5, 5},
		{"more than corpus", 25, 10},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := ranker.Rank(context.Background(), testProfile(), corpus, LocationAll, tt.count)
			if err != nil {
				t.Fatalf("Rank() error = %v", err)
			}
			if len(results) != tt.want {
				t.Errorf("Rank() returned %d results, want %d", len(results), tt.want)
			}
		})
	}
}

func TestRankLocationFilter(t *testing.T) {
	ranker := NewRanker(&keywordEmbedder{}, nil)
	corpus := []types.JobRecord{
		{Title: "Job A", Requirement: "golang", Location: "Jakarta Selatan"},
		{Title: "Job B", Requirement: "golang", Location: "Bandung"},
		{Title: "Job C", Requirement: "golang", Location: "DKI Jakarta"},
	}

	results, err := ranker.Rank(context.Background(), testProfile(), corpus, "jakarta", 10)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Rank() returned %d results, want the 2 Jakarta records", len(results))
	}
	for _, res := range results {
		if !strings.Contains(strings.ToLower(res.Location), "jakarta") {
			t.Errorf("result %q has location %q outside the filter", res.Title, res.Location)
		}
	}
}

func TestRankLocationFallbackWhenNoMatch(t *testing.T) {
	ranker := NewRanker(&keywordEmbedder{}, nil)
	corpus := make([]types.JobRecord, 10)
	for i := range corpus {
		loc := "Bandung"
		if i < 3 {
			loc = "Jakarta"
		}
		corpus[i] = types.JobRecord{Title: fmt.Sprintf("Job %d", i), Requirement: "golang", Location: loc}
	}

	results, err := ranker.Rank(context.Background(), testProfile(), corpus, "Surabaya", 5)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	// No record matches Surabaya: the unrestricted top 5 comes back instead
	// of an empty list.
	if len(results) != 5 {
		t.Errorf("Rank() returned %d results, want unrestricted top 5", len(results))
	}
}

func TestRankEmptyCorpus(t *testing.T) {
	ranker := NewRanker(&keywordEmbedder{}, nil)

	results, err := ranker.Rank(context.Background(), testProfile(), nil, LocationAll, 5)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Rank() returned %d results for empty corpus, want 0", len(results))
	}
}

func TestRankEmbedderError(t *testing.T) {
	ranker := NewRanker(&keywordEmbedder{err: fmt.Errorf("quota exceeded")}, nil)

	_, err := ranker.Rank(context.Background(), testProfile(), []types.JobRecord{{Title: "Job"}}, LocationAll, 5)
	if err == nil {
		t.Fatal("Rank() expected error when the embedder fails")
	}
}

func TestDot(t *testing.T) {
	if got := dot([]float64{1, 0}, []float64{1, 0}); got != 1 {
		t.Errorf("dot() = %f, want 1", got)
	}
	if got := dot([]float64{1, 0}, []float64{0, 1}); got != 0 {
		t.Errorf("dot() = %f, want 0", got)
	}
	if got := dot([]float64{1}, []float64{1, 2}); got != 0 {
		t.Errorf("dot() with mismatched lengths = %f, want 0", got)
	}
}
