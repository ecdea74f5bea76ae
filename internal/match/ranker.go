// Package match ranks job records against an extracted profile by embedding
// similarity.
package match

import (
	"context"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"cvmatch/internal/ai"
	"cvmatch/internal/errors"
	"cvmatch/internal/types"
)

// LocationAll disables the location restriction.
const LocationAll = "all"

// Ranker scores a corpus against a profile. Stateless apart from the
// injected embedder; every Rank call is independent.
type Ranker struct {
	embedder ai.Embedder
	logger   *errors.Logger
}

func NewRanker(embedder ai.Embedder, logger *errors.Logger) *Ranker {
	return &Ranker{embedder: embedder, logger: logger}
}

// compositeWeight controls the field emphasis in the embedded text. The
// duplication count is a textual proxy for a 40/40/20 weighting: repeated
// text raises, but does not linearly guarantee, that field's share of the
// resulting vector.
const compositeWeight = 2

// ProfileCompositeText builds the text embedded for the profile side:
// experience and skills carry double weight, location single.
func ProfileCompositeText(profile types.Profile) string {
	experience := strings.Join(profile.Experience, " ")
	skills := strings.Join(profile.Skills, " ")

	parts := make([]string, 0, 2*compositeWeight+1)
	for i := 0; i < compositeWeight; i++ {
		parts = append(parts, experience)
	}
	for i := 0; i < compositeWeight; i++ {
		parts = append(parts, skills)
	}
	parts = append(parts, profile.Location)

	return strings.TrimSpace(strings.Join(parts, " "))
}

// JobCompositeText mirrors the profile split on the job side: requirement
// and level double, title/field/category double, location single.
func JobCompositeText(rec types.JobRecord) string {
	requirement := strings.TrimSpace(rec.Requirement + " " + rec.Level)
	role := strings.TrimSpace(rec.Title + " " + rec.JobField + " " + rec.Category)

	parts := make([]string, 0, 2*compositeWeight+1)
	for i := 0; i < compositeWeight; i++ {
		parts = append(parts, requirement)
	}
	for i := 0; i < compositeWeight; i++ {
		parts = append(parts, role)
	}
	parts = append(parts, rec.Location)

	return strings.TrimSpace(strings.Join(parts, " "))
}

// Rank scores every corpus record against the profile and returns the top
// resultCount matches. With a location other than LocationAll the result is
// restricted to records whose location contains it case-insensitively; an
// empty restricted set falls back to the unrestricted ranking so a location
// miss never produces an empty result.
func (r *Ranker) Rank(ctx context.Context, profile types.Profile, corpus []types.JobRecord, location string, resultCount int) ([]types.MatchResult, error) {
	tracer := otel.Tracer("cvmatch.match")
	ctx, span := tracer.Start(ctx, "match.rank")
	defer span.End()

	span.SetAttributes(
		attribute.Int("input.corpus_size", len(corpus)),
		attribute.Int("input.result_count", resultCount),
		attribute.String("input.location", location),
	)

	if len(corpus) == 0 || resultCount <= 0 {
		return []types.MatchResult{}, nil
	}

	profileVecs, err := r.embedder.EmbedTexts(ctx, []string{ProfileCompositeText(profile)})
	if err != nil {
		span.RecordError(err)
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Profile embedding failed", err).WithStage("embedder")
	}
	if len(profileVecs) != 1 {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Embedder returned no profile vector", nil).WithStage("embedder")
	}
	profileVec := profileVecs[0]

	jobTexts := make([]string, len(corpus))
	for i, rec := range corpus {
		jobTexts[i] = JobCompositeText(rec)
	}
	jobVecs, err := r.embedder.EmbedTexts(ctx, jobTexts)
	if err != nil {
		span.RecordError(err)
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Corpus embedding failed", err).WithStage("embedder")
	}
	if len(jobVecs) != len(corpus) {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Embedder returned wrong vector count for corpus", nil).WithStage("embedder")
	}

	scored := make([]types.MatchResult, len(corpus))
	for i, rec := range corpus {
		scored[i] = types.MatchResult{
			Title:       rec.Title,
			Company:     rec.Company,
			Location:    rec.Location,
			JobField:    rec.JobField,
			Requirement: rec.Requirement,
			Level:       rec.Level,
			Link:        rec.Link,
			Score:       dot(profileVec, jobVecs[i]),
		}
	}

	// Stable sort keeps original corpus order for equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	results := scored
	fellBack := false
	if !locationUnrestricted(location) {
		restricted := filterByLocation(scored, location)
		if len(restricted) > 0 {
			results = restricted
		} else {
			fellBack = true
			if r.logger != nil {
				r.logger.Warn("No jobs matched requested location, falling back to unrestricted ranking",
					"location", location)
			}
		}
	}

	if resultCount > len(results) {
		resultCount = len(results)
	}
	results = results[:resultCount]

	span.SetAttributes(
		attribute.Int("output.result_count", len(results)),
		attribute.Bool("output.location_fallback", fellBack),
	)
	return results, nil
}

func locationUnrestricted(location string) bool {
	loc := strings.TrimSpace(location)
	return loc == "" || strings.EqualFold(loc, LocationAll)
}

func filterByLocation(results []types.MatchResult, location string) []types.MatchResult {
	needle := strings.ToLower(strings.TrimSpace(location))
	var kept []types.MatchResult
	for _, res := range results {
		if strings.Contains(strings.ToLower(res.Location), needle) {
			kept = append(kept, res)
		}
	}
	return kept
}

// dot computes the inner product of two vectors. Inputs are L2-normalized by
// the embedder, so this is the cosine similarity. A length mismatch scores
// zero rather than panicking.
func dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
