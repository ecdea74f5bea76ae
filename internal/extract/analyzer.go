package extract

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"cvmatch/internal/ai"
	"cvmatch/internal/document"
	"cvmatch/internal/errors"
	"cvmatch/internal/types"
)

// Analyzer runs the full extraction pipeline: document text, section split,
// then the three field extractors. It holds no per-document state and is safe
// for concurrent use.
type Analyzer struct {
	docs      document.Extractor
	skills    *SkillExtractor
	education *EducationExtractor
	logger    *errors.Logger
}

func NewAnalyzer(docs document.Extractor, tagger ai.Tagger, logger *errors.Logger) *Analyzer {
	return &Analyzer{
		docs:      docs,
		skills:    NewSkillExtractor(tagger, logger),
		education: NewEducationExtractor(tagger, logger),
		logger:    logger,
	}
}

// Analyze extracts a profile from the document at path. The location is
// caller-supplied preference data and is carried through unchanged.
func (a *Analyzer) Analyze(ctx context.Context, path, location string) (types.Profile, error) {
	text, err := a.docs.ExtractText(ctx, path)
	if err != nil {
		return types.Profile{}, err
	}
	return a.AnalyzeText(ctx, text, location)
}

// AnalyzeText extracts a profile from already-extracted document text. A
// failure of either tagging call aborts the run; extraction misses within a
// successful run produce sentinel values, never errors.
func (a *Analyzer) AnalyzeText(ctx context.Context, text, location string) (types.Profile, error) {
	tracer := otel.Tracer("cvmatch.extract")
	ctx, span := tracer.Start(ctx, "extract.analyze")
	defer span.End()

	span.SetAttributes(attribute.Int("input.text_length", len(text)))

	sections := SplitSections(text)

	skills, err := a.skills.Extract(ctx, text, sections[SectionSkills])
	if err != nil {
		span.RecordError(err)
		return types.Profile{}, err
	}

	education, err := a.education.Extract(ctx, text, sections[SectionEducation])
	if err != nil {
		span.RecordError(err)
		return types.Profile{}, err
	}

	experience := ExtractExperience(text, sections[SectionExperience])

	span.SetAttributes(
		attribute.Int("output.skill_count", len(skills)),
		attribute.Int("output.experience_count", len(experience)),
	)

	if a.logger != nil {
		a.logger.Debug("Profile extracted",
			"skills", len(skills),
			"education", education,
			"experience_entries", len(experience))
	}

	return types.Profile{
		Education:  education,
		Skills:     skills,
		Experience: experience,
		Location:   location,
	}, nil
}
