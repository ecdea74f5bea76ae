package ai

import "context"

// Entity is one labeled span returned by the token-classification tagger.
// Start is a character offset into the tagged text, or -1 when the backing
// model does not report offsets.
type Entity struct {
	Label string `json:"label"`
	Text  string `json:"text"`
	Start int    `json:"start"`
}

// Tagger is the token-classification capability. Implementations accept
// text of any length: the provider chunks input over the model's token
// budget and concatenates the entity sequences in chunk order, which is the
// ordering the downstream fragment merge depends on.
type Tagger interface {
	TagSkills(ctx context.Context, text string) ([]Entity, *TokenUsage, error)
	TagMajors(ctx context.Context, text string) ([]Entity, *TokenUsage, error)
}

// Embedder is the sentence-embedding capability. EmbedTexts returns one
// L2-normalized fixed-dimension vector per input, in input order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float64, error)
}

// Provider bundles the capabilities a matching run needs. Constructed once
// at process start and passed into the entry points, so tests can swap in
// fakes without touching global state.
type Provider interface {
	Tagger
	Embedder
	GetModelInfo(ctx context.Context) *ModelInfo
	GetCircuitBreakerStats() map[string]any
	Close() error
}
