package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"cvmatch/internal/config"
	cvmatchErrors "cvmatch/internal/errors"
	"cvmatch/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements Provider for Google Gemini. Tagging and
// embedding run against the same client but carry separate operation
// configurations and circuit breakers.
type GeminiProvider struct {
	client       *genai.Client
	tagConfig    *config.OperationAIConfig
	embedConfig  *config.OperationAIConfig
	tagBreaker   *AICircuitBreaker
	embedBreaker *EmbedCircuitBreaker
	modelBreaker *ModelCircuitBreaker
	embedLimiter *rate.Limiter
	obs          *observability.ObservabilityManager
	logger       *cvmatchErrors.Logger
}

// Ensure GeminiProvider implements Provider
var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance. obs may be nil;
// operations then run without metric tracking.
func NewGeminiProvider(tagCfg, embedCfg *config.OperationAIConfig, logger *cvmatchErrors.Logger, obs *observability.ObservabilityManager) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: tagCfg.APIKey,
	})
	if err != nil {
		return nil, cvmatchErrors.NewAIError(cvmatchErrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	var limiter *rate.Limiter
	if embedCfg.RateLimit.Enabled && embedCfg.RateLimit.RequestsPerMin > 0 {
		perSecond := rate.Limit(float64(embedCfg.RateLimit.RequestsPerMin) / 60.0)
		burst := embedCfg.RateLimit.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(perSecond, burst)
	}

	return &GeminiProvider{
		client:       client,
		tagConfig:    tagCfg,
		embedConfig:  embedCfg,
		tagBreaker:   NewAICircuitBreaker("tag", tagCfg, logger),
		embedBreaker: NewEmbedCircuitBreaker("embed", embedCfg, logger),
		modelBreaker: NewModelCircuitBreaker("tag", tagCfg, logger),
		embedLimiter: limiter,
		obs:          obs,
		logger:       logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured tagging model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.tagConfig.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.tagConfig.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.tagConfig.Model,
			"provider", g.tagConfig.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.tagConfig.Model,
		"provider", g.tagConfig.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an AI call with retry logic and exponential backoff
func executeWithRetry[T any](ctx context.Context, g *GeminiProvider, operation string, maxRetries int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", maxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", maxRetries+1)

	return zero, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, maxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Check for Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// entitySchema is the structured-output contract for tagging calls: a flat
// array of labeled spans in document order.
func entitySchema() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"label": {Type: genai.TypeString},
					"text":  {Type: genai.TypeString},
					"start": {Type: genai.TypeInteger},
				},
				Required: []string{"label", "text", "start"},
			},
		},
	}
}

// TagSkills implements Tagger for skill entities
func (g *GeminiProvider) TagSkills(ctx context.Context, text string) ([]Entity, *TokenUsage, error) {
	return g.tag(ctx, "tag_skills", text, skillTagSystemPrompt, skillTagUserPromptTemplate)
}

// TagMajors implements Tagger for field-of-study entities
func (g *GeminiProvider) TagMajors(ctx context.Context, text string) ([]Entity, *TokenUsage, error) {
	return g.tag(ctx, "tag_majors", text, majorTagSystemPrompt, majorTagUserPromptTemplate)
}

// tag runs one tagging operation over the whole input, chunking it over the
// configured token budget and concatenating per-chunk entities in chunk
// order. The whole operation is tracked as a single AI request, with token
// usage summed across chunks.
func (g *GeminiProvider) tag(ctx context.Context, operation, text, systemPrompt, userTemplate string) ([]Entity, *TokenUsage, error) {
	var all []Entity
	total := &TokenUsage{}

	run := func(ctx context.Context) error {
		chunks := chunkText(text, g.tagConfig.MaxInputTokens)
		for i, chunk := range chunks {
			entities, usage, err := g.tagChunk(ctx, operation, chunk, i, len(chunks), systemPrompt, userTemplate)
			if err != nil {
				return err
			}
			all = append(all, entities...)
			if usage != nil {
				total.InputTokens += usage.InputTokens
				total.OutputTokens += usage.OutputTokens
				total.TotalTokens += usage.TotalTokens
			}
		}
		return nil
	}

	if g.obs == nil {
		if err := run(ctx); err != nil {
			return nil, nil, err
		}
		return all, total, nil
	}

	err := g.obs.GetMetrics().TrackAIOperationWithTokens(ctx, operation, func(ctx context.Context) *observability.AIOperationResult {
		return &observability.AIOperationResult{
			Error:      run(ctx),
			TokenUsage: total.metricsUsage(),
		}
	}, g.obs)
	if err != nil {
		return nil, nil, err
	}
	return all, total, nil
}

func (g *GeminiProvider) tagChunk(ctx context.Context, operation, chunk string, index, count int, systemPrompt, userTemplate string) ([]Entity, *TokenUsage, error) {
	tracer := otel.Tracer("cvmatch.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operation)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.tagConfig.Model),
		attribute.Int("ai.chunk.index", index),
		attribute.Int("ai.chunk.count", count),
		attribute.Int("input.length", len(chunk)),
	)

	genaiConfig := entitySchema()
	if *g.tagConfig.Temperature > 0 {
		genaiConfig.Temperature = g.tagConfig.Temperature
	}
	genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)

	userPrompt := fmt.Sprintf(userTemplate, chunk)

	result, err := g.tagBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return executeWithRetry(ctx, g, operation, *g.tagConfig.MaxRetries, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.tagConfig.Model, genai.Text(userPrompt), genaiConfig)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, nil, cvmatchErrors.NewAIError(cvmatchErrors.ErrCodeAIServiceFailed,
			"Failed to tag entities for "+operation, err)
	}

	var entities []Entity
	if err := json.Unmarshal([]byte(result.Text()), &entities); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, nil, cvmatchErrors.NewAIError("AI_RESPONSE_PARSE_FAILED",
			"Failed to parse AI response for "+operation, err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("output.entity_count", len(entities)),
	)
	return entities, tokenUsage, nil
}

// EmbedTexts implements Embedder. Inputs are sent in configured batch sizes
// and the returned vectors preserve input order across batches. Every vector
// is L2-normalized before return, so downstream cosine similarity reduces to
// a dot product. The embedding API reports no token usage, so only request
// counts and duration are tracked.
func (g *GeminiProvider) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if g.obs == nil {
		return g.embedAll(ctx, texts)
	}

	var vectors [][]float64
	err := g.obs.GetMetrics().TrackAIOperationWithTokens(ctx, "embed_texts", func(ctx context.Context) *observability.AIOperationResult {
		var embedErr error
		vectors, embedErr = g.embedAll(ctx, texts)
		return &observability.AIOperationResult{Error: embedErr}
	}, g.obs)
	if err != nil {
		return nil, err
	}
	return vectors, nil
}

func (g *GeminiProvider) embedAll(ctx context.Context, texts []string) ([][]float64, error) {
	tracer := otel.Tracer("cvmatch.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.embed_texts")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.embedConfig.Model),
		attribute.Int("input.text_count", len(texts)),
	)

	batchSize := g.embedConfig.BatchSize
	if batchSize <= 0 {
		batchSize = len(texts)
	}

	vectors := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))

		if g.embedLimiter != nil {
			if err := g.embedLimiter.Wait(ctx); err != nil {
				span.RecordError(err)
				return nil, cvmatchErrors.NewAIError(cvmatchErrors.ErrCodeAIServiceFailed,
					"Embedding rate limiter interrupted", err)
			}
		}

		batch, err := g.embedBatch(ctx, texts[start:end])
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.Bool("success", false))
			return nil, err
		}
		vectors = append(vectors, batch...)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("output.vector_count", len(vectors)),
	)
	return vectors, nil
}

func (g *GeminiProvider) embedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, genai.RoleUser)
	}

	result, err := g.embedBreaker.ExecuteEmbed(func() (*genai.EmbedContentResponse, error) {
		return executeWithRetry(ctx, g, "embed_texts", *g.embedConfig.MaxRetries, func() (*genai.EmbedContentResponse, error) {
			return g.client.Models.EmbedContent(ctx, g.embedConfig.Model, contents, &genai.EmbedContentConfig{})
		})
	})
	if err != nil {
		return nil, cvmatchErrors.NewAIError(cvmatchErrors.ErrCodeAIServiceFailed,
			"Failed to embed texts", err)
	}

	if len(result.Embeddings) != len(texts) {
		return nil, cvmatchErrors.NewAIError(cvmatchErrors.ErrCodeAIServiceFailed,
			fmt.Sprintf("Embedding count mismatch: sent %d texts, got %d vectors", len(texts), len(result.Embeddings)), nil)
	}

	vectors := make([][]float64, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		vec := make([]float64, len(emb.Values))
		for j, v := range emb.Values {
			vec[j] = float64(v)
		}
		vectors[i] = l2Normalize(vec)
	}
	return vectors, nil
}

// l2Normalize scales a vector to unit length. Zero vectors pass through
// unchanged.
func l2Normalize(vec []float64) []float64 {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return vec
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"tag_operations":   g.tagBreaker.GetStats(),
		"embed_operations": g.embedBreaker.GetEmbedStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	stats["overall_healthy"] = g.tagBreaker.IsHealthy() &&
		g.embedBreaker.IsEmbedHealthy() &&
		g.modelBreaker.IsModelHealthy()

	return stats
}

// Close implements Provider
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// metricsUsage converts usage for metric recording. Nil passes through so an
// absent usage report never fabricates zero counts.
func (u *TokenUsage) metricsUsage() *observability.TokenUsage {
	if u == nil {
		return nil
	}
	return &observability.TokenUsage{
		InputTokens:  u.InputTokens,
		OutputTokens: u.OutputTokens,
		TotalTokens:  u.TotalTokens,
	}
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
