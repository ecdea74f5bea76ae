package ai

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"cvmatch/internal/config"
	"cvmatch/internal/errors"

	"google.golang.org/genai"
)

func breakerTestConfig(enabled bool) *config.OperationAIConfig {
	return &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          enabled,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}
}

func TestCircuitBreakerDisabledReturnsNil(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)
	cfg := breakerTestConfig(false)

	if cb := NewAICircuitBreaker("tag", cfg, logger); cb != nil {
		t.Error("expected nil tagging breaker when disabled")
	}
	if cb := NewEmbedCircuitBreaker("embed", cfg, logger); cb != nil {
		t.Error("expected nil embedding breaker when disabled")
	}
	if cb := NewModelCircuitBreaker("tag", cfg, logger); cb != nil {
		t.Error("expected nil model breaker when disabled")
	}
}

func TestNilBreakerExecutesDirectly(t *testing.T) {
	var cb *AICircuitBreaker
	called := false
	_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		called = true
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("function was not executed through nil breaker")
	}

	var ecb *EmbedCircuitBreaker
	called = false
	_, err = ecb.ExecuteEmbed(func() (*genai.EmbedContentResponse, error) {
		called = true
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("embed function was not executed through nil breaker")
	}
}

func TestNilBreakerStats(t *testing.T) {
	var cb *AICircuitBreaker
	stats := cb.GetStats()
	if stats["enabled"] != false {
		t.Errorf("expected enabled=false, got %v", stats["enabled"])
	}
	if !cb.IsHealthy() {
		t.Error("nil breaker should report healthy")
	}
}

func TestIndependentCircuitBreakers(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)

	tagCfg := breakerTestConfig(true)
	embedCfg := breakerTestConfig(true)
	embedCfg.CircuitBreaker.MaxRequests = 5
	embedCfg.CircuitBreaker.FailureThreshold = 0.8

	tagCB := NewAICircuitBreaker("tag", tagCfg, logger)
	embedCB := NewEmbedCircuitBreaker("embed", embedCfg, logger)

	// Drive the tagging breaker open; the embedding breaker must stay closed.
	for i := 0; i < int(tagCfg.CircuitBreaker.MinRequests); i++ {
		_, _ = tagCB.Execute(func() (*genai.GenerateContentResponse, error) {
			return nil, fmt.Errorf("forced failure")
		})
	}

	if tagCB.IsHealthy() {
		t.Error("tagging breaker should be open after repeated failures")
	}
	if !embedCB.IsEmbedHealthy() {
		t.Error("embedding breaker should be unaffected by tagging failures")
	}

	tagStats := tagCB.GetStats()
	if tagStats["enabled"] != true {
		t.Errorf("expected enabled=true, got %v", tagStats["enabled"])
	}
	if tagStats["name"] != "AI-tag" {
		t.Errorf("unexpected breaker name: %v", tagStats["name"])
	}
	embedStats := embedCB.GetEmbedStats()
	if embedStats["name"] != "AI-Embed-embed" {
		t.Errorf("unexpected breaker name: %v", embedStats["name"])
	}
}
