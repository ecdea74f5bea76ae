package cli

import (
	"strings"
	"testing"

	"cvmatch/internal/ai"
)

func TestDiagnosticsReportHealthy(t *testing.T) {
	info := &ai.ModelInfo{Name: "gemini-2.0-flash", Available: true}
	stats := map[string]any{
		"overall_healthy":  true,
		"tag_operations":   map[string]any{"enabled": true, "state": "closed"},
		"embed_operations": map[string]any{"enabled": true, "state": "closed"},
		"model_operations": map[string]any{"enabled": false},
	}

	out := diagnosticsReport(info, stats)

	for _, want := range []string{
		"Model: gemini-2.0-flash (available)",
		"Circuit breakers: healthy",
		"tag_operations: closed",
		"embed_operations: closed",
		"model_operations: disabled",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "Model error") {
		t.Error("report shows a model error for an available model")
	}
}

func TestDiagnosticsReportDegraded(t *testing.T) {
	info := &ai.ModelInfo{
		Name:  "gemini-2.0-flash",
		Error: "Failed to get model info: deadline exceeded",
	}
	stats := map[string]any{
		"overall_healthy": false,
		"tag_operations":  map[string]any{"enabled": true, "state": "open"},
	}

	out := diagnosticsReport(info, stats)

	for _, want := range []string{
		"Model: gemini-2.0-flash (unavailable)",
		"Model error: Failed to get model info: deadline exceeded",
		"Circuit breakers: degraded",
		"tag_operations: open",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}
