package portfolio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBuildAICompletionsEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{"empty defaults to openai", "", "https://api.openai.com/v1/chat/completions", false},
		{"v1 suffix", "https://api.openai.com/v1", "https://api.openai.com/v1/chat/completions", false},
		{"bare host", "https://example.com", "https://example.com/v1/chat/completions", false},
		{"trailing slash", "https://example.com/v1/", "https://example.com/v1/chat/completions", false},
		{"already complete", "https://example.com/v1/chat/completions", "https://example.com/v1/chat/completions", false},
		{"no scheme", "example.com/v1", "https://example.com/v1/chat/completions", false},
		{"bad scheme", "ftp://example.com", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildAICompletionsEndpoint(tt.baseURL)
			if tt.wantErr {
				assertError(t, err, "buildAICompletionsEndpoint")
				return
			}
			assertNoError(t, err, "buildAICompletionsEndpoint")
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsGeminiModel(t *testing.T) {
	if !isGeminiModel("gemini-2.0-flash") {
		t.Error("gemini-2.0-flash should be gemini")
	}
	if !isGeminiModel("  Gemini-1.5-pro ") {
		t.Error("detection should be case and space insensitive")
	}
	if isGeminiModel("gpt-4o-mini") {
		t.Error("gpt-4o-mini should not be gemini")
	}
}

func TestCleanupModelJSON(t *testing.T) {
	want := `{"summary": "ok"}`

	if got := cleanupModelJSON(want); got != want {
		t.Errorf("plain json: got %q", got)
	}
	if got := cleanupModelJSON("```json\n" + want + "\n```"); got != want {
		t.Errorf("fenced json: got %q", got)
	}
	if got := cleanupModelJSON("Here is the result:\n" + want + "\nHope this helps."); got != want {
		t.Errorf("prose-wrapped json: got %q", got)
	}
}

func TestAIOpenAICompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header: got %q", got)
		}
		var payload chatCompletionsPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.Model != "gpt-4o-mini" || len(payload.Messages) != 2 {
			t.Errorf("unexpected payload: %+v", payload)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"model": "gpt-4o-mini-2024",
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"summary": "balanced"}`}},
			},
		})
	}))
	defer server.Close()

	result, err := aiOpenAICompletion(context.Background(), aiChatCompletionRequest{
		EndpointURL:  server.URL,
		APIKey:       "test-key",
		Model:        "gpt-4o-mini",
		SystemPrompt: "system",
		UserPrompt:   "user",
	})
	assertNoError(t, err, "aiOpenAICompletion")
	if result.Model != "gpt-4o-mini-2024" {
		t.Errorf("model: got %q", result.Model)
	}
	assertContains(t, result.Content, "balanced", "content")
}

func TestAIOpenAICompletionErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid api key"},
		})
	}))
	defer server.Close()

	_, err := aiOpenAICompletion(context.Background(), aiChatCompletionRequest{
		EndpointURL: server.URL,
		APIKey:      "bad",
		Model:       "gpt-4o-mini",
	})
	assertError(t, err, "aiOpenAICompletion with 401")
	assertContains(t, err.Error(), "invalid api key", "upstream message surfaced")
}

func TestAIOpenAICompletionNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"model": "m", "choices": []any{}})
	}))
	defer server.Close()

	_, err := aiOpenAICompletion(context.Background(), aiChatCompletionRequest{
		EndpointURL: server.URL,
		APIKey:      "k",
		Model:       "m",
	})
	assertError(t, err, "aiOpenAICompletion with empty choices")
}
