package portfolio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetRebalanceAdviceValidation(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := core.GetRebalanceAdvice(context.Background(), RebalanceAdviceRequest{
		Model: "gpt-4o-mini",
	})
	assertError(t, err, "advice without api key")
	if !IsErrorCode(err, ErrCodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}

	_, err = core.GetRebalanceAdvice(context.Background(), RebalanceAdviceRequest{
		APIKey: "key",
	})
	assertError(t, err, "advice without model")
	if !IsErrorCode(err, ErrCodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}

	_, err = core.GetRebalanceAdvice(context.Background(), RebalanceAdviceRequest{
		APIKey:  "key",
		Model:   "gpt-4o-mini",
		BaseURL: "ftp://example.com",
	})
	assertError(t, err, "advice with bad base url")
	if !IsErrorCode(err, ErrCodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGetRebalanceAdvice(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	testHolding(t, core, "Apple Inc.", "AAPL", "stock", 7500, 11200)
	testHolding(t, core, "US Treasury Bond", "", "bond", 20000, 20400)

	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload chatCompletionsPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(payload.Messages) == 2 {
			gotPrompt = payload.Messages[1].Content
		}
		json.NewEncoder(w).Encode(map[string]any{
			"model": "gpt-4o-mini",
			"choices": []map[string]any{
				{"message": map[string]any{"content": "```json\n" + `{
					"summary": "Stocks are underweight relative to the 60% target.",
					"rationale": "Bond gains pushed the mix away from target.",
					"suggestions": [
						{"asset_type": "stock", "action": "Buy", "rationale": "underweight"},
						{"asset_type": "bond", "action": "Trim", "rationale": "overweight"}
					]
				}` + "\n```"}},
			},
		})
	}))
	defer server.Close()

	result, err := core.GetRebalanceAdvice(context.Background(), RebalanceAdviceRequest{
		BaseURL:     server.URL + "/v1/chat/completions",
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		RiskProfile: "conservative",
	})
	assertNoError(t, err, "GetRebalanceAdvice")

	// The snapshot handed to the model carries the locally computed plan.
	assertContains(t, gotPrompt, "recommendations", "prompt carries plan")
	assertContains(t, gotPrompt, "conservative", "prompt carries risk profile")

	if result.Model != "gpt-4o-mini" {
		t.Errorf("model: got %q", result.Model)
	}
	assertContains(t, result.Summary, "underweight", "summary")
	if result.Disclaimer == "" {
		t.Error("expected a disclaimer")
	}
	if result.GeneratedAt == "" {
		t.Error("expected a generated_at timestamp")
	}
	if len(result.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(result.Suggestions))
	}
	if result.Suggestions[0].Action != ActionBuy {
		t.Errorf("first action: got %q", result.Suggestions[0].Action)
	}
	// Unknown actions are coerced to Hold rather than leaking through.
	if result.Suggestions[1].Action != ActionHold {
		t.Errorf("unknown action should become Hold, got %q", result.Suggestions[1].Action)
	}
}

func TestGetRebalanceAdviceUnparseableResponse(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"model": "gpt-4o-mini",
			"choices": []map[string]any{
				{"message": map[string]any{"content": "I cannot help with that."}},
			},
		})
	}))
	defer server.Close()

	_, err := core.GetRebalanceAdvice(context.Background(), RebalanceAdviceRequest{
		BaseURL: server.URL + "/v1/chat/completions",
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
	})
	assertError(t, err, "advice with non-json response")
	if !IsErrorCode(err, ErrCodeInternal) {
		t.Errorf("expected internal error, got %v", err)
	}
}

func TestParseAdviceResponse(t *testing.T) {
	parsed, err := parseAdviceResponse(`{"summary": "ok", "suggestions": []}`)
	assertNoError(t, err, "parseAdviceResponse")
	if parsed.Summary != "ok" {
		t.Errorf("summary: got %q", parsed.Summary)
	}

	_, err = parseAdviceResponse(`{"rationale": "no summary or suggestions"}`)
	assertError(t, err, "response without summary or suggestions")

	_, err = parseAdviceResponse("not json at all")
	assertError(t, err, "non-json response")
}
