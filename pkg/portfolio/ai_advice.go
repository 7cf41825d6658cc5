package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const rebalanceAdviceSystemPrompt = `You are a cautious portfolio rebalancing assistant for a single retail investor.
You receive a JSON snapshot of the portfolio: total value, per-asset-type current
allocation, target allocation percentages, and the mechanical Buy/Sell/Hold
recommendations already computed from the targets.

Respond with a single JSON object and nothing else, using this shape:
{
  "summary": "one or two sentences describing the overall state",
  "rationale": "short paragraph explaining the main drifts and what to do about them",
  "suggestions": [
    {"asset_type": "stock", "action": "Sell", "rationale": "why"}
  ]
}

Rules:
- Keep every asset_type that appears in the snapshot's recommendations.
- The action for each asset type must be one of Buy, Sell, Hold.
- Do not invent asset types, tickers, or dollar amounts not present in the snapshot.
- Be concise and concrete. No markdown, no code fences.`

// RebalanceAdviceRequest carries the model settings and optional user
// preferences for an advice run. APIKey and Model are required; BaseURL is
// only used for non-Gemini models and defaults to the OpenAI endpoint.
type RebalanceAdviceRequest struct {
	BaseURL      string `json:"base_url"`
	APIKey       string `json:"api_key"`
	Model        string `json:"model"`
	RiskProfile  string `json:"risk_profile"`
	Horizon      string `json:"horizon"`
	CustomPrompt string `json:"custom_prompt"`
}

// RebalanceAdviceSuggestion is one per-asset-type suggestion from the model.
type RebalanceAdviceSuggestion struct {
	AssetType string `json:"asset_type"`
	Action    string `json:"action"`
	Rationale string `json:"rationale"`
}

// RebalanceAdviceResult is the advice payload returned to the caller.
type RebalanceAdviceResult struct {
	GeneratedAt string                      `json:"generated_at"`
	Model       string                      `json:"model"`
	Summary     string                      `json:"summary"`
	Rationale   string                      `json:"rationale"`
	Suggestions []RebalanceAdviceSuggestion `json:"suggestions"`
	Disclaimer  string                      `json:"disclaimer"`
}

const adviceDisclaimer = "AI-generated commentary, not financial advice. Verify before trading."

type adviceSnapshot struct {
	Summary         PortfolioSummary   `json:"summary"`
	Targets         []TargetAllocation `json:"targets"`
	Recommendations []Recommendation   `json:"recommendations"`
	RiskProfile     string             `json:"risk_profile,omitempty"`
	Horizon         string             `json:"horizon,omitempty"`
}

type adviceModelResponse struct {
	Summary     string                      `json:"summary"`
	Rationale   string                      `json:"rationale"`
	Suggestions []RebalanceAdviceSuggestion `json:"suggestions"`
}

func buildAdviceUserPrompt(snapshot adviceSnapshot, customPrompt string) (string, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal advice snapshot: %w", err)
	}
	var b strings.Builder
	b.WriteString("Portfolio snapshot:\n")
	b.Write(data)
	if trimmed := strings.TrimSpace(customPrompt); trimmed != "" {
		b.WriteString("\n\nAdditional instructions from the investor:\n")
		b.WriteString(trimmed)
	}
	return b.String(), nil
}

func parseAdviceResponse(content string) (adviceModelResponse, error) {
	var parsed adviceModelResponse
	cleaned := cleanupModelJSON(content)
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return adviceModelResponse{}, fmt.Errorf("decode advice response: %w", err)
	}
	if parsed.Summary == "" && len(parsed.Suggestions) == 0 {
		return adviceModelResponse{}, fmt.Errorf("advice response missing summary and suggestions")
	}
	for i := range parsed.Suggestions {
		switch parsed.Suggestions[i].Action {
		case ActionBuy, ActionSell, ActionHold:
		default:
			parsed.Suggestions[i].Action = ActionHold
		}
	}
	return parsed, nil
}

// GetRebalanceAdvice asks an AI model to comment on the current rebalance
// plan. The mechanical plan is computed locally first and handed to the model
// as context; the model only adds narrative on top of it.
func (c *Core) GetRebalanceAdvice(ctx context.Context, req RebalanceAdviceRequest) (RebalanceAdviceResult, error) {
	if strings.TrimSpace(req.APIKey) == "" {
		return RebalanceAdviceResult{}, NewError(ErrCodeValidation, "api_key is required")
	}
	if strings.TrimSpace(req.Model) == "" {
		return RebalanceAdviceResult{}, NewError(ErrCodeValidation, "model is required")
	}

	summary, err := c.GetPortfolioSummary()
	if err != nil {
		return RebalanceAdviceResult{}, err
	}
	plan, err := c.GetRebalancePlan()
	if err != nil {
		return RebalanceAdviceResult{}, err
	}
	targets, err := c.GetTargetAllocations()
	if err != nil {
		return RebalanceAdviceResult{}, err
	}

	userPrompt, err := buildAdviceUserPrompt(adviceSnapshot{
		Summary:         summary,
		Targets:         targets,
		Recommendations: plan.Recommendations,
		RiskProfile:     strings.TrimSpace(req.RiskProfile),
		Horizon:         strings.TrimSpace(req.Horizon),
	}, req.CustomPrompt)
	if err != nil {
		return RebalanceAdviceResult{}, WrapError(ErrCodeInternal, "build advice prompt", err)
	}

	aiReq := aiChatCompletionRequest{
		APIKey:       strings.TrimSpace(req.APIKey),
		Model:        strings.TrimSpace(req.Model),
		SystemPrompt: rebalanceAdviceSystemPrompt,
		UserPrompt:   userPrompt,
	}
	if !isGeminiModel(aiReq.Model) {
		endpoint, err := buildAICompletionsEndpoint(req.BaseURL)
		if err != nil {
			return RebalanceAdviceResult{}, WrapError(ErrCodeValidation, err.Error(), err)
		}
		aiReq.EndpointURL = endpoint
	}

	c.logger.Info("requesting rebalance advice", "model", aiReq.Model)
	completion, err := aiChatCompletion(ctx, aiReq)
	if err != nil {
		return RebalanceAdviceResult{}, WrapError(ErrCodeInternal, "ai request failed", err)
	}

	parsed, err := parseAdviceResponse(completion.Content)
	if err != nil {
		c.logger.Warn("unparseable advice response", "model", completion.Model, "error", err)
		return RebalanceAdviceResult{}, WrapError(ErrCodeInternal, "ai response was not valid advice", err)
	}

	return RebalanceAdviceResult{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Model:       completion.Model,
		Summary:     parsed.Summary,
		Rationale:   parsed.Rationale,
		Suggestions: parsed.Suggestions,
		Disclaimer:  adviceDisclaimer,
	}, nil
}
