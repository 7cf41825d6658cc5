package portfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultAIBaseURL      = "https://api.openai.com/v1"
	maxAIResponseBodySize = 2 << 20
)

type aiChatCompletionRequest struct {
	EndpointURL  string
	APIKey       string
	Model        string
	SystemPrompt string
	UserPrompt   string
}

type aiChatCompletionResult struct {
	Model   string
	Content string
}

// buildAICompletionsEndpoint normalizes a user-supplied base URL into a
// chat-completions endpoint.
func buildAICompletionsEndpoint(baseURL string) (string, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultAIBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	trimmed = strings.TrimRight(trimmed, "/")

	endpoint := trimmed
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasSuffix(lower, "/chat/completions"):
	case strings.HasSuffix(lower, "/v1"):
		endpoint = trimmed + "/chat/completions"
	default:
		endpoint = trimmed + "/v1/chat/completions"
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid base_url scheme: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid base_url host")
	}
	return endpoint, nil
}

func isGeminiModel(model string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), "gemini")
}

// aiChatCompletion sends one prompt to the model. Gemini models go through
// the genai SDK; everything else speaks the OpenAI-compatible
// chat-completions protocol.
func aiChatCompletion(ctx context.Context, req aiChatCompletionRequest) (aiChatCompletionResult, error) {
	if isGeminiModel(req.Model) {
		return aiGeminiCompletion(ctx, req)
	}
	return aiOpenAICompletion(ctx, req)
}

type chatCompletionsPayload struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func aiOpenAICompletion(ctx context.Context, req aiChatCompletionRequest) (aiChatCompletionResult, error) {
	body, err := json.Marshal(chatCompletionsPayload{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return aiChatCompletionResult{}, fmt.Errorf("marshal chat payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.EndpointURL, bytes.NewReader(body))
	if err != nil {
		return aiChatCompletionResult{}, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return aiChatCompletionResult{}, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxAIResponseBodySize))
	if err != nil {
		return aiChatCompletionResult{}, fmt.Errorf("read chat response: %w", err)
	}

	var parsed chatCompletionsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return aiChatCompletionResult{}, fmt.Errorf("chat endpoint returned status %d", resp.StatusCode)
		}
		return aiChatCompletionResult{}, fmt.Errorf("decode chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		message := ""
		if parsed.Error != nil {
			message = parsed.Error.Message
		}
		return aiChatCompletionResult{}, fmt.Errorf("chat endpoint returned status %d: %s", resp.StatusCode, message)
	}
	if len(parsed.Choices) == 0 {
		return aiChatCompletionResult{}, fmt.Errorf("chat response has no choices")
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return aiChatCompletionResult{}, fmt.Errorf("ai response content is empty")
	}
	model := strings.TrimSpace(parsed.Model)
	if model == "" {
		model = req.Model
	}
	return aiChatCompletionResult{Model: model, Content: content}, nil
}

func aiGeminiCompletion(ctx context.Context, req aiChatCompletionRequest) (aiChatCompletionResult, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  strings.TrimSpace(req.APIKey),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return aiChatCompletionResult{}, fmt.Errorf("create gemini client failed: %w", err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		},
		Temperature:      genai.Ptr(float32(0.2)),
		ResponseMIMEType: "application/json",
	}
	response, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.UserPrompt), config)
	if err != nil {
		return aiChatCompletionResult{}, fmt.Errorf("gemini generate content failed: %w", err)
	}
	content := strings.TrimSpace(response.Text())
	if content == "" {
		return aiChatCompletionResult{}, fmt.Errorf("ai response content is empty")
	}
	model := strings.TrimSpace(response.ModelVersion)
	if model == "" {
		model = req.Model
	}
	return aiChatCompletionResult{Model: model, Content: content}, nil
}

// cleanupModelJSON strips markdown fences and surrounding prose so model
// output can be unmarshaled even when the model ignores the
// JSON-only instruction.
func cleanupModelJSON(content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		lines := strings.Split(trimmed, "\n")
		if len(lines) >= 2 {
			lines = lines[1:]
			if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
				lines = lines[:len(lines)-1]
			}
			trimmed = strings.Join(lines, "\n")
		}
	}
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		trimmed = trimmed[start : end+1]
	}
	return strings.TrimSpace(trimmed)
}
