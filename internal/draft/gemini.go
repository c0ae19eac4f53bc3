package draft

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Sampling parameters are fixed: drafts should vary a little between
// runs but stay within a bounded length.
const (
	geminiTemperature     float32 = 0.7
	geminiMaxOutputTokens int32   = 2048
)

// GeminiModel is the production TextModel bound to the Gemini API.
type GeminiModel struct {
	client *genai.Client
	model  string
}

// NewGeminiModel creates a Gemini-backed text model
func NewGeminiModel(ctx context.Context, apiKey, model string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	return &GeminiModel{client: client, model: model}, nil
}

// Generate submits the prompt and returns the first candidate's text
func (m *GeminiModel) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(geminiTemperature),
		MaxOutputTokens: geminiMaxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("gemini: generate content failed: %w", err)
	}
	return resp.Text(), nil
}
