package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiLLM implements LLMClient on Google's Gemini API.
type GeminiLLM struct {
	client *genai.Client
}

func NewGeminiLLMFromConfig(ctx context.Context, cfg *LLMSettings) (*GeminiLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key missing")
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiLLM{client: client}, nil
}

func (g *GeminiLLM) Complete(ctx context.Context, c Completion) (string, error) {
	if c.Model == "" {
		return "", errors.New("llm model is required")
	}
	model := g.client.GenerativeModel(c.Model)
	model.SetTemperature(float32(c.Temperature))
	if c.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(c.MaxTokens))
	}
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(c.Prompt.System)}}

	resp, err := model.GenerateContent(ctx, genai.Text(c.Prompt.User))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: no candidates in response")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

// Close releases the underlying gRPC connection.
func (g *GeminiLLM) Close() error {
	return g.client.Close()
}
