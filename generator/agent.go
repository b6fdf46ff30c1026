package generator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// Sampling parameters sent with every request.
const (
	Temperature = 0.7
	MaxTokens   = 500
)

// ErrEmptyArticle is returned before any network call when there is no article text.
var ErrEmptyArticle = errors.New("article text is empty")

// Agent turns an article into headline suggestions.
type Agent struct {
	llm    LLMClient
	models []string
	logger zerolog.Logger
}

// NewAgent wires the completion client with the offered models. The first model
// is the default.
func NewAgent(llm LLMClient, models []string, logger zerolog.Logger) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if len(models) == 0 {
		return nil, errors.New("at least one model is required")
	}
	return &Agent{llm: llm, models: slices.Clone(models), logger: logger}, nil
}

// Models returns the offered model identifiers.
func (a *Agent) Models() []string {
	return slices.Clone(a.models)
}

// ResolveModel returns name if it is offered, else the default model.
func (a *Agent) ResolveModel(name string) string {
	if slices.Contains(a.models, name) {
		return name
	}
	return a.models[0]
}

// Generate runs one request: it validates, builds the prompt, calls the model
// once, and formats the answer. Failures are returned as-is, with no retry.
func (a *Agent) Generate(ctx context.Context, req Request) (Result, error) {
	article := NormalizeArticle(req.Article)
	if article == "" {
		return Result{}, ErrEmptyArticle
	}
	model := a.ResolveModel(req.Model)
	prompt := BuildPrompt(req.Tone, article)

	a.logger.Debug().
		Str("model", model).
		Stringer("tone", req.Tone).
		Int("article_len", len(article)).
		Str("article", excerpt(article, 80)).
		Msg("requesting titles")

	start := time.Now()
	raw, err := a.llm.Complete(ctx, Completion{
		Model:       model,
		Prompt:      prompt,
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		return Result{}, fmt.Errorf("completion failed: %w", err)
	}

	res, err := PostProcess(raw)
	if err != nil {
		return Result{}, fmt.Errorf("completion failed: %w", err)
	}
	res.Model = model
	res.Tone = req.Tone

	a.logger.Info().
		Str("model", model).
		Stringer("tone", req.Tone).
		Int("titles", len(res.Titles)).
		Dur("took", time.Since(start)).
		Msg("titles generated")
	return res, nil
}
