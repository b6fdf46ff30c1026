package generator

import "context"

// LLMClient abstracts the completion service so providers can be swapped or faked.
type LLMClient interface {
	Complete(ctx context.Context, c Completion) (string, error)
}

// Completion is a single chat-completion call.
type Completion struct {
	Model       string
	Prompt      Prompt
	Temperature float64
	MaxTokens   int
}

// LLMSettings is the provider configuration shared by the concrete clients.
type LLMSettings struct {
	Provider string
	APIKey   string
	BaseURL  string
}
