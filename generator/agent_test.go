package generator

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

var testModels = []string{"model-large", "model-medium", "model-small"}

type fakeLLM struct {
	reply string
	err   error
	calls []Completion
}

func (f *fakeLLM) Complete(_ context.Context, c Completion) (string, error) {
	f.calls = append(f.calls, c)
	return f.reply, f.err
}

func newTestAgent(t *testing.T, llm LLMClient) *Agent {
	t.Helper()
	a, err := NewAgent(llm, testModels, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAgent() error = %v", err)
	}
	return a
}

func TestNewAgentValidation(t *testing.T) {
	if _, err := NewAgent(nil, testModels, zerolog.Nop()); err == nil {
		t.Error("NewAgent(nil llm) error = nil")
	}
	if _, err := NewAgent(&fakeLLM{}, nil, zerolog.Nop()); err == nil {
		t.Error("NewAgent(no models) error = nil")
	}
}

func TestGenerate(t *testing.T) {
	llm := &fakeLLM{reply: "1. Title A\n2. Title B\n\n3. Title C"}
	a := newTestAgent(t, llm)

	res, err := a.Generate(context.Background(), Request{
		Article: "  Local bakery wins award.  ",
		Tone:    ToneClickbait,
		Model:   "model-small",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if want := []string{"Title A", "Title B", "Title C"}; !reflect.DeepEqual(res.Titles, want) {
		t.Errorf("titles = %q, want %q", res.Titles, want)
	}
	if res.Model != "model-small" || res.Tone != ToneClickbait {
		t.Errorf("result model/tone = %q/%v", res.Model, res.Tone)
	}

	if len(llm.calls) != 1 {
		t.Fatalf("llm called %d times, want 1", len(llm.calls))
	}
	c := llm.calls[0]
	if c.Temperature != 0.7 || c.MaxTokens != 500 {
		t.Errorf("sampling = %v/%d, want 0.7/500", c.Temperature, c.MaxTokens)
	}
	if c.Prompt.System != clickbaitPrompt {
		t.Error("system prompt is not the clickbait prompt")
	}
	if c.Prompt.User != userTemplate+"Local bakery wins award." {
		t.Errorf("user message = %q", c.Prompt.User)
	}
}

func TestGenerateEmptyArticleSkipsCall(t *testing.T) {
	for _, article := range []string{"", "   \n\t ", "<p></p>"} {
		llm := &fakeLLM{reply: "1. never"}
		a := newTestAgent(t, llm)
		_, err := a.Generate(context.Background(), Request{Article: article})
		if !errors.Is(err, ErrEmptyArticle) {
			t.Errorf("Generate(%q) error = %v, want ErrEmptyArticle", article, err)
		}
		if len(llm.calls) != 0 {
			t.Errorf("Generate(%q) called the llm %d times", article, len(llm.calls))
		}
	}
}

func TestGenerateFailure(t *testing.T) {
	boom := errors.New("rate limited")
	llm := &fakeLLM{err: boom}
	a := newTestAgent(t, llm)

	res, err := a.Generate(context.Background(), Request{Article: "text"})
	if !errors.Is(err, boom) {
		t.Fatalf("Generate() error = %v, want wrapped %v", err, boom)
	}
	if len(res.Titles) != 0 || res.Raw != "" {
		t.Errorf("failed generation returned a partial result: %+v", res)
	}
	if len(llm.calls) != 1 {
		t.Errorf("llm called %d times, want exactly 1 (no retry)", len(llm.calls))
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	a := newTestAgent(t, &fakeLLM{reply: "\n  \n"})
	if _, err := a.Generate(context.Background(), Request{Article: "text"}); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("Generate() error = %v, want ErrEmptyResponse", err)
	}
}

func TestResolveModel(t *testing.T) {
	a := newTestAgent(t, &fakeLLM{})
	tests := map[string]string{
		"model-medium": "model-medium",
		"":             "model-large",
		"gpt-unknown":  "model-large",
	}
	for in, want := range tests {
		if got := a.ResolveModel(in); got != want {
			t.Errorf("ResolveModel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMockLLM(t *testing.T) {
	a := newTestAgent(t, MockLLM{})
	res, err := a.Generate(context.Background(), Request{Article: "Council approves new tram line"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(res.Titles) != 5 {
		t.Fatalf("titles = %q, want 5", res.Titles)
	}
	if res.Titles[0] != "What we know about Council approves new tram line" {
		t.Errorf("first title = %q", res.Titles[0])
	}
}

func TestGenerateKeepsWholeArticle(t *testing.T) {
	article := "Lead paragraph about the flood.\n\nThe mayor said <b>no</b> comment.\n\n<p>Quoted block</p>\n\nClosing paragraph."
	llm := &fakeLLM{reply: "1. Flood"}
	a := newTestAgent(t, llm)

	if _, err := a.Generate(context.Background(), Request{Article: article}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got, want := llm.calls[0].Prompt.User, userTemplate+article; got != want {
		t.Errorf("user message = %q, want %q", got, want)
	}
}
