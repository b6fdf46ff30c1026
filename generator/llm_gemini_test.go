package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type geminiRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	SystemInstruction struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"systemInstruction"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

const geminiReply = `{
	"candidates": [{
		"content": {"role": "model", "parts": [{"text": "1. Title A\n"}, {"text": "2. Title B"}]},
		"finishReason": 1
	}]
}`

func newGeminiTestLLM(t *testing.T, handler http.HandlerFunc) *GeminiLLM {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	llm, err := NewGeminiLLMFromConfig(context.Background(), &LLMSettings{Provider: "gemini", APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewGeminiLLMFromConfig() error = %v", err)
	}
	t.Cleanup(func() { _ = llm.Close() })
	return llm
}

func TestGeminiLLMComplete(t *testing.T) {
	var got geminiRequest
	var path string
	llm := newGeminiTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geminiReply))
	})

	out, err := llm.Complete(context.Background(), Completion{
		Model:       "gemini-test",
		Prompt:      Prompt{System: "sys", User: "user"},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if out != "1. Title A\n2. Title B" {
		t.Errorf("Complete() = %q", out)
	}

	if !strings.HasSuffix(path, "models/gemini-test:generateContent") {
		t.Errorf("path = %q", path)
	}
	if len(got.SystemInstruction.Parts) != 1 || got.SystemInstruction.Parts[0].Text != "sys" {
		t.Errorf("systemInstruction = %+v", got.SystemInstruction)
	}
	if len(got.Contents) != 1 || got.Contents[0].Role != "user" ||
		len(got.Contents[0].Parts) != 1 || got.Contents[0].Parts[0].Text != "user" {
		t.Errorf("contents = %+v", got.Contents)
	}
	if got.GenerationConfig.Temperature != 0.7 || got.GenerationConfig.MaxOutputTokens != 500 {
		t.Errorf("generationConfig = %+v, want 0.7/500", got.GenerationConfig)
	}
}

func TestGeminiLLMNoCandidates(t *testing.T) {
	llm := newGeminiTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	})

	if _, err := llm.Complete(context.Background(), Completion{Model: "gemini-test", Prompt: Prompt{System: "s", User: "u"}}); err == nil {
		t.Fatal("Complete() error = nil, want no candidates error")
	}
}

func TestGeminiLLMRequiresModel(t *testing.T) {
	llm := newGeminiTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a model")
	})
	if _, err := llm.Complete(context.Background(), Completion{}); err == nil {
		t.Fatal("Complete() error = nil, want missing model error")
	}
}
