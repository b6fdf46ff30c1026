package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM returns canned headlines built from the article's first words, for
// running the UI without a network connection.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, c Completion) (string, error) {
	article := strings.TrimPrefix(c.Prompt.User, userTemplate)
	subject := strings.Join(firstWords(article, 6), " ")
	if subject == "" {
		subject = "this story"
	}

	var sb strings.Builder
	for i, pattern := range []string{
		"What we know about %s",
		"%s: the key facts",
		"Why %s matters now",
		"%s, explained",
		"Everything you need to know about %s",
	} {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, fmt.Sprintf(pattern, subject))
	}
	return sb.String(), nil
}

func firstWords(s string, n int) []string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return words
}
