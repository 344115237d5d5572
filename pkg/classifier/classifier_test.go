package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bazaarchat-be/pkg/llm"
	"bazaarchat-be/pkg/store"
)

type cannedProvider struct {
	response string
	err      error
	prompts  []string
}

func (p *cannedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.response, p.err
}

func (p *cannedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return p.response, p.err
}

func catalog() []store.CategoryRecord {
	return []store.CategoryRecord{
		{ID: "1", Type2: "Women Ethnic Wear", Cat1: "clothing", Name: "Ethnic"},
		{ID: "2", Type2: "Home Decor", Cat1: "home", Name: "Decor"},
	}
}

func TestClassifyIntentParsesWrappedJSON(t *testing.T) {
	p := &cannedProvider{response: "Sure! Here is the classification:\n" +
		`{"intent": "Product", "confidence": 0.9, "matches": [{"id": "1", "type2": "Women Ethnic Wear", "score": 0.8}]}` +
		"\nLet me know if you need anything else."}
	c := New(p, nil)

	res := c.ClassifyIntent(context.Background(), "red kurta", catalog())
	if res.Intent != IntentProduct {
		t.Fatalf("expected product intent, got %q", res.Intent)
	}
	if res.Confidence != 0.9 {
		t.Fatalf("expected confidence 0.9, got %f", res.Confidence)
	}
	if len(res.Matches) != 1 || res.Matches[0].ID != "1" {
		t.Fatalf("expected one category hint, got %+v", res.Matches)
	}
}

func TestClassifyIntentDefaultsOnGarbage(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
	}{
		{"provider error", "", errors.New("connection refused")},
		{"no json", "I cannot answer that.", nil},
		{"broken json", `{"intent": "product",`, nil},
		{"unknown intent", `{"intent": "buy_stocks", "confidence": 0.99}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &cannedProvider{response: tt.response, err: tt.err}
			c := New(p, nil)

			res := c.ClassifyIntent(context.Background(), "anything", catalog())
			if res.Intent != IntentCompany {
				t.Fatalf("expected company fallback, got %q", res.Intent)
			}
			if res.Confidence != 0 {
				t.Fatalf("fallback confidence must be zero, got %f", res.Confidence)
			}
		})
	}
}

func TestClassifyIntentCapsMatches(t *testing.T) {
	var hints []string
	for i := 0; i < 8; i++ {
		hints = append(hints, `{"id": "x", "score": 0.5}`)
	}
	p := &cannedProvider{response: `{"intent": "product", "matches": [` + strings.Join(hints, ",") + `]}`}
	c := New(p, nil)

	res := c.ClassifyIntent(context.Background(), "shoes", catalog())
	if len(res.Matches) != maxLLMCategories {
		t.Fatalf("expected matches capped at %d, got %d", maxLLMCategories, len(res.Matches))
	}
}

func TestClassifyHomeDecor(t *testing.T) {
	p := &cannedProvider{response: `{"is_home_score": 0.85, "reasoning": "lamps are home goods"}`}
	c := New(p, nil)

	score, reasoning, err := c.ClassifyHomeDecor(context.Background(), "table lamp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0.85 {
		t.Fatalf("expected 0.85, got %f", score)
	}
	if reasoning == "" {
		t.Fatal("expected reasoning to be carried through")
	}
}

func TestScoreSellerRelevanceErrorBubbles(t *testing.T) {
	p := &cannedProvider{err: errors.New("timeout")}
	c := New(p, nil)

	score, _, err := c.ScoreSellerRelevance(context.Background(), "kurti",
		&store.SellerRecord{StoreName: "Style Studio"})
	if err == nil {
		t.Fatal("expected error to bubble to the caller")
	}
	if score != 0 {
		t.Fatalf("score must be zero on failure, got %f", score)
	}
}

func TestMatchCategoriesWithHistoryTruncates(t *testing.T) {
	p := &cannedProvider{response: `{"matches": [{"id": "1", "score": 0.9}]}`}
	c := New(p, nil)

	var history []store.ChatTurn
	for i := 0; i < 50; i++ {
		history = append(history, store.ChatTurn{Role: store.RoleUser, Content: "old turn"})
	}
	history = append(history, store.ChatTurn{Role: store.RoleUser, Content: "marker-turn"})

	res := c.MatchCategoriesWithHistory(context.Background(), "same in red", history, catalog())
	if len(res.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(res.Matches))
	}

	prompt := p.prompts[len(p.prompts)-1]
	if !strings.Contains(prompt, "marker-turn") {
		t.Fatal("latest turn must be in the prompt")
	}
	if got := strings.Count(prompt, "old turn"); got > maxHistoryTurns {
		t.Fatalf("history not truncated: %d old turns in prompt", got)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"no braces here", ""},
		{"}{", ""},
	}

	for _, tt := range tests {
		if got := extractJSON(tt.in); got != tt.want {
			t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
