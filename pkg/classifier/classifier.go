// Package classifier wraps every external LLM collaborator the
// assistant depends on: intent classification, home-decor gating,
// per-seller relevance scoring and conversation-aware category
// fallback matching. Each call degrades to a safe default on any
// failure (network, non-JSON, malformed JSON) — conversational UX must
// never hard-fail on a classifier hiccup.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bazaarchat-be/pkg/llm"
	"bazaarchat-be/pkg/store"
)

// Intent taxonomy.
const (
	IntentCompany   = "company"
	IntentProduct   = "product"
	IntentSeller    = "seller"
	IntentInvestors = "investors"
	IntentAgent     = "agent"
	IntentVoiceAI   = "voice_ai"
)

var validIntents = map[string]bool{
	IntentCompany:   true,
	IntentProduct:   true,
	IntentSeller:    true,
	IntentInvestors: true,
	IntentAgent:     true,
	IntentVoiceAI:   true,
}

const (
	maxHistoryTurns  = 30
	maxLLMCategories = 5
)

// ILogger is the subset of the app logger the classifier needs.
type ILogger interface {
	Warn(module, message string, details map[string]interface{})
}

// CategoryHint is one LLM-suggested category match.
type CategoryHint struct {
	ID     string  `json:"id"`
	Type2  string  `json:"type2"`
	Reason string  `json:"reason"`
	Score  float64 `json:"score"`
}

// IntentResult is the combined classification + matching output.
type IntentResult struct {
	Intent     string         `json:"intent"`
	Confidence float64        `json:"confidence"`
	Reason     string         `json:"reason"`
	Matches    []CategoryHint `json:"matches"`
	Reasoning  string         `json:"reasoning"`
}

// HomeDecorResult is the home-decor gate output.
type HomeDecorResult struct {
	IsHomeScore float64 `json:"is_home_score"`
	Reasoning   string  `json:"reasoning"`
}

// RelevanceResult scores one seller against a query.
type RelevanceResult struct {
	Score     float64 `json:"score"`
	Reason    string  `json:"reason"`
	Reasoning string  `json:"reasoning"`
}

// FallbackResult is the conversation-aware category matching output.
type FallbackResult struct {
	Matches   []CategoryHint `json:"matches"`
	Reasoning string         `json:"reasoning"`
}

type Classifier struct {
	provider llm.LLMProvider
	logger   ILogger
}

func New(provider llm.LLMProvider, logger ILogger) *Classifier {
	return &Classifier{
		provider: provider,
		logger:   logger,
	}
}

// ClassifyIntent runs the combined intent classification + category
// matching call. Any failure yields intent "company" with zero
// confidence and no matches.
func (c *Classifier) ClassifyIntent(ctx context.Context, message string, catalog []store.CategoryRecord) IntentResult {
	fallback := IntentResult{Intent: IntentCompany}

	prompt := buildIntentPrompt(message, catalog)
	response, err := c.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		c.warn("intent classification failed", err)
		return fallback
	}

	var result IntentResult
	if err := unmarshalResponse(response, &result); err != nil {
		c.warn("intent response parse failed", err)
		return fallback
	}

	result.Intent = strings.ToLower(strings.TrimSpace(result.Intent))
	if !validIntents[result.Intent] {
		result.Intent = IntentCompany
		result.Confidence = 0
	}
	if len(result.Matches) > maxLLMCategories {
		result.Matches = result.Matches[:maxLLMCategories]
	}
	return result
}

// ClassifyHomeDecor asks whether the query is home-decor-related.
// Failures yield a zero score, which the gate treats as "not home".
func (c *Classifier) ClassifyHomeDecor(ctx context.Context, query string) (float64, string, error) {
	var prompt strings.Builder
	prompt.WriteString("You classify shopping queries for an Indian hyperlocal marketplace.\n")
	prompt.WriteString("Decide how likely the query below is about home decor or home goods ")
	prompt.WriteString("(furniture, lamps, vases, clocks, cushions, showpieces, furnishing).\n\n")
	prompt.WriteString("Query: ")
	prompt.WriteString(query)
	prompt.WriteString("\n\nRespond with ONLY valid JSON:\n")
	prompt.WriteString(`{"is_home_score": 0.0, "reasoning": "one line"}`)

	response, err := c.provider.Generate(ctx, prompt.String(), llm.WithTemperature(0.0))
	if err != nil {
		c.warn("home-decor classification failed", err)
		return 0, "", err
	}

	var result HomeDecorResult
	if err := unmarshalResponse(response, &result); err != nil {
		c.warn("home-decor response parse failed", err)
		return 0, "", err
	}
	return result.IsHomeScore, result.Reasoning, nil
}

// ScoreSellerRelevance asks how likely one seller carries what the
// user wants. Failures bubble up; the seller matcher treats them as a
// zero score without aborting its batch.
func (c *Classifier) ScoreSellerRelevance(ctx context.Context, query string, rec *store.SellerRecord) (float64, string, error) {
	var prompt strings.Builder
	prompt.WriteString("You rank sellers for a hyperlocal shopping assistant.\n")
	prompt.WriteString("How likely does this seller carry what the user wants?\n\n")
	prompt.WriteString("User query: ")
	prompt.WriteString(query)
	prompt.WriteString("\nSeller store: ")
	prompt.WriteString(rec.StoreName)
	prompt.WriteString("\nSeller categories: ")
	prompt.WriteString(rec.Categories)
	prompt.WriteString("\n\nRespond with ONLY valid JSON:\n")
	prompt.WriteString(`{"score": 0.0, "reason": "one line", "reasoning": "brief"}`)

	response, err := c.provider.Generate(ctx, prompt.String(), llm.WithTemperature(0.0))
	if err != nil {
		return 0, "", err
	}

	var result RelevanceResult
	if err := unmarshalResponse(response, &result); err != nil {
		return 0, "", err
	}
	return result.Score, result.Reason, nil
}

// MatchCategoriesWithHistory is the conversation-aware fallback used
// for short or ambiguous follow-ups and whenever the deterministic
// matchers come up empty. Up to the last 30 turns provide context.
func (c *Classifier) MatchCategoriesWithHistory(
	ctx context.Context,
	query string,
	history []store.ChatTurn,
	catalog []store.CategoryRecord,
) FallbackResult {
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	var prompt strings.Builder
	prompt.WriteString("You match a shopper's request to catalog categories for a hyperlocal marketplace.\n")
	prompt.WriteString("The request may be a short follow-up; use the conversation to resolve it.\n\n")

	prompt.WriteString("<conversation>\n")
	for _, turn := range history {
		prompt.WriteString(turn.Role)
		prompt.WriteString(": ")
		prompt.WriteString(turn.Content)
		prompt.WriteString("\n")
	}
	prompt.WriteString("</conversation>\n\n")

	prompt.WriteString("<request>\n")
	prompt.WriteString(query)
	prompt.WriteString("\n</request>\n\n")

	writeCatalog(&prompt, catalog)

	prompt.WriteString("\nPick up to 5 matching categories. Respond with ONLY valid JSON:\n")
	prompt.WriteString(`{"matches": [{"id": "", "type2": "", "reason": "", "score": 0.0}], "reasoning": "brief"}`)

	response, err := c.provider.Generate(ctx, prompt.String(), llm.WithTemperature(0.0))
	if err != nil {
		c.warn("category fallback matching failed", err)
		return FallbackResult{}
	}

	var result FallbackResult
	if err := unmarshalResponse(response, &result); err != nil {
		c.warn("category fallback parse failed", err)
		return FallbackResult{}
	}
	if len(result.Matches) > maxLLMCategories {
		result.Matches = result.Matches[:maxLLMCategories]
	}
	return result
}

func buildIntentPrompt(message string, catalog []store.CategoryRecord) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You are an intent analyzer for a hyperlocal shopping assistant.\n")
	prompt.WriteString("Classify what the user wants and, for product requests, match catalog categories.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<user_message>\n")
	prompt.WriteString(message)
	prompt.WriteString("\n</user_message>\n\n")

	prompt.WriteString("<intents>\n")
	prompt.WriteString("company: questions about the service itself, greetings, anything unclear\n")
	prompt.WriteString("product: the user wants to find or buy a product or category\n")
	prompt.WriteString("seller: the user wants to register or manage a store\n")
	prompt.WriteString("investors: investment or funding questions\n")
	prompt.WriteString("agent: the user wants to become a delivery or sales agent\n")
	prompt.WriteString("voice_ai: questions about the voice assistant feature\n")
	prompt.WriteString("</intents>\n\n")

	writeCatalog(&prompt, catalog)

	prompt.WriteString("\nRespond with ONLY valid JSON:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"intent\": \"company|product|seller|investors|agent|voice_ai\",\n")
	prompt.WriteString("  \"confidence\": 0.95,\n")
	prompt.WriteString("  \"reason\": \"brief\",\n")
	prompt.WriteString("  \"matches\": [{\"id\": \"\", \"type2\": \"\", \"reason\": \"\", \"score\": 0.0}],\n")
	prompt.WriteString("  \"reasoning\": \"brief\"\n")
	prompt.WriteString("}")

	return prompt.String()
}

func writeCatalog(prompt *strings.Builder, catalog []store.CategoryRecord) {
	prompt.WriteString("<catalog>\n")
	for _, rec := range catalog {
		fmt.Fprintf(prompt, "id=%s type2=%q cat1=%s cat_id=%s name=%q\n",
			rec.ID, rec.Type2, rec.Cat1, rec.CatID, rec.Name)
	}
	prompt.WriteString("</catalog>\n")
}

func unmarshalResponse(response string, out interface{}) error {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return fmt.Errorf("no JSON found in response")
	}
	if err := json.Unmarshal([]byte(jsonContent), out); err != nil {
		return fmt.Errorf("JSON unmarshal failed: %w", err)
	}
	return nil
}

// extractJSON slices the first '{' to the last '}' so models that wrap
// their JSON in prose or code fences still parse.
func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")
	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}
	return response[startIdx : endIdx+1]
}

func (c *Classifier) warn(message string, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Warn("classifier", message, map[string]interface{}{"error": err.Error()})
}
