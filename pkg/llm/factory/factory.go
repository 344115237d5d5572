package factory

import (
	"fmt"

	"bazaarchat-be/pkg/llm"
	"bazaarchat-be/pkg/llm/gemini"
	"bazaarchat-be/pkg/llm/ollama"
)

// NewLLMProvider selects an LLM backend by name. Unknown providers are
// a startup error, not a silent fallback.
func NewLLMProvider(provider, model, ollamaBaseURL, geminiAPIKey string) (llm.LLMProvider, error) {
	switch provider {
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	case "gemini":
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(geminiAPIKey, model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", provider)
	}
}
