package factory

import (
	"fmt"

	"ai-coaching-be/pkg/llm"
	"ai-coaching-be/pkg/llm/huggingface"
	"ai-coaching-be/pkg/llm/ollama"
)

type Config struct {
	Provider string

	OllamaBaseURL string
	OllamaModel   string

	HuggingFaceBaseURL string
	HuggingFaceAPIKey  string
	HuggingFaceModel   string
}

// NewProvider builds the configured chat backend.
func NewProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "ollama":
		if cfg.OllamaBaseURL == "" {
			return nil, fmt.Errorf("ollama base url is required")
		}
		return ollama.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel), nil
	case "huggingface":
		if cfg.HuggingFaceAPIKey == "" {
			return nil, fmt.Errorf("huggingface api key is required")
		}
		return huggingface.NewHuggingFaceProvider(cfg.HuggingFaceBaseURL, cfg.HuggingFaceAPIKey, cfg.HuggingFaceModel), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
