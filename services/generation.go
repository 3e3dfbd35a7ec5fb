package services

import (
	"os"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
)

var (
	generationClient *openai.Client
	generationModel  string
	generationOnce   sync.Once
)

// GenerationClient returns a singleton chat-completion client plus the model
// name for the configured provider. GENERATION_PROVIDER selects openai (the
// default), deepseek, openrouter, or ollama; SUMMARIZER_MODEL overrides the
// per-provider default model.
func GenerationClient() (*openai.Client, string) {
	generationOnce.Do(func() {
		provider := strings.ToLower(os.Getenv("GENERATION_PROVIDER"))
		generationModel = os.Getenv("SUMMARIZER_MODEL")

		switch provider {
		case "deepseek":
			apiKey := os.Getenv("DEEPSEEK_API_KEY")
			if apiKey == "" {
				panic("DEEPSEEK_API_KEY environment variable is not set")
			}

			baseURL := os.Getenv("DEEPSEEK_API_BASE")
			if baseURL == "" {
				baseURL = "https://api.deepseek.com/v1"
			}

			config := openai.DefaultConfig(apiKey)
			config.BaseURL = baseURL
			generationClient = openai.NewClientWithConfig(config)
			if generationModel == "" {
				generationModel = "deepseek-chat"
			}

		case "openrouter":
			apiKey := os.Getenv("OPENROUTER_API_KEY")
			if apiKey == "" {
				panic("OPENROUTER_API_KEY environment variable is not set")
			}

			config := openai.DefaultConfig(apiKey)
			config.BaseURL = "https://openrouter.ai/api/v1"
			config.OrgID = "openrouter"
			generationClient = openai.NewClientWithConfig(config)
			if generationModel == "" {
				generationModel = "openai/gpt-4o-mini"
			}

		case "ollama":
			config := openai.DefaultConfig("not-needed")
			config.BaseURL = "http://localhost:11434/v1"
			if host := os.Getenv("OLLAMA_HOST"); host != "" {
				config.BaseURL = host
			}
			generationClient = openai.NewClientWithConfig(config)
			if generationModel == "" {
				generationModel = "llama3.1"
			}

		default:
			generationClient = DefaultOpenAIClient()
			if generationModel == "" {
				generationModel = openai.GPT4oMini
			}
		}
	})
	return generationClient, generationModel
}
