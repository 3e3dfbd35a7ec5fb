package services

import (
	"os"
	"sync"

	"github.com/sashabaranov/go-openai"
)

var DefaultOpenAIClient = sync.OnceValue(func() *openai.Client {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		panic("OPENAI_API_KEY is not set, please set it in the environment or .env file")
	}

	baseURL := os.Getenv("OPENAI_BASE_URL")
	config := openai.DefaultConfig(apiKey)

	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return openai.NewClientWithConfig(config)
})

// DefaultEmbeddingModel resolves the embedding model from the environment,
// falling back to text-embedding-3-small.
func DefaultEmbeddingModel() openai.EmbeddingModel {
	if modelStr := os.Getenv("OPENAI_EMBEDDING_MODEL"); modelStr != "" {
		return openai.EmbeddingModel(modelStr)
	}
	return openai.SmallEmbedding3
}
