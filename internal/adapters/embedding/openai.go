package embedding

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIProvider fetches word vectors from the OpenAI embeddings endpoint
type OpenAIProvider struct {
	client    *openai.Client
	modelName string
	logger    *zap.Logger
}

// NewOpenAIProvider creates a new OpenAI embedding provider
func NewOpenAIProvider(apiKey, modelName string, logger *zap.Logger) *OpenAIProvider {
	return &OpenAIProvider{
		client:    openai.NewClient(apiKey),
		modelName: modelName,
		logger:    logger,
	}
}

// Embed returns the embedding vector for a single word
func (p *OpenAIProvider) Embed(ctx context.Context, word string) ([]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{word},
		Model: openai.EmbeddingModel(p.modelName),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai returned no embedding for %q", word)
	}
	return resp.Data[0].Embedding, nil
}

// Name identifies the provider in logs
func (p *OpenAIProvider) Name() string {
	return "openai"
}
