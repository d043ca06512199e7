package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiProvider fetches word vectors from the Gemini embedding API
type GeminiProvider struct {
	client    *genai.Client
	model     *genai.EmbeddingModel
	modelName string
	logger    *zap.Logger
}

// NewGeminiProvider creates a new Gemini embedding provider
func NewGeminiProvider(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{
		client:    client,
		model:     client.EmbeddingModel(modelName),
		modelName: modelName,
		logger:    logger,
	}, nil
}

// Embed returns the embedding vector for a single word
func (p *GeminiProvider) Embed(ctx context.Context, word string) ([]float32, error) {
	res, err := p.model.EmbedContent(ctx, genai.Text(word))
	if err != nil {
		return nil, fmt.Errorf("gemini embedding request failed: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini returned no embedding for %q", word)
	}
	return res.Embedding.Values, nil
}

// Name identifies the provider in logs
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Close closes the underlying Gemini client
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
