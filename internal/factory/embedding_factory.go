package factory

import (
	"context"
	"fmt"

	"github.com/mailtriage/mailtriage/internal/adapters/embedding"
	"github.com/mailtriage/mailtriage/internal/config"
	"github.com/mailtriage/mailtriage/internal/nlp"
	"go.uber.org/zap"
)

// EmbeddingFactory creates embedding providers based on configuration
type EmbeddingFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewEmbeddingFactory creates a new embedding factory
func NewEmbeddingFactory(cfg *config.Config, logger *zap.Logger) *EmbeddingFactory {
	return &EmbeddingFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateEmbeddingProvider creates an embedding provider based on the
// configuration. Remote providers are wrapped in a memoizing cache so each
// distinct word costs at most one API call per process.
func (f *EmbeddingFactory) CreateEmbeddingProvider(ctx context.Context) (nlp.EmbeddingProvider, error) {
	embCfg := f.cfg.GetEmbedding()

	switch embCfg.Provider {
	case "static":
		return embedding.NewStaticProvider(), nil
	case "openai":
		openaiCfg := f.cfg.GetOpenAI()
		provider := embedding.NewOpenAIProvider(openaiCfg.APIKey, openaiCfg.ModelName, f.logger)
		return embedding.NewCachedProvider(provider), nil
	case "gemini":
		geminiCfg := f.cfg.GetGemini()
		provider, err := embedding.NewGeminiProvider(ctx, geminiCfg.APIKey, geminiCfg.ModelName, f.logger)
		if err != nil {
			return nil, err
		}
		return embedding.NewCachedProvider(provider), nil
	case "bedrock":
		bedrockCfg := f.cfg.GetBedrock()
		provider, err := embedding.NewBedrockProvider(ctx, bedrockCfg.Region, bedrockCfg.ModelID, f.logger)
		if err != nil {
			return nil, err
		}
		return embedding.NewCachedProvider(provider), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", embCfg.Provider)
	}
}
