package di

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mailtriage/mailtriage/internal/config"
	"github.com/mailtriage/mailtriage/internal/core"
	"github.com/mailtriage/mailtriage/internal/deadline"
	"github.com/mailtriage/mailtriage/internal/factory"
	"github.com/mailtriage/mailtriage/internal/logging"
	"github.com/mailtriage/mailtriage/internal/ml"
	"github.com/mailtriage/mailtriage/internal/nlp"
	"github.com/mailtriage/mailtriage/internal/utils"
)

// CLIFlags contains all command line flags for the one-shot analyzer
type CLIFlags struct {
	// Embedding provider flags
	Provider            string
	SimilarityThreshold float64
	MaxBodySize         int

	// Bedrock flags
	BedrockRegion  string
	BedrockModelID string

	// Gemini flags
	GeminiAPIKey    string
	GeminiModelName string

	// OpenAI flags
	OpenAIAPIKey    string
	OpenAIModelName string

	// Classifier artifact flags
	ModelDir       string
	ClassifierFile string
	VocabularyFile string

	// Deadline resolver flags
	WorkdayStart int
	WorkdayEnd   int
	Timezone     string

	// Input flags
	InputFile  string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Embedding provider flags
	flag.StringVar(&flags.Provider, "provider", "static", "Embedding provider (static, openai, gemini, bedrock)")
	flag.Float64Var(&flags.SimilarityThreshold, "similarity-threshold", 0.7, "Cosine similarity threshold for keyword matching")
	flag.IntVar(&flags.MaxBodySize, "max-body-size", 16384, "Maximum email body size to analyze")

	// Bedrock flags
	flag.StringVar(&flags.BedrockRegion, "bedrock-region", "us-east-1", "AWS region for Bedrock")
	flag.StringVar(&flags.BedrockModelID, "bedrock-model", "amazon.titan-embed-text-v2:0", "Bedrock embedding model ID")

	// Gemini flags
	flag.StringVar(&flags.GeminiAPIKey, "gemini-api-key", "", "API key for Google Gemini")
	flag.StringVar(&flags.GeminiModelName, "gemini-model", "text-embedding-004", "Gemini embedding model name")

	// OpenAI flags
	flag.StringVar(&flags.OpenAIAPIKey, "openai-api-key", "", "API key for OpenAI")
	flag.StringVar(&flags.OpenAIModelName, "openai-model", "text-embedding-3-small", "OpenAI embedding model name")

	// Classifier artifact flags
	flag.StringVar(&flags.ModelDir, "model-dir", "models", "Directory containing trained classifier artifacts")
	flag.StringVar(&flags.ClassifierFile, "classifier-file", "urgency_model.json", "Classifier artifact file name")
	flag.StringVar(&flags.VocabularyFile, "vocabulary-file", "vectorizer.json", "Vocabulary artifact file name")

	// Deadline resolver flags
	flag.IntVar(&flags.WorkdayStart, "workday-start", 9, "Workday start hour for date-only deadlines")
	flag.IntVar(&flags.WorkdayEnd, "workday-end", 17, "Workday end hour for date-only deadlines")
	flag.StringVar(&flags.Timezone, "timezone", "Local", "IANA timezone for deadline resolution")

	// Input flags
	flag.StringVar(&flags.InputFile, "file", "", "Input email file (use stdin if not specified)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the analyzer
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewEmbeddingFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register embedding provider
	if err := container.Provide(func(f *factory.EmbeddingFactory) (nlp.EmbeddingProvider, error) {
		return f.CreateEmbeddingProvider(context.Background())
	}); err != nil {
		return nil, err
	}

	// Register keyword matcher
	if err := container.Provide(func(cfg *config.Config, embedder nlp.EmbeddingProvider, logger *zap.Logger) *nlp.KeywordMatcher {
		analysisCfg := cfg.GetAnalysis()
		return nlp.NewKeywordMatcher(nlp.DefaultTiers(), embedder, analysisCfg.SimilarityThreshold, logger)
	}); err != nil {
		return nil, err
	}

	// Register urgency classifier (nil means rule-only mode)
	if err := container.Provide(func(f *factory.ClassifierFactory) (*ml.UrgencyClassifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return nil, err
	}

	// Register analysis service
	if err := container.Provide(func(
		cfg *config.Config,
		keywords *nlp.KeywordMatcher,
		classifier *ml.UrgencyClassifier,
		text *utils.TextProcessor,
		logger *zap.Logger,
	) *core.AnalysisService {
		analysisCfg := cfg.GetAnalysis()
		return core.NewAnalysisService(keywords, classifier, text, analysisCfg.MaxBodySize, analysisCfg.MaxWorkers, logger)
	}); err != nil {
		return nil, err
	}

	// Register deadline resolver
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (*deadline.Resolver, error) {
		resolverCfg := cfg.GetResolver()
		loc, err := time.LoadLocation(resolverCfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid resolver timezone %q: %w", resolverCfg.Timezone, err)
		}
		return deadline.NewResolver(resolverCfg.WorkdayStartHour, resolverCfg.WorkdayEndHour, loc, logger), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set embedding provider
	v.Set("embedding.provider", flags.Provider)

	// Set provider-specific configuration
	switch flags.Provider {
	case "openai":
		v.Set("openai.api_key", flags.OpenAIAPIKey)
		v.Set("openai.model_name", flags.OpenAIModelName)
	case "gemini":
		v.Set("gemini.api_key", flags.GeminiAPIKey)
		v.Set("gemini.model_name", flags.GeminiModelName)
	case "bedrock":
		v.Set("bedrock.region", flags.BedrockRegion)
		v.Set("bedrock.model_id", flags.BedrockModelID)
	}

	// Set analysis tunables
	v.Set("analysis.similarity_threshold", flags.SimilarityThreshold)
	v.Set("analysis.max_body_size", flags.MaxBodySize)
	v.Set("analysis.max_workers", 1)

	// Set classifier artifact locations
	v.Set("model.dir", flags.ModelDir)
	v.Set("model.classifier_file", flags.ClassifierFile)
	v.Set("model.vocabulary_file", flags.VocabularyFile)

	// Set resolver settings
	v.Set("resolver.workday_start_hour", flags.WorkdayStart)
	v.Set("resolver.workday_end_hour", flags.WorkdayEnd)
	v.Set("resolver.timezone", flags.Timezone)

	return config.NewFromViper(v)
}
