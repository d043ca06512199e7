package di

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mailtriage/mailtriage/internal/adapters/inbox"
	"github.com/mailtriage/mailtriage/internal/config"
	"github.com/mailtriage/mailtriage/internal/core"
	"github.com/mailtriage/mailtriage/internal/deadline"
	"github.com/mailtriage/mailtriage/internal/factory"
	"github.com/mailtriage/mailtriage/internal/logging"
	"github.com/mailtriage/mailtriage/internal/ml"
	"github.com/mailtriage/mailtriage/internal/muted"
	"github.com/mailtriage/mailtriage/internal/nlp"
	"github.com/mailtriage/mailtriage/internal/ports"
	"github.com/mailtriage/mailtriage/internal/processor"
	"github.com/mailtriage/mailtriage/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewEmbeddingFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCalendarFactory); err != nil {
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

	// Register muted-domain checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *muted.Checker {
		return muted.NewChecker(cfg.GetAnalysis().MutedDomains, logger)
	}); err != nil {
		return nil, err
	}

	// Register analysis store
	if err := container.Provide(func(f *factory.StoreFactory) (core.AnalysisStore, error) {
		return f.CreateAnalysisStore()
	}); err != nil {
		return nil, err
	}

	// Register inbox source
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (core.InboxSource, error) {
		return inbox.NewMaildirSource(cfg.GetString("inbox.dir"), logger)
	}); err != nil {
		return nil, err
	}

	// Register calendar client
	if err := container.Provide(func(f *factory.CalendarFactory) (core.CalendarClient, error) {
		return f.CreateCalendarClient()
	}); err != nil {
		return nil, err
	}

	// Register inbox processor
	if err := container.Provide(func(
		cfg *config.Config,
		service *core.AnalysisService,
		source core.InboxSource,
		analyses core.AnalysisStore,
		calendarClient core.CalendarClient,
		resolver *deadline.Resolver,
		mutedDomains *muted.Checker,
		storeFactory *factory.StoreFactory,
		logger *zap.Logger,
	) (ports.InboxProcessor, error) {
		pollInterval, err := cfg.GetDuration("inbox.poll_interval")
		if err != nil {
			return nil, fmt.Errorf("invalid inbox poll interval: %w", err)
		}
		ttl, err := storeFactory.GetStoreTTL()
		if err != nil {
			return nil, fmt.Errorf("invalid store TTL: %w", err)
		}
		return processor.NewInboxProcessor(
			service,
			source,
			analyses,
			calendarClient,
			resolver,
			mutedDomains,
			logger,
			pollInterval,
			cfg.GetInt("inbox.batch_size"),
			ttl,
			cfg.GetResolver().Timezone,
		), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}
