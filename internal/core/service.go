package core

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mailtriage/mailtriage/internal/ml"
	"github.com/mailtriage/mailtriage/internal/nlp"
	"github.com/mailtriage/mailtriage/internal/utils"
)

// AnalysisService is the orchestrator for email triage. It composes the
// sentiment, keyword and entity stages into one EmailAnalysis per message,
// with an optional classifier override on top of the tier heuristic.
//
// All state is read-only after construction; a single service is shared by
// any number of concurrent analyses.
type AnalysisService struct {
	sentiment  *nlp.SentimentScorer
	keywords   *nlp.KeywordMatcher
	entities   *nlp.EntityExtractor
	phrases    *nlp.DeadlinePhraseExtractor
	classifier *ml.UrgencyClassifier
	text       *utils.TextProcessor

	maxBodySize int
	maxWorkers  int
	logger      *zap.Logger
}

// NewAnalysisService creates the analysis orchestrator. classifier may be
// nil, in which case the service runs in rule-only degraded mode.
func NewAnalysisService(
	keywords *nlp.KeywordMatcher,
	classifier *ml.UrgencyClassifier,
	text *utils.TextProcessor,
	maxBodySize int,
	maxWorkers int,
	logger *zap.Logger,
) *AnalysisService {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	entities := nlp.NewEntityExtractor()
	svc := &AnalysisService{
		sentiment:   nlp.NewSentimentScorer(),
		keywords:    keywords,
		entities:    entities,
		phrases:     nlp.NewDeadlinePhraseExtractor(entities),
		classifier:  classifier,
		text:        text,
		maxBodySize: maxBodySize,
		maxWorkers:  maxWorkers,
		logger:      logger,
	}
	if classifier == nil {
		logger.Warn("No urgency classifier loaded, running rule-only analysis")
	}
	return svc
}

// Analyze produces a complete EmailAnalysis for one message. It never fails:
// classifier errors degrade to the rule-based urgency and are logged.
func (s *AnalysisService) Analyze(ctx context.Context, email *Email) *EmailAnalysis {
	body := s.text.ProcessText(email.Body, s.maxBodySize)
	return s.AnalyzeText(ctx, strings.TrimSpace(email.Subject+" "+body))
}

// AnalyzeText analyzes already-framed text (subject and body joined). The
// framing must match what the classifier was trained on.
func (s *AnalysisService) AnalyzeText(ctx context.Context, text string) *EmailAnalysis {
	rules := s.applyRules(ctx, text)

	analysis := &EmailAnalysis{
		Sentiment:      s.sentiment.Label(rules.sentimentScore),
		SentimentScore: rules.sentimentScore,
		UrgencyLevel:   rules.level,
		Keywords:       rules.keywords,
		Deadline:       rules.deadline,
		NamedEntities:  rules.namedEntities,
		Dates:          rules.dates,
		AnalyzedAt:     time.Now(),
	}

	if s.classifier != nil {
		class, err := s.classifier.Predict(text, rules.heuristics)
		if err != nil {
			s.logger.Error("Urgency prediction failed, keeping rule-based level", zap.Error(err))
		} else {
			analysis.MLUrgencyScore = &class
			analysis.UrgencyLevel = UrgencyFromScore(class)
		}
	}

	return analysis
}

// FeatureHeuristics computes the four scalar features for text. The training
// pipeline calls this so its feature assembly is identical to inference.
func (s *AnalysisService) FeatureHeuristics(ctx context.Context, text string) ml.Heuristics {
	return s.applyRules(ctx, text).heuristics
}

// AnalyzeBatch analyzes messages concurrently with a bounded worker pool.
// Results are positionally aligned with the input; a panic while analyzing
// one message is contained to its slot.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, emails []*Email) []*EmailAnalysis {
	results := make([]*EmailAnalysis, len(emails))
	sem := make(chan struct{}, s.maxWorkers)
	var wg sync.WaitGroup

	for i, email := range emails {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, email *Email) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if rec := recover(); rec != nil {
					s.logger.Error("Analysis panicked",
						zap.String("message_id", email.MessageID),
						zap.Any("panic", rec))
				}
			}()
			results[i] = s.Analyze(ctx, email)
		}(i, email)
	}
	wg.Wait()
	return results
}

// ruleAnalysis holds every intermediate the rule stages produce. The
// heuristic scalars are derived here, in one place, for both the feature
// vector and the rule-based urgency level.
type ruleAnalysis struct {
	sentimentScore float64
	level          UrgencyLevel
	keywords       []string
	deadline       *string
	namedEntities  []string
	dates          []string
	heuristics     ml.Heuristics
}

func (s *AnalysisService) applyRules(ctx context.Context, text string) ruleAnalysis {
	var r ruleAnalysis

	r.sentimentScore = s.sentiment.Score(text)

	ents := s.entities.Extract(text)
	var dateEnts []nlp.Entity
	for _, ent := range ents {
		r.namedEntities = append(r.namedEntities, ent.Text)
		if ent.Label == nlp.LabelDate {
			dateEnts = append(dateEnts, ent)
			r.dates = append(r.dates, ent.Text)
		}
	}

	if phrase, ok := s.phrases.Extract(text, dateEnts); ok {
		r.deadline = &phrase
	}

	// Tier priority is absolute: very-urgent beats urgent beats promotional.
	// A bare date mention counts as a weak urgency signal.
	tier, matched := s.keywords.MatchTier(ctx, text)
	switch {
	case matched && tier.Name == nlp.TierVeryUrgent:
		r.level = UrgencyVeryUrgent
		r.keywords = tier.Terms
	case matched && tier.Name == nlp.TierUrgent:
		r.level = UrgencyUrgent
		r.keywords = tier.Terms
	case len(dateEnts) > 0:
		r.level = UrgencyUrgent
	case matched && tier.Name == nlp.TierPromo:
		r.level = UrgencyPromo
		r.keywords = tier.Terms
	default:
		r.level = UrgencyRegular
	}

	hasDeadline := 0.0
	if len(dateEnts) > 0 || nlp.HasDeadlineMarker(text) {
		hasDeadline = 1.0
	}
	r.heuristics = ml.Heuristics{
		SentimentScore:   r.sentimentScore,
		HasDeadline:      hasDeadline,
		KeywordIntensity: s.keywords.Intensity(ctx, text),
		NumEntities:      float64(len(ents)),
	}

	return r
}
