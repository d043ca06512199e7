package factory

import (
	"errors"
	"fmt"

	"github.com/mailtriage/mailtriage/internal/config"
	"github.com/mailtriage/mailtriage/internal/ml"
	"go.uber.org/zap"
)

// ClassifierFactory loads the trained urgency classifier from disk
type ClassifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClassifier loads the classifier artifacts. A nil classifier with a
// nil error means the service should run in rule-only mode: missing or
// corrupt artifacts degrade, but a feature-width mismatch is a deployment
// error and aborts startup.
func (f *ClassifierFactory) CreateClassifier() (*ml.UrgencyClassifier, error) {
	modelCfg := f.cfg.GetModel()

	classifier, err := ml.LoadClassifier(modelCfg.Dir, modelCfg.ClassifierFile, modelCfg.VocabularyFile, f.logger)
	if err != nil {
		if errors.Is(err, ml.ErrFeatureMismatch) {
			return nil, fmt.Errorf("classifier artifacts are inconsistent: %w", err)
		}
		if errors.Is(err, ml.ErrArtifactsMissing) {
			f.logger.Warn("Classifier artifacts not found, running rule-only",
				zap.String("dir", modelCfg.Dir))
			return nil, nil
		}
		f.logger.Warn("Failed to load classifier artifacts, running rule-only",
			zap.String("dir", modelCfg.Dir),
			zap.Error(err))
		return nil, nil
	}

	return classifier, nil
}
