package ml

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrFeatureMismatch means the vocabulary width disagrees with the width the
// classifier was trained on. Unlike missing artifacts this is fatal: it is
// surfaced at load time, before any analysis runs.
var ErrFeatureMismatch = errors.New("feature width mismatch between classifier and vocabulary")

// UrgencyClassifier pairs a trained decision tree with the vocabulary it was
// trained against. Both halves are immutable after construction and safe for
// concurrent use.
type UrgencyClassifier struct {
	tree     *DecisionTree
	features *FeatureVectorBuilder
	logger   *zap.Logger
}

// NewUrgencyClassifier validates that the tree and vocabulary agree on the
// feature width and returns the assembled classifier. A width mismatch is a
// configuration error, never something to truncate or pad around.
func NewUrgencyClassifier(tree *DecisionTree, vocab *Vocabulary, logger *zap.Logger) (*UrgencyClassifier, error) {
	features := NewFeatureVectorBuilder(vocab)
	if tree.NumFeatures != features.Width() {
		return nil, fmt.Errorf("classifier expects %d features but vocabulary yields %d: %w",
			tree.NumFeatures, features.Width(), ErrFeatureMismatch)
	}
	return &UrgencyClassifier{tree: tree, features: features, logger: logger}, nil
}

// Predict classifies text plus heuristics into an urgency class in {0,1,2}
func (c *UrgencyClassifier) Predict(text string, h Heuristics) (int, error) {
	vec := c.features.Build(text, h)
	class, err := c.tree.Predict(vec)
	if err != nil {
		return 0, fmt.Errorf("urgency prediction failed: %w", err)
	}
	return class, nil
}

// Features exposes the shared feature builder so the training pipeline
// assembles vectors identically to inference.
func (c *UrgencyClassifier) Features() *FeatureVectorBuilder {
	return c.features
}
