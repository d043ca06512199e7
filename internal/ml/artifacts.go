package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrArtifactsMissing is returned when either trained artifact is absent.
// Callers fall back to rule-only urgency instead of failing.
var ErrArtifactsMissing = errors.New("model artifacts not found")

// SaveArtifacts writes the trained tree and its vocabulary as two
// co-versioned JSON files under dir.
func SaveArtifacts(dir, classifierFile, vocabularyFile string, tree *DecisionTree, vocab *Vocabulary) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}
	if err := writeJSON(filepath.Join(dir, classifierFile), tree); err != nil {
		return fmt.Errorf("failed to save classifier: %w", err)
	}
	if err := writeJSON(filepath.Join(dir, vocabularyFile), vocab); err != nil {
		return fmt.Errorf("failed to save vocabulary: %w", err)
	}
	return nil
}

// LoadClassifier loads both artifacts and assembles the classifier. A missing
// file yields ErrArtifactsMissing (degraded mode); corrupt or mismatched
// artifacts yield a hard error because running with them would silently skew
// every prediction.
func LoadClassifier(dir, classifierFile, vocabularyFile string, logger *zap.Logger) (*UrgencyClassifier, error) {
	var tree DecisionTree
	if err := readJSON(filepath.Join(dir, classifierFile), &tree); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrArtifactsMissing
		}
		return nil, fmt.Errorf("failed to load classifier artifact: %w", err)
	}

	var vocab Vocabulary
	if err := readJSON(filepath.Join(dir, vocabularyFile), &vocab); err != nil {
		if os.IsNotExist(err) {
			// A classifier without its vocabulary must not be used
			return nil, ErrArtifactsMissing
		}
		return nil, fmt.Errorf("failed to load vocabulary artifact: %w", err)
	}

	classifier, err := NewUrgencyClassifier(&tree, &vocab, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded urgency classifier",
		zap.Int("features", tree.NumFeatures),
		zap.Int("vocabulary", vocab.Size()),
		zap.Int("max_depth", tree.MaxDepth))
	return classifier, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("corrupt artifact %s: %w", path, err)
	}
	return nil
}
