package ml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fitTestModel trains a tiny but valid classifier for artifact tests
func fitTestModel(t *testing.T) (*DecisionTree, *Vocabulary) {
	t.Helper()

	corpus := []string{
		"urgent deadline reply today",
		"server outage critical incident",
		"monthly newsletter discount offer",
		"meeting notes attached thanks",
	}
	vocab := FitVocabulary(corpus, 96)
	builder := NewFeatureVectorBuilder(vocab)

	samples := [][]float64{
		builder.Build(corpus[0], Heuristics{HasDeadline: 1, KeywordIntensity: 2}),
		builder.Build(corpus[1], Heuristics{SentimentScore: -0.5, KeywordIntensity: 1}),
		builder.Build(corpus[2], Heuristics{KeywordIntensity: 1}),
		builder.Build(corpus[3], Heuristics{}),
	}
	labels := []int{2, 2, 0, 1}

	tree, err := TrainDecisionTree(samples, labels, 3, 5)
	require.NoError(t, err)
	return tree, vocab
}

func TestArtifactsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tree, vocab := fitTestModel(t)

	require.NoError(t, SaveArtifacts(dir, "urgency_model.json", "vectorizer.json", tree, vocab))

	classifier, err := LoadClassifier(dir, "urgency_model.json", "vectorizer.json", zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, classifier)

	// The loaded model predicts identically to the in-memory one
	text := "urgent deadline reply today"
	h := Heuristics{HasDeadline: 1, KeywordIntensity: 2}
	wantVec := NewFeatureVectorBuilder(vocab).Build(text, h)
	want, err := tree.Predict(wantVec)
	require.NoError(t, err)

	got, err := classifier.Predict(text, h)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadClassifierMissingArtifacts(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadClassifier(dir, "urgency_model.json", "vectorizer.json", zap.NewNop())
	require.ErrorIs(t, err, ErrArtifactsMissing)

	// Classifier present but vocabulary missing still counts as missing
	tree, vocab := fitTestModel(t)
	require.NoError(t, SaveArtifacts(dir, "urgency_model.json", "vectorizer.json", tree, vocab))
	require.NoError(t, os.Remove(filepath.Join(dir, "vectorizer.json")))

	_, err = LoadClassifier(dir, "urgency_model.json", "vectorizer.json", zap.NewNop())
	require.ErrorIs(t, err, ErrArtifactsMissing)
}

func TestLoadClassifierCorruptArtifact(t *testing.T) {
	dir := t.TempDir()
	tree, vocab := fitTestModel(t)
	require.NoError(t, SaveArtifacts(dir, "urgency_model.json", "vectorizer.json", tree, vocab))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vectorizer.json"), []byte("{not json"), 0o644))

	_, err := LoadClassifier(dir, "urgency_model.json", "vectorizer.json", zap.NewNop())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrArtifactsMissing)
}

func TestLoadClassifierFeatureMismatch(t *testing.T) {
	dir := t.TempDir()
	tree, vocab := fitTestModel(t)

	// Save the tree against a vocabulary of a different width
	otherVocab := FitVocabulary([]string{"completely different tiny corpus"}, 96)
	require.NoError(t, SaveArtifacts(dir, "urgency_model.json", "vectorizer.json", tree, otherVocab))

	_, err := LoadClassifier(dir, "urgency_model.json", "vectorizer.json", zap.NewNop())
	require.ErrorIs(t, err, ErrFeatureMismatch)

	_, err = NewUrgencyClassifier(tree, vocab, zap.NewNop())
	require.NoError(t, err)
}
