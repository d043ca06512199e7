package training

import (
	"context"
	"testing"

	"github.com/mailtriage/mailtriage/internal/adapters/embedding"
	"github.com/mailtriage/mailtriage/internal/core"
	"github.com/mailtriage/mailtriage/internal/nlp"
	"github.com/mailtriage/mailtriage/internal/utils"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRuleOnlyService(t *testing.T) *core.AnalysisService {
	t.Helper()
	logger := zap.NewNop()
	keywords := nlp.NewKeywordMatcher(nlp.DefaultTiers(), embedding.NewStaticProvider(), 0.7, logger)
	return core.NewAnalysisService(keywords, nil, utils.NewTextProcessor(logger), 16384, 1, logger)
}

func TestGenerateCorpusDeterministic(t *testing.T) {
	a := GenerateCorpus(50, 42)
	b := GenerateCorpus(50, 42)
	require.Equal(t, a, b)

	c := GenerateCorpus(50, 7)
	require.NotEqual(t, a, c)
}

func TestGenerateCorpusShape(t *testing.T) {
	samples := GenerateCorpus(200, 42)
	require.Len(t, samples, 200)

	known := make(map[string]struct{}, len(Intents))
	for _, intent := range Intents {
		known[intent] = struct{}{}
	}
	for _, s := range samples {
		require.NotEmpty(t, s.Subject)
		require.NotEmpty(t, s.Body)
		require.Contains(t, known, s.Intent)
		require.NotContains(t, s.Text(), "%s")
	}
}

func TestUrgencyLabelMapping(t *testing.T) {
	tests := []struct {
		intent string
		want   int
	}{
		{"marketing", 0},
		{"newsletter", 0},
		{"social", 0},
		{"informational", 0},
		{"followup", 1},
		{"support", 1},
		{"recruiter", 1},
		{"scheduling", 1},
		{"invoice", 1},
		{"legal", 2},
		{"investor", 2},
		{"urgent_deadline", 2},
		{"unknown_intent", 0},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, UrgencyLabel(tt.intent), tt.intent)
	}
}

func TestStratifiedSplitBalanced(t *testing.T) {
	labels := make([]int, 0, 100)
	for i := 0; i < 50; i++ {
		labels = append(labels, 0)
	}
	for i := 0; i < 30; i++ {
		labels = append(labels, 1)
	}
	for i := 0; i < 20; i++ {
		labels = append(labels, 2)
	}

	train, test := stratifiedSplit(labels, 0.2, 42)
	require.Len(t, train, 80)
	require.Len(t, test, 20)

	// Per-class proportions survive the split
	countClass := func(idx []int, class int) int {
		n := 0
		for _, i := range idx {
			if labels[i] == class {
				n++
			}
		}
		return n
	}
	require.Equal(t, 10, countClass(test, 0))
	require.Equal(t, 6, countClass(test, 1))
	require.Equal(t, 4, countClass(test, 2))

	// No index lands in both halves
	seen := make(map[int]struct{})
	for _, i := range train {
		seen[i] = struct{}{}
	}
	for _, i := range test {
		_, dup := seen[i]
		require.False(t, dup)
	}

	// Same seed, same split
	train2, test2 := stratifiedSplit(labels, 0.2, 42)
	require.Equal(t, train, train2)
	require.Equal(t, test, test2)
}

func TestTrainEndToEnd(t *testing.T) {
	svc := newRuleOnlyService(t)
	trainer := NewTrainer(svc, 96, 5, 42, zap.NewNop())

	samples := GenerateCorpus(200, 42)
	tree, vocab, report, err := trainer.Train(context.Background(), samples)
	require.NoError(t, err)
	require.NotNil(t, tree)
	require.NotNil(t, vocab)

	require.Equal(t, vocab.Size()+4, tree.NumFeatures)
	require.Equal(t, len(samples), report.TrainSize+report.TestSize)
	require.GreaterOrEqual(t, report.Accuracy, 0.0)
	require.LessOrEqual(t, report.Accuracy, 1.0)

	// The templated corpus is close to separable; a tree that cannot beat
	// majority-class guessing means the features broke.
	require.Greater(t, report.Accuracy, 0.5)
}

func TestTrainRejectsTinyCorpus(t *testing.T) {
	svc := newRuleOnlyService(t)
	trainer := NewTrainer(svc, 96, 5, 42, zap.NewNop())

	_, _, _, err := trainer.Train(context.Background(), GenerateCorpus(5, 42))
	require.Error(t, err)
}
