package nlp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentimentScoreBounds(t *testing.T) {
	scorer := NewSentimentScorer()

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"neutral", "the quarterly report is attached"},
		{"positive", "great work, this is an excellent and wonderful result"},
		{"negative", "terrible failure, the outage was a disaster"},
		{"repeated_positive", "love love love love love love love love love love"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := scorer.Score(tt.text)
			require.GreaterOrEqual(t, score, -1.0)
			require.LessOrEqual(t, score, 1.0)
		})
	}
}

func TestSentimentPolarity(t *testing.T) {
	scorer := NewSentimentScorer()

	positive := scorer.Score("thank you, this is excellent news and a great success")
	require.Greater(t, positive, 0.0)

	negative := scorer.Score("this is a terrible problem and a complete disaster")
	require.Less(t, negative, 0.0)

	require.Equal(t, 0.0, scorer.Score(""))
	require.Equal(t, 0.0, scorer.Score("the the the"))
}

func TestSentimentNegationFlipsSign(t *testing.T) {
	scorer := NewSentimentScorer()

	plain := scorer.Score("this is good")
	negated := scorer.Score("this is not good")

	require.Greater(t, plain, 0.0)
	require.Less(t, negated, 0.0)
}

func TestSentimentBoosterAmplifies(t *testing.T) {
	scorer := NewSentimentScorer()

	plain := scorer.Score("the demo was good")
	boosted := scorer.Score("the demo was very good")

	require.Greater(t, boosted, plain)
}

func TestSentimentLabelThresholds(t *testing.T) {
	scorer := NewSentimentScorer()

	tests := []struct {
		score float64
		want  Sentiment
	}{
		{0.05, SentimentPositive},
		{0.8, SentimentPositive},
		{0.049, SentimentNeutral},
		{0.0, SentimentNeutral},
		{-0.049, SentimentNeutral},
		{-0.05, SentimentNegative},
		{-0.8, SentimentNegative},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, scorer.Label(tt.score), "score %v", tt.score)
	}
}

func TestLookupValencePrefixFallback(t *testing.T) {
	// "frustrated" is not in the lexicon but its stem "frustrat" is
	v, ok := lookupValence("frustrated")
	require.True(t, ok)
	require.Less(t, v, 0.0)

	_, ok = lookupValence("xylophone")
	require.False(t, ok)
}
