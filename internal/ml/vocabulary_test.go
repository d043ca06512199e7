package ml

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFitVocabularyDeterministic(t *testing.T) {
	corpus := []string{
		"invoice payment overdue",
		"invoice attached for payment",
		"quarterly newsletter update",
	}

	a := FitVocabulary(corpus, 96)
	b := FitVocabulary(corpus, 96)
	require.Equal(t, a.Terms, b.Terms)
	require.Equal(t, a.IDF, b.IDF)
}

func TestFitVocabularyCapsAndSorts(t *testing.T) {
	corpus := []string{
		"alpha alpha alpha beta beta gamma",
		"delta epsilon",
	}

	v := FitVocabulary(corpus, 3)
	require.Equal(t, 3, v.Size())

	// Most frequent terms survive the cap; feature order is alphabetical
	require.Contains(t, v.Terms, "alpha")
	require.Contains(t, v.Terms, "beta")
	for i := 1; i < len(v.Terms); i++ {
		require.Less(t, v.Terms[i-1], v.Terms[i])
	}
}

func TestFitVocabularySkipsStopwords(t *testing.T) {
	v := FitVocabulary([]string{"the report is on the desk"}, 96)
	require.NotContains(t, v.Terms, "the")
	require.NotContains(t, v.Terms, "is")
	require.Contains(t, v.Terms, "report")
}

func TestTransformNormalized(t *testing.T) {
	v := FitVocabulary([]string{"alpha beta", "beta gamma"}, 96)

	vec := v.Transform("alpha beta beta")
	require.Len(t, vec, v.Size())

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	require.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)

	// Unknown vocabulary yields the zero vector
	zero := v.Transform("completely unrelated words")
	for _, x := range zero {
		require.Equal(t, 0.0, x)
	}
}

func TestVocabularyRoundTrip(t *testing.T) {
	v := FitVocabulary([]string{"alpha beta gamma", "beta gamma delta"}, 96)

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var restored Vocabulary
	require.NoError(t, json.Unmarshal(data, &restored))
	require.Equal(t, v.Terms, restored.Terms)
	require.Equal(t, v.Transform("alpha gamma"), restored.Transform("alpha gamma"))
}

func TestVocabularyUnmarshalRejectsCorruptWidths(t *testing.T) {
	var v Vocabulary
	err := json.Unmarshal([]byte(`{"terms":["a","b"],"idf":[1.0]}`), &v)
	require.Error(t, err)
}
