package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	require.Equal(t, "static", cfg.GetEmbedding().Provider)

	analysis := cfg.GetAnalysis()
	require.Equal(t, 0.7, analysis.SimilarityThreshold)
	require.Equal(t, 16384, analysis.MaxBodySize)
	require.Equal(t, 4, analysis.MaxWorkers)
	require.Empty(t, analysis.MutedDomains)

	model := cfg.GetModel()
	require.Equal(t, "models", model.Dir)
	require.Equal(t, "urgency_model.json", model.ClassifierFile)
	require.Equal(t, "vectorizer.json", model.VocabularyFile)

	resolver := cfg.GetResolver()
	require.Equal(t, 9, resolver.WorkdayStartHour)
	require.Equal(t, 17, resolver.WorkdayEndHour)
	require.Equal(t, "America/New_York", resolver.Timezone)

	training := cfg.GetTraining()
	require.Equal(t, 500, training.DatasetSize)
	require.Equal(t, 96, training.VocabularySize)
	require.Equal(t, 5, training.MaxDepth)
	require.Equal(t, int64(42), training.Seed)

	require.Equal(t, "memory", cfg.GetString("store.type"))
	require.Equal(t, "log", cfg.GetString("calendar.type"))
}

func TestOverrides(t *testing.T) {
	v := NewEmptyViper()
	v.Set("embedding.provider", "openai")
	v.Set("openai.api_key", "sk-test")
	v.Set("analysis.muted_domains", []string{"blast.example"})
	cfg := NewFromViper(v)

	require.Equal(t, "openai", cfg.GetEmbedding().Provider)
	require.Equal(t, "sk-test", cfg.GetOpenAI().APIKey)
	require.Equal(t, []string{"blast.example"}, cfg.GetAnalysis().MutedDomains)
}

func TestGetDuration(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	ttl, err := cfg.GetDuration("store.ttl")
	require.NoError(t, err)
	require.Equal(t, 168*time.Hour, ttl)

	poll, err := cfg.GetDuration("inbox.poll_interval")
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, poll)

	v := NewEmptyViper()
	v.Set("store.ttl", "not-a-duration")
	_, err = NewFromViper(v).GetDuration("store.ttl")
	require.Error(t, err)
}
