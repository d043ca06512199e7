package nlp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// ErrNoVector is returned by an EmbeddingProvider when it has no vector for
// a word. Such words are skipped during similarity checks, never matched.
var ErrNoVector = errors.New("no embedding vector for word")

// EmbeddingProvider supplies word vectors for semantic similarity checks
type EmbeddingProvider interface {
	// Embed returns the vector for a single word, or ErrNoVector
	Embed(ctx context.Context, word string) ([]float32, error)

	// Name identifies the provider in logs
	Name() string
}

// TierName identifies one of the ordered keyword tiers
type TierName string

const (
	TierVeryUrgent TierName = "very_urgent"
	TierUrgent     TierName = "urgent"
	TierPromo      TierName = "promotional"
)

// Tier is an ordered set of trigger terms for one urgency bucket
type Tier struct {
	Name  TierName
	Terms []string
}

// DefaultTiers returns the keyword tiers in priority order
func DefaultTiers() []Tier {
	return []Tier{
		{Name: TierVeryUrgent, Terms: []string{"critical", "immediate", "asap", "urgent", "now", "crucial"}},
		{Name: TierUrgent, Terms: []string{"important", "deadline", "soon", "tomorrow", "end of day", "eod", "priority"}},
		{Name: TierPromo, Terms: []string{"newsletter", "promo", "discount", "offer", "sale", "free"}},
	}
}

// KeywordMatcher decides whether text matches a term tier, either by exact
// whole-word occurrence or by embedding similarity above a threshold.
type KeywordMatcher struct {
	tiers     []Tier
	patterns  map[TierName][]*regexp.Regexp
	embedder  EmbeddingProvider
	threshold float64
	logger    *zap.Logger
}

// NewKeywordMatcher creates a matcher over the given tiers. The embedder may
// be nil, in which case only the exact whole-word path is used.
func NewKeywordMatcher(tiers []Tier, embedder EmbeddingProvider, threshold float64, logger *zap.Logger) *KeywordMatcher {
	patterns := make(map[TierName][]*regexp.Regexp, len(tiers))
	for _, tier := range tiers {
		compiled := make([]*regexp.Regexp, 0, len(tier.Terms))
		for _, term := range tier.Terms {
			compiled = append(compiled, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`\b`))
		}
		patterns[tier.Name] = compiled
	}
	return &KeywordMatcher{
		tiers:     tiers,
		patterns:  patterns,
		embedder:  embedder,
		threshold: threshold,
		logger:    logger,
	}
}

// MatchTier runs the tiers in priority order and returns the first that
// matches, with its trigger vocabulary. The bool is false when no tier
// matches.
func (m *KeywordMatcher) MatchTier(ctx context.Context, text string) (Tier, bool) {
	tokens := Tokenize(text)
	for _, tier := range m.tiers {
		if m.matches(ctx, text, tokens, tier) {
			return tier, true
		}
	}
	return Tier{}, false
}

// Intensity evaluates every tier independently and returns how many matched,
// 0 to 3. Unlike MatchTier it never short-circuits.
func (m *KeywordMatcher) Intensity(ctx context.Context, text string) float64 {
	tokens := Tokenize(text)
	var count float64
	for _, tier := range m.tiers {
		if m.matches(ctx, text, tokens, tier) {
			count++
		}
	}
	return count
}

// matches checks one tier: whole-word regex fast path first, then embedding
// similarity between every non-stopword token and every tier term. Tokens or
// terms without a vector are skipped.
func (m *KeywordMatcher) matches(ctx context.Context, text string, tokens []Token, tier Tier) bool {
	for _, pattern := range m.patterns[tier.Name] {
		if pattern.MatchString(text) {
			return true
		}
	}

	if m.embedder == nil {
		return false
	}

	termVectors := make([][]float32, 0, len(tier.Terms))
	for _, term := range tier.Terms {
		if strings.ContainsRune(term, ' ') {
			// Multi-word terms are only reachable via the regex path
			continue
		}
		vec, err := m.embedder.Embed(ctx, term)
		if err != nil {
			if !errors.Is(err, ErrNoVector) {
				m.logger.Debug("embedding lookup failed for term",
					zap.String("term", term), zap.Error(err))
			}
			continue
		}
		termVectors = append(termVectors, vec)
	}
	if len(termVectors) == 0 {
		return false
	}

	for _, tok := range tokens {
		if tok.IsStop {
			continue
		}
		tokVec, err := m.embedder.Embed(ctx, tok.Lower)
		if err != nil {
			if !errors.Is(err, ErrNoVector) {
				m.logger.Debug("embedding lookup failed for token",
					zap.String("token", tok.Lower), zap.Error(err))
			}
			continue
		}
		for _, termVec := range termVectors {
			sim, err := CosineSimilarity(tokVec, termVec)
			if err != nil {
				continue
			}
			if sim > m.threshold {
				return true
			}
		}
	}
	return false
}

// CosineSimilarity computes the cosine of the angle between two vectors
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, errors.New("zero-magnitude vector")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
