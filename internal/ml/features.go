package ml

// Heuristics are the four hand-built scalars appended to the bag-of-terms
// encoding, in this exact order. Training and inference share this struct so
// the feature layout cannot drift between them.
type Heuristics struct {
	SentimentScore   float64
	HasDeadline      float64
	KeywordIntensity float64
	NumEntities      float64
}

// FeatureVectorBuilder assembles the fixed-width classifier input: the
// vocabulary encoding followed by the four heuristic scalars.
type FeatureVectorBuilder struct {
	vocab *Vocabulary
}

// NewFeatureVectorBuilder creates a builder over a fitted vocabulary
func NewFeatureVectorBuilder(vocab *Vocabulary) *FeatureVectorBuilder {
	return &FeatureVectorBuilder{vocab: vocab}
}

// Build encodes text plus heuristics as a vector of width Width()
func (b *FeatureVectorBuilder) Build(text string, h Heuristics) []float64 {
	vec := b.vocab.Transform(text)
	return append(vec, h.SentimentScore, h.HasDeadline, h.KeywordIntensity, h.NumEntities)
}

// Width returns the full feature vector width: vocabulary size plus the four
// heuristic scalars.
func (b *FeatureVectorBuilder) Width() int {
	return b.vocab.Size() + heuristicCount
}

// heuristicCount is the number of scalar features appended after the
// vocabulary encoding.
const heuristicCount = 4
