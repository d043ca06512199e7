package embedding

import (
	"context"
	"hash/fnv"

	"github.com/mailtriage/mailtriage/internal/nlp"
)

const staticDim = 8

// Word clusters with a shared dominant direction. Words inside a cluster
// score well above the default 0.7 similarity threshold against each other;
// words from different clusters stay near zero.
var clusters = map[string][]string{
	"pressure": {
		"critical", "immediate", "asap", "urgent", "now", "crucial",
		"emergency", "pressing", "vital", "promptly", "rush", "hurry",
		"instantly", "expedite",
	},
	"timing": {
		"important", "deadline", "soon", "tomorrow", "eod", "priority",
		"due", "shortly", "imminent", "timely", "overdue", "reminder",
	},
	"commerce": {
		"newsletter", "promo", "discount", "offer", "sale", "free",
		"deal", "coupon", "savings", "bargain", "promotion", "clearance",
		"subscribe", "unsubscribe",
	},
}

var clusterAxis = map[string]int{
	"pressure": 0,
	"timing":   1,
	"commerce": 2,
}

// StaticProvider serves vectors from a fixed in-process table. It is the
// default provider: deterministic, offline and free, at the cost of a small
// vocabulary. Words off the table have no vector.
type StaticProvider struct {
	vectors map[string][]float32
}

// NewStaticProvider builds the vector table
func NewStaticProvider() *StaticProvider {
	vectors := make(map[string][]float32)
	for name, words := range clusters {
		axis := clusterAxis[name]
		for _, word := range words {
			vectors[word] = wordVector(word, axis)
		}
	}
	return &StaticProvider{vectors: vectors}
}

// Embed returns the table vector for word, or nlp.ErrNoVector
func (p *StaticProvider) Embed(_ context.Context, word string) ([]float32, error) {
	vec, ok := p.vectors[word]
	if !ok {
		return nil, nlp.ErrNoVector
	}
	return vec, nil
}

// Name identifies the provider in logs
func (p *StaticProvider) Name() string {
	return "static"
}

// wordVector puts most of the word's magnitude on its cluster axis and a
// deterministic hash-derived remainder on the jitter axes, so same-cluster
// words are similar but not identical.
func wordVector(word string, axis int) []float32 {
	vec := make([]float32, staticDim)
	vec[axis] = 1.0

	h := fnv.New64a()
	h.Write([]byte(word))
	sum := h.Sum64()
	for i := len(clusterAxis); i < staticDim; i++ {
		// Spread hash bits across the jitter axes in [-0.1, 0.1]
		bits := (sum >> (uint(i) * 8)) & 0xff
		vec[i] = (float32(bits)/255.0 - 0.5) * 0.2
	}
	return vec
}
