package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/mailtriage/mailtriage/internal/nlp"
)

// Vocabulary is the bag-of-terms encoder learned at training time: a fixed
// term ordering plus smoothed inverse-document-frequency weights. It is
// immutable after fitting and must be loaded together with the classifier
// trained against it.
type Vocabulary struct {
	Terms []string  `json:"terms"`
	IDF   []float64 `json:"idf"`

	index map[string]int
}

// FitVocabulary learns a vocabulary of at most maxFeatures terms from the
// corpus. Terms are ranked by corpus frequency with an alphabetical tie
// break so fitting is deterministic.
func FitVocabulary(texts []string, maxFeatures int) *Vocabulary {
	termFreq := make(map[string]int)
	docFreq := make(map[string]int)

	for _, text := range texts {
		seen := make(map[string]struct{})
		for _, tok := range nlp.Tokenize(text) {
			if tok.IsStop {
				continue
			}
			termFreq[tok.Lower]++
			if _, ok := seen[tok.Lower]; !ok {
				seen[tok.Lower] = struct{}{}
				docFreq[tok.Lower]++
			}
		}
	}

	terms := make([]string, 0, len(termFreq))
	for term := range termFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if termFreq[terms[i]] != termFreq[terms[j]] {
			return termFreq[terms[i]] > termFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	// Feature order is part of the model contract; keep it stable
	sort.Strings(terms)

	numDocs := len(texts)
	idf := make([]float64, len(terms))
	for i, term := range terms {
		idf[i] = math.Log(float64(1+numDocs)/float64(1+docFreq[term])) + 1
	}

	v := &Vocabulary{Terms: terms, IDF: idf}
	v.reindex()
	return v
}

// Transform encodes text as an L2-normalized term-frequency/IDF vector of
// width Size(). Unknown terms are ignored.
func (v *Vocabulary) Transform(text string) []float64 {
	vec := make([]float64, len(v.Terms))
	for _, tok := range nlp.Tokenize(text) {
		if tok.IsStop {
			continue
		}
		if i, ok := v.index[tok.Lower]; ok {
			vec[i] += v.IDF[i]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// Size returns the vocabulary width
func (v *Vocabulary) Size() int {
	return len(v.Terms)
}

// UnmarshalJSON restores a vocabulary and rebuilds its term index
func (v *Vocabulary) UnmarshalJSON(data []byte) error {
	type alias Vocabulary
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if len(a.Terms) != len(a.IDF) {
		return fmt.Errorf("corrupt vocabulary: %d terms but %d idf weights", len(a.Terms), len(a.IDF))
	}
	v.Terms = a.Terms
	v.IDF = a.IDF
	v.reindex()
	return nil
}

func (v *Vocabulary) reindex() {
	v.index = make(map[string]int, len(v.Terms))
	for i, term := range v.Terms {
		v.index[term] = i
	}
}
