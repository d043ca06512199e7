package ml

import (
	"fmt"
	"sort"
)

// TreeNode is one node of a trained decision tree. Leaf nodes carry the
// predicted class; internal nodes route on feature <= threshold.
type TreeNode struct {
	Leaf      bool      `json:"leaf"`
	Class     int       `json:"class"`
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      *TreeNode `json:"left,omitempty"`
	Right     *TreeNode `json:"right,omitempty"`
}

// DecisionTree is a depth-bounded CART classifier over fixed-width feature
// vectors. NumFeatures is part of the serialized model and is checked against
// the vocabulary at load time.
type DecisionTree struct {
	Root        *TreeNode `json:"root"`
	NumFeatures int       `json:"num_features"`
	NumClasses  int       `json:"num_classes"`
	MaxDepth    int       `json:"max_depth"`
}

// TrainDecisionTree fits a gini-impurity CART tree of bounded depth. The
// split search iterates features in index order and only accepts strictly
// better splits, so training is deterministic for a given sample order.
func TrainDecisionTree(samples [][]float64, labels []int, numClasses, maxDepth int) (*DecisionTree, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("cannot train on an empty sample set")
	}
	if len(samples) != len(labels) {
		return nil, fmt.Errorf("sample/label count mismatch: %d vs %d", len(samples), len(labels))
	}
	width := len(samples[0])
	for i, s := range samples {
		if len(s) != width {
			return nil, fmt.Errorf("sample %d has width %d, expected %d", i, len(s), width)
		}
	}

	idx := make([]int, len(samples))
	for i := range idx {
		idx[i] = i
	}
	root := growTree(samples, labels, idx, numClasses, maxDepth, 0)
	return &DecisionTree{
		Root:        root,
		NumFeatures: width,
		NumClasses:  numClasses,
		MaxDepth:    maxDepth,
	}, nil
}

// Predict routes a feature vector to its class. The vector width must match
// the trained width exactly; a mismatch is a contract violation.
func (t *DecisionTree) Predict(features []float64) (int, error) {
	if len(features) != t.NumFeatures {
		return 0, fmt.Errorf("feature vector width %d does not match trained width %d", len(features), t.NumFeatures)
	}
	node := t.Root
	for !node.Leaf {
		if features[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Class, nil
}

func growTree(samples [][]float64, labels []int, idx []int, numClasses, maxDepth, depth int) *TreeNode {
	counts := classCounts(labels, idx, numClasses)
	majority := argmax(counts)

	if depth >= maxDepth || len(idx) < 2 || counts[majority] == len(idx) {
		return &TreeNode{Leaf: true, Class: majority}
	}

	feature, threshold, found := bestSplit(samples, labels, idx, numClasses)
	if !found {
		return &TreeNode{Leaf: true, Class: majority}
	}

	var left, right []int
	for _, i := range idx {
		if samples[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &TreeNode{Leaf: true, Class: majority}
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      growTree(samples, labels, left, numClasses, maxDepth, depth+1),
		Right:     growTree(samples, labels, right, numClasses, maxDepth, depth+1),
	}
}

// bestSplit scans every feature for the threshold minimizing weighted gini
// impurity. Thresholds are midpoints between consecutive distinct values.
func bestSplit(samples [][]float64, labels []int, idx []int, numClasses int) (int, float64, bool) {
	bestGini := gini(classCounts(labels, idx, numClasses), len(idx))
	var bestFeature int
	var bestThreshold float64
	found := false

	width := len(samples[idx[0]])
	values := make([]float64, 0, len(idx))
	for feature := 0; feature < width; feature++ {
		values = values[:0]
		for _, i := range idx {
			values = append(values, samples[i][feature])
		}
		sort.Float64s(values)

		for k := 1; k < len(values); k++ {
			if values[k] == values[k-1] {
				continue
			}
			threshold := (values[k] + values[k-1]) / 2

			leftCounts := make([]int, numClasses)
			rightCounts := make([]int, numClasses)
			leftN, rightN := 0, 0
			for _, i := range idx {
				if samples[i][feature] <= threshold {
					leftCounts[labels[i]]++
					leftN++
				} else {
					rightCounts[labels[i]]++
					rightN++
				}
			}

			weighted := (float64(leftN)*gini(leftCounts, leftN) +
				float64(rightN)*gini(rightCounts, rightN)) / float64(len(idx))
			if weighted < bestGini {
				bestGini = weighted
				bestFeature = feature
				bestThreshold = threshold
				found = true
			}
		}
	}
	return bestFeature, bestThreshold, found
}

func gini(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		impurity -= p * p
	}
	return impurity
}

func classCounts(labels []int, idx []int, numClasses int) []int {
	counts := make([]int, numClasses)
	for _, i := range idx {
		counts[labels[i]]++
	}
	return counts
}

func argmax(counts []int) int {
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return best
}
