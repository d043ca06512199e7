package training

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/mailtriage/mailtriage/internal/core"
	"github.com/mailtriage/mailtriage/internal/ml"
)

// intentUrgency maps each corpus intent to its ordinal urgency label. This
// table is the training ground truth and never changes at inference time.
var intentUrgency = map[string]int{
	"marketing": 0, "newsletter": 0, "social": 0, "informational": 0,
	"followup": 1, "support": 1, "recruiter": 1, "scheduling": 1, "invoice": 1,
	"legal": 2, "investor": 2, "urgent_deadline": 2,
}

const numClasses = 3

// UrgencyLabel returns the urgency class for an intent; unmapped intents
// default to 0.
func UrgencyLabel(intent string) int {
	return intentUrgency[intent]
}

// ClassMetrics is per-class evaluation on the held-out split
type ClassMetrics struct {
	Class     int
	Precision float64
	Recall    float64
	Support   int
}

// Report summarizes the held-out evaluation of a trained classifier
type Report struct {
	Accuracy  float64
	PerClass  []ClassMetrics
	TrainSize int
	TestSize  int
}

// Trainer fits the urgency classifier offline. It reuses the analysis
// service's heuristic extraction so feature assembly is bit-identical
// between training and inference.
type Trainer struct {
	svc    *core.AnalysisService
	logger *zap.Logger

	vocabularySize int
	maxDepth       int
	seed           int64
}

// NewTrainer creates a trainer. svc must be a rule-only service: the
// classifier being trained cannot feed its own features.
func NewTrainer(svc *core.AnalysisService, vocabularySize, maxDepth int, seed int64, logger *zap.Logger) *Trainer {
	return &Trainer{
		svc:            svc,
		logger:         logger,
		vocabularySize: vocabularySize,
		maxDepth:       maxDepth,
		seed:           seed,
	}
}

// Train fits the vocabulary and decision tree on samples and evaluates on a
// stratified 20% hold-out.
func (t *Trainer) Train(ctx context.Context, samples []Sample) (*ml.DecisionTree, *ml.Vocabulary, *Report, error) {
	if len(samples) < 10 {
		return nil, nil, nil, fmt.Errorf("need at least 10 samples, got %d", len(samples))
	}

	texts := make([]string, len(samples))
	labels := make([]int, len(samples))
	for i, s := range samples {
		texts[i] = s.Text()
		labels[i] = UrgencyLabel(s.Intent)
	}

	t.logger.Info("Fitting vocabulary", zap.Int("max_features", t.vocabularySize))
	vocab := ml.FitVocabulary(texts, t.vocabularySize)
	builder := ml.NewFeatureVectorBuilder(vocab)

	t.logger.Info("Extracting features", zap.Int("samples", len(samples)), zap.Int("width", builder.Width()))
	features := make([][]float64, len(samples))
	for i, text := range texts {
		features[i] = builder.Build(text, t.svc.FeatureHeuristics(ctx, text))
	}

	trainIdx, testIdx := stratifiedSplit(labels, 0.2, t.seed)

	trainX := make([][]float64, len(trainIdx))
	trainY := make([]int, len(trainIdx))
	for i, j := range trainIdx {
		trainX[i] = features[j]
		trainY[i] = labels[j]
	}

	t.logger.Info("Training decision tree", zap.Int("max_depth", t.maxDepth), zap.Int("train_size", len(trainIdx)))
	tree, err := ml.TrainDecisionTree(trainX, trainY, numClasses, t.maxDepth)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("training failed: %w", err)
	}

	report, err := evaluate(tree, features, labels, testIdx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("evaluation failed: %w", err)
	}
	report.TrainSize = len(trainIdx)
	report.TestSize = len(testIdx)

	t.logger.Info("Evaluation complete", zap.Float64("accuracy", report.Accuracy))
	for _, cm := range report.PerClass {
		t.logger.Info("Class metrics",
			zap.Int("class", cm.Class),
			zap.Float64("precision", cm.Precision),
			zap.Float64("recall", cm.Recall),
			zap.Int("support", cm.Support))
	}

	return tree, vocab, report, nil
}

// stratifiedSplit partitions sample indices into train and test sets with
// the label distribution preserved per class. The same seed always yields
// the same split.
func stratifiedSplit(labels []int, testFraction float64, seed int64) (train, test []int) {
	byLabel := make(map[int][]int)
	for i, label := range labels {
		byLabel[label] = append(byLabel[label], i)
	}

	classes := make([]int, 0, len(byLabel))
	for label := range byLabel {
		classes = append(classes, label)
	}
	sort.Ints(classes)

	rng := rand.New(rand.NewSource(seed))
	for _, label := range classes {
		idx := byLabel[label]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		cut := int(float64(len(idx)) * testFraction)
		test = append(test, idx[:cut]...)
		train = append(train, idx[cut:]...)
	}
	sort.Ints(train)
	sort.Ints(test)
	return train, test
}

func evaluate(tree *ml.DecisionTree, features [][]float64, labels []int, testIdx []int) (*Report, error) {
	correct := 0
	truePos := make([]int, numClasses)
	predicted := make([]int, numClasses)
	actual := make([]int, numClasses)

	for _, i := range testIdx {
		pred, err := tree.Predict(features[i])
		if err != nil {
			return nil, err
		}
		predicted[pred]++
		actual[labels[i]]++
		if pred == labels[i] {
			correct++
			truePos[pred]++
		}
	}

	report := &Report{}
	if len(testIdx) > 0 {
		report.Accuracy = float64(correct) / float64(len(testIdx))
	}
	for class := 0; class < numClasses; class++ {
		cm := ClassMetrics{Class: class, Support: actual[class]}
		if predicted[class] > 0 {
			cm.Precision = float64(truePos[class]) / float64(predicted[class])
		}
		if actual[class] > 0 {
			cm.Recall = float64(truePos[class]) / float64(actual[class])
		}
		report.PerClass = append(report.PerClass, cm)
	}
	return report, nil
}
