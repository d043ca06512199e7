package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mailtriage/mailtriage/internal/adapters/embedding"
	"github.com/mailtriage/mailtriage/internal/core"
	"github.com/mailtriage/mailtriage/internal/logging"
	"github.com/mailtriage/mailtriage/internal/ml"
	"github.com/mailtriage/mailtriage/internal/nlp"
	"github.com/mailtriage/mailtriage/internal/training"
	"github.com/mailtriage/mailtriage/internal/utils"
	"go.uber.org/zap"
)

var (
	datasetSize    = flag.Int("dataset-size", 500, "Number of synthetic emails to generate")
	vocabularySize = flag.Int("vocabulary-size", 96, "Number of vocabulary terms to keep")
	maxDepth       = flag.Int("max-depth", 5, "Maximum depth of the decision tree")
	seed           = flag.Int64("seed", 42, "Random seed for generation and splitting")

	modelDir       = flag.String("model-dir", "models", "Output directory for trained artifacts")
	classifierFile = flag.String("classifier-file", "urgency_model.json", "Classifier artifact file name")
	vocabularyFile = flag.String("vocabulary-file", "vectorizer.json", "Vocabulary artifact file name")

	verbose = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Training always runs rule-only: heuristics must come from the rules,
	// not from a previously trained classifier.
	keywords := nlp.NewKeywordMatcher(nlp.DefaultTiers(), embedding.NewStaticProvider(), 0.7, logger)
	text := utils.NewTextProcessor(logger)
	service := core.NewAnalysisService(keywords, nil, text, 16384, 1, logger)

	logger.Info("Generating training corpus",
		zap.Int("size", *datasetSize),
		zap.Int64("seed", *seed))
	samples := training.GenerateCorpus(*datasetSize, *seed)

	trainer := training.NewTrainer(service, *vocabularySize, *maxDepth, *seed, logger)

	startTime := time.Now()
	tree, vocab, report, err := trainer.Train(context.Background(), samples)
	if err != nil {
		logger.Fatal("Training failed", zap.Error(err))
	}
	duration := time.Since(startTime)

	if err := ml.SaveArtifacts(*modelDir, *classifierFile, *vocabularyFile, tree, vocab); err != nil {
		logger.Fatal("Failed to save artifacts", zap.Error(err))
	}

	fmt.Printf("\n=== Training Report ===\n")
	fmt.Printf("Samples: %d (train %d / test %d)\n", len(samples), report.TrainSize, report.TestSize)
	fmt.Printf("Vocabulary terms: %d\n", vocab.Size())
	fmt.Printf("Feature width: %d\n", tree.NumFeatures)
	fmt.Printf("Held-out accuracy: %.4f\n", report.Accuracy)
	for _, m := range report.PerClass {
		fmt.Printf("Class %d: precision %.4f, recall %.4f, support %d\n",
			m.Class, m.Precision, m.Recall, m.Support)
	}
	fmt.Printf("Training time: %v\n", duration)
	fmt.Printf("Artifacts written to %s\n", *modelDir)
}
