package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/mailtriage/mailtriage/internal/core"
	"github.com/mailtriage/mailtriage/internal/deadline"
	"github.com/mailtriage/mailtriage/internal/di"
	"github.com/mailtriage/mailtriage/internal/nlp"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run analyzes a single message and prints the triage report
func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	service *core.AnalysisService,
	resolver *deadline.Resolver,
	embedder nlp.EmbeddingProvider,
) error {
	defer logger.Sync()

	// Read email from file or stdin
	var emailReader io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", flags.InputFile))
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", flags.InputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	// Parse email
	msg, err := mail.ReadMessage(bufio.NewReader(emailReader))
	if err != nil {
		logger.Fatal("Failed to parse email", zap.Error(err))
	}

	from := msg.Header.Get("From")
	to := msg.Header.Get("To")
	subject := msg.Header.Get("Subject")

	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		logger.Fatal("Failed to read email body", zap.Error(err))
	}
	body := string(bodyBytes)

	email := &core.Email{
		MessageID: msg.Header.Get("Message-Id"),
		From:      from,
		To:        strings.Split(to, ","),
		Subject:   subject,
		Body:      body,
		Headers:   make(map[string][]string),
	}
	for k, v := range msg.Header {
		email.Headers[k] = v
	}

	// Print email summary
	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", from)
	fmt.Printf("To: %s\n", to)
	fmt.Printf("Subject: %s\n", subject)
	fmt.Printf("Body length: %d bytes\n", len(body))
	fmt.Printf("\n")

	fmt.Printf("=== Analysis ===\n")
	fmt.Printf("Embedding provider: %s\n", embedder.Name())

	startTime := time.Now()
	analysis := service.Analyze(context.Background(), email)
	duration := time.Since(startTime)

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Urgency: %s\n", analysis.UrgencyLevel)
	if analysis.MLUrgencyScore != nil {
		fmt.Printf("Classifier score: %d\n", *analysis.MLUrgencyScore)
	} else {
		fmt.Printf("Classifier score: n/a (rule-only mode)\n")
	}
	fmt.Printf("Sentiment: %s (%.4f)\n", analysis.Sentiment, analysis.SentimentScore)
	if len(analysis.Keywords) > 0 {
		fmt.Printf("Matched tier terms: %s\n", strings.Join(analysis.Keywords, ", "))
	}
	if len(analysis.NamedEntities) > 0 {
		fmt.Printf("Named entities: %s\n", strings.Join(analysis.NamedEntities, ", "))
	}
	if len(analysis.Dates) > 0 {
		fmt.Printf("Dates: %s\n", strings.Join(analysis.Dates, ", "))
	}
	if analysis.Deadline != nil {
		fmt.Printf("Deadline phrase: %s\n", *analysis.Deadline)
		if interval, err := resolver.Resolve(*analysis.Deadline, time.Now()); err == nil {
			fmt.Printf("Resolved deadline: %s - %s\n",
				interval.Start.Format(time.RFC1123),
				interval.End.Format(time.RFC1123))
		} else {
			fmt.Printf("Resolved deadline: unresolvable (%v)\n", err)
		}
	}
	fmt.Printf("Processing time: %v\n", duration)

	// Close any resources that need closing
	if closer, ok := embedder.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close embedding provider", zap.Error(err))
		}
	}

	return nil
}
