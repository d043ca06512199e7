package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mailtriage/mailtriage/internal/core"
	"github.com/mailtriage/mailtriage/internal/di"
	"github.com/mailtriage/mailtriage/internal/nlp"
	"github.com/mailtriage/mailtriage/internal/ports"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	inboxProcessor ports.InboxProcessor,
	embedder nlp.EmbeddingProvider,
	analyses core.AnalysisStore,
) error {
	defer logger.Sync()

	// Start the processor
	if err := inboxProcessor.Start(); err != nil {
		logger.Fatal("Failed to start inbox processor", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	// Stop the processor
	if err := inboxProcessor.Stop(); err != nil {
		logger.Error("Failed to stop inbox processor", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := embedder.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close embedding provider", zap.Error(err))
		}
	}

	// Stop the store if needed
	if stopper, ok := analyses.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
