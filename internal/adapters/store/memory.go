package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mailtriage/mailtriage/internal/core"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no analysis is stored for a message id
	ErrNotFound = errors.New("analysis record not found")
)

// MemoryStore is an in-memory implementation of the AnalysisStore interface
type MemoryStore struct {
	records     map[string]*core.AnalysisRecord
	mu          sync.RWMutex
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMemoryStore creates a new in-memory analysis store
func NewMemoryStore(logger *zap.Logger, cleanupFreq time.Duration) *MemoryStore {
	s := &MemoryStore{
		records:     make(map[string]*core.AnalysisRecord),
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	go s.startCleanupTask()

	return s
}

// Get retrieves a stored analysis for a message id
func (s *MemoryStore) Get(_ context.Context, messageID string) (*core.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[messageID]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(record.ExpiresAt) {
		return nil, ErrNotFound
	}
	return record, nil
}

// Set stores an analysis record
func (s *MemoryStore) Set(_ context.Context, record *core.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.MessageID] = record
	return nil
}

// Delete removes a stored analysis
func (s *MemoryStore) Delete(_ context.Context, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, messageID)
	return nil
}

// Cleanup removes expired records
func (s *MemoryStore) Cleanup(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	expired := 0
	for id, record := range s.records {
		if now.After(record.ExpiresAt) {
			delete(s.records, id)
			expired++
		}
	}
	if expired > 0 {
		s.logger.Debug("Cleaned up expired analysis records", zap.Int("expired_count", expired))
	}
	return nil
}

// startCleanupTask starts a background task to clean up expired records
func (s *MemoryStore) startCleanupTask() {
	ticker := time.NewTicker(s.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Cleanup(context.Background()); err != nil {
				s.logger.Error("Failed to clean up analysis store", zap.Error(err))
			}
		case <-s.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task
func (s *MemoryStore) Stop() {
	close(s.stopCh)
}
