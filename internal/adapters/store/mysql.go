package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mailtriage/mailtriage/internal/core"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL implementation of the AnalysisStore interface
type MySQLStore struct {
	db          *sql.DB
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMySQLStore creates a new MySQL analysis store
func NewMySQLStore(dsn string, logger *zap.Logger, cleanupFreq time.Duration) (*MySQLStore, error) {
	if !strings.Contains(dsn, "parseTime") {
		if strings.Contains(dsn, "?") {
			dsn += "&parseTime=true"
		} else {
			dsn += "?parseTime=true"
		}
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS email_analyses (
			message_id VARCHAR(255) PRIMARY KEY,
			analysis JSON,
			last_seen TIMESTAMP,
			expires_at TIMESTAMP,
			INDEX idx_analyses_expires_at (expires_at)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	s := &MySQLStore{
		db:          db,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	go s.startCleanupTask()

	return s, nil
}

// Get retrieves a stored analysis for a message id
func (s *MySQLStore) Get(ctx context.Context, messageID string) (*core.AnalysisRecord, error) {
	var analysisJSON string
	record := &core.AnalysisRecord{MessageID: messageID}

	err := s.db.QueryRowContext(ctx, `
		SELECT analysis, last_seen, expires_at
		FROM email_analyses
		WHERE message_id = ? AND expires_at > NOW()
	`, messageID).Scan(&analysisJSON, &record.LastSeen, &record.ExpiresAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query analysis store: %w", err)
	}

	if err := json.Unmarshal([]byte(analysisJSON), &record.Analysis); err != nil {
		return nil, fmt.Errorf("corrupt stored analysis for %s: %w", messageID, err)
	}
	return record, nil
}

// Set stores an analysis record
func (s *MySQLStore) Set(ctx context.Context, record *core.AnalysisRecord) error {
	analysisJSON, err := json.Marshal(record.Analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO email_analyses (message_id, analysis, last_seen, expires_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE analysis = VALUES(analysis),
			last_seen = VALUES(last_seen), expires_at = VALUES(expires_at)
	`, record.MessageID, string(analysisJSON), record.LastSeen, record.ExpiresAt)

	if err != nil {
		return fmt.Errorf("failed to insert analysis record: %w", err)
	}
	return nil
}

// Delete removes a stored analysis
func (s *MySQLStore) Delete(ctx context.Context, messageID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM email_analyses
		WHERE message_id = ?
	`, messageID)

	if err != nil {
		return fmt.Errorf("failed to delete analysis record: %w", err)
	}
	return nil
}

// Cleanup removes expired records
func (s *MySQLStore) Cleanup(ctx context.Context) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM email_analyses
		WHERE expires_at <= NOW()
	`)

	if err != nil {
		return fmt.Errorf("failed to clean up expired records: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.logger.Warn("Failed to get rows affected during cleanup", zap.Error(err))
	} else if rowsAffected > 0 {
		s.logger.Debug("Cleaned up expired analysis records", zap.Int64("expired_count", rowsAffected))
	}
	return nil
}

// startCleanupTask starts a background task to clean up expired records
func (s *MySQLStore) startCleanupTask() {
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

// Stop stops the background cleanup task and closes the database connection
func (s *MySQLStore) Stop() {
	close(s.stopCh)
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close MySQL connection", zap.Error(err))
	}
}
