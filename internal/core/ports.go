package core

import (
	"context"
)

// AnalysisStore defines the interface for persisting analysis results
type AnalysisStore interface {
	// Get retrieves a stored analysis for a message id
	Get(ctx context.Context, messageID string) (*AnalysisRecord, error)

	// Set stores an analysis record
	Set(ctx context.Context, record *AnalysisRecord) error

	// Delete removes a stored analysis
	Delete(ctx context.Context, messageID string) error

	// Cleanup removes expired records
	Cleanup(ctx context.Context) error
}

// InboxSource defines the interface for fetching messages to triage
type InboxSource interface {
	// Fetch returns up to max unseen messages
	Fetch(ctx context.Context, max int) ([]*Email, error)

	// MarkSeen marks a message as processed
	MarkSeen(ctx context.Context, messageID string) error
}

// CalendarClient defines the interface for creating calendar events from
// resolved deadline intervals. It returns a link to the created event.
type CalendarClient interface {
	CreateEvent(ctx context.Context, req *EventRequest) (string, error)
}
