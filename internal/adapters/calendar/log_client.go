// Package calendar provides CalendarClient implementations. The actual
// calendar backend (Google Calendar, CalDAV) is an external collaborator;
// these adapters cover local development and webhook-based integrations.
package calendar

import (
	"context"
	"fmt"

	"github.com/mailtriage/mailtriage/internal/core"
	"go.uber.org/zap"
)

// LogClient logs events instead of creating them. It is the default client
// so a fresh deployment never writes to anyone's calendar by accident.
type LogClient struct {
	logger *zap.Logger
}

// NewLogClient creates a logging calendar client
func NewLogClient(logger *zap.Logger) *LogClient {
	return &LogClient{logger: logger}
}

// CreateEvent logs the event and returns a placeholder link
func (c *LogClient) CreateEvent(_ context.Context, req *core.EventRequest) (string, error) {
	c.logger.Info("Would create calendar event",
		zap.String("title", req.Title),
		zap.Time("start", req.Start),
		zap.Time("end", req.End),
		zap.String("timezone", req.Timezone))
	return fmt.Sprintf("log://event/%s", req.Start.Format("2006-01-02T15:04")), nil
}
