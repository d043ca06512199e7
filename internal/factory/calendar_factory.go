package factory

import (
	"fmt"

	"github.com/mailtriage/mailtriage/internal/adapters/calendar"
	"github.com/mailtriage/mailtriage/internal/config"
	"github.com/mailtriage/mailtriage/internal/core"
	"go.uber.org/zap"
)

// CalendarFactory creates calendar clients based on configuration
type CalendarFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCalendarFactory creates a new calendar factory
func NewCalendarFactory(cfg *config.Config, logger *zap.Logger) *CalendarFactory {
	return &CalendarFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateCalendarClient creates a calendar client based on the configuration
func (f *CalendarFactory) CreateCalendarClient() (core.CalendarClient, error) {
	calendarType := f.cfg.GetString("calendar.type")

	switch calendarType {
	case "log":
		return calendar.NewLogClient(f.logger), nil
	case "webhook":
		url := f.cfg.GetString("calendar.webhook_url")
		if url == "" {
			return nil, fmt.Errorf("calendar.webhook_url must be set for the webhook calendar")
		}
		return calendar.NewWebhookClient(url, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported calendar type: %s", calendarType)
	}
}
