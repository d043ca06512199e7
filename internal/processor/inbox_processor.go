package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mailtriage/mailtriage/internal/adapters/store"
	"github.com/mailtriage/mailtriage/internal/core"
	"github.com/mailtriage/mailtriage/internal/deadline"
	"github.com/mailtriage/mailtriage/internal/muted"
	"github.com/mailtriage/mailtriage/internal/utils"
	"go.uber.org/zap"
)

const descriptionPreviewBytes = 240

// InboxProcessor polls the inbox source, runs each new message through the
// analysis service and persists the outcome. Very urgent messages that carry
// a resolvable deadline phrase are turned into calendar events.
type InboxProcessor struct {
	service      *core.AnalysisService
	source       core.InboxSource
	analyses     core.AnalysisStore
	calendar     core.CalendarClient
	resolver     *deadline.Resolver
	mutedDomains *muted.Checker
	text         *utils.TextProcessor
	logger       *zap.Logger
	pollInterval time.Duration
	batchSize    int
	ttl          time.Duration
	timezone     string
	stopCh       chan struct{}
	wg           sync.WaitGroup
}

// NewInboxProcessor creates a new inbox processor
func NewInboxProcessor(
	service *core.AnalysisService,
	source core.InboxSource,
	analyses core.AnalysisStore,
	calendar core.CalendarClient,
	resolver *deadline.Resolver,
	mutedDomains *muted.Checker,
	logger *zap.Logger,
	pollInterval time.Duration,
	batchSize int,
	ttl time.Duration,
	timezone string,
) *InboxProcessor {
	return &InboxProcessor{
		service:      service,
		source:       source,
		analyses:     analyses,
		calendar:     calendar,
		resolver:     resolver,
		mutedDomains: mutedDomains,
		text:         utils.NewTextProcessor(logger),
		logger:       logger,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		ttl:          ttl,
		timezone:     timezone,
		stopCh:       make(chan struct{}),
	}
}

// Start starts the polling loop
func (p *InboxProcessor) Start() error {
	p.logger.Info("Inbox processor starting",
		zap.Duration("poll_interval", p.pollInterval),
		zap.Int("batch_size", p.batchSize))

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.pollInterval)
		defer ticker.Stop()

		// Drain whatever is already waiting before the first tick
		p.poll()

		for {
			select {
			case <-ticker.C:
				p.poll()
			case <-p.stopCh:
				return
			}
		}
	}()

	return nil
}

// Stop stops the polling loop and waits for in-flight work
func (p *InboxProcessor) Stop() error {
	close(p.stopCh)
	p.wg.Wait()
	p.logger.Info("Inbox processor stopped")
	return nil
}

func (p *InboxProcessor) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), p.pollInterval)
	defer cancel()

	emails, err := p.source.Fetch(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("Failed to fetch messages", zap.Error(err))
		return
	}
	if len(emails) == 0 {
		return
	}

	fresh := make([]*core.Email, 0, len(emails))
	for _, email := range emails {
		record, err := p.analyses.Get(ctx, email.MessageID)
		if err == nil && record != nil {
			// Already triaged; refresh the sighting and move on
			record.LastSeen = time.Now()
			if err := p.analyses.Set(ctx, record); err != nil {
				p.logger.Warn("Failed to refresh analysis record",
					zap.String("message_id", email.MessageID),
					zap.Error(err))
			}
			p.markSeen(ctx, email.MessageID)
			continue
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			p.logger.Warn("Store lookup failed, analyzing anyway",
				zap.String("message_id", email.MessageID),
				zap.Error(err))
		}
		fresh = append(fresh, email)
	}
	if len(fresh) == 0 {
		return
	}

	p.logger.Info("Analyzing batch", zap.Int("count", len(fresh)))
	results := p.service.AnalyzeBatch(ctx, fresh)

	for i, email := range fresh {
		analysis := results[i]
		if analysis == nil {
			continue
		}
		p.handleResult(ctx, email, analysis)
		p.markSeen(ctx, email.MessageID)
	}
}

func (p *InboxProcessor) handleResult(ctx context.Context, email *core.Email, analysis *core.EmailAnalysis) {
	now := time.Now()
	record := &core.AnalysisRecord{
		MessageID: email.MessageID,
		Analysis:  analysis,
		LastSeen:  now,
		ExpiresAt: now.Add(p.ttl),
	}
	if err := p.analyses.Set(ctx, record); err != nil {
		p.logger.Error("Failed to store analysis",
			zap.String("message_id", email.MessageID),
			zap.Error(err))
	}

	p.logger.Info("Email triaged",
		zap.String("message_id", email.MessageID),
		zap.String("from", email.From),
		zap.String("urgency", string(analysis.UrgencyLevel)),
		zap.String("sentiment", string(analysis.Sentiment)))

	if analysis.Deadline == nil {
		return
	}

	interval, err := p.resolver.Resolve(*analysis.Deadline, now)
	if err != nil {
		p.logger.Debug("Deadline phrase did not resolve",
			zap.String("message_id", email.MessageID),
			zap.String("phrase", *analysis.Deadline),
			zap.Error(err))
		return
	}

	switch analysis.UrgencyLevel {
	case core.UrgencyVeryUrgent:
		p.createEvent(ctx, email, analysis, interval)
	case core.UrgencyUrgent:
		p.logger.Info("Urgent deadline noted",
			zap.String("message_id", email.MessageID),
			zap.String("phrase", *analysis.Deadline),
			zap.Time("start", interval.Start),
			zap.Time("end", interval.End))
	}
}

func (p *InboxProcessor) createEvent(ctx context.Context, email *core.Email, analysis *core.EmailAnalysis, interval *deadline.Interval) {
	if p.mutedDomains.IsMuted(email.From) {
		p.logger.Info("Sender domain muted, skipping calendar event",
			zap.String("message_id", email.MessageID),
			zap.String("from", email.From))
		return
	}

	req := &core.EventRequest{
		Title:       fmt.Sprintf("Deadline: %s", email.Subject),
		Description: p.eventDescription(email, analysis),
		Start:       interval.Start,
		End:         interval.End,
		Timezone:    p.timezone,
	}

	link, err := p.calendar.CreateEvent(ctx, req)
	if err != nil {
		p.logger.Error("Failed to create calendar event",
			zap.String("message_id", email.MessageID),
			zap.Error(err))
		return
	}

	p.logger.Info("Calendar event created",
		zap.String("message_id", email.MessageID),
		zap.String("link", link),
		zap.Time("start", interval.Start))
}

func (p *InboxProcessor) markSeen(ctx context.Context, messageID string) {
	if err := p.source.MarkSeen(ctx, messageID); err != nil {
		p.logger.Warn("Failed to mark message seen",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}

func (p *InboxProcessor) eventDescription(email *core.Email, analysis *core.EmailAnalysis) string {
	preview := strings.TrimSpace(email.Body)
	if len(preview) > descriptionPreviewBytes {
		// Back off to a rune boundary so the preview stays valid UTF-8
		preview = p.text.TruncateText(preview, descriptionPreviewBytes) + "..."
	}

	var b strings.Builder
	b.WriteString("From: " + email.From + "\n")
	b.WriteString("Subject: " + email.Subject + "\n")
	if analysis.Deadline != nil {
		b.WriteString("Deadline phrase: " + *analysis.Deadline + "\n")
	}
	if preview != "" {
		b.WriteString("\n" + preview)
	}
	return b.String()
}
