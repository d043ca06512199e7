package processor

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/mailtriage/mailtriage/internal/adapters/store"
	"github.com/mailtriage/mailtriage/internal/core"
	"github.com/mailtriage/mailtriage/internal/deadline"
	"github.com/mailtriage/mailtriage/internal/muted"
	"github.com/mailtriage/mailtriage/internal/nlp"
	"github.com/mailtriage/mailtriage/internal/utils"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeInbox serves a fixed batch once and records MarkSeen calls
type fakeInbox struct {
	mu     sync.Mutex
	emails []*core.Email
	seen   []string
}

func (f *fakeInbox) Fetch(_ context.Context, max int) ([]*core.Email, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.emails) == 0 {
		return nil, nil
	}
	if max > len(f.emails) {
		max = len(f.emails)
	}
	batch := f.emails[:max]
	f.emails = f.emails[max:]
	return batch, nil
}

func (f *fakeInbox) MarkSeen(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, id)
	return nil
}

// fakeCalendar records every event request
type fakeCalendar struct {
	mu     sync.Mutex
	events []*core.EventRequest
}

func (f *fakeCalendar) CreateEvent(_ context.Context, req *core.EventRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, req)
	return "fake://event", nil
}

func newTestProcessor(inbox *fakeInbox, cal *fakeCalendar, analyses core.AnalysisStore, mutedDomains []string) *InboxProcessor {
	logger := zap.NewNop()
	keywords := nlp.NewKeywordMatcher(nlp.DefaultTiers(), nil, 0.7, logger)
	service := core.NewAnalysisService(keywords, nil, utils.NewTextProcessor(logger), 16384, 2, logger)
	resolver := deadline.NewResolver(9, 17, time.UTC, logger)

	return NewInboxProcessor(
		service,
		inbox,
		analyses,
		cal,
		resolver,
		muted.NewChecker(mutedDomains, logger),
		logger,
		time.Minute,
		25,
		time.Hour,
		"UTC",
	)
}

func TestPollCreatesEventForVeryUrgentDeadline(t *testing.T) {
	analyses := store.NewMemoryStore(zap.NewNop(), time.Hour)
	defer analyses.Stop()
	inbox := &fakeInbox{emails: []*core.Email{
		{
			MessageID: "m1",
			From:      "boss@corp.example",
			Subject:   "Production incident",
			Body:      "This is urgent, the fix is due tomorrow.",
		},
		{
			MessageID: "m2",
			From:      "peer@corp.example",
			Subject:   "Notes",
			Body:      "Notes from the retro, no action needed.",
		},
	}}
	cal := &fakeCalendar{}

	p := newTestProcessor(inbox, cal, analyses, nil)
	p.poll()

	// Both messages are stored and marked seen
	ctx := context.Background()
	rec, err := analyses.Get(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, core.UrgencyVeryUrgent, rec.Analysis.UrgencyLevel)

	_, err = analyses.Get(ctx, "m2")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"m1", "m2"}, inbox.seen)

	// Only the very urgent message with a deadline produced an event
	require.Len(t, cal.events, 1)
	require.Equal(t, "Deadline: Production incident", cal.events[0].Title)
	require.Contains(t, cal.events[0].Description, "boss@corp.example")
	require.True(t, cal.events[0].End.After(cal.events[0].Start))
}

func TestEventDescriptionPreviewStaysValidUTF8(t *testing.T) {
	analyses := store.NewMemoryStore(zap.NewNop(), time.Hour)
	defer analyses.Stop()
	// Multi-byte runes positioned so a naive byte cut would split one
	body := "Urgent: the fix is due tomorrow. " + strings.Repeat("é", 200)
	inbox := &fakeInbox{emails: []*core.Email{
		{
			MessageID: "m1",
			From:      "boss@corp.example",
			Subject:   "Incident écriture",
			Body:      body,
		},
	}}
	cal := &fakeCalendar{}

	p := newTestProcessor(inbox, cal, analyses, nil)
	p.poll()

	require.Len(t, cal.events, 1)
	desc := cal.events[0].Description
	require.True(t, utf8.ValidString(desc))
	require.Contains(t, desc, "Urgent: the fix is due tomorrow.")
	require.Less(t, len(desc), len(body))
}

func TestPollSkipsMutedDomains(t *testing.T) {
	analyses := store.NewMemoryStore(zap.NewNop(), time.Hour)
	defer analyses.Stop()
	inbox := &fakeInbox{emails: []*core.Email{
		{
			MessageID: "m1",
			From:      "noreply@blast.example",
			Subject:   "Critical offer",
			Body:      "Act now, this urgent deal is due tomorrow!",
		},
	}}
	cal := &fakeCalendar{}

	p := newTestProcessor(inbox, cal, analyses, []string{"blast.example"})
	p.poll()

	// The analysis is still stored, but no event is booked
	_, err := analyses.Get(context.Background(), "m1")
	require.NoError(t, err)
	require.Empty(t, cal.events)
}

func TestPollDeduplicatesSeenMessages(t *testing.T) {
	analyses := store.NewMemoryStore(zap.NewNop(), time.Hour)
	defer analyses.Stop()
	cal := &fakeCalendar{}

	email := &core.Email{
		MessageID: "m1",
		From:      "boss@corp.example",
		Subject:   "Approval needed",
		Body:      "This is urgent and due tomorrow.",
	}

	inbox := &fakeInbox{emails: []*core.Email{email}}
	p := newTestProcessor(inbox, cal, analyses, nil)
	p.poll()
	require.Len(t, cal.events, 1)

	// The same message showing up again must not re-book the event
	inbox.mu.Lock()
	inbox.emails = []*core.Email{email}
	inbox.mu.Unlock()
	p.poll()
	require.Len(t, cal.events, 1)
}

func TestStartStop(t *testing.T) {
	analyses := store.NewMemoryStore(zap.NewNop(), time.Hour)
	defer analyses.Stop()
	inbox := &fakeInbox{}
	p := newTestProcessor(inbox, &fakeCalendar{}, analyses, nil)

	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())
}
