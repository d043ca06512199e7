package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mailtriage/mailtriage/internal/core"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testEvent() *core.EventRequest {
	start := time.Date(2025, time.January, 2, 9, 0, 0, 0, time.UTC)
	return &core.EventRequest{
		Title:       "Deadline: Production incident",
		Description: "From: boss@corp.example",
		Start:       start,
		End:         start.Add(time.Hour),
		Timezone:    "UTC",
	}
}

func TestWebhookClientCreateEvent(t *testing.T) {
	var received webhookEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(webhookResponse{Link: "https://cal.example/e/42"})
	}))
	defer srv.Close()

	c := NewWebhookClient(srv.URL, zap.NewNop())
	link, err := c.CreateEvent(context.Background(), testEvent())
	require.NoError(t, err)
	require.Equal(t, "https://cal.example/e/42", link)
	require.Equal(t, "Deadline: Production incident", received.Title)
	require.Equal(t, "2025-01-02T09:00:00Z", received.Start)
}

func TestWebhookClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewWebhookClient(srv.URL, zap.NewNop())
	_, err := c.CreateEvent(context.Background(), testEvent())
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestWebhookClientEmptyBodyFallsBackToURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewWebhookClient(srv.URL, zap.NewNop())
	link, err := c.CreateEvent(context.Background(), testEvent())
	require.NoError(t, err)
	require.Equal(t, srv.URL, link)
}

func TestLogClientCreateEvent(t *testing.T) {
	c := NewLogClient(zap.NewNop())
	link, err := c.CreateEvent(context.Background(), testEvent())
	require.NoError(t, err)
	require.NotEmpty(t, link)
}
