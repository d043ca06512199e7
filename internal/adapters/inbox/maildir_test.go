package inbox

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleMessage = `From: alice@corp.example
To: bob@corp.example, carol@corp.example
Subject: Weekly sync

Agenda attached.
`

func writeMessage(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestMaildirFetch(t *testing.T) {
	dir := t.TempDir()
	s, err := NewMaildirSource(dir, zap.NewNop())
	require.NoError(t, err)

	writeMessage(t, dir, "002.eml", sampleMessage)
	writeMessage(t, dir, "001.eml", sampleMessage)

	emails, err := s.Fetch(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, emails, 2)

	// Filename order, filename as the message id
	require.Equal(t, "001.eml", emails[0].MessageID)
	require.Equal(t, "002.eml", emails[1].MessageID)
	require.Equal(t, "alice@corp.example", emails[0].From)
	require.Equal(t, "Weekly sync", emails[0].Subject)
	require.Len(t, emails[0].To, 2)
	require.Contains(t, emails[0].Body, "Agenda attached.")
}

func TestMaildirFetchRespectsMax(t *testing.T) {
	dir := t.TempDir()
	s, err := NewMaildirSource(dir, zap.NewNop())
	require.NoError(t, err)

	for _, name := range []string{"a.eml", "b.eml", "c.eml"} {
		writeMessage(t, dir, name, sampleMessage)
	}

	emails, err := s.Fetch(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, emails, 2)
}

func TestMaildirFetchSkipsUnparseable(t *testing.T) {
	dir := t.TempDir()
	s, err := NewMaildirSource(dir, zap.NewNop())
	require.NoError(t, err)

	writeMessage(t, dir, "bad.eml", "this is not an rfc5322 message")
	writeMessage(t, dir, "good.eml", sampleMessage)

	emails, err := s.Fetch(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, emails, 1)
	require.Equal(t, "good.eml", emails[0].MessageID)
}

func TestMaildirMarkSeen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewMaildirSource(dir, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	writeMessage(t, dir, "001.eml", sampleMessage)
	require.NoError(t, s.MarkSeen(ctx, "001.eml"))

	// Seen messages leave the fetch window
	emails, err := s.Fetch(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, emails)

	_, err = os.Stat(filepath.Join(dir, "seen", "001.eml"))
	require.NoError(t, err)

	require.Error(t, s.MarkSeen(ctx, "001.eml"))
}
