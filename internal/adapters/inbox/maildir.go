// Package inbox provides message sources for the triage processor. Live
// transports (IMAP, Gmail API) are external collaborators; what the
// processor needs is a directory messages get dropped into.
package inbox

import (
	"context"
	"fmt"
	"io"
	"net/mail"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mailtriage/mailtriage/internal/core"
	"go.uber.org/zap"
)

const seenSubdir = "seen"

// MaildirSource reads RFC 5322 messages dropped as files into a directory.
// A processed message is moved into the seen/ subdirectory, so a restart
// never re-triages old mail.
type MaildirSource struct {
	dir    string
	logger *zap.Logger
}

// NewMaildirSource creates a maildir-style source rooted at dir
func NewMaildirSource(dir string, logger *zap.Logger) (*MaildirSource, error) {
	if err := os.MkdirAll(filepath.Join(dir, seenSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create inbox directory: %w", err)
	}
	return &MaildirSource{dir: dir, logger: logger}, nil
}

// Fetch returns up to max unseen messages in filename order
func (s *MaildirSource) Fetch(ctx context.Context, max int) ([]*core.Email, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read inbox directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var emails []*core.Email
	for _, name := range names {
		if len(emails) >= max {
			break
		}
		if err := ctx.Err(); err != nil {
			return emails, err
		}

		email, err := s.readMessage(name)
		if err != nil {
			// One unreadable file must not stall the whole batch
			s.logger.Warn("Skipping unreadable message file",
				zap.String("file", name), zap.Error(err))
			continue
		}
		emails = append(emails, email)
	}
	return emails, nil
}

// MarkSeen moves a processed message into the seen/ subdirectory
func (s *MaildirSource) MarkSeen(_ context.Context, messageID string) error {
	src := filepath.Join(s.dir, messageID)
	dst := filepath.Join(s.dir, seenSubdir, messageID)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to mark message seen: %w", err)
	}
	return nil
}

func (s *MaildirSource) readMessage(name string) (*core.Email, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	msg, err := mail.ReadMessage(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	body, err := io.ReadAll(msg.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read message body: %w", err)
	}

	email := &core.Email{
		// The filename is the stable id; Message-Id headers are frequently
		// missing in drop-folder setups
		MessageID: name,
		From:      msg.Header.Get("From"),
		Subject:   msg.Header.Get("Subject"),
		Body:      string(body),
		Headers:   make(map[string][]string),
	}
	if to := msg.Header.Get("To"); to != "" {
		for _, addr := range strings.Split(to, ",") {
			email.To = append(email.To, strings.TrimSpace(addr))
		}
	}
	for k, v := range msg.Header {
		email.Headers[k] = v
	}
	return email, nil
}
