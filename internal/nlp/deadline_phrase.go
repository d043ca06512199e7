package nlp

import (
	"regexp"
	"strings"
)

// imminenceCues mark a date entity as deadline-like on its own
var imminenceCues = []string{
	"tomorrow",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	"week", "day", "eod",
}

// deadlineCapture grabs the text following a deadline marker word up to the
// next sentence boundary. Raw captures tend to carry trailing noise; a nested
// entity pass below cleans that up when it can.
var deadlineCapture = regexp.MustCompile(`(?i)(?:deadline|due|by)[:\s]+([^.!?\n]+)`)

// HasDeadlineMarker reports whether text carries a deadline marker word.
// It feeds the has-deadline feature scalar together with date entities.
func HasDeadlineMarker(text string) bool {
	return deadlineMarker.MatchString(text)
}

var deadlineMarker = regexp.MustCompile(`(?i)\b(?:deadline|due|by)\s+`)

// DeadlinePhraseExtractor isolates the most likely deadline-describing
// substring of an email.
type DeadlinePhraseExtractor struct {
	entities *EntityExtractor
}

// NewDeadlinePhraseExtractor creates a new deadline phrase extractor
func NewDeadlinePhraseExtractor(entities *EntityExtractor) *DeadlinePhraseExtractor {
	return &DeadlinePhraseExtractor{entities: entities}
}

// Extract returns the deadline phrase and true, or "" and false when no
// deadline signal is present. dates is the date-entity list already extracted
// from the full text.
func (d *DeadlinePhraseExtractor) Extract(text string, dates []Entity) (string, bool) {
	// A date entity that itself carries an imminence cue wins outright
	for _, date := range dates {
		lower := strings.ToLower(date.Text)
		for _, cue := range imminenceCues {
			if strings.Contains(lower, cue) {
				return date.Text, true
			}
		}
	}

	match := deadlineCapture.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	captured := strings.TrimSpace(match[1])
	if captured == "" {
		return "", false
	}

	// Prefer a date entity inside the capture over the raw capture, which
	// often reads like "Friday at 5pm due to the client"
	if nested := d.entities.Dates(captured); len(nested) > 0 {
		return nested[0].Text, true
	}
	return captured, true
}
