package core

import (
	"time"

	"github.com/mailtriage/mailtriage/internal/nlp"
)

// Email represents an email message
type Email struct {
	MessageID string
	From      string
	To        []string
	Subject   string
	Body      string
	Headers   map[string][]string
}

// Text returns the subject and body joined the way the classifier was
// trained on them. Both training and inference must go through this method.
func (e *Email) Text() string {
	return e.Subject + " " + e.Body
}

// Sentiment is the 3-way polarity label derived from the compound score.
// The label is produced in the nlp package; the alias keeps callers of the
// core model from depending on nlp directly.
type Sentiment = nlp.Sentiment

const (
	SentimentPositive = nlp.SentimentPositive
	SentimentNeutral  = nlp.SentimentNeutral
	SentimentNegative = nlp.SentimentNegative
)

// UrgencyLevel is the coarse triage bucket for an email
type UrgencyLevel string

const (
	UrgencyRegular    UrgencyLevel = "Regular"
	UrgencyUrgent     UrgencyLevel = "Urgent"
	UrgencyVeryUrgent UrgencyLevel = "Very Urgent"
	UrgencyPromo      UrgencyLevel = "Newsletter/Promo"
)

// Rank orders urgency levels: Very Urgent > Urgent > Newsletter/Promo > Regular
func (u UrgencyLevel) Rank() int {
	switch u {
	case UrgencyVeryUrgent:
		return 3
	case UrgencyUrgent:
		return 2
	case UrgencyPromo:
		return 1
	default:
		return 0
	}
}

// UrgencyFromScore maps a classifier class to its urgency level
func UrgencyFromScore(score int) UrgencyLevel {
	switch score {
	case 2:
		return UrgencyVeryUrgent
	case 1:
		return UrgencyUrgent
	default:
		return UrgencyRegular
	}
}

// EmailAnalysis is the result of analyzing a single message. It is built once
// and never mutated afterwards. MLUrgencyScore and Deadline are nil when no
// classifier is loaded or no deadline phrase was found.
type EmailAnalysis struct {
	Sentiment      Sentiment
	SentimentScore float64
	UrgencyLevel   UrgencyLevel
	MLUrgencyScore *int
	Keywords       []string
	Deadline       *string
	NamedEntities  []string
	Dates          []string
	AnalyzedAt     time.Time
}

// AnalysisRecord is a stored analysis keyed by message id
type AnalysisRecord struct {
	MessageID string
	Analysis  *EmailAnalysis
	LastSeen  time.Time
	ExpiresAt time.Time
}

// EventRequest describes a calendar event to be created for a resolved deadline
type EventRequest struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Timezone    string
}
