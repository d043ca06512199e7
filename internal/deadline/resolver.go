// Package deadline turns short natural-language deadline phrases
// ("by Friday", "EOD tomorrow", "22 October 2025") into concrete
// [start, end) calendar intervals.
package deadline

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"go.uber.org/zap"

	"github.com/mailtriage/mailtriage/internal/nlp"
)

// ErrUnparseable is returned when a phrase carries no recognizable date
// signal. Callers treat it as "skip", not as a failure.
var ErrUnparseable = errors.New("no date signal in phrase")

// Interval is a half-open [Start, End) time range for a calendar event
type Interval struct {
	Start time.Time
	End   time.Time
}

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var (
	weekdayCandidate = regexp.MustCompile(`(?i)^(?:next\s+|this\s+|coming\s+)?([a-z]+)$`)
	monthDayFirst    = regexp.MustCompile(`(?i)^(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?([a-z]+)(?:\s+(\d{4}))?$`)
	monthNameFirst   = regexp.MustCompile(`(?i)^([a-z]+)\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?$`)
	explicitYear     = regexp.MustCompile(`\d{4}`)
	ordinalSuffix    = regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)\b`)
	clockTime        = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b|\b(\d{1,2}):(\d{2})\b`)
	// Vocabulary stripped from a phrase before the residue-only time parse
	dateVocabulary = regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december|` +
		`monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tue|wed|thu|fri|sat|sun|` +
		`today|tomorrow|next\s+week|next\s+month|eod|eow|end\s+of\s+day|end\s+of\s+week|` +
		`\d{1,2}(?:st|nd|rd|th)?|\d{4})\b`)
)

// Resolver converts deadline phrases into bookable intervals relative to a
// reference instant. It is stateless and safe for concurrent use.
type Resolver struct {
	workdayStart int
	workdayEnd   int
	loc          *time.Location
	entities     *nlp.EntityExtractor
	logger       *zap.Logger
}

// NewResolver creates a resolver. A nil location means the reference
// instant's own location is used.
func NewResolver(workdayStart, workdayEnd int, loc *time.Location, logger *zap.Logger) *Resolver {
	return &Resolver{
		workdayStart: workdayStart,
		workdayEnd:   workdayEnd,
		loc:          loc,
		entities:     nlp.NewEntityExtractor(),
		logger:       logger,
	}
}

// Resolve parses phrase against the reference instant ref and returns the
// event interval, or ErrUnparseable when no date can be found. It never
// panics on malformed input.
func (r *Resolver) Resolve(phrase string, ref time.Time) (result *Interval, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("deadline parse panicked",
				zap.String("phrase", phrase), zap.Any("panic", rec))
			result, err = nil, ErrUnparseable
		}
	}()

	loc := r.loc
	if loc == nil {
		loc = ref.Location()
	}
	ref = ref.In(loc)
	lower := strings.ToLower(phrase)

	day, ok := r.relativeDate(lower, ref)
	if !ok {
		day, ok = r.fuzzyDate(phrase, ref, loc)
	}
	if !ok {
		return nil, ErrUnparseable
	}

	hour, minute, hasTime := r.resolveTime(phrase, lower)

	var start, end time.Time
	switch {
	case strings.Contains(lower, "eod") || strings.Contains(lower, "end of day"):
		// EOD is a point in time; book a one-hour slot at the workday end
		start = time.Date(day.Year(), day.Month(), day.Day(), r.workdayEnd, 0, 0, 0, loc)
		end = start.Add(time.Hour)
	case hasTime:
		start = time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
		end = start.Add(time.Hour)
	default:
		start = time.Date(day.Year(), day.Month(), day.Day(), r.workdayStart, 0, 0, 0, loc)
		end = time.Date(day.Year(), day.Month(), day.Day(), r.workdayEnd, 0, 0, 0, loc)
	}

	// A dateless past mention ("by Friday" said on a Saturday) means the next
	// occurrence. A phrase with an explicit year is honored as-is: a stated
	// past date is a missed deadline, not a future one.
	refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	if startDay.Before(refDay) && !explicitYear.MatchString(phrase) {
		start = start.AddDate(0, 0, 7)
		end = end.AddDate(0, 0, 7)
	}

	return &Interval{Start: start, End: end}, nil
}

// relativeDate checks the literal relative cues in their fixed priority
// order and returns the resolved calendar day.
func (r *Resolver) relativeDate(lower string, ref time.Time) (time.Time, bool) {
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	switch {
	case strings.Contains(lower, "tomorrow"):
		return day(ref.AddDate(0, 0, 1)), true
	case strings.Contains(lower, "today"):
		return day(ref), true
	case strings.Contains(lower, "next week"):
		return day(ref.AddDate(0, 0, 7)), true
	case strings.Contains(lower, "next month"):
		return day(ref.AddDate(0, 1, 0)), true
	case strings.Contains(lower, "end of week") || strings.Contains(lower, "eow"):
		return nextWeekday(day(ref), time.Friday), true
	case strings.Contains(lower, "end of day") || strings.Contains(lower, "eod"):
		return day(ref), true
	}
	return time.Time{}, false
}

// fuzzyDate scans the phrase for date-like substrings and resolves the first
// one that parses. Concrete dates go through the general dateparse library;
// bare weekday and year-less month-name forms are completed against ref.
func (r *Resolver) fuzzyDate(phrase string, ref time.Time, loc *time.Location) (time.Time, bool) {
	for _, candidate := range r.entities.Dates(phrase) {
		text := strings.TrimSpace(candidate.Text)

		if m := weekdayCandidate.FindStringSubmatch(text); m != nil {
			if wd, ok := weekdays[strings.ToLower(m[1])]; ok {
				refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)
				return nextWeekday(refDay, wd), true
			}
		}

		if day, ok := parseMonthName(text, ref, loc); ok {
			return day, true
		}

		cleaned := ordinalSuffix.ReplaceAllString(text, "$1")
		if t, err := dateparse.ParseIn(cleaned, loc); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
		}
	}
	return time.Time{}, false
}

// parseMonthName handles "22 October 2025", "3rd of May" and "October 22nd"
// forms, defaulting the year to the reference year when absent.
func parseMonthName(text string, ref time.Time, loc *time.Location) (time.Time, bool) {
	var dayStr, monthStr, yearStr string
	if m := monthDayFirst.FindStringSubmatch(text); m != nil {
		dayStr, monthStr, yearStr = m[1], m[2], m[3]
	} else if m := monthNameFirst.FindStringSubmatch(text); m != nil {
		monthStr, dayStr, yearStr = m[1], m[2], m[3]
	} else {
		return time.Time{}, false
	}

	month, ok := months[strings.ToLower(monthStr)]
	if !ok {
		return time.Time{}, false
	}
	dayNum, err := strconv.Atoi(dayStr)
	if err != nil || dayNum < 1 || dayNum > 31 {
		return time.Time{}, false
	}
	year := ref.Year()
	if yearStr != "" {
		year, err = strconv.Atoi(yearStr)
		if err != nil {
			return time.Time{}, false
		}
	}
	return time.Date(year, month, dayNum, 0, 0, 0, 0, loc), true
}

// resolveTime finds an explicit clock time in the phrase. When the full
// phrase has none, date vocabulary is stripped and the residue is scanned
// alone, so a stray trailing time still counts.
func (r *Resolver) resolveTime(phrase, lower string) (hour, minute int, ok bool) {
	if h, m, found := matchClockTime(phrase); found {
		return h, m, true
	}
	residue := strings.TrimSpace(dateVocabulary.ReplaceAllString(lower, " "))
	if h, m, found := matchClockTime(residue); found {
		return h, m, true
	}
	return 0, 0, false
}

func matchClockTime(s string) (hour, minute int, ok bool) {
	m := clockTime.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	if m[1] != "" {
		// 12-hour form with am/pm
		hour, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		meridiem := strings.ToLower(m[3])
		if meridiem == "pm" && hour != 12 {
			hour += 12
		} else if meridiem == "am" && hour == 12 {
			hour = 0
		}
	} else {
		// 24-hour clock form
		hour, _ = strconv.Atoi(m[4])
		minute, _ = strconv.Atoi(m[5])
	}
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// nextWeekday returns the first occurrence of wd on or after day
func nextWeekday(day time.Time, wd time.Weekday) time.Time {
	delta := (int(wd) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, delta)
}
