package nlp

import (
	"regexp"
	"sort"
)

// Entity is a named entity surface form found in text
type Entity struct {
	Text  string
	Label string
	Start int
}

// Entity labels
const (
	LabelDate   = "DATE"
	LabelTime   = "TIME"
	LabelEntity = "ENTITY"
)

const (
	monthPattern   = `(?:january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)`
	weekdayPattern = `(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tue|tues|wed|thu|thur|thurs|fri|sat|sun)`
)

// Date-like patterns, most specific first. Earlier patterns claim their span
// so later ones cannot re-match inside it.
var datePatterns = []*regexp.Regexp{
	// 22 October 2025, 3rd of May, October 22nd, 2025
	regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+(?:of\s+)?` + monthPattern + `(?:\s+\d{4})?\b`),
	regexp.MustCompile(`(?i)\b` + monthPattern + `\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?\b`),
	// 2025-10-22, 22/10/2025, 10/22/25
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`\b\d{1,2}[/.]\d{1,2}[/.]\d{2,4}\b`),
	// relative cues
	regexp.MustCompile(`(?i)\b(?:tomorrow|today|tonight|next\s+week|next\s+month|end\s+of\s+day|end\s+of\s+week|eod|eow)\b`),
	// next Friday, by Tuesday, bare weekday names
	regexp.MustCompile(`(?i)\b(?:next\s+|this\s+|coming\s+)?` + weekdayPattern + `\b`),
}

var timePattern = regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s?(?:am|pm)\b|\b\d{1,2}:\d{2}\b`)

// Capitalized spans of up to four words, a rough stand-in for PERSON/ORG
// mentions so the entity count feature has signal beyond dates.
var properSpanPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,3}\b`)

// EntityExtractor extracts named entities, including the date-like subset,
// from raw text. Entities come back in document order with duplicates kept.
type EntityExtractor struct{}

// NewEntityExtractor creates a new entity extractor
func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{}
}

// Extract returns all entities found in text in document order
func (e *EntityExtractor) Extract(text string) []Entity {
	var entities []Entity
	covered := make([]bool, len(text))

	claim := func(start, end int, label string) {
		for i := start; i < end; i++ {
			if covered[i] {
				return
			}
		}
		for i := start; i < end; i++ {
			covered[i] = true
		}
		entities = append(entities, Entity{Text: text[start:end], Label: label, Start: start})
	}

	for _, pattern := range datePatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			claim(loc[0], loc[1], LabelDate)
		}
	}
	for _, loc := range timePattern.FindAllStringIndex(text, -1) {
		claim(loc[0], loc[1], LabelTime)
	}
	for _, loc := range properSpanPattern.FindAllStringIndex(text, -1) {
		// Single stopwords or sentence-leading words produce noisy spans;
		// skip spans that are one stopword long.
		if IsStopword(text[loc[0]:loc[1]]) {
			continue
		}
		claim(loc[0], loc[1], LabelEntity)
	}

	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Start < entities[j].Start
	})
	return entities
}

// Dates returns only the date-labeled entities, in document order
func (e *EntityExtractor) Dates(text string) []Entity {
	var dates []Entity
	for _, ent := range e.Extract(text) {
		if ent.Label == LabelDate {
			dates = append(dates, ent)
		}
	}
	return dates
}
