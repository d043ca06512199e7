package nlp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractDates(t *testing.T) {
	e := NewEntityExtractor()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"iso", "ship it on 2025-10-22 please", []string{"2025-10-22"}},
		{"slash", "the review is on 22/10/2025", []string{"22/10/2025"}},
		{"month_name", "we meet on 22 October 2025", []string{"22 October 2025"}},
		{"month_first", "we meet on October 22nd", []string{"October 22nd"}},
		{"relative", "finish this tomorrow or by next week", []string{"tomorrow", "next week"}},
		{"weekday", "see you next Friday", []string{"next Friday"}},
		{"eod", "need it by EOD", []string{"EOD"}},
		{"none", "nothing date-like here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := e.Dates(tt.text)
			var got []string
			for _, d := range dates {
				got = append(got, d.Text)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExtractDocumentOrder(t *testing.T) {
	e := NewEntityExtractor()

	ents := e.Extract("Alice Johnson needs the report by Friday at 5pm")
	require.NotEmpty(t, ents)
	for i := 1; i < len(ents); i++ {
		require.LessOrEqual(t, ents[i-1].Start, ents[i].Start)
	}
}

func TestExtractKeepsDuplicates(t *testing.T) {
	e := NewEntityExtractor()

	dates := e.Dates("tomorrow, yes tomorrow")
	require.Len(t, dates, 2)
	require.Equal(t, "tomorrow", dates[0].Text)
	require.Equal(t, "tomorrow", dates[1].Text)
}

func TestExtractNoOverlappingClaims(t *testing.T) {
	e := NewEntityExtractor()

	// "22 October 2025" must come out as one DATE, not a date plus a
	// proper-noun span over "October"
	ents := e.Extract("due 22 October 2025")
	var dateCount, entityCount int
	for _, ent := range ents {
		switch ent.Label {
		case LabelDate:
			dateCount++
		case LabelEntity:
			entityCount++
		}
	}
	require.Equal(t, 1, dateCount)
	require.Equal(t, 0, entityCount)
}

func TestExtractTimes(t *testing.T) {
	e := NewEntityExtractor()

	ents := e.Extract("call me at 3:30 pm or at 16:45")
	var times []string
	for _, ent := range ents {
		if ent.Label == LabelTime {
			times = append(times, ent.Text)
		}
	}
	require.Equal(t, []string{"3:30 pm", "16:45"}, times)
}
