package deadline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ref is Wednesday, January 1st 2025, midnight UTC
var ref = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func newTestResolver() *Resolver {
	return NewResolver(9, 17, time.UTC, zap.NewNop())
}

func TestResolveRelativeCues(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name      string
		phrase    string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			"tomorrow",
			"tomorrow",
			time.Date(2025, time.January, 2, 9, 0, 0, 0, time.UTC),
			time.Date(2025, time.January, 2, 17, 0, 0, 0, time.UTC),
		},
		{
			"today",
			"today",
			time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2025, time.January, 1, 17, 0, 0, 0, time.UTC),
		},
		{
			"next_week",
			"next week",
			time.Date(2025, time.January, 8, 9, 0, 0, 0, time.UTC),
			time.Date(2025, time.January, 8, 17, 0, 0, 0, time.UTC),
		},
		{
			"next_month",
			"next month",
			time.Date(2025, time.February, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2025, time.February, 1, 17, 0, 0, 0, time.UTC),
		},
		{
			"end_of_week",
			"end of week",
			time.Date(2025, time.January, 3, 9, 0, 0, 0, time.UTC),
			time.Date(2025, time.January, 3, 17, 0, 0, 0, time.UTC),
		},
		{
			"eod_today",
			"EOD",
			time.Date(2025, time.January, 1, 17, 0, 0, 0, time.UTC),
			time.Date(2025, time.January, 1, 18, 0, 0, 0, time.UTC),
		},
		{
			"eod_tomorrow",
			"EOD tomorrow",
			time.Date(2025, time.January, 2, 17, 0, 0, 0, time.UTC),
			time.Date(2025, time.January, 2, 18, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interval, err := r.Resolve(tt.phrase, ref)
			require.NoError(t, err)
			require.Equal(t, tt.wantStart, interval.Start)
			require.Equal(t, tt.wantEnd, interval.End)
		})
	}
}

func TestResolveWeekdayOnOrAfter(t *testing.T) {
	r := newTestResolver()

	// Friday after Wednesday Jan 1 is Jan 3
	interval, err := r.Resolve("Friday", ref)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.January, 3, 9, 0, 0, 0, time.UTC), interval.Start)

	// Wednesday on a Wednesday is the reference day itself
	interval, err = r.Resolve("Wednesday", ref)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC), interval.Start)

	// next Tuesday from Wednesday lands on Jan 7
	interval, err = r.Resolve("next Tuesday", ref)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.January, 7, 9, 0, 0, 0, time.UTC), interval.Start)
}

func TestResolveExplicitTime(t *testing.T) {
	r := newTestResolver()

	interval, err := r.Resolve("next Tuesday 3 PM", ref)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.January, 7, 15, 0, 0, 0, time.UTC), interval.Start)
	require.Equal(t, time.Hour, interval.End.Sub(interval.Start))

	interval, err = r.Resolve("tomorrow at 9:30am", ref)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.January, 2, 9, 30, 0, 0, time.UTC), interval.Start)

	interval, err = r.Resolve("Friday at 16:45", ref)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.January, 3, 16, 45, 0, 0, time.UTC), interval.Start)
}

func TestResolveMonthNameDates(t *testing.T) {
	r := newTestResolver()

	// Year defaults to the reference year
	interval, err := r.Resolve("22 October", ref)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.October, 22, 9, 0, 0, 0, time.UTC), interval.Start)

	interval, err = r.Resolve("October 22nd", ref)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.October, 22, 9, 0, 0, 0, time.UTC), interval.Start)

	interval, err = r.Resolve("3rd of May", ref)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.May, 3, 9, 0, 0, 0, time.UTC), interval.Start)
}

func TestResolveExplicitYearHonoredEvenInPast(t *testing.T) {
	r := newTestResolver()

	// A stated past date is a missed deadline, not bumped forward
	interval, err := r.Resolve("22 October 2020", ref)
	require.NoError(t, err)
	require.Equal(t, time.Date(2020, time.October, 22, 9, 0, 0, 0, time.UTC), interval.Start)
}

func TestResolveYearlessPastDateAdvancesOneWeek(t *testing.T) {
	r := newTestResolver()
	novRef := time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC)

	// Without a stated year the date lands in the reference year, which here
	// is already behind the reference instant. Advance exactly seven days.
	interval, err := r.Resolve("22 October", novRef)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.October, 29, 9, 0, 0, 0, time.UTC), interval.Start)
	require.Equal(t, time.Date(2025, time.October, 29, 17, 0, 0, 0, time.UTC), interval.End)

	interval, err = r.Resolve("November 1st", novRef)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.November, 8, 9, 0, 0, 0, time.UTC), interval.Start)
}

func TestResolveIsoDate(t *testing.T) {
	r := newTestResolver()

	interval, err := r.Resolve("2025-03-10", ref)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC), interval.Start)
	require.Equal(t, time.Date(2025, time.March, 10, 17, 0, 0, 0, time.UTC), interval.End)
}

func TestResolveUnparseable(t *testing.T) {
	r := newTestResolver()

	for _, phrase := range []string{
		"please respond soon",
		"when you get a chance",
		"",
	} {
		_, err := r.Resolve(phrase, ref)
		require.ErrorIs(t, err, ErrUnparseable, "phrase %q", phrase)
	}
}

func TestResolveUsesConfiguredWorkday(t *testing.T) {
	r := NewResolver(8, 18, time.UTC, zap.NewNop())

	interval, err := r.Resolve("tomorrow", ref)
	require.NoError(t, err)
	require.Equal(t, 8, interval.Start.Hour())
	require.Equal(t, 18, interval.End.Hour())

	interval, err = r.Resolve("EOD", ref)
	require.NoError(t, err)
	require.Equal(t, 18, interval.Start.Hour())
	require.Equal(t, 19, interval.End.Hour())
}

func TestResolveTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	r := NewResolver(9, 17, loc, zap.NewNop())

	interval, err := r.Resolve("tomorrow", ref)
	require.NoError(t, err)
	require.Equal(t, loc, interval.Start.Location())
	require.Equal(t, 9, interval.Start.Hour())
}
