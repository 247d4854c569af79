package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tuesday 2025-03-11
var now = time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC)

func day(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d.In(time.UTC)
}

func TestResolveDefaultsToToday(t *testing.T) {
	r, compare, err := Resolve(Selection{}, now)
	require.NoError(t, err)
	assert.Nil(t, compare)
	assert.True(t, r.SingleDay())
	assert.Equal(t, "2025-03-11", r.Start.Format("2006-01-02"))
}

func TestResolveYesterday(t *testing.T) {
	r, _, err := Resolve(Selection{Yesterday: true}, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", r.String())
}

func TestResolveExplicitDate(t *testing.T) {
	r, _, err := Resolve(Selection{Date: "2025-01-05"}, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-05", r.String())

	_, _, err = Resolve(Selection{Date: "01/05/2025"}, now)
	assert.Error(t, err)
}

func TestResolveRange(t *testing.T) {
	r, _, err := Resolve(Selection{RangeArgs: []string{"2025-03-01", "2025-03-07"}}, now)
	require.NoError(t, err)
	assert.Equal(t, 7, r.Days())
	assert.False(t, r.SingleDay())

	_, _, err = Resolve(Selection{RangeArgs: []string{"2025-03-07", "2025-03-01"}}, now)
	assert.ErrorIs(t, err, ErrEndBeforeStart)
}

func TestResolveWeeks(t *testing.T) {
	// Weeks run Sunday through Saturday; 2025-03-09 was a Sunday.
	r, _, err := Resolve(Selection{ThisWeek: true}, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-09", r.Start.Format("2006-01-02"))
	assert.Equal(t, "2025-03-11", r.End.Format("2006-01-02"))

	r, _, err = Resolve(Selection{LastWeek: true}, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-02", r.Start.Format("2006-01-02"))
	assert.Equal(t, "2025-03-08", r.End.Format("2006-01-02"))
}

func TestResolveWeekStartOnSunday(t *testing.T) {
	sunday := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)
	r, _, err := Resolve(Selection{ThisWeek: true}, sunday)
	require.NoError(t, err)
	assert.True(t, r.SingleDay())
	assert.Equal(t, "2025-03-09", r.Start.Format("2006-01-02"))
}

func TestResolveMonths(t *testing.T) {
	r, _, err := Resolve(Selection{ThisMonth: true}, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", r.Start.Format("2006-01-02"))
	assert.Equal(t, "2025-03-11", r.End.Format("2006-01-02"))

	r, _, err = Resolve(Selection{LastMonth: true}, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", r.Start.Format("2006-01-02"))
	assert.Equal(t, "2025-02-28", r.End.Format("2006-01-02"))
}

func TestResolveYears(t *testing.T) {
	r, _, err := Resolve(Selection{ThisYear: true}, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", r.Start.Format("2006-01-02"))

	r, _, err = Resolve(Selection{LastYear: true}, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", r.Start.Format("2006-01-02"))
	assert.Equal(t, "2024-12-31", r.End.Format("2006-01-02"))
}

func TestResolveRejectsMultipleSelections(t *testing.T) {
	_, _, err := Resolve(Selection{Today: true, Yesterday: true}, now)
	assert.ErrorIs(t, err, ErrMultipleSelections)
}

func TestResolveCompare(t *testing.T) {
	r, compare, err := Resolve(Selection{Date: "2025-03-10", Compare: true}, now)
	require.NoError(t, err)
	require.NotNil(t, compare)
	assert.Equal(t, "2025-03-10", r.String())
	// Same weekday, previous week.
	assert.Equal(t, "2025-03-03", compare.String())
	assert.Equal(t, r.Start.Weekday(), compare.Start.Weekday())
}

func TestResolveCompareRequiresSingleDaySelection(t *testing.T) {
	_, _, err := Resolve(Selection{ThisWeek: true, Compare: true}, now)
	assert.ErrorIs(t, err, ErrCompareWithRange)

	// Bare --compare with no date selection is also rejected.
	_, _, err = Resolve(Selection{Compare: true}, now)
	assert.ErrorIs(t, err, ErrCompareWithRange)
}

func TestPreviousWeek(t *testing.T) {
	r := PreviousWeek(now)
	assert.Equal(t, "2025-03-02", r.Start.Format("2006-01-02"))
	assert.Equal(t, "2025-03-08", r.End.Format("2006-01-02"))
	assert.Equal(t, time.Sunday, r.Start.Weekday())
	assert.Equal(t, time.Saturday, r.End.Weekday())
	assert.Equal(t, 7, r.Days())
}

func TestRangeString(t *testing.T) {
	single := Range{day("2025-03-10"), day("2025-03-10")}
	assert.Equal(t, "2025-03-10", single.String())

	multi := Range{day("2025-03-01"), day("2025-03-07")}
	assert.Equal(t, "2025-03-01 to 2025-03-07", multi.String())
}
