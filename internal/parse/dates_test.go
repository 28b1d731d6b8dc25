package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)

func TestRelativeDatePast(t *testing.T) {
	r, ok := RelativeDate("last 6 months", testNow)
	require.True(t, ok)
	assert.Equal(t, testNow.AddDate(0, 0, -180), r.Start)
	assert.Equal(t, testNow, r.End)
}

func TestRelativeDateFuture(t *testing.T) {
	r, ok := RelativeDate("in the next 45 days", testNow)
	require.True(t, ok)
	assert.Equal(t, testNow, r.Start)
	assert.Equal(t, testNow.AddDate(0, 0, 45), r.End)
}

func TestRelativeDateCombined(t *testing.T) {
	r, ok := RelativeDate("last 6 months or next 6 months", testNow)
	require.True(t, ok)
	assert.Equal(t, testNow.AddDate(0, 0, -180), r.Start)
	assert.Equal(t, testNow.AddDate(0, 0, 180), r.End)
}

func TestRelativeDateNoMatch(t *testing.T) {
	_, ok := RelativeDate("healthcare projects", testNow)
	assert.False(t, ok)
}

func TestQuarter(t *testing.T) {
	year, q, ok := Quarter("Q1 2026")
	require.True(t, ok)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 1, q)

	year, q, ok = Quarter("third quarter 2027")
	require.True(t, ok)
	assert.Equal(t, 2027, year)
	assert.Equal(t, 3, q)

	_, _, ok = Quarter("Q7 2026")
	assert.False(t, ok)
}

func TestQuarterRange(t *testing.T) {
	r := QuarterRange(2026, 2)
	assert.Equal(t, "2026-04-01", r.StartDate())
	assert.Equal(t, "2026-06-30", r.EndDate())

	r = QuarterRange(2026, 4)
	assert.Equal(t, "2026-10-01", r.StartDate())
	assert.Equal(t, "2026-12-31", r.EndDate())
}

func TestYear(t *testing.T) {
	y, ok := Year("projects in 2026")
	require.True(t, ok)
	assert.Equal(t, 2026, y)

	y, ok = Year("2031 pipeline")
	require.True(t, ok)
	assert.Equal(t, 2031, y)

	_, ok = Year("projects in 1999")
	assert.False(t, ok)
}

func TestYears(t *testing.T) {
	years, ok := Years("compare 2025 vs 2026")
	require.True(t, ok)
	assert.Equal(t, []int{2025, 2026}, years)

	_, ok = Years("projects in 2026")
	assert.False(t, ok)
}

func TestMonthRange(t *testing.T) {
	r, ok := MonthRange("between January and March 2026")
	require.True(t, ok)
	assert.Equal(t, "2026-01-01", r.StartDate())
	assert.Equal(t, "2026-03-31", r.EndDate())
}

func TestMonthRangeDecember(t *testing.T) {
	r, ok := MonthRange("between January and December 2026")
	require.True(t, ok)
	assert.Equal(t, "2026-01-01", r.StartDate())
	assert.Equal(t, "2026-12-31", r.EndDate())
}

func TestMonthRangeVariableLengths(t *testing.T) {
	r, ok := MonthRange("between february and april 2028")
	require.True(t, ok)
	// 2028 is a leap year; start is still the first of February.
	assert.Equal(t, "2028-02-01", r.StartDate())
	assert.Equal(t, "2028-04-30", r.EndDate())
}

func TestNumericTimeframe(t *testing.T) {
	days, ok := NumericTimeframe("ten months")
	require.True(t, ok)
	assert.Equal(t, 300, days)

	days, ok = NumericTimeframe("2 quarters")
	require.True(t, ok)
	assert.Equal(t, 180, days)

	_, ok = NumericTimeframe("sometime")
	assert.False(t, ok)
}
