package parse

import (
	"strings"
	"time"
)

var (
	futureWords = []string{"next", "coming", "upcoming", "future"}
	pastWords   = []string{"last", "past", "previous", "recent"}
)

// vaguePhrases maps idiomatic time phrases to day offsets relative to today.
// Checked in order, before generic numeric extraction, so idioms are never
// mis-parsed as units. "recently" is listed for completeness but is shadowed
// by the "recent" directional keyword above; the past branch handles it.
var vaguePhrases = []struct {
	phrase    string
	startDays int
	endDays   int
}{
	{"soon", 0, 90},
	{"near future", 0, 180},
	{"short term", 0, 180},
	{"medium term", 180, 730},
	{"long term", 730, 1825},
	{"immediately", 0, 30},
	{"recently", -90, 0},
	{"shortly", 0, 60},
	{"little while", 0, 90},
}

// Per-unit default magnitudes when a directional phrase names a unit without
// a quantity ("next quarter", "coming months").
var unitDefaults = []struct {
	unit string
	days int
}{
	{"quarter", 90},
	{"year", 365},
	{"month", 180},
}

// defaultWindowDays is the window for directional phrases with neither a
// quantity nor a unit ("in the future", "recently").
const defaultWindowDays = 180

// ResolveTimeReference resolves an open-ended natural-language time phrase
// into a concrete date range. The resolution order is a deliberate
// precedence policy:
//
//  1. directional keywords (next/coming/... vs last/past/...)
//  2. the vague-phrase table
//  3. "this quarter" / "this year"
//  4. specific quarter, specific year, month range
//  5. generic numeric-unit extraction, defaulting to the future direction
//
// No match at any stage returns ok=false; callers must leave any existing
// time arguments untouched in that case.
func ResolveTimeReference(phrase string, now time.Time) (DateRange, bool) {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return DateRange{}, false
	}

	if containsAny(phrase, futureWords) {
		return resolveDirectional(phrase, now, false), true
	}
	if containsAny(phrase, pastWords) {
		return resolveDirectional(phrase, now, true), true
	}

	for _, v := range vaguePhrases {
		if strings.Contains(phrase, v.phrase) {
			return DateRange{
				Start: now.AddDate(0, 0, v.startDays),
				End:   now.AddDate(0, 0, v.endDays),
			}, true
		}
	}

	if strings.Contains(phrase, "this quarter") {
		q := (int(now.Month())-1)/3 + 1
		return QuarterRange(now.Year(), q), true
	}
	if strings.Contains(phrase, "this year") {
		return DateRange{
			Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC),
		}, true
	}

	if year, quarter, ok := Quarter(phrase); ok {
		return QuarterRange(year, quarter), true
	}
	if year, ok := Year(phrase); ok {
		return DateRange{
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		}, true
	}
	if r, ok := MonthRange(phrase); ok {
		return r, true
	}

	// Generic "<N> <unit>" with no directional keyword defaults to the
	// future. Documented policy, not a bug to patch.
	if days, ok := NumericTimeframe(phrase); ok {
		return DateRange{Start: now, End: now.AddDate(0, 0, days)}, true
	}

	return DateRange{}, false
}

// resolveDirectional builds the range for a phrase with an explicit
// direction: a numeric quantity wins, then a bare unit word with its default
// magnitude, then the 180-day fallback window.
func resolveDirectional(phrase string, now time.Time, past bool) DateRange {
	days := defaultWindowDays
	if n, ok := NumericTimeframe(phrase); ok {
		days = n
	} else {
		for _, d := range unitDefaults {
			if strings.Contains(phrase, d.unit) {
				days = d.days
				break
			}
		}
	}
	if past {
		return DateRange{Start: now.AddDate(0, 0, -days), End: now}
	}
	return DateRange{Start: now, End: now.AddDate(0, 0, days)}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
