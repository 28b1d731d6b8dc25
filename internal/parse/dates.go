package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateRange is a concrete resolved date interval, Start <= End. Produced only
// by the parsers in this package; never taken raw from user input.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ISO date layout used everywhere a range is bound into SQL or serialized.
const DateLayout = "2006-01-02"

// StartDate returns Start formatted as an ISO date string.
func (r DateRange) StartDate() string { return r.Start.Format(DateLayout) }

// EndDate returns End formatted as an ISO date string.
func (r DateRange) EndDate() string { return r.End.Format(DateLayout) }

var (
	pastRelRe     = regexp.MustCompile(`(?:last|past|previous)\s+(\d+)\s+(months?|days?|years?|weeks?)`)
	pastRelInRe   = regexp.MustCompile(`in\s+the\s+(?:last|past|previous)\s+(\d+)\s+(months?|days?|years?|weeks?)`)
	futureRelRe   = regexp.MustCompile(`(?:next|future|upcoming|coming)\s+(\d+)\s+(months?|days?|years?|weeks?)`)
	futureRelInRe = regexp.MustCompile(`in\s+the\s+(?:next|future|upcoming|coming)\s+(\d+)\s+(months?|days?|years?|weeks?)`)
	combinedRelRe = regexp.MustCompile(`(?:last|past)\s+(\d+)\s+(months?|days?|years?|weeks?)\s+(?:or|and)\s+(?:next|future)\s+(\d+)\s+(months?|days?|years?|weeks?)`)

	quarterTokenRe  = regexp.MustCompile(`q(\d)\s+(\d{4})`)
	yearPrefixedRe  = regexp.MustCompile(`(?:in|during|for)\s+(20\d{2})`)
	yearBareRe      = regexp.MustCompile(`\b(20\d{2})\b`)
	numericUnitRe   = regexp.MustCompile(`(\d+)\s*(months?|days?|years?|weeks?|quarters?)`)
	monthRangeRe    = regexp.MustCompile(`between\s+(\w+)\s+and\s+(\w+)\s+(\d{4})`)
	ordinalQuarters = map[string]int{
		"first": 1, "1st": 1,
		"second": 2, "2nd": 2,
		"third": 3, "3rd": 3,
		"fourth": 4, "4th": 4,
	}
)

// UnitDays converts a quantity of a time unit to days. Months are 30 days,
// quarters 90, years 365; approximations shared with the semantic resolver.
func UnitDays(quantity int, unit string) int {
	switch strings.TrimSuffix(strings.ToLower(unit), "s") {
	case "day":
		return quantity
	case "week":
		return quantity * 7
	case "month":
		return quantity * 30
	case "quarter":
		return quantity * 90
	case "year":
		return quantity * 365
	}
	return 0
}

// RelativeDate parses explicit relative-date phrases anchored at now:
// "last 6 months", "in the next 3 months", "next 45 days", and the combined
// form "last 6 months or next 6 months".
func RelativeDate(text string, now time.Time) (DateRange, bool) {
	text = strings.ToLower(strings.TrimSpace(text))

	for _, re := range []*regexp.Regexp{pastRelRe, pastRelInRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			days := UnitDays(mustInt(m[1]), m[2])
			return DateRange{Start: now.AddDate(0, 0, -days), End: now}, true
		}
	}

	for _, re := range []*regexp.Regexp{futureRelRe, futureRelInRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			days := UnitDays(mustInt(m[1]), m[2])
			return DateRange{Start: now, End: now.AddDate(0, 0, days)}, true
		}
	}

	if m := combinedRelRe.FindStringSubmatch(text); m != nil {
		pastDays := UnitDays(mustInt(m[1]), m[2])
		futureDays := UnitDays(mustInt(m[3]), m[4])
		return DateRange{Start: now.AddDate(0, 0, -pastDays), End: now.AddDate(0, 0, futureDays)}, true
	}

	return DateRange{}, false
}

// Quarter parses "Q1 2026" and "first quarter 2026" tokens.
func Quarter(text string) (year, quarter int, ok bool) {
	text = strings.ToLower(text)

	if m := quarterTokenRe.FindStringSubmatch(text); m != nil {
		q := mustInt(m[1])
		if q >= 1 && q <= 4 {
			return mustInt(m[2]), q, true
		}
	}

	for name, num := range ordinalQuarters {
		re := regexp.MustCompile(name + `\s+quarter\s+(\d{4})`)
		if m := re.FindStringSubmatch(text); m != nil {
			return mustInt(m[1]), num, true
		}
	}
	return 0, 0, false
}

// QuarterRange returns the calendar bounds of a quarter.
func QuarterRange(year, quarter int) DateRange {
	startMonth := time.Month((quarter-1)*3 + 1)
	start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, -1)
	return DateRange{Start: start, End: end}
}

// Year extracts a single 4-digit year in 2000-2099, preferring prefixed forms
// ("in 2026", "during 2026") over bare tokens.
func Year(text string) (int, bool) {
	if m := yearPrefixedRe.FindStringSubmatch(strings.ToLower(text)); m != nil {
		return mustInt(m[1]), true
	}
	if m := yearBareRe.FindStringSubmatch(text); m != nil {
		return mustInt(m[1]), true
	}
	return 0, false
}

// Years extracts every 4-digit year token when more than one appears.
func Years(text string) ([]int, bool) {
	matches := yearBareRe.FindAllStringSubmatch(text, -1)
	if len(matches) < 2 {
		return nil, false
	}
	years := make([]int, 0, len(matches))
	for _, m := range matches {
		years = append(years, mustInt(m[1]))
	}
	return years, true
}

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// MonthRange parses "between January and March 2026" into the first day of
// the start month through the last calendar day of the end month. The end
// day is derived as first-of-next-month minus one day, which handles
// December and variable month lengths uniformly.
func MonthRange(text string) (DateRange, bool) {
	m := monthRangeRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return DateRange{}, false
	}
	startMonth, okStart := monthNames[m[1]]
	endMonth, okEnd := monthNames[m[2]]
	if !okStart || !okEnd {
		return DateRange{}, false
	}
	year := mustInt(m[3])

	start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, endMonth+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return DateRange{Start: start, End: end}, true
}

// NumericTimeframe extracts a bare "<N> <unit>" token (written numbers
// normalized first) and returns the quantity in days.
func NumericTimeframe(text string) (days int, ok bool) {
	text = NormalizeWrittenNumbers(strings.ToLower(text))
	if m := numericUnitRe.FindStringSubmatch(text); m != nil {
		return UnitDays(mustInt(m[1]), m[2]), true
	}
	return 0, false
}

func mustInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
