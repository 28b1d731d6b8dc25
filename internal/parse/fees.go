// Package parse contains the lexical quantity parsers: pure text-to-value
// functions for fees, fee ranges, result limits, multi-item lists, written
// numbers and calendar tokens. Every function returns a no-match indicator
// instead of an error when the pattern is absent; callers treat no-match as
// "try the next strategy".
package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// UnboundedFee is the sentinel bound parameter used when a fee range has no
// upper bound. It is persisted into queries instead of NULL so the max-fee
// clause stays a plain comparison.
const UnboundedFee = 999_999_999_999

// FeeRange is a parsed fee interval. HasMax is false for open upper bounds
// ("over 5 million").
type FeeRange struct {
	Min    float64
	Max    float64
	HasMax bool
}

var (
	millionRe  = regexp.MustCompile(`(\d+\.?\d*)\s*(?:million|m)(?:\s|$)`)
	billionRe  = regexp.MustCompile(`(\d+\.?\d*)\s*(?:billion|b)(?:\s|$)`)
	thousandRe = regexp.MustCompile(`(\d+\.?\d*)\s*(?:thousand|k)(?:\s|$)`)
	bareNumRe  = regexp.MustCompile(`\b(\d+\.?\d*)\b`)

	betweenFeeRe = regexp.MustCompile(`between\s+(\d+\.?\d*)\s+and\s+(\d+\.?\d*)\s+(million|billion|thousand|m|b|k)`)
	toFeeRe      = regexp.MustCompile(`(\d+\.?\d*)\s+to\s+(\d+\.?\d*)\s+(million|billion|thousand|m|b|k)`)
	overFeeRe    = regexp.MustCompile(`(?:over|above|more than|greater than)\s+(\d+\.?\d*)\s*(million|billion|thousand|m|b|k)?`)
	underFeeRe   = regexp.MustCompile(`(?:under|below|less than)\s+(\d+\.?\d*)\s*(million|billion|thousand|m|b|k)?`)

	limitRe = regexp.MustCompile(`(?:top|first|largest|biggest|smallest)\s+(\d+)`)
)

// FeeAmount parses a dollar amount with optional unit suffix:
// "5 million" -> 5e6, "500k" -> 5e5, "2.5 billion" -> 2.5e9,
// "1,000,000" -> 1e6. Unit multipliers are tried before the bare-number
// fallback so "5m" never parses as 5.
func FeeAmount(text string) (float64, bool) {
	text = strings.ReplaceAll(strings.ToLower(text), ",", "")

	if m := millionRe.FindStringSubmatch(text); m != nil {
		return mustFloat(m[1]) * 1e6, true
	}
	if m := billionRe.FindStringSubmatch(text); m != nil {
		return mustFloat(m[1]) * 1e9, true
	}
	if m := thousandRe.FindStringSubmatch(text); m != nil {
		return mustFloat(m[1]) * 1e3, true
	}
	if m := bareNumRe.FindStringSubmatch(text); m != nil {
		return mustFloat(m[1]), true
	}
	return 0, false
}

// ParseFeeRange parses fee-range phrases. Closed forms ("between X and Y",
// "X to Y") are tried before open-bound forms ("over X", "under X").
func ParseFeeRange(text string) (FeeRange, bool) {
	text = strings.ToLower(text)

	if m := betweenFeeRe.FindStringSubmatch(text); m != nil {
		mult := unitMultiplier(m[3])
		return FeeRange{Min: mustFloat(m[1]) * mult, Max: mustFloat(m[2]) * mult, HasMax: true}, true
	}
	if m := toFeeRe.FindStringSubmatch(text); m != nil {
		mult := unitMultiplier(m[3])
		return FeeRange{Min: mustFloat(m[1]) * mult, Max: mustFloat(m[2]) * mult, HasMax: true}, true
	}
	if m := overFeeRe.FindStringSubmatch(text); m != nil {
		return FeeRange{Min: mustFloat(m[1]) * unitMultiplier(m[2])}, true
	}
	if m := underFeeRe.FindStringSubmatch(text); m != nil {
		return FeeRange{Min: 0, Max: mustFloat(m[1]) * unitMultiplier(m[2]), HasMax: true}, true
	}
	return FeeRange{}, false
}

func unitMultiplier(unit string) float64 {
	switch strings.TrimSpace(strings.ToLower(unit)) {
	case "million", "m":
		return 1e6
	case "billion", "b":
		return 1e9
	case "thousand", "k":
		return 1e3
	}
	return 1
}

// Limit parses result-limit phrases like "top 10", "first 5", "smallest 20".
func Limit(text string) (int, bool) {
	if m := limitRe.FindStringSubmatch(strings.ToLower(text)); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

// maxItems caps multi-item lists; more than five ILIKE conditions per filter
// is never useful against this dataset.
const maxItems = 5

// SplitItems splits "Rail and Transit, Infrastructure" style lists on
// " and ", "&" and commas, trims, de-duplicates case-insensitively while
// preserving first-seen order, and truncates to five items.
func SplitItems(text string) []string {
	text = strings.ReplaceAll(text, " and ", ",")
	text = strings.ReplaceAll(text, " & ", ",")
	text = strings.ReplaceAll(text, "&", ",")

	seen := make(map[string]struct{})
	var items []string
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key := strings.ToLower(part)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, part)
		if len(items) == maxItems {
			break
		}
	}
	return items
}

// writtenNumbers maps whole-word number names to digit strings. Covers one
// through twenty plus the tens up to ninety; anything larger ("a hundred
// days") is out of scope.
var writtenNumbers = []struct {
	word  string
	digit string
}{
	{"one", "1"}, {"two", "2"}, {"three", "3"}, {"four", "4"}, {"five", "5"},
	{"six", "6"}, {"seven", "7"}, {"eight", "8"}, {"nine", "9"}, {"ten", "10"},
	{"eleven", "11"}, {"twelve", "12"}, {"thirteen", "13"}, {"fourteen", "14"},
	{"fifteen", "15"}, {"sixteen", "16"}, {"seventeen", "17"}, {"eighteen", "18"},
	{"nineteen", "19"}, {"twenty", "20"}, {"thirty", "30"}, {"forty", "40"},
	{"fifty", "50"}, {"sixty", "60"}, {"seventy", "70"}, {"eighty", "80"},
	{"ninety", "90"},
}

var writtenNumberRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(writtenNumbers))
	for i, wn := range writtenNumbers {
		res[i] = regexp.MustCompile(`(?i)\b` + wn.word + `\b`)
	}
	return res
}()

// NormalizeWrittenNumbers replaces written number words with digits so that
// phrases like "ten months" reach the numeric-unit extractors.
func NormalizeWrittenNumbers(text string) string {
	for i, wn := range writtenNumbers {
		text = writtenNumberRes[i].ReplaceAllString(text, wn.digit)
	}
	return text
}

func mustFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
