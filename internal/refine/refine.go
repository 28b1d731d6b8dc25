// Package refine deterministically corrects and completes a classifier
// intent. The LLM only reads text; every date, fee, and limit is recomputed
// here from the original question so a hallucinated number can never reach
// the database.
package refine

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rmone/pursuitql/internal/classify"
	"github.com/rmone/pursuitql/internal/parse"
)

// Functions whose argument shape must survive date/fee inference untouched.
// Tag and combined-filter queries keep their function name; inference only
// adds arguments.
var (
	monthRangeProtected = set(
		"get_largest_by_tags", "get_projects_by_tags",
		"get_projects_by_multiple_tags", "get_projects_by_combined_filters",
	)
	relativeDateProtected = set(
		"get_largest_by_tags", "get_projects_by_multiple_tags",
		"get_projects_by_combined_filters",
	)
	feeRangeProtected = set(
		"get_projects_by_combined_filters", "get_largest_by_tags",
		"get_projects_by_multiple_tags",
	)
	yearExemptRanking = set(
		"get_largest_projects", "get_largest_by_tags",
		"get_projects_by_multiple_tags", "get_projects_by_combined_filters",
	)
	yearExemptRegular = set(
		"get_largest_projects", "get_smallest_projects", "get_largest_by_tags",
		"get_projects_by_tags", "get_projects_by_multiple_tags",
		"get_projects_by_combined_filters",
	)
)

var rankingWords = []string{"largest", "biggest", "top", "highest", "greatest", "major"}

var statusAliases = map[string]string{
	"won": "won", "win": "won", "winning": "won", "successful": "won", "awarded": "won",
	"lost": "lost", "lose": "lost", "losing": "lost", "unsuccessful": "lost", "rejected": "lost",
	"submit": "submitted", "submitted": "submitted", "pending": "submitted", "awaiting": "submitted",
	"lead": "lead", "leads": "lead", "opportunity": "lead", "opportunities": "lead",
	"proposal": "proposal development", "proposal development": "proposal development",
	"developing": "proposal development",
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// Refiner applies the correction passes. The clock is injected so refinement
// is a pure function of (question, intent, now).
type Refiner struct {
	now func() time.Time
}

// New returns a Refiner using nowFn as its clock. A nil nowFn means
// time.Now.
func New(nowFn func() time.Time) *Refiner {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Refiner{now: nowFn}
}

// Apply runs every refinement pass in order and returns the corrected
// intent. The input intent is not mutated.
func (r *Refiner) Apply(question string, intent classify.Intent) classify.Intent {
	out := classify.Intent{
		FunctionName: intent.FunctionName,
		Arguments:    make(map[string]any, len(intent.Arguments)),
	}
	for k, v := range intent.Arguments {
		out.Arguments[k] = v
	}

	questionLower := strings.ToLower(question)
	now := r.now()

	r.materializeTimeReference(&out, now)
	normalizeStatus(&out)
	disambiguateTags(questionLower, &out)
	fixEmptyComparison(&out)
	r.inferDates(questionLower, &out, now)
	inferFeeRange(questionLower, &out)
	inferLimit(questionLower, &out)

	if out.FunctionName != intent.FunctionName {
		log.Debug().
			Str("from", intent.FunctionName).
			Str("to", out.FunctionName).
			Msg("refinement rerouted intent")
	}
	return out
}

// materializeTimeReference converts a raw time phrase the classifier handed
// over into concrete start_date/end_date arguments. The phrase is consumed
// either way; an unresolvable phrase must not leak into SQL building.
func (r *Refiner) materializeTimeReference(intent *classify.Intent, now time.Time) {
	phrase, _ := intent.Arguments["time_reference"].(string)
	delete(intent.Arguments, "time_reference")
	if phrase == "" {
		return
	}

	rng, ok := parse.ResolveTimeReference(phrase, now)
	if !ok {
		log.Debug().Str("phrase", phrase).Msg("unresolvable time reference dropped")
		return
	}
	intent.Arguments["start_date"] = rng.StartDate()
	intent.Arguments["end_date"] = rng.EndDate()
}

func normalizeStatus(intent *classify.Intent) {
	raw, ok := intent.Arguments["status"].(string)
	if !ok {
		return
	}
	if canonical, ok := statusAliases[strings.ToLower(raw)]; ok {
		intent.Arguments["status"] = canonical
	}
}

// disambiguateTags reroutes category functions to tag functions when the
// user explicitly said "tags" and did not say "category", then normalizes
// multi-tag argument shapes.
func disambiguateTags(questionLower string, intent *classify.Intent) {
	hasTagKeyword := containsAny(questionLower, "tag", "tags", "tagged", "tagged as", "tagged with")
	hasCategoryKeyword := containsAny(questionLower, "category", "categories", "request category", "market segment")

	if hasTagKeyword && !hasCategoryKeyword {
		switch intent.FunctionName {
		case "get_largest_by_category":
			value, _ := intent.Arguments["category"].(string)
			tags := parse.SplitItems(value)
			limit := intent.Arguments["limit"]

			switch {
			case len(tags) > 1:
				intent.FunctionName = "get_projects_by_multiple_tags"
				intent.Arguments = map[string]any{"tags": tags}
			case containsAny(questionLower, rankingWords...):
				intent.FunctionName = "get_largest_by_tags"
				intent.Arguments = map[string]any{"tag": first(tags)}
			default:
				intent.FunctionName = "get_projects_by_tags"
				intent.Arguments = map[string]any{"tag": first(tags)}
			}
			if limit != nil {
				intent.Arguments["limit"] = limit
			}

		case "get_projects_by_category":
			value, _ := intent.Arguments["category"].(string)
			tags := parse.SplitItems(value)
			if len(tags) > 1 {
				intent.FunctionName = "get_projects_by_multiple_tags"
				intent.Arguments = map[string]any{"tags": tags}
			} else {
				intent.FunctionName = "get_projects_by_tags"
				intent.Arguments = map[string]any{"tag": first(tags)}
			}

		case "get_projects_by_tags":
			value, _ := intent.Arguments["tag"].(string)
			tags := parse.SplitItems(value)
			if len(tags) > 1 {
				intent.FunctionName = "get_projects_by_multiple_tags"
				intent.Arguments = map[string]any{"tags": tags}
			}
		}
	}

	if intent.FunctionName == "get_projects_by_multiple_tags" {
		tags := stringSlice(intent.Arguments["tags"])
		switch {
		case len(tags) > 5:
			intent.Arguments["tags"] = tags[:5]
		case len(tags) == 1:
			intent.FunctionName = "get_projects_by_tags"
			intent.Arguments = map[string]any{"tag": tags[0]}
		default:
			intent.Arguments["tags"] = tags
		}
	}
}

// fixEmptyComparison falls back to comparing all companies when the user
// asked for a revenue comparison without naming any.
func fixEmptyComparison(intent *classify.Intent) {
	if intent.FunctionName != "compare_opco_revenue" {
		return
	}
	if len(stringSlice(intent.Arguments["companies"])) == 0 {
		intent.FunctionName = "compare_companies"
		intent.Arguments = map[string]any{}
	}
}

// inferDates recomputes every date argument from the question text. Priority:
// month range, relative date, specific quarter, multiple years, single year.
func (r *Refiner) inferDates(questionLower string, intent *classify.Intent, now time.Time) {
	monthMatched := false
	relMatched := false
	quarterMatched := false

	if rng, ok := parse.MonthRange(questionLower); ok {
		monthMatched = true
		intent.Arguments["start_date"] = rng.StartDate()
		intent.Arguments["end_date"] = rng.EndDate()
		if !monthRangeProtected[intent.FunctionName] {
			intent.FunctionName = "get_projects_by_date_range"
		}
	}

	if !monthMatched {
		if rng, ok := parse.RelativeDate(questionLower, now); ok {
			relMatched = true
			intent.Arguments["start_date"] = rng.StartDate()
			intent.Arguments["end_date"] = rng.EndDate()

			if !relativeDateProtected[intent.FunctionName] {
				if containsAny(questionLower, "largest", "top", "biggest") {
					intent.FunctionName = "get_largest_projects"
				} else {
					intent.FunctionName = "get_projects_by_date_range"
				}
			}
			delete(intent.Arguments, "start_year")
			delete(intent.Arguments, "end_year")
		}
	}

	if year, quarter, ok := parse.Quarter(questionLower); ok {
		quarterMatched = true
		if intent.FunctionName != "get_projects_by_combined_filters" {
			intent.FunctionName = "get_projects_by_quarter"
			intent.Arguments["year"] = year
			intent.Arguments["quarter"] = quarter
		}
	}

	if years, ok := parse.Years(questionLower); ok {
		if len(years) == 2 && containsAny(questionLower, "compare", "vs", "versus") {
			if intent.FunctionName != "get_projects_by_combined_filters" {
				intent.FunctionName = "compare_years"
				intent.Arguments["year1"] = years[0]
				intent.Arguments["year2"] = years[1]
			}
		} else if intent.FunctionName != "get_projects_by_combined_filters" {
			intent.FunctionName = "get_projects_by_years"
			intent.Arguments["years"] = years
		}
	} else if !monthMatched && !relMatched && !quarterMatched {
		// A matched quarter already carries the year; re-deriving the bare
		// year here would clobber the quarter function.
		if year, ok := parse.Year(questionLower); ok {
			if containsAny(questionLower, "largest", "top", "biggest") {
				if yearExemptRanking[intent.FunctionName] {
					intent.Arguments["start_year"] = year
					intent.Arguments["end_year"] = year
				}
			} else if !yearExemptRegular[intent.FunctionName] {
				intent.FunctionName = "get_projects_by_year"
				intent.Arguments["year"] = year
			}
		}
	}
}

// inferFeeRange recomputes fee bounds from the question. An open upper bound
// binds the sentinel so the parameter count stays fixed.
func inferFeeRange(questionLower string, intent *classify.Intent) {
	fr, ok := parse.ParseFeeRange(questionLower)
	if !ok {
		return
	}

	intent.Arguments["min_fee"] = fr.Min
	if fr.HasMax {
		intent.Arguments["max_fee"] = fr.Max
	} else {
		intent.Arguments["max_fee"] = float64(parse.UnboundedFee)
	}

	if feeRangeProtected[intent.FunctionName] {
		return
	}
	_, hasClient := intent.Arguments["client"]
	if hasClient || containsAny(questionLower, "tamu", "clid") {
		intent.FunctionName = "get_projects_by_client_and_fee_range"
	} else {
		intent.FunctionName = "get_projects_by_fee_range"
	}
}

func inferLimit(questionLower string, intent *classify.Intent) {
	if n, ok := parse.Limit(questionLower); ok {
		intent.Arguments["limit"] = n
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func first(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[0]
}

// stringSlice normalizes the JSON shapes an array argument can arrive in.
func stringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
