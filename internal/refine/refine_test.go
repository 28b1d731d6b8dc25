package refine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmone/pursuitql/internal/classify"
	"github.com/rmone/pursuitql/internal/parse"
)

var testNow = time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)

func testRefiner() *Refiner {
	return New(func() time.Time { return testNow })
}

func intent(fn string, args map[string]any) classify.Intent {
	if args == nil {
		args = map[string]any{}
	}
	return classify.Intent{FunctionName: fn, Arguments: args}
}

func TestTimeReferenceMaterialized(t *testing.T) {
	got := testRefiner().Apply(
		"mega projects starting in the next ten months",
		intent("get_projects_by_combined_filters", map[string]any{
			"size":           "Mega",
			"time_reference": "next ten months",
		}),
	)

	assert.Equal(t, "get_projects_by_combined_filters", got.FunctionName)
	assert.NotContains(t, got.Arguments, "time_reference")
	assert.Equal(t, testNow.Format(parse.DateLayout), got.Arguments["start_date"])
	assert.Equal(t, testNow.AddDate(0, 0, 300).Format(parse.DateLayout), got.Arguments["end_date"])
	assert.Equal(t, "Mega", got.Arguments["size"])
}

func TestUnresolvableTimeReferenceDropped(t *testing.T) {
	got := testRefiner().Apply(
		"projects whenever",
		intent("get_projects_by_combined_filters", map[string]any{"time_reference": "whenever it suits"}),
	)
	assert.NotContains(t, got.Arguments, "time_reference")
	assert.NotContains(t, got.Arguments, "start_date")
}

func TestStatusNormalization(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Winning", "won"},
		{"awarded", "won"},
		{"rejected", "lost"},
		{"pending", "submitted"},
		{"opportunities", "lead"},
		{"developing", "proposal development"},
		{"Active", "Active"},
	}
	for _, tt := range tests {
		got := testRefiner().Apply("status query", intent("get_projects_by_status", map[string]any{"status": tt.raw}))
		assert.Equal(t, tt.want, got.Arguments["status"], tt.raw)
	}
}

func TestTagOverrideRanking(t *testing.T) {
	got := testRefiner().Apply(
		"largest projects with healthcare tags",
		intent("get_largest_by_category", map[string]any{"category": "healthcare"}),
	)
	assert.Equal(t, "get_largest_by_tags", got.FunctionName)
	assert.Equal(t, "healthcare", got.Arguments["tag"])
}

func TestTagOverrideMultiTag(t *testing.T) {
	got := testRefiner().Apply(
		"projects with Rail and Transit tags",
		intent("get_projects_by_category", map[string]any{"category": "Rail and Transit"}),
	)
	assert.Equal(t, "get_projects_by_multiple_tags", got.FunctionName)
	assert.Equal(t, []string{"Rail", "Transit"}, got.Arguments["tags"])
}

func TestTagOverrideSkippedWhenCategoryMentioned(t *testing.T) {
	got := testRefiner().Apply(
		"healthcare category, not tags",
		intent("get_projects_by_category", map[string]any{"category": "healthcare"}),
	)
	assert.Equal(t, "get_projects_by_category", got.FunctionName)
}

func TestMultiTagNormalization(t *testing.T) {
	got := testRefiner().Apply(
		"projects with a, b, c, d, e, f tags",
		intent("get_projects_by_multiple_tags", map[string]any{
			"tags": []any{"a", "b", "c", "d", "e", "f"},
		}),
	)
	assert.Len(t, got.Arguments["tags"], 5)

	got = testRefiner().Apply(
		"projects with rail tags",
		intent("get_projects_by_multiple_tags", map[string]any{"tags": []any{"rail"}}),
	)
	assert.Equal(t, "get_projects_by_tags", got.FunctionName)
	assert.Equal(t, "rail", got.Arguments["tag"])
}

func TestEmptyComparisonFallback(t *testing.T) {
	got := testRefiner().Apply(
		"compare revenue",
		intent("compare_opco_revenue", map[string]any{"companies": []any{}}),
	)
	assert.Equal(t, "compare_companies", got.FunctionName)
	assert.Empty(t, got.Arguments)
}

func TestRelativeDateReroutesRanking(t *testing.T) {
	got := testRefiner().Apply(
		"largest projects in last 6 months",
		intent("get_largest_projects", nil),
	)
	assert.Equal(t, "get_largest_projects", got.FunctionName)
	assert.Equal(t, testNow.AddDate(0, 0, -180).Format(parse.DateLayout), got.Arguments["start_date"])
	assert.Equal(t, testNow.Format(parse.DateLayout), got.Arguments["end_date"])
}

func TestRelativeDateReroutesPlainQuery(t *testing.T) {
	got := testRefiner().Apply(
		"projects in the next 3 months",
		intent("get_projects_by_category", map[string]any{"category": "healthcare"}),
	)
	assert.Equal(t, "get_projects_by_date_range", got.FunctionName)
}

func TestRelativeDateKeepsProtectedFunctions(t *testing.T) {
	got := testRefiner().Apply(
		"largest healthcare tags in last 6 months",
		intent("get_largest_by_tags", map[string]any{"tag": "healthcare"}),
	)
	assert.Equal(t, "get_largest_by_tags", got.FunctionName)
	assert.Contains(t, got.Arguments, "start_date")
}

func TestMonthRangeInference(t *testing.T) {
	got := testRefiner().Apply(
		"projects between January and March 2026",
		intent("get_projects_by_category", map[string]any{"category": "healthcare"}),
	)
	assert.Equal(t, "get_projects_by_date_range", got.FunctionName)
	assert.Equal(t, "2026-01-01", got.Arguments["start_date"])
	assert.Equal(t, "2026-03-31", got.Arguments["end_date"])
}

func TestQuarterInference(t *testing.T) {
	got := testRefiner().Apply("projects in Q1 2026", intent("get_projects_by_year", map[string]any{"year": 2026}))
	assert.Equal(t, "get_projects_by_quarter", got.FunctionName)
	assert.Equal(t, 2026, got.Arguments["year"])
	assert.Equal(t, 1, got.Arguments["quarter"])
}

func TestCompareYears(t *testing.T) {
	got := testRefiner().Apply("compare 2025 vs 2026", intent("compare_years", nil))
	assert.Equal(t, "compare_years", got.FunctionName)
	assert.Equal(t, 2025, got.Arguments["year1"])
	assert.Equal(t, 2026, got.Arguments["year2"])
}

func TestMultipleYearsWithoutComparison(t *testing.T) {
	got := testRefiner().Apply("projects in 2026 and 2027", intent("get_projects_by_years", nil))
	assert.Equal(t, "get_projects_by_years", got.FunctionName)
	assert.Equal(t, []int{2026, 2027}, got.Arguments["years"])
}

func TestSingleYearRankingAttachesWindow(t *testing.T) {
	got := testRefiner().Apply("largest projects in 2026", intent("get_largest_projects", nil))
	assert.Equal(t, "get_largest_projects", got.FunctionName)
	assert.Equal(t, 2026, got.Arguments["start_year"])
	assert.Equal(t, 2026, got.Arguments["end_year"])
}

func TestSingleYearRegularQuery(t *testing.T) {
	got := testRefiner().Apply("healthcare projects in 2026", intent("get_projects_by_category", map[string]any{"category": "healthcare"}))
	assert.Equal(t, "get_projects_by_year", got.FunctionName)
	assert.Equal(t, 2026, got.Arguments["year"])
}

func TestFeeRangeOpenBoundSentinel(t *testing.T) {
	got := testRefiner().Apply("projects over 5 million", intent("get_projects_by_fee_range", nil))
	assert.Equal(t, "get_projects_by_fee_range", got.FunctionName)
	assert.Equal(t, 5_000_000.0, got.Arguments["min_fee"])
	assert.Equal(t, float64(parse.UnboundedFee), got.Arguments["max_fee"])
}

func TestFeeRangeWithClient(t *testing.T) {
	got := testRefiner().Apply(
		"TAMU projects between 10 and 50 million",
		intent("get_projects_by_client", map[string]any{"client": "TAMU"}),
	)
	assert.Equal(t, "get_projects_by_client_and_fee_range", got.FunctionName)
	assert.Equal(t, 10_000_000.0, got.Arguments["min_fee"])
	assert.Equal(t, 50_000_000.0, got.Arguments["max_fee"])
}

func TestLimitInference(t *testing.T) {
	got := testRefiner().Apply("top 10 projects over 5 million", intent("get_largest_projects", nil))
	assert.Equal(t, 10, got.Arguments["limit"])
	assert.Equal(t, "get_projects_by_fee_range", got.FunctionName)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := intent("get_projects_by_status", map[string]any{"status": "winning"})
	_ = testRefiner().Apply("won projects", in)
	assert.Equal(t, "winning", in.Arguments["status"])
}

// Refinement is a pure function of (question, intent, clock): applying it to
// its own output changes nothing.
func TestApplyIdempotent(t *testing.T) {
	cases := []struct {
		question string
		in       classify.Intent
	}{
		{"largest projects in last 6 months", intent("get_largest_projects", nil)},
		{"top 10 projects over 5 million", intent("get_largest_projects", nil)},
		{"compare 2025 vs 2026", intent("compare_years", nil)},
		{"projects between January and March 2026", intent("get_projects_by_category", map[string]any{"category": "x"})},
		{"won projects", intent("get_projects_by_status", map[string]any{"status": "winning"})},
	}
	r := testRefiner()
	for _, tc := range cases {
		once := r.Apply(tc.question, tc.in)
		twice := r.Apply(tc.question, once)
		require.Equal(t, once, twice, tc.question)
	}
}
