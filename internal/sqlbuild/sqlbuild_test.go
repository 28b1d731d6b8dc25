package sqlbuild

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmone/pursuitql/internal/catalog"
	"github.com/rmone/pursuitql/internal/parse"
)

const testSizeCase = `CASE WHEN CAST(NULLIF("Fee", '') AS NUMERIC) < 100000 THEN 'Micro (<$0.1M)' ELSE 'Mega' END`

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

// fullArgs supplies a plausible value for every argument name any template
// declares or accepts optionally.
func fullArgs() map[string]any {
	return map[string]any{
		"year": 2026, "quarter": 1, "year1": 2025, "year2": 2026,
		"years":      []any{2025.0, 2026.0},
		"start_year": 2025, "end_year": 2026,
		"start_date": "2026-01-01", "end_date": "2026-12-31",
		"limit":      10,
		"state_code": "TX",
		"category":   "healthcare", "categories": []any{"healthcare", "transit"},
		"project_type": "bridge",
		"tag":          "rail", "tags": []any{"rail", "transit"},
		"company": "Company G", "companies": []any{"Company G", "Company B"},
		"client": "TAMU", "status": "won",
		"min_fee": 1_000_000.0, "max_fee": 5_000_000.0,
		"min_win": 50, "max_win": 90,
		"project_name": "Campus Bridge", "internal_id": "P-100",
		"contact_name":     "Pat",
		"reference_client": "TAMU", "reference_project": "Campus Bridge",
		"size": "Mega",
	}
}

// Every template must produce SQL where the highest placeholder number equals
// the number of bound values, with no leftover markers or slots.
func TestEveryTemplateBindsConsistently(t *testing.T) {
	for _, name := range catalog.Names() {
		t.Run(name, func(t *testing.T) {
			q, err := Build(name, fullArgs(), testSizeCase)
			require.NoError(t, err)

			assert.NotContains(t, q.SQL, "?")
			assert.NotContains(t, q.SQL, "{")

			max := 0
			for _, m := range placeholderRe.FindAllStringSubmatch(q.SQL, -1) {
				var n int
				fmt.Sscanf(m[1], "%d", &n)
				if n > max {
					max = n
				}
			}
			assert.Equal(t, len(q.Args), max, "placeholder count vs bound args")
		})
	}
}

func TestBuildUnknownFunction(t *testing.T) {
	_, err := Build("drop_all_tables", nil, testSizeCase)
	require.ErrorIs(t, err, ErrUnknownFunction)
}

func TestBuildYearQuery(t *testing.T) {
	q, err := Build("get_projects_by_year", map[string]any{"year": 2026.0}, testSizeCase)
	require.NoError(t, err)
	assert.Contains(t, q.SQL, `EXTRACT(YEAR FROM "Start Date") = $1`)
	assert.Equal(t, []any{2026}, q.Args)
}

func TestBuildLargestProjectsWithYearWindow(t *testing.T) {
	q, err := Build("get_largest_projects", map[string]any{
		"start_year": 2026, "end_year": 2026, "limit": 5,
	}, testSizeCase)
	require.NoError(t, err)

	assert.Contains(t, q.SQL, `"Start Date" >= $1::date`)
	assert.Contains(t, q.SQL, `"Start Date" <= $2::date`)
	assert.Contains(t, q.SQL, "LIMIT $3")
	assert.Equal(t, []any{"2026-01-01", "2026-12-31", 5}, q.Args)
}

func TestBuildLargestProjectsExplicitDatesWin(t *testing.T) {
	q, err := Build("get_largest_projects", map[string]any{
		"start_date": "2026-02-10", "end_date": "2026-08-10",
		"start_year": 2020, "end_year": 2030,
	}, testSizeCase)
	require.NoError(t, err)
	assert.Equal(t, []any{"2026-02-10", "2026-08-10"}, q.Args)
	assert.NotContains(t, q.SQL, "LIMIT")
}

func TestBuildFeeRangeSentinelSkipsUpperBound(t *testing.T) {
	q, err := Build("get_projects_by_fee_range", map[string]any{
		"min_fee": 5_000_000.0,
		"max_fee": float64(parse.UnboundedFee),
	}, testSizeCase)
	require.NoError(t, err)

	assert.Contains(t, q.SQL, `CAST("Fee" AS NUMERIC) >= $1`)
	assert.NotContains(t, q.SQL, "<=")
	assert.Equal(t, []any{5_000_000.0}, q.Args)
}

func TestBuildFeeRangeBoundedUpper(t *testing.T) {
	q, err := Build("get_projects_by_fee_range", map[string]any{
		"min_fee": 1_000_000.0, "max_fee": 5_000_000.0,
	}, testSizeCase)
	require.NoError(t, err)
	assert.Contains(t, q.SQL, `CAST("Fee" AS NUMERIC) <= $2`)
	assert.Equal(t, []any{1_000_000.0, 5_000_000.0}, q.Args)
}

func TestBuildSizeQueryInjectsCaseExpression(t *testing.T) {
	q, err := Build("get_projects_by_size", map[string]any{"size": "Mega"}, testSizeCase)
	require.NoError(t, err)

	assert.Contains(t, q.SQL, "CASE WHEN")
	assert.Contains(t, q.SQL, "ILIKE $1")
	assert.Equal(t, []any{"%Mega%"}, q.Args)
}

func TestBuildMultipleTags(t *testing.T) {
	q, err := Build("get_projects_by_multiple_tags", map[string]any{
		"tags": []any{"rail", "transit"}, "limit": 20,
	}, testSizeCase)
	require.NoError(t, err)

	assert.Contains(t, q.SQL, `AND "Tags" ILIKE $1 AND "Tags" ILIKE $2`)
	assert.Equal(t, []any{"%rail%", "%transit%", 20}, q.Args)
}

func TestBuildStateCodeBindsExact(t *testing.T) {
	q, err := Build("get_projects_by_state", map[string]any{"state_code": "TX"}, testSizeCase)
	require.NoError(t, err)
	assert.Equal(t, []any{"TX"}, q.Args)
}

func TestBuildMissingStringBindsMatchAll(t *testing.T) {
	q, err := Build("get_projects_by_company", nil, testSizeCase)
	require.NoError(t, err)
	assert.Equal(t, []any{"%%"}, q.Args)
}

func TestBuildReferenceFallbacks(t *testing.T) {
	// internal_id falls back to project_name when absent.
	q, err := Build("get_project_by_id", map[string]any{"project_name": "Campus Bridge"}, testSizeCase)
	require.NoError(t, err)
	assert.Equal(t, []any{"%Campus Bridge%", "%Campus Bridge%"}, q.Args)

	// reference_client falls back to client, reference_project to project_name.
	q, err = Build("get_projects_by_shared_tags", map[string]any{
		"client": "TAMU", "project_name": "Campus Bridge",
	}, testSizeCase)
	require.NoError(t, err)
	assert.Equal(t, []any{"%TAMU%", "%Campus Bridge%"}, q.Args)
}

func TestBuildArrayWildcardWrapping(t *testing.T) {
	q, err := Build("compare_opco_revenue", map[string]any{
		"companies": []any{"Company G", "Company B"},
	}, testSizeCase)
	require.NoError(t, err)
	require.Len(t, q.Args, 1)
	assert.Equal(t, []string{"%Company G%", "%Company B%"}, q.Args[0])
}

func TestBuildYearsArrayBindsInts(t *testing.T) {
	q, err := Build("get_projects_by_years", map[string]any{
		"years": []any{2025.0, 2026.0},
	}, testSizeCase)
	require.NoError(t, err)
	require.Len(t, q.Args, 1)
	assert.Equal(t, []int{2025, 2026}, q.Args[0])
}

func TestBuildCombinedFiltersFull(t *testing.T) {
	q, err := Build(catalog.CombinedFiltersFunction, map[string]any{
		"size":       "Large",
		"categories": []any{"healthcare", "transit"},
		"tags":       []any{"rail"},
		"status":     "won",
		"company":    "Company G",
		"state_code": "TX",
		"min_fee":    1_000_000.0, "max_fee": 50_000_000.0,
		"min_win": 40, "max_win": 90,
		"start_date": "2026-01-01", "end_date": "2026-12-31",
		"limit": 25,
	}, testSizeCase)
	require.NoError(t, err)

	assert.Equal(t, []any{
		"%Large%",
		"%healthcare%", "%transit%",
		"%rail%",
		"%won%",
		"%Company G%",
		"TX",
		1_000_000.0, 50_000_000.0,
		40, 90,
		"2026-01-01", "2026-12-31",
		25,
	}, q.Args)

	assert.Contains(t, q.SQL, `("Request Category" ILIKE $2 OR "Request Category" ILIKE $3)`)
	assert.Contains(t, q.SQL, `"State Lookup" = $7`)
	assert.Contains(t, q.SQL, "LIMIT $14")
	assert.NotContains(t, q.SQL, "{")
}

func TestBuildCombinedFiltersEmpty(t *testing.T) {
	q, err := Build(catalog.CombinedFiltersFunction, nil, testSizeCase)
	require.NoError(t, err)

	assert.Empty(t, q.Args)
	assert.NotContains(t, q.SQL, "{")
	assert.NotContains(t, q.SQL, "$")
	assert.Contains(t, q.SQL, "WHERE 1=1")
}

func TestBuildCombinedFiltersPartial(t *testing.T) {
	q, err := Build(catalog.CombinedFiltersFunction, map[string]any{
		"status": "lead",
		"limit":  10,
	}, testSizeCase)
	require.NoError(t, err)
	assert.Equal(t, []any{"%lead%", 10}, q.Args)
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "a = $1 AND b = $2", rebind("a = ? AND b = ?"))
	assert.Equal(t, "no markers", rebind("no markers"))
}
