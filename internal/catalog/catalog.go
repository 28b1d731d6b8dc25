// Package catalog holds the fixed set of SQL query templates the engine can
// execute, plus the capability definitions advertised to the intent
// classifier. Templates use ? value markers; the builder rebinds them to
// PostgreSQL positional placeholders and supplies every value as a bound
// parameter, including dates and limits.
package catalog

import "sort"

// ParamKind controls how the builder coerces an argument before binding.
type ParamKind int

const (
	// ParamInt coerces to int64, binding 0 when missing or malformed.
	ParamInt ParamKind = iota
	// ParamFloat coerces to float64, binding 0 when missing or malformed.
	ParamFloat
	// ParamStr binds the value wrapped in % wildcards for ILIKE matching.
	// Missing values bind "%%", which matches everything.
	ParamStr
	// ParamExactStr binds the value verbatim, no wildcard wrapping.
	ParamExactStr
	// ParamArray binds a slice. Elements of "categories" and "companies"
	// are wildcard-wrapped; other arrays bind verbatim.
	ParamArray
)

// ParamSpec declares one required template parameter.
type ParamSpec struct {
	Name string
	Kind ParamKind
}

// ChartType selects the visualization hint attached to results.
type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartPie  ChartType = "pie"
	ChartNone ChartType = "none"
)

// Template is one executable query shape. SQL may contain ? markers for the
// declared Params (in order) and {slot} markers expanded by the builder:
//
//	{date_filter}         bound start/end date or year window
//	{limit_clause}        LIMIT with a bound value
//	{max_fee_filter}      bound upper fee bound, skipped at the sentinel
//	{status_filter}       bound ILIKE status condition
//	{tag_conditions}      AND-of-ILIKE conditions, one per requested tag
//	{size_case_statement} the tier CASE expression from the size calculator
//
// Combined-filter slots ({size_filter} through {win_filter}) are exclusive
// to get_projects_by_combined_filters.
type Template struct {
	Name       string
	SQL        string
	Params     []ParamSpec
	Optional   []string
	ChartType  ChartType
	ChartField string
}

// CombinedFiltersFunction is the kitchen-sink template that accepts any mix
// of filters. The builder handles it through a dedicated clause path.
const CombinedFiltersFunction = "get_projects_by_combined_filters"

var templates = map[string]Template{

	// Date queries.

	"get_projects_by_year": {
		SQL: `SELECT * FROM "Sample"
			WHERE EXTRACT(YEAR FROM "Start Date") = ?
			AND "Start Date" > '2000-01-01'
			ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC) DESC NULLS LAST`,
		Params:     []ParamSpec{{"year", ParamInt}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_projects_by_date_range": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Start Date" >= ?::date
			AND "Start Date" <= ?::date
			AND "Start Date" > '2000-01-01'
			ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC) DESC NULLS LAST`,
		Params:     []ParamSpec{{"start_date", ParamExactStr}, {"end_date", ParamExactStr}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_projects_by_quarter": {
		SQL: `SELECT * FROM "Sample"
			WHERE EXTRACT(YEAR FROM "Start Date") = ?
			AND EXTRACT(QUARTER FROM "Start Date") = ?
			AND "Start Date" > '2000-01-01'
			ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC) DESC NULLS LAST`,
		Params:     []ParamSpec{{"year", ParamInt}, {"quarter", ParamInt}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_projects_by_years": {
		SQL: `SELECT * FROM "Sample"
			WHERE EXTRACT(YEAR FROM "Start Date") = ANY(?)
			AND "Start Date" > '2000-01-01'
			ORDER BY "Start Date", CAST(NULLIF("Fee", '') AS NUMERIC) DESC NULLS LAST`,
		Params:     []ParamSpec{{"years", ParamArray}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	// Ranking queries.

	"get_largest_projects": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Fee" IS NOT NULL AND "Fee" != ''
			{date_filter}
			ORDER BY CAST("Fee" AS NUMERIC) DESC
			{limit_clause}`,
		Optional:   []string{"start_year", "end_year", "limit", "start_date", "end_date"},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_smallest_projects": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Fee" IS NOT NULL AND "Fee" != ''
			AND CAST("Fee" AS NUMERIC) > 0
			{date_filter}
			ORDER BY CAST("Fee" AS NUMERIC) ASC
			{limit_clause}`,
		Optional:   []string{"start_year", "end_year", "limit", "start_date", "end_date"},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_largest_in_region": {
		SQL: `SELECT * FROM "Sample"
			WHERE "State Lookup" = ?::text
			AND "Fee" IS NOT NULL AND "Fee" != ''
			ORDER BY CAST("Fee" AS NUMERIC) DESC
			{limit_clause}`,
		Params:     []ParamSpec{{"state_code", ParamExactStr}},
		Optional:   []string{"limit"},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_largest_by_category": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Request Category" ILIKE ?
			AND "Fee" IS NOT NULL AND "Fee" != ''
			ORDER BY CAST("Fee" AS NUMERIC) DESC
			{limit_clause}`,
		Params:     []ParamSpec{{"category", ParamStr}},
		Optional:   []string{"limit"},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	// Category and type queries.

	"get_projects_by_category": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Request Category" ILIKE ?
			ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC) DESC NULLS LAST`,
		Params:     []ParamSpec{{"category", ParamStr}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_projects_by_project_type": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Project Type" ILIKE ?
			ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC) DESC NULLS LAST`,
		Params:     []ParamSpec{{"project_type", ParamStr}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_projects_by_multiple_categories": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Request Category" ILIKE ANY(?)
			ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC) DESC NULLS LAST`,
		Params:     []ParamSpec{{"categories", ParamArray}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	// Tag queries.

	"get_largest_by_tags": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Tags" ILIKE ?
			AND "Fee" IS NOT NULL AND "Fee" != ''
			ORDER BY CAST("Fee" AS NUMERIC) DESC
			{limit_clause}`,
		Params:     []ParamSpec{{"tag", ParamStr}},
		Optional:   []string{"limit"},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_projects_by_tags": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Tags" ILIKE ?
			ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC) DESC NULLS LAST`,
		Params:     []ParamSpec{{"tag", ParamStr}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_top_tags": {
		SQL: `SELECT TRIM(UNNEST(string_to_array("Tags", ','))) as tag,
			COUNT(*) as project_count,
			SUM(CAST(NULLIF("Fee", '') AS NUMERIC)) as total_value
			FROM "Sample"
			WHERE "Tags" IS NOT NULL AND "Tags" != ''
			GROUP BY tag
			HAVING TRIM(UNNEST(string_to_array("Tags", ','))) != ''
			ORDER BY total_value DESC NULLS LAST
			{limit_clause}`,
		Optional:   []string{"limit"},
		ChartType:  ChartBar,
		ChartField: "total_value",
	},

	"get_top_tags_by_date": {
		SQL: `SELECT TRIM(UNNEST(string_to_array("Tags", ','))) as tag,
			COUNT(*) as project_count,
			SUM(CAST(NULLIF("Fee", '') AS NUMERIC)) as total_value
			FROM "Sample"
			WHERE "Tags" IS NOT NULL AND "Tags" != ''
			AND EXTRACT(YEAR FROM "Start Date") >= ?
			AND EXTRACT(YEAR FROM "Start Date") <= ?
			GROUP BY tag
			HAVING TRIM(UNNEST(string_to_array("Tags", ','))) != ''
			ORDER BY project_count DESC, total_value DESC NULLS LAST
			{limit_clause}`,
		Params:     []ParamSpec{{"start_year", ParamInt}, {"end_year", ParamInt}},
		Optional:   []string{"limit"},
		ChartType:  ChartBar,
		ChartField: "project_count",
	},

	"get_projects_by_shared_tags": {
		SQL: `WITH reference_tags AS (
			SELECT UNNEST(string_to_array("Tags", ',')) as tag
			FROM "Sample"
			WHERE "Client" ILIKE ? OR "Project Name"::text ILIKE ?
			LIMIT 1
		)
		SELECT DISTINCT s.*
		FROM "Sample" s, reference_tags rt
		WHERE s."Tags" ILIKE '%' || rt.tag || '%'
		ORDER BY CAST(NULLIF(s."Fee", '') AS NUMERIC) DESC NULLS LAST
		{limit_clause}`,
		Params:     []ParamSpec{{"reference_client", ParamStr}, {"reference_project", ParamStr}},
		Optional:   []string{"limit"},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_projects_by_multiple_tags": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Tags" IS NOT NULL
			AND "Tags" != ''
			{tag_conditions}
			ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC) DESC NULLS LAST
			{limit_clause}`,
		Optional:   []string{"tags", "limit"},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	// Company queries.

	"get_projects_by_company": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Company" ILIKE ?
			ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC) DESC NULLS LAST`,
		Params:     []ParamSpec{{"company", ParamStr}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"compare_companies": {
		SQL: `SELECT "Company",
			COUNT(*) as project_count,
			SUM(CAST(NULLIF("Fee", '') AS NUMERIC)) as total_revenue,
			AVG(CAST(NULLIF("Fee", '') AS NUMERIC)) as avg_project_size,
			AVG(CAST(NULLIF("Win %", '') AS NUMERIC)) as avg_win_rate
			FROM "Sample"
			WHERE "Company" IS NOT NULL AND "Company" != ''
			GROUP BY "Company"
			ORDER BY total_revenue DESC NULLS LAST`,
		ChartType:  ChartBar,
		ChartField: "total_revenue",
	},

	"compare_opco_revenue": {
		SQL: `SELECT "Company",
			COUNT(*) as project_count,
			SUM(CAST(NULLIF("Fee", '') AS NUMERIC)) as total_revenue,
			SUM(CAST(NULLIF("Fee", '') AS NUMERIC) * CAST(NULLIF("Win %", '') AS NUMERIC) / 100) as predicted_revenue,
			AVG(CAST(NULLIF("Win %", '') AS NUMERIC)) as avg_win_rate
			FROM "Sample"
			WHERE ("Company" ILIKE ANY(?))
			AND "Status" NOT IN ('Won', 'Lost')
			GROUP BY "Company"
			ORDER BY predicted_revenue DESC NULLS LAST`,
		Params:     []ParamSpec{{"companies", ParamArray}},
		ChartType:  ChartBar,
		ChartField: "predicted_revenue",
	},

	// Client queries.

	"get_projects_by_client": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Client" ILIKE ?
			ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC) DESC NULLS LAST`,
		Params:     []ParamSpec{{"client", ParamStr}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_projects_by_client_and_fee_range": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Client" ILIKE ?
			AND CAST(NULLIF("Fee", '') AS NUMERIC) >= ?
			AND CAST(NULLIF("Fee", '') AS NUMERIC) <= ?
			ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC) DESC`,
		Params:     []ParamSpec{{"client", ParamStr}, {"min_fee", ParamFloat}, {"max_fee", ParamFloat}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_client_win_rates": {
		SQL: `SELECT "Client",
			COUNT(*) as project_count,
			AVG(CAST(NULLIF("Win %", '') AS NUMERIC)) as avg_win_rate,
			SUM(CAST(NULLIF("Fee", '') AS NUMERIC)) as total_value
			FROM "Sample"
			WHERE "Client" ILIKE ?
			AND "Win %" IS NOT NULL AND "Win %" != ''
			GROUP BY "Client"
			ORDER BY avg_win_rate DESC`,
		Params:     []ParamSpec{{"client", ParamStr}},
		ChartType:  ChartBar,
		ChartField: "avg_win_rate",
	},

	// Status queries.

	"get_projects_by_status": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Status" ILIKE ?
			ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC) DESC NULLS LAST`,
		Params:     []ParamSpec{{"status", ParamStr}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_status_breakdown": {
		SQL: `SELECT "Status",
			COUNT(*) as project_count,
			SUM(CAST(NULLIF("Fee", '') AS NUMERIC)) as total_value,
			AVG(CAST(NULLIF("Win %", '') AS NUMERIC)) as avg_win_rate
			FROM "Sample"
			GROUP BY "Status"
			ORDER BY total_value DESC NULLS LAST`,
		ChartType:  ChartPie,
		ChartField: "project_count",
	},

	"get_overoptimistic_losses": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Status" ~* 'lost'
			AND CAST(NULLIF("Win %", '') AS NUMERIC) > 70
			ORDER BY CAST(NULLIF("Win %", '') AS NUMERIC) DESC`,
		ChartType:  ChartBar,
		ChartField: "Win %",
	},

	"get_top_predicted_wins": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Status" NOT IN ('Won', 'Lost')
			AND "Win %" IS NOT NULL AND "Win %" != ''
			AND CAST(NULLIF("Win %", '') AS NUMERIC) > 50
			AND "Start Date" >= CURRENT_DATE
			AND "Start Date" <= CURRENT_DATE + INTERVAL '6 months'
			ORDER BY CAST(NULLIF("Win %", '') AS NUMERIC) DESC,
				CAST(NULLIF("Fee", '') AS NUMERIC) DESC
			LIMIT ?`,
		Params:     []ParamSpec{{"limit", ParamInt}},
		ChartType:  ChartBar,
		ChartField: "Win %",
	},

	"get_projects_by_status_and_win_rate": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Status" ILIKE ?
			AND "Win %" IS NOT NULL AND "Win %" != ''
			AND CAST(NULLIF("Win %", '') AS NUMERIC) > ?
			ORDER BY CAST(NULLIF("Win %", '') AS NUMERIC) DESC`,
		Params:     []ParamSpec{{"status", ParamStr}, {"min_win", ParamInt}},
		ChartType:  ChartBar,
		ChartField: "Win %",
	},

	// Win rate queries.

	"get_project_win_rate": {
		SQL: `SELECT "Project Name", "Win %", "Status", "Fee",
			"Request Category", "Company", "Point Of Contact", "Tags"
			FROM "Sample"
			WHERE "Project Name"::text ILIKE ?`,
		Params:    []ParamSpec{{"project_name", ParamStr}},
		ChartType: ChartNone,
	},

	"get_projects_by_win_range": {
		SQL: `SELECT * FROM "Sample"
			WHERE CAST(NULLIF("Win %", '') AS NUMERIC) >= ?
			AND CAST(NULLIF("Win %", '') AS NUMERIC) <= ?
			ORDER BY CAST(NULLIF("Win %", '') AS NUMERIC) DESC`,
		Params:     []ParamSpec{{"min_win", ParamInt}, {"max_win", ParamInt}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"predict_win_probability": {
		SQL: `SELECT
			p."Project Name",
			CAST(NULLIF(p."Win %", '') AS NUMERIC) as "Win_Percentage",
			p."Status",
			CAST(NULLIF(p."Fee", '') AS NUMERIC) as "Fee",
			p."Request Category",
			p."Company",
			p."Point Of Contact",
			p."Tags",
			(SELECT COALESCE(AVG(CAST(NULLIF(s."Win %", '') AS NUMERIC)), 0)
				FROM "Sample" s
				WHERE s."Request Category" = p."Request Category"
				AND s."Company" = p."Company"
				AND s."Project Name" != p."Project Name"
				AND s."Win %" IS NOT NULL
				AND s."Win %" != '') as similar_avg_win_rate,
			(SELECT COUNT(*)
				FROM "Sample" s
				WHERE s."Request Category" = p."Request Category"
				AND s."Company" = p."Company"
				AND s."Project Name" != p."Project Name"
				AND s."Win %" IS NOT NULL
				AND s."Win %" != '') as similar_projects_count,
			CASE
				WHEN CAST(NULLIF(p."Win %", '') AS NUMERIC) >= 70 THEN 'High probability - Strong likelihood of winning'
				WHEN CAST(NULLIF(p."Win %", '') AS NUMERIC) >= 50 THEN 'Medium-High probability - Good chance'
				WHEN CAST(NULLIF(p."Win %", '') AS NUMERIC) >= 30 THEN 'Medium probability - Competitive situation'
				WHEN CAST(NULLIF(p."Win %", '') AS NUMERIC) >= 10 THEN 'Low-Medium probability - Challenging'
				ELSE 'Low probability - Consider strategic approach'
			END as prediction,
			CASE
				WHEN p."Status" ~* 'won' THEN 'Project already won!'
				WHEN p."Status" ~* 'lost' THEN 'Project was not won'
				WHEN p."Status" ~* 'submitted' THEN 'Proposal submitted - awaiting decision'
				WHEN p."Status" ~* 'lead' THEN 'Early stage - continue nurturing'
				ELSE 'Status: ' || p."Status"
			END as status_insight
			FROM "Sample" p
			WHERE p."Project Name"::text ILIKE ?
			LIMIT 1`,
		Params:    []ParamSpec{{"project_name", ParamStr}},
		ChartType: ChartNone,
	},

	// Region queries.

	"get_projects_by_state": {
		SQL: `SELECT * FROM "Sample"
			WHERE "State Lookup" = ?
			ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC) DESC NULLS LAST`,
		Params:     []ParamSpec{{"state_code", ParamExactStr}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	// Fee and size queries.

	"get_projects_by_fee_range": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Fee" IS NOT NULL AND "Fee" != ''
			AND CAST("Fee" AS NUMERIC) >= ?
			{max_fee_filter}
			ORDER BY CAST("Fee" AS NUMERIC) DESC`,
		Params:     []ParamSpec{{"min_fee", ParamFloat}},
		Optional:   []string{"max_fee"},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_projects_by_size": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Fee" IS NOT NULL AND "Fee" != ''
			AND CAST(NULLIF("Fee", '') AS NUMERIC) > 0
			AND {size_case_statement} ILIKE ?
			ORDER BY CAST("Fee" AS NUMERIC) DESC`,
		Params:     []ParamSpec{{"size", ParamStr}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_size_distribution": {
		SQL: `SELECT
			{size_case_statement} as size_tier,
			COUNT(*) as project_count,
			ROUND(SUM(CAST(NULLIF("Fee", '') AS NUMERIC))::numeric, 0) as total_value,
			ROUND(AVG(CAST(NULLIF("Fee", '') AS NUMERIC))::numeric, 0) as avg_fee,
			ROUND(MIN(CAST(NULLIF("Fee", '') AS NUMERIC))::numeric, 0) as min_fee,
			ROUND(MAX(CAST(NULLIF("Fee", '') AS NUMERIC))::numeric, 0) as max_fee,
			ROUND(AVG(CAST(NULLIF("Win %", '') AS NUMERIC))::numeric, 1) as avg_win_rate
			FROM "Sample"
			WHERE "Fee" IS NOT NULL AND "Fee" != ''
			AND CAST(NULLIF("Fee", '') AS NUMERIC) > 0
			GROUP BY size_tier
			ORDER BY MIN(CAST(NULLIF("Fee", '') AS NUMERIC))`,
		ChartType:  ChartPie,
		ChartField: "project_count",
	},

	// Similar and related projects.

	"get_similar_projects": {
		SQL: `WITH target AS (
			SELECT "Request Category", "Company", "Fee", "Tags"
			FROM "Sample"
			WHERE "Project Name"::text ILIKE ?
			LIMIT 1
		)
		SELECT s.*,
			ABS(CAST(NULLIF(s."Fee", '') AS NUMERIC) - CAST(NULLIF(t."Fee", '') AS NUMERIC)) as fee_diff
		FROM "Sample" s, target t
		WHERE s."Request Category" = t."Request Category"
		AND s."Company" = t."Company"
		AND s."Project Name"::text NOT ILIKE ?
		ORDER BY fee_diff
		LIMIT 10`,
		Params:     []ParamSpec{{"project_name", ParamStr}, {"project_name", ParamStr}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"compare_project_with_similar": {
		SQL: `WITH target_project AS (
			SELECT * FROM "Sample" WHERE "Project Name"::text ILIKE ? LIMIT 1
		)
		SELECT s.*,
			CASE WHEN s."Project Name"::text ILIKE ? THEN 1 ELSE 0 END as is_target
		FROM "Sample" s, target_project tp
		WHERE s."Request Category" = tp."Request Category"
		AND s."Company" = tp."Company"
		ORDER BY ABS(CAST(NULLIF(s."Fee", '') AS NUMERIC) - CAST(NULLIF(tp."Fee", '') AS NUMERIC))
		LIMIT 20`,
		Params:     []ParamSpec{{"project_name", ParamStr}, {"project_name", ParamStr}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	"get_related_projects": {
		SQL: `WITH target_tags AS (
			SELECT UNNEST(string_to_array("Tags", ',')) as tag
			FROM "Sample"
			WHERE "Project Name"::text ILIKE ?
			LIMIT 1
		)
		SELECT DISTINCT s.*,
			(SELECT COUNT(*) FROM target_tags tt WHERE s."Tags" ILIKE '%' || tt.tag || '%') as matching_tags
		FROM "Sample" s
		WHERE EXISTS (
			SELECT 1 FROM target_tags tt WHERE s."Tags" ILIKE '%' || tt.tag || '%'
		)
		AND s."Project Name"::text NOT ILIKE ?
		ORDER BY matching_tags DESC, CAST(NULLIF(s."Fee", '') AS NUMERIC) DESC NULLS LAST
		LIMIT 20`,
		Params:     []ParamSpec{{"project_name", ParamStr}, {"project_name", ParamStr}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	// Duration analysis.

	"analyze_pursuit_duration": {
		SQL: `SELECT
			"Company",
			"Status",
			"Request Category",
			COUNT(*) as total_pursuits,
			ROUND(AVG(EXTRACT(DAY FROM (CURRENT_DATE - "Start Date")))) as avg_days_old,
			ROUND(PERCENTILE_CONT(0.5) WITHIN GROUP (ORDER BY EXTRACT(DAY FROM (CURRENT_DATE - "Start Date")))) as median_days_old,
			MIN(EXTRACT(DAY FROM (CURRENT_DATE - "Start Date"))) as newest_pursuit_days,
			MAX(EXTRACT(DAY FROM (CURRENT_DATE - "Start Date"))) as oldest_pursuit_days,
			TO_CHAR(MIN("Start Date"), 'YYYY-MM-DD') as oldest_start_date,
			TO_CHAR(MAX("Start Date"), 'YYYY-MM-DD') as newest_start_date,
			ROUND(AVG(CAST(NULLIF("Win %", '') AS NUMERIC))::numeric, 1) as avg_win_rate,
			ROUND(SUM(CAST(NULLIF("Fee", '') AS NUMERIC))::numeric, 0) as total_value
			FROM "Sample"
			WHERE "Status" IN ('Won', 'Lost')
			AND "Start Date" IS NOT NULL
			AND "Start Date" > '2020-01-01'
			AND "Start Date" <= CURRENT_DATE
			GROUP BY "Company", "Status", "Request Category"
			HAVING COUNT(*) >= 2
			ORDER BY "Company", "Status", avg_days_old DESC`,
		ChartType:  ChartBar,
		ChartField: "avg_days_old",
	},

	// Sorting and listing.

	"get_all_projects": {
		SQL: `SELECT "Project Type", "Start Date", "Fee", "Client",
			"Project Name", "Status", "Company", "Win %", "Tags"
			FROM "Sample"
			ORDER BY "Start Date" DESC NULLS LAST`,
		ChartType: ChartNone,
	},

	"get_projects_sorted": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Win %" IS NOT NULL AND "Win %" != ''
			AND "Fee" IS NOT NULL AND "Fee" != ''
			ORDER BY
				CAST(NULLIF("Win %", '') AS NUMERIC) DESC,
				CAST(NULLIF("Fee", '') AS NUMERIC) DESC`,
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	// Grouping.

	"group_projects_by_type_size": {
		SQL: `SELECT
			"Project Type",
			{size_case_statement} as size_category,
			COUNT(*) as project_count,
			ROUND(SUM(CAST(NULLIF("Fee", '') AS NUMERIC))::numeric, 0) as total_value,
			ROUND(AVG(CAST(NULLIF("Win %", '') AS NUMERIC))::numeric, 1) as avg_win_rate
			FROM "Sample"
			WHERE "Fee" IS NOT NULL AND "Fee" != ''
			AND CAST(NULLIF("Fee", '') AS NUMERIC) > 0
			GROUP BY "Project Type", size_category
			ORDER BY "Project Type", MIN(CAST(NULLIF("Fee", '') AS NUMERIC))`,
		ChartType:  ChartBar,
		ChartField: "total_value",
	},

	CombinedFiltersFunction: {
		SQL: `SELECT * FROM "Sample"
			WHERE 1=1
			{size_filter}
			{category_filter}
			{tag_filter}
			{status_filter}
			{company_filter}
			{state_filter}
			{fee_filter}
			{win_filter}
			{date_filter}
			AND "Start Date" > '2000-01-01'
			ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC) DESC NULLS LAST
			{limit_clause}`,
		Optional: []string{"size", "categories", "tags", "status", "company",
			"state_code", "min_fee", "max_fee", "min_win", "max_win",
			"start_date", "end_date", "limit"},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	// Contact queries.

	"get_projects_by_contact": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Point Of Contact" ILIKE ?
			ORDER BY CAST(NULLIF("Fee", '') AS NUMERIC) DESC NULLS LAST`,
		Params:     []ParamSpec{{"contact_name", ParamStr}},
		ChartType:  ChartBar,
		ChartField: "Fee",
	},

	// Specific project lookup.

	"get_project_by_id": {
		SQL: `SELECT * FROM "Sample"
			WHERE "Project Name"::text ILIKE ? OR "Internal Id" ILIKE ?`,
		Params:    []ParamSpec{{"project_name", ParamStr}, {"internal_id", ParamStr}},
		ChartType: ChartNone,
	},

	// Revenue aggregation.

	"get_revenue_by_category": {
		SQL: `SELECT
			"Request Category",
			COUNT(*) as project_count,
			SUM(CAST(NULLIF("Fee", '') AS NUMERIC)) as total_revenue,
			AVG(CAST(NULLIF("Fee", '') AS NUMERIC)) as avg_revenue,
			AVG(CAST(NULLIF("Win %", '') AS NUMERIC)) as avg_win_rate
			FROM "Sample"
			WHERE "Request Category" ILIKE ?
			{status_filter}
			GROUP BY "Request Category"`,
		Params:    []ParamSpec{{"category", ParamStr}},
		Optional:  []string{"status"},
		ChartType: ChartNone,
	},

	"get_weighted_revenue_projection": {
		SQL: `SELECT
			"Status",
			COUNT(*) as project_count,
			SUM(CAST(NULLIF("Fee", '') AS NUMERIC)) as total_value,
			SUM(CAST(NULLIF("Fee", '') AS NUMERIC) *
				CAST(NULLIF("Win %", '') AS NUMERIC) / 100) as weighted_expected_value,
			AVG(CAST(NULLIF("Win %", '') AS NUMERIC)) as avg_win_rate
			FROM "Sample"
			WHERE "Status" NOT IN ('Won', 'Lost')
			AND "Win %" IS NOT NULL AND "Win %" != ''
			GROUP BY "Status"
			ORDER BY weighted_expected_value DESC`,
		ChartType:  ChartBar,
		ChartField: "weighted_expected_value",
	},

	// Year comparison.

	"compare_years": {
		SQL: `SELECT
			EXTRACT(YEAR FROM "Start Date") as year,
			COUNT(*) as project_count,
			SUM(CAST(NULLIF("Fee", '') AS NUMERIC)) as total_revenue,
			AVG(CAST(NULLIF("Fee", '') AS NUMERIC)) as avg_project_size,
			AVG(CAST(NULLIF("Win %", '') AS NUMERIC)) as avg_win_rate
			FROM "Sample"
			WHERE EXTRACT(YEAR FROM "Start Date") IN (?, ?)
			AND "Start Date" > '2000-01-01'
			GROUP BY year
			ORDER BY year`,
		Params:     []ParamSpec{{"year1", ParamInt}, {"year2", ParamInt}},
		ChartType:  ChartBar,
		ChartField: "total_revenue",
	},
}

// Lookup returns the template for a function name.
func Lookup(name string) (Template, bool) {
	t, ok := templates[name]
	if ok {
		t.Name = name
	}
	return t, ok
}

// Names returns every template name in sorted order.
func Names() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
