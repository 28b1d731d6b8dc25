package catalog

// FunctionParam describes one argument of an advertised capability.
type FunctionParam struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Function is one capability advertised to the intent classifier. The
// classifier only ever sees these descriptions, never the SQL.
type Function struct {
	Name        string
	Description string
	Params      []FunctionParam
}

// timeReferenceDoc instructs the model to hand over the raw time phrase for
// deterministic resolution instead of computing dates itself.
const timeReferenceDoc = "Natural language time reference. Extract the EXACT user's time phrase. " +
	"Examples: 'next ten months', 'coming months', 'near future', 'this quarter', 'soon', " +
	"'next year', 'last 6 months', 'Q1 2026', 'in 2026', 'between January and March 2026'. " +
	"DO NOT calculate dates - just extract the user's time phrase as-is."

// Functions returns the capability definitions, in a stable order, for
// building the classifier system prompt.
func Functions() []Function {
	return []Function{
		{Name: "get_projects_by_year", Description: "Get all projects in a specific year",
			Params: []FunctionParam{{Name: "year", Type: "integer", Required: true}}},

		{Name: "get_projects_by_date_range", Description: "Get projects between two dates",
			Params: []FunctionParam{
				{Name: "start_date", Type: "string", Required: true},
				{Name: "end_date", Type: "string", Required: true},
			}},

		{Name: "get_projects_by_quarter", Description: "Get projects in specific quarter",
			Params: []FunctionParam{
				{Name: "year", Type: "integer", Required: true},
				{Name: "quarter", Type: "integer", Required: true},
			}},

		{Name: "get_projects_by_years", Description: "Get projects in multiple years",
			Params: []FunctionParam{{Name: "years", Type: "array of integers", Required: true}}},

		{Name: CombinedFiltersFunction,
			Description: "Get projects matching MULTIPLE filters simultaneously. Use when the question combines two or more of: size tier, categories, tags, status, company, state, fee range, win rate, time window.",
			Params: []FunctionParam{
				{Name: "size", Type: "string", Description: "Size category: Micro, Small, Medium, Large, Mega"},
				{Name: "categories", Type: "array of strings", Description: "List of request categories"},
				{Name: "tags", Type: "array of strings", Description: "List of tags"},
				{Name: "status", Type: "string", Description: "Project status"},
				{Name: "company", Type: "string", Description: "Company/OPCO name"},
				{Name: "state_code", Type: "string", Description: "State lookup code"},
				{Name: "min_fee", Type: "number", Description: "Minimum fee amount"},
				{Name: "max_fee", Type: "number", Description: "Maximum fee amount"},
				{Name: "min_win", Type: "integer", Description: "Minimum win percentage"},
				{Name: "max_win", Type: "integer", Description: "Maximum win percentage"},
				{Name: "time_reference", Type: "string", Description: timeReferenceDoc},
				{Name: "limit", Type: "integer", Description: "Result limit"},
			}},

		{Name: "get_largest_projects", Description: "Get largest/highest/biggest/top projects by fee",
			Params: []FunctionParam{{Name: "limit", Type: "integer"}}},

		{Name: "get_smallest_projects", Description: "Get smallest/lowest projects by fee",
			Params: []FunctionParam{{Name: "limit", Type: "integer"}}},

		{Name: "get_largest_in_region", Description: "Get largest pursuits in specific region/state",
			Params: []FunctionParam{
				{Name: "state_code", Type: "string", Required: true},
				{Name: "limit", Type: "integer"},
			}},

		{Name: "get_largest_by_category",
			Description: "Get largest projects in REQUEST CATEGORY field (Healthcare category, Education category, Transportation category, etc.). DO NOT use if user explicitly mentions 'tags'.",
			Params: []FunctionParam{
				{Name: "category", Type: "string", Required: true},
				{Name: "limit", Type: "integer"},
			}},

		{Name: "get_projects_by_category", Description: "Get projects by request category",
			Params: []FunctionParam{{Name: "category", Type: "string", Required: true}}},

		{Name: "get_projects_by_project_type", Description: "Get projects by project type",
			Params: []FunctionParam{{Name: "project_type", Type: "string", Required: true}}},

		{Name: "get_projects_by_multiple_categories", Description: "Get projects in multiple categories",
			Params: []FunctionParam{{Name: "categories", Type: "array of strings", Required: true}}},

		{Name: "get_largest_by_tags",
			Description: "Get largest/top/biggest projects with specific TAGS. Use this when user explicitly mentions 'tags', 'tagged', or phrases like 'largest healthcare tags', 'top projects with X tags'.",
			Params: []FunctionParam{
				{Name: "tag", Type: "string", Required: true},
				{Name: "limit", Type: "integer"},
			}},

		{Name: "get_projects_by_status_and_win_rate",
			Description: "Get projects by specific status (submitted, lost, won, lead, proposal development, etc.) combined with win percentage threshold. Use when user asks for projects with BOTH status AND win rate conditions. Examples: 'submitted projects with Win% > 70%', 'lost projects with Win% > 60%'.",
			Params: []FunctionParam{
				{Name: "status", Type: "string", Description: "Project status: submitted, lost, won, lead, proposal development, active, etc.", Required: true},
				{Name: "min_win", Type: "integer", Description: "Minimum win percentage threshold (e.g., 70 for >70%)", Required: true},
			}},

		{Name: "get_projects_by_multiple_tags",
			Description: "Get projects that have ALL specified tags. Use when user mentions multiple tags with 'and', '&', or commas. Examples: 'Rail and Transit tags', 'Transportation, Infrastructure, and Rail tags'.",
			Params: []FunctionParam{
				{Name: "tags", Type: "array of strings", Description: "List of tags to search for (up to 5 tags). Project must have ALL tags.", Required: true},
			}},

		{Name: "get_projects_by_tags",
			Description: "Get ALL projects with specific tags (not sorted by size). Use when user asks for 'projects with X tag' without mentioning 'largest' or 'top'.",
			Params:      []FunctionParam{{Name: "tag", Type: "string", Required: true}}},

		{Name: "get_top_tags", Description: "Get top tags across all projects",
			Params: []FunctionParam{{Name: "limit", Type: "integer"}}},

		{Name: "get_top_tags_by_date", Description: "Get top tags for projects in specific date range",
			Params: []FunctionParam{
				{Name: "start_year", Type: "integer", Required: true},
				{Name: "end_year", Type: "integer", Required: true},
				{Name: "limit", Type: "integer"},
			}},

		{Name: "get_projects_by_shared_tags", Description: "Get projects sharing tags with a reference project or client",
			Params: []FunctionParam{
				{Name: "reference_client", Type: "string"},
				{Name: "reference_project", Type: "string"},
				{Name: "limit", Type: "integer"},
			}},

		{Name: "get_projects_by_company", Description: "Get projects by company/OPCO",
			Params: []FunctionParam{{Name: "company", Type: "string", Required: true}}},

		{Name: "compare_companies", Description: "Compare all companies by revenue, count, win rate"},

		{Name: "compare_opco_revenue", Description: "Compare predicted revenue between specific OPCOs/companies",
			Params: []FunctionParam{{Name: "companies", Type: "array of strings", Required: true}}},

		{Name: "get_projects_by_client", Description: "Get all projects for specific client",
			Params: []FunctionParam{{Name: "client", Type: "string", Required: true}}},

		{Name: "get_projects_by_client_and_fee_range", Description: "Get projects for client within fee range",
			Params: []FunctionParam{
				{Name: "client", Type: "string", Required: true},
				{Name: "min_fee", Type: "number", Required: true},
				{Name: "max_fee", Type: "number", Required: true},
			}},

		{Name: "get_client_win_rates", Description: "Get win rates for specific client",
			Params: []FunctionParam{{Name: "client", Type: "string", Required: true}}},

		{Name: "get_projects_by_status", Description: "Get projects by status",
			Params: []FunctionParam{{Name: "status", Type: "string", Required: true}}},

		{Name: "get_status_breakdown", Description: "Get breakdown of all projects by status"},

		{Name: "get_overoptimistic_losses",
			Description: "Get LOST projects where win percentage was above 70%. ONLY use when user specifically asks about 'overoptimistic losses', 'lost projects with high predictions', or 'losses we thought we would win'. DO NOT use for 'submitted' or 'active' projects."},

		{Name: "get_top_predicted_wins", Description: "Get top N projects predicted to win",
			Params: []FunctionParam{{Name: "limit", Type: "integer", Required: true}}},

		{Name: "get_project_win_rate", Description: "Get win rate for specific project",
			Params: []FunctionParam{{Name: "project_name", Type: "string", Required: true}}},

		{Name: "get_projects_by_win_range", Description: "Get projects with win percentage in range",
			Params: []FunctionParam{
				{Name: "min_win", Type: "integer", Required: true},
				{Name: "max_win", Type: "integer", Required: true},
			}},

		{Name: "predict_win_probability", Description: "Predict if we will win/get a project",
			Params: []FunctionParam{{Name: "project_name", Type: "string", Required: true}}},

		{Name: "get_projects_by_state", Description: "Get projects in specific state/region",
			Params: []FunctionParam{{Name: "state_code", Type: "string", Required: true}}},

		{Name: "get_projects_by_fee_range", Description: "Get projects within fee range",
			Params: []FunctionParam{
				{Name: "min_fee", Type: "number", Required: true},
				{Name: "max_fee", Type: "number"},
			}},

		{Name: "get_projects_by_size",
			Description: "Get projects by DYNAMIC size category calculated from percentiles. Size is one of: 'Micro (<p20)', 'Small (p20-p40)', 'Medium (p40-p60)', 'Large (p60-p80)', 'Mega (>p80)'. The exact dollar ranges are calculated dynamically from actual data distribution.",
			Params: []FunctionParam{
				{Name: "size", Type: "string", Description: "Size category - match exactly as shown: 'Micro', 'Small', 'Medium', 'Large', or 'Mega'", Required: true},
			}},

		{Name: "get_size_distribution",
			Description: "Get distribution of projects by DYNAMIC size tiers calculated from actual fee percentiles (20%, 40%, 60%, 80%). Shows project count and total value for each tier."},

		{Name: "get_similar_projects", Description: "Find similar projects to a given project",
			Params: []FunctionParam{{Name: "project_name", Type: "string", Required: true}}},

		{Name: "compare_project_with_similar", Description: "Compare specific project with similar ones",
			Params: []FunctionParam{{Name: "project_name", Type: "string", Required: true}}},

		{Name: "get_related_projects", Description: "Get related projects based on shared tags",
			Params: []FunctionParam{{Name: "project_name", Type: "string", Required: true}}},

		{Name: "analyze_pursuit_duration", Description: "Analyze pursuit duration from lead to win/loss"},

		{Name: "get_all_projects", Description: "List all projects with basic fields"},

		{Name: "get_projects_sorted", Description: "Get projects sorted by win percentage then fee amount"},

		{Name: "group_projects_by_type_size", Description: "Group projects by type and size category"},

		{Name: "get_projects_by_contact", Description: "Get projects by point of contact person",
			Params: []FunctionParam{{Name: "contact_name", Type: "string", Required: true}}},

		{Name: "get_project_by_id", Description: "Find specific project by name or ID",
			Params: []FunctionParam{
				{Name: "project_name", Type: "string", Required: true},
				{Name: "internal_id", Type: "string"},
			}},

		{Name: "get_revenue_by_category",
			Description: "Get total revenue aggregated by category. Use when user asks 'total revenue in X', 'how much money in X category', 'value of X projects', 'revenue for X status'.",
			Params: []FunctionParam{
				{Name: "category", Type: "string", Description: "Request category", Required: true},
				{Name: "status", Type: "string", Description: "Optional: filter by status"},
			}},

		{Name: "get_weighted_revenue_projection",
			Description: "Project expected revenue weighting each open pursuit by its win probability. Use for 'predicted revenue if we win all', 'what-if revenue scenarios'."},

		{Name: "compare_years",
			Description: "Compare two specific years side-by-side. Use for 'compare 2025 vs 2026', 'year over year', '2025 compared to 2026'.",
			Params: []FunctionParam{
				{Name: "year1", Type: "integer", Description: "First year to compare", Required: true},
				{Name: "year2", Type: "integer", Description: "Second year to compare", Required: true},
			}},
	}
}
