package engine

import "sort"

const topCompaniesCount = 5

// Summarize computes headline statistics for the result set. Fee figures are
// only included when at least one row carries a parseable positive fee.
func Summarize(rows []map[string]any) map[string]any {
	summary := map[string]any{
		"total_records": len(rows),
	}
	if len(rows) == 0 {
		return summary
	}

	var fees []float64
	var winRates []float64
	statusCounts := map[string]int{}
	companyCounts := map[string]int{}

	for _, row := range rows {
		if f, ok := numeric(row["Fee"]); ok && f > 0 {
			fees = append(fees, f)
		}

		// Win rate may arrive under an aliased column from prediction queries.
		if w, ok := numeric(row["Win_Percentage"]); ok {
			winRates = append(winRates, w)
		} else if w, ok := numeric(row["Win %"]); ok {
			winRates = append(winRates, w)
		}

		if status, ok := row["Status"].(string); ok && status != "" {
			statusCounts[status]++
		}
		if company, ok := row["Company"].(string); ok && company != "" {
			companyCounts[company]++
		}
	}

	if len(fees) > 0 {
		sort.Float64s(fees)
		var total float64
		for _, f := range fees {
			total += f
		}
		summary["total_value"] = total
		summary["avg_fee"] = total / float64(len(fees))
		summary["median_fee"] = fees[len(fees)/2]
		summary["min_fee"] = fees[0]
		summary["max_fee"] = fees[len(fees)-1]
	}

	if len(winRates) > 0 {
		var total float64
		for _, w := range winRates {
			total += w
		}
		summary["avg_win_rate"] = total / float64(len(winRates))
	}

	if len(statusCounts) > 0 {
		summary["status_breakdown"] = statusCounts
	}
	if len(companyCounts) > 0 {
		summary["top_companies"] = topCompanies(companyCounts)
	}
	return summary
}

func topCompanies(counts map[string]int) []map[string]any {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	if len(entries) > topCompaniesCount {
		entries = entries[:topCompaniesCount]
	}
	out := make([]map[string]any, len(entries))
	for i, e := range entries {
		out[i] = map[string]any{"company": e.name, "count": e.count}
	}
	return out
}
