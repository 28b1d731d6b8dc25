// Package sqlbuild turns a refined intent into executable SQL. Templates are
// never edited with user text: the builder expands optional clause slots,
// coerces every argument to its declared type, and binds all values as
// positional parameters, including dates and limits.
package sqlbuild

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rmone/pursuitql/internal/catalog"
	"github.com/rmone/pursuitql/internal/parse"
)

// ErrUnknownFunction is returned when the intent names a function the
// catalog does not define.
var ErrUnknownFunction = errors.New("unknown query function")

// Query is a ready-to-execute statement with PostgreSQL positional
// placeholders.
type Query struct {
	SQL  string
	Args []any
}

// Build resolves functionName against the catalog and assembles the
// statement. sizeCase is the tier CASE expression injected wherever a
// template labels rows by size.
func Build(functionName string, args map[string]any, sizeCase string) (Query, error) {
	tpl, ok := catalog.Lookup(functionName)
	if !ok {
		return Query{}, fmt.Errorf("%w: %s", ErrUnknownFunction, functionName)
	}
	if args == nil {
		args = map[string]any{}
	}

	if functionName == catalog.CombinedFiltersFunction {
		return buildCombined(tpl, args, sizeCase), nil
	}
	return buildRegular(tpl, args, sizeCase), nil
}

// buildRegular walks the template skeleton left to right, emitting declared
// parameter values at each ? marker and expanding each {slot} in place, so
// bound values always line up with their markers.
func buildRegular(tpl catalog.Template, args map[string]any, sizeCase string) Query {
	var sql strings.Builder
	var bound []any

	paramIdx := 0
	rest := tpl.SQL
	for len(rest) > 0 {
		qi := strings.IndexByte(rest, '?')
		si := strings.IndexByte(rest, '{')
		if qi < 0 && si < 0 {
			sql.WriteString(rest)
			break
		}

		if qi >= 0 && (si < 0 || qi < si) {
			sql.WriteString(rest[:qi+1])
			bound = append(bound, coerceParam(tpl.Params[paramIdx], args))
			paramIdx++
			rest = rest[qi+1:]
			continue
		}

		end := strings.IndexByte(rest[si:], '}')
		if end < 0 {
			sql.WriteString(rest)
			break
		}
		slot := rest[si : si+end+1]
		sql.WriteString(rest[:si])

		clauseSQL, clauseArgs := expandSlot(slot, args, sizeCase)
		sql.WriteString(clauseSQL)
		bound = append(bound, clauseArgs...)

		rest = rest[si+end+1:]
	}

	return Query{SQL: rebind(sql.String()), Args: bound}
}

func expandSlot(slot string, args map[string]any, sizeCase string) (string, []any) {
	switch slot {
	case "{size_case_statement}":
		return sizeCase, nil

	case "{date_filter}":
		if start, end, ok := dateWindow(args); ok {
			return `AND "Start Date" >= ?::date AND "Start Date" <= ?::date AND "Start Date" > '2000-01-01'`,
				[]any{start, end}
		}
		return "", nil

	case "{limit_clause}":
		if n, ok := limitValue(args); ok {
			return "LIMIT ?", []any{n}
		}
		return "", nil

	case "{max_fee_filter}":
		if maxFee, ok := floatArg(args, "max_fee"); ok && maxFee > 0 && maxFee < parse.UnboundedFee {
			return `AND CAST("Fee" AS NUMERIC) <= ?`, []any{maxFee}
		}
		return "", nil

	case "{status_filter}":
		if status, _ := args["status"].(string); status != "" {
			return `AND "Status" ILIKE ?`, []any{wildcard(status)}
		}
		return "", nil

	case "{tag_conditions}":
		tags := stringSlice(args["tags"])
		if len(tags) == 0 {
			return "", nil
		}
		conditions := make([]string, len(tags))
		bound := make([]any, len(tags))
		for i, tag := range tags {
			conditions[i] = `AND "Tags" ILIKE ?`
			bound[i] = wildcard(tag)
		}
		return strings.Join(conditions, " "), bound
	}

	// Combined-filter slots never appear in regular templates.
	return "", nil
}

// dateWindow resolves the optional date bounds: explicit ISO dates win, then
// a whole-year window from start_year/end_year.
func dateWindow(args map[string]any) (start, end string, ok bool) {
	startDate, _ := args["start_date"].(string)
	endDate, _ := args["end_date"].(string)
	if startDate != "" && endDate != "" {
		return startDate, endDate, true
	}

	startYear, okStart := intArg(args, "start_year")
	endYear, okEnd := intArg(args, "end_year")
	if okStart && okEnd {
		return fmt.Sprintf("%d-01-01", startYear), fmt.Sprintf("%d-12-31", endYear), true
	}
	return "", "", false
}

func limitValue(args map[string]any) (int, bool) {
	n, ok := intArg(args, "limit")
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

// buildCombined assembles the kitchen-sink query. Clause order is fixed so
// the same intent always yields the same statement.
func buildCombined(tpl catalog.Template, args map[string]any, sizeCase string) Query {
	sql := tpl.SQL
	var bound []any

	replace := func(slot, clause string, clauseArgs ...any) {
		sql = strings.Replace(sql, slot, clause, 1)
		bound = append(bound, clauseArgs...)
	}

	if size, _ := args["size"].(string); size != "" {
		replace("{size_filter}", "AND "+sizeCase+" ILIKE ?", wildcard(size))
	} else {
		replace("{size_filter}", "")
	}

	if categories := stringSlice(args["categories"]); len(categories) > 0 {
		conditions := make([]string, len(categories))
		catArgs := make([]any, len(categories))
		for i, cat := range categories {
			conditions[i] = `"Request Category" ILIKE ?`
			catArgs[i] = wildcard(cat)
		}
		replace("{category_filter}", "AND ("+strings.Join(conditions, " OR ")+")", catArgs...)
	} else {
		replace("{category_filter}", "")
	}

	if tags := stringSlice(args["tags"]); len(tags) > 0 {
		conditions := make([]string, len(tags))
		tagArgs := make([]any, len(tags))
		for i, tag := range tags {
			conditions[i] = `"Tags" ILIKE ?`
			tagArgs[i] = wildcard(tag)
		}
		replace("{tag_filter}", "AND "+strings.Join(conditions, " AND "), tagArgs...)
	} else {
		replace("{tag_filter}", "")
	}

	if status, _ := args["status"].(string); status != "" {
		replace("{status_filter}", `AND "Status" ILIKE ?`, wildcard(status))
	} else {
		replace("{status_filter}", "")
	}

	if company, _ := args["company"].(string); company != "" {
		replace("{company_filter}", `AND "Company" ILIKE ?`, wildcard(company))
	} else {
		replace("{company_filter}", "")
	}

	if state := stringArg(args, "state_code"); state != "" {
		replace("{state_filter}", `AND "State Lookup" = ?`, state)
	} else {
		replace("{state_filter}", "")
	}

	feeClause := ""
	var feeArgs []any
	if minFee, ok := floatArg(args, "min_fee"); ok && minFee > 0 {
		feeClause = `AND CAST(NULLIF("Fee", '') AS NUMERIC) >= ?`
		feeArgs = append(feeArgs, minFee)
	}
	if maxFee, ok := floatArg(args, "max_fee"); ok && maxFee > 0 {
		if feeClause != "" {
			feeClause += " "
		}
		feeClause += `AND CAST(NULLIF("Fee", '') AS NUMERIC) <= ?`
		feeArgs = append(feeArgs, maxFee)
	}
	replace("{fee_filter}", feeClause, feeArgs...)

	winClause := ""
	var winArgs []any
	if minWin, ok := intArg(args, "min_win"); ok && minWin > 0 {
		winClause = `AND CAST(NULLIF("Win %", '') AS NUMERIC) >= ?`
		winArgs = append(winArgs, minWin)
	}
	if maxWin, ok := intArg(args, "max_win"); ok && maxWin > 0 {
		if winClause != "" {
			winClause += " "
		}
		winClause += `AND CAST(NULLIF("Win %", '') AS NUMERIC) <= ?`
		winArgs = append(winArgs, maxWin)
	}
	replace("{win_filter}", winClause, winArgs...)

	dateClause := ""
	var dateArgs []any
	if start, _ := args["start_date"].(string); start != "" {
		dateClause = `AND "Start Date" >= ?::date`
		dateArgs = append(dateArgs, start)
	}
	if end, _ := args["end_date"].(string); end != "" {
		if dateClause != "" {
			dateClause += " "
		}
		dateClause += `AND "Start Date" <= ?::date`
		dateArgs = append(dateArgs, end)
	}
	replace("{date_filter}", dateClause, dateArgs...)

	if n, ok := limitValue(args); ok {
		replace("{limit_clause}", "LIMIT ?", n)
	} else {
		replace("{limit_clause}", "")
	}

	return Query{SQL: rebind(sql), Args: bound}
}

// coerceParam applies name-specific binding rules first, then falls back to
// the declared kind. Missing values bind type-appropriate neutral defaults
// so the placeholder count never changes.
func coerceParam(spec catalog.ParamSpec, args map[string]any) any {
	switch spec.Name {
	case "state_code":
		// Exact match against the lookup column, no wildcards.
		return stringArg(args, spec.Name)
	case "status":
		s, _ := args[spec.Name].(string)
		return wildcard(s)
	case "min_win", "max_win":
		n, _ := intArg(args, spec.Name)
		return n
	case "project_name", "internal_id", "reference_client", "reference_project":
		val, _ := args[spec.Name].(string)
		if val == "" && (spec.Name == "reference_project" || spec.Name == "internal_id") {
			val, _ = args["project_name"].(string)
		}
		if val == "" && spec.Name == "reference_client" {
			val, _ = args["client"].(string)
		}
		return wildcard(val)
	}

	switch spec.Kind {
	case catalog.ParamInt:
		n, _ := intArg(args, spec.Name)
		return n
	case catalog.ParamFloat:
		f, _ := floatArg(args, spec.Name)
		return f
	case catalog.ParamExactStr:
		return stringArg(args, spec.Name)
	case catalog.ParamArray:
		return coerceArray(spec.Name, args[spec.Name])
	default: // ParamStr
		s, _ := args[spec.Name].(string)
		return wildcard(s)
	}
}

// coerceArray binds array parameters. Name lists used with ILIKE ANY get
// per-element wildcards; numeric arrays bind as integers.
func coerceArray(name string, v any) any {
	switch name {
	case "categories", "companies":
		items := stringSlice(v)
		wrapped := make([]string, len(items))
		for i, item := range items {
			wrapped[i] = wildcard(strings.TrimSpace(item))
		}
		return wrapped
	case "years":
		return intSlice(v)
	}
	return stringSlice(v)
}

// rebind rewrites ? markers to $1..$n placeholders.
func rebind(sql string) string {
	var b strings.Builder
	b.Grow(len(sql) + 8)
	n := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(sql[i])
	}
	return b.String()
}

func wildcard(s string) string {
	return "%" + s + "%"
}

func stringArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func intArg(args map[string]any, name string) (int, bool) {
	switch v := args[name].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func floatArg(args map[string]any, name string) (float64, bool) {
	switch v := args[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

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

func intSlice(v any) []int {
	switch vv := v.(type) {
	case []int:
		return vv
	case []any:
		out := make([]int, 0, len(vv))
		for _, item := range vv {
			switch n := item.(type) {
			case int:
				out = append(out, n)
			case float64:
				out = append(out, int(n))
			}
		}
		return out
	}
	return nil
}
