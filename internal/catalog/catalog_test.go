package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every declared param must have exactly one ? marker in the skeleton, so the
// builder can interleave them with slot expansions without miscounting.
func TestTemplateMarkerCounts(t *testing.T) {
	for _, name := range Names() {
		tpl, ok := Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, len(tpl.Params), strings.Count(tpl.SQL, "?"),
			"%s: marker count must match declared params", name)
	}
}

func TestTemplateSlotsAreKnown(t *testing.T) {
	known := []string{
		"{date_filter}", "{limit_clause}", "{max_fee_filter}", "{status_filter}",
		"{tag_conditions}", "{size_case_statement}", "{size_filter}",
		"{category_filter}", "{tag_filter}", "{company_filter}", "{state_filter}",
		"{fee_filter}", "{win_filter}",
	}
	for _, name := range Names() {
		tpl, _ := Lookup(name)
		sql := tpl.SQL
		for _, slot := range known {
			sql = strings.ReplaceAll(sql, slot, "")
		}
		assert.NotContains(t, sql, "{", "%s: unknown slot marker", name)
	}
}

func TestLookup(t *testing.T) {
	tpl, ok := Lookup("get_projects_by_year")
	require.True(t, ok)
	assert.Equal(t, "get_projects_by_year", tpl.Name)
	assert.Equal(t, ChartBar, tpl.ChartType)
	assert.Equal(t, "Fee", tpl.ChartField)

	_, ok = Lookup("no_such_function")
	assert.False(t, ok)
}

func TestCombinedFiltersTemplate(t *testing.T) {
	tpl, ok := Lookup(CombinedFiltersFunction)
	require.True(t, ok)
	assert.Empty(t, tpl.Params)
	assert.Contains(t, tpl.Optional, "tags")
	assert.Contains(t, tpl.Optional, "min_fee")
	assert.Contains(t, tpl.SQL, "{win_filter}")
}

// Every advertised capability must be executable, and every template must be
// reachable from a capability.
func TestFunctionsMatchTemplates(t *testing.T) {
	advertised := map[string]bool{}
	for _, fn := range Functions() {
		require.False(t, advertised[fn.Name], "duplicate function %s", fn.Name)
		advertised[fn.Name] = true

		_, ok := Lookup(fn.Name)
		assert.True(t, ok, "function %s has no template", fn.Name)
	}
	for _, name := range Names() {
		assert.True(t, advertised[name], "template %s is not advertised", name)
	}
}
