package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rmone/pursuitql/internal/catalog"
)

const (
	maxBarRows     = 20
	maxLabelLength = 30
)

var chartColors = []string{
	"rgba(54, 162, 235, 0.8)",
	"rgba(255, 99, 132, 0.8)",
	"rgba(255, 206, 86, 0.8)",
	"rgba(75, 192, 192, 0.8)",
	"rgba(153, 102, 255, 0.8)",
	"rgba(255, 159, 64, 0.8)",
	"rgba(199, 199, 199, 0.8)",
	"rgba(83, 102, 255, 0.8)",
}

// barLabelColumns and pieLabelColumns are tried in order; the first column
// present in the row supplies the label.
var (
	barLabelColumns = []string{"Project Name", "Company", "tag", "Status", "size_tier", "year"}
	pieLabelColumns = []string{"Status", "size_tier", "Category"}
)

// ChartConfig is the rendering hint attached to successful responses.
type ChartConfig struct {
	Type   string    `json:"type"`
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

// BuildChartConfig derives a chart from the result set, or nil when the
// template declines visualization or the data is empty.
func BuildChartConfig(tpl catalog.Template, rows []map[string]any) *ChartConfig {
	if len(rows) == 0 || tpl.ChartType == catalog.ChartNone || tpl.ChartType == "" {
		return nil
	}

	switch tpl.ChartType {
	case catalog.ChartBar:
		return barChart(tpl, rows)
	case catalog.ChartPie:
		return pieChart(tpl, rows)
	}
	return nil
}

func barChart(tpl catalog.Template, rows []map[string]any) *ChartConfig {
	if len(rows) > maxBarRows {
		rows = rows[:maxBarRows]
	}

	cfg := &ChartConfig{
		Type:  "bar",
		Title: fmt.Sprintf("Top %d Results", len(rows)),
	}
	for i, row := range rows {
		cfg.Labels = append(cfg.Labels, rowLabel(row, barLabelColumns))
		cfg.Values = append(cfg.Values, rowValue(row, tpl.ChartField))
		cfg.Colors = append(cfg.Colors, chartColors[i%len(chartColors)])
	}
	return cfg
}

func pieChart(tpl catalog.Template, rows []map[string]any) *ChartConfig {
	cfg := &ChartConfig{
		Type:  "pie",
		Title: "Distribution",
	}
	for i, row := range rows {
		cfg.Labels = append(cfg.Labels, rowLabel(row, pieLabelColumns))
		cfg.Values = append(cfg.Values, rowValue(row, tpl.ChartField))
		cfg.Colors = append(cfg.Colors, chartColors[i%len(chartColors)])
	}
	return cfg
}

func rowLabel(row map[string]any, columns []string) string {
	for _, col := range columns {
		if v, ok := row[col]; ok && v != nil {
			label := fmt.Sprintf("%v", v)
			if label == "" {
				continue
			}
			if runes := []rune(label); len(runes) > maxLabelLength {
				label = string(runes[:maxLabelLength])
			}
			return label
		}
	}
	return "Unknown"
}

// rowValue reads the configured chart field, falling back to Fee, then zero.
func rowValue(row map[string]any, chartField string) float64 {
	if chartField != "" {
		if f, ok := numeric(row[chartField]); ok {
			return f
		}
	}
	if f, ok := numeric(row["Fee"]); ok {
		return f
	}
	return 0
}

func numeric(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
