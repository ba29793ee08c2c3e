package aggregator

import (
	"strconv"

	"feedback-insights-go/internal/types"
)

// ChartSeries is one renderable series aligned to a fixed x-axis domain.
// Colors, when set, holds one color per value.
type ChartSeries struct {
	Label  string   `json:"label"`
	Color  string   `json:"color"`
	Values []int    `json:"values"`
	Colors []string `json:"colors,omitempty"`
}

// ImportanceAxis returns the x-axis labels for importance charts.
func ImportanceAxis() []string {
	out := make([]string, 0, types.ImportanceLevels)
	for level := types.MinImportance; level <= types.MaxImportance; level++ {
		out = append(out, strconv.Itoa(level))
	}
	return out
}

// ToStackedSeries builds one series per sentiment in legend order. Series
// whose five values are all zero are left out.
func ToStackedSeries(m Matrix) []ChartSeries {
	var out []ChartSeries
	for _, sentiment := range types.SentimentLegend {
		values := make([]int, 0, types.ImportanceLevels)
		nonZero := false
		for level := types.MinImportance; level <= types.MaxImportance; level++ {
			n := m.Count(level, sentiment)
			if n > 0 {
				nonZero = true
			}
			values = append(values, n)
		}
		if !nonZero {
			continue
		}
		out = append(out, ChartSeries{
			Label:  sentiment,
			Color:  types.SentimentAxis.Color(sentiment),
			Values: values,
		})
	}
	return out
}

// DistributionSeries colors each importance level bar.
func DistributionSeries(counts [types.ImportanceLevels]int) ChartSeries {
	s := ChartSeries{
		Label:  "Number of Comments",
		Color:  types.FallbackColor,
		Values: make([]int, 0, types.ImportanceLevels),
		Colors: make([]string, 0, types.ImportanceLevels),
	}
	for i, n := range counts {
		s.Values = append(s.Values, n)
		s.Colors = append(s.Colors, types.ImportanceColor(i+types.MinImportance))
	}
	return s
}

// LabelSeries turns ranked rows into x-axis labels and a single bar series.
func LabelSeries(axis types.Axis, rows []Row) ([]string, ChartSeries) {
	name := "Comment Count"
	if axis == types.CategoryAxis {
		name = "Comment Count by Category"
	}
	labels := make([]string, 0, len(rows))
	s := ChartSeries{
		Label:  name,
		Color:  types.FallbackColor,
		Values: make([]int, 0, len(rows)),
		Colors: make([]string, 0, len(rows)),
	}
	for _, r := range rows {
		labels = append(labels, r.Label)
		s.Values = append(s.Values, r.Count)
		s.Colors = append(s.Colors, axis.Color(r.Label))
	}
	return labels, s
}
