package aggregator

import (
	"sort"
	"strconv"

	"feedback-insights-go/internal/types"
)

// Row is one line of a count/percentage table. Percentage is nil when the
// backend did not provide one.
type Row struct {
	Label      string   `json:"label"`
	Count      int      `json:"count"`
	Percentage *float64 `json:"percentage,omitempty"`
}

// PercentageText formats the percentage with one decimal, or "N/A".
func (r Row) PercentageText() string {
	if r.Percentage == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*r.Percentage, 'f', 1, 64)
}

// RankAndPercentage sorts the labels of counts by the axis order and attaches
// percentages when present. Labels missing from the order come after the
// listed ones; Unknown, Skipped - Empty and Failed Analysis always come last.
func RankAndPercentage(axis types.Axis, counts types.LabelCountMap, percentages types.LabelPercentMap) []Row {
	rows := make([]Row, 0, len(counts))
	for label, n := range counts {
		row := Row{Label: label, Count: n}
		if p, ok := percentages[label]; ok {
			row.Percentage = &p
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return axis.Less(rows[i].Label, rows[j].Label)
	})
	return rows
}
