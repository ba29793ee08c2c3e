package aggregator

import (
	"github.com/montanaflynn/stats"

	"feedback-insights-go/internal/types"
)

// ImportanceSummary describes the valid importance values of a record set.
type ImportanceSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// SummarizeImportance ignores records without a valid 1..5 importance.
func SummarizeImportance(records []types.CommentRecord) ImportanceSummary {
	data := make(stats.Float64Data, 0, len(records))
	for _, r := range records {
		if level, ok := r.Importance.Level(); ok {
			data = append(data, float64(level))
		}
	}
	if len(data) == 0 {
		return ImportanceSummary{}
	}
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	return ImportanceSummary{Count: len(data), Mean: mean, Median: median}
}
