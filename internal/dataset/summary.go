package dataset

import (
	"sort"

	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/types"
)

// RecommendThreshold is the category share, in percent, above which a
// category is flagged for action.
const RecommendThreshold = 5.0

// TopImportanceFloor is the lowest importance listed as top important.
const TopImportanceFloor = 4

// Summarize aggregates analyzed records into the stats document the API
// serves. Records whose sentiment is "Skipped - Empty" count toward
// total_comments only; every other figure is computed over the rest.
func Summarize(records []types.CommentRecord) *types.Stats {
	log := logger.New().WithField("component", "dataset.summary")

	var processable []types.CommentRecord
	sentimentCounts := types.LabelCountMap{}
	categoryCounts := types.LabelCountMap{}
	highRisk := 0
	for _, r := range records {
		if r.Sentiment == types.SkippedEmpty {
			continue
		}
		if r.Sentiment == "" {
			r.Sentiment = types.Unknown
		}
		if r.Category == "" {
			r.Category = types.Unknown
		}
		sentimentCounts[r.Sentiment]++
		categoryCounts[r.Category]++
		if r.IsHighRisk {
			highRisk++
		}
		processable = append(processable, r)
	}
	if len(processable) == 0 {
		log.WithField("records", len(records)).Info("no processable records")
		return emptyStats()
	}

	total := float64(len(processable))
	stats := &types.Stats{
		TotalComments:            len(records),
		TotalProcessableComments: len(processable),
		SentimentCounts:          sentimentCounts,
		SentimentPercentages:     percentages(sentimentCounts, total),
		CategoryCounts:           categoryCounts,
		CategoryPercentages:      percentages(categoryCounts, total),
		RecommendedActions:       map[string]bool{},
		HighRiskCount:            highRisk,
		AllMappedComments:        types.EncodeComments(processable),
	}
	for category, p := range stats.CategoryPercentages {
		stats.RecommendedActions[category] = p > RecommendThreshold
	}

	sorted := make([]types.CommentRecord, len(processable))
	copy(sorted, processable)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Importance.SortKey() > sorted[j].Importance.SortKey()
	})
	var top, risky []types.CommentRecord
	for _, r := range sorted {
		if r.Importance.SortKey() >= TopImportanceFloor {
			top = append(top, r)
		}
	}
	for _, r := range processable {
		if r.IsHighRisk {
			risky = append(risky, r)
		}
	}
	stats.TopImportantComments = types.EncodeComments(top)
	stats.HighRiskComments = types.EncodeComments(risky)

	log.WithFields(map[string]interface{}{
		"total":       stats.TotalComments,
		"processable": stats.TotalProcessableComments,
		"high_risk":   stats.HighRiskCount,
	}).Info("records summarized")
	return stats
}

func percentages(counts types.LabelCountMap, total float64) types.LabelPercentMap {
	out := make(types.LabelPercentMap, len(counts))
	for label, n := range counts {
		out[label] = float64(n) / total * 100
	}
	return out
}

func emptyStats() *types.Stats {
	return &types.Stats{
		SentimentCounts:      types.LabelCountMap{},
		SentimentPercentages: types.LabelPercentMap{},
		CategoryCounts:       types.LabelCountMap{},
		CategoryPercentages:  types.LabelPercentMap{},
		RecommendedActions:   map[string]bool{},
		HighRiskComments:     types.RawComments{},
		TopImportantComments: types.RawComments{},
	}
}
