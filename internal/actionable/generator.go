package actionable

import (
	"fmt"
	"sort"

	"feedback-insights-go/internal/types"
)

type ActionCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

// Generate turns the backend's recommended_actions flags and high-risk count
// into action cards. Categories come in display order.
func Generate(stats *types.Stats) []ActionCard {
	if stats == nil {
		return nil
	}

	var flagged []string
	for category, recommended := range stats.RecommendedActions {
		if recommended {
			flagged = append(flagged, category)
		}
	}
	sort.SliceStable(flagged, func(i, j int) bool {
		return types.CategoryAxis.Less(flagged[i], flagged[j])
	})

	var cards []ActionCard
	if stats.HighRiskCount > 0 {
		cards = append(cards, ActionCard{
			Insight: fmt.Sprintf("%d high-risk comment(s) flagged", stats.HighRiskCount),
			Action:  "Review the high-risk comments and follow up with the owners",
			Impact:  "Addresses the most urgent feedback first",
		})
	}
	for _, category := range flagged {
		share := "share unknown"
		if p, ok := stats.CategoryPercentages[category]; ok {
			share = fmt.Sprintf("%.1f%% of comments", p)
		}
		cards = append(cards, ActionCard{
			Insight: fmt.Sprintf("%s raised often (%s)", category, share),
			Action:  fmt.Sprintf("Assign an owner to review %s feedback", category),
			Impact:  "Reduce repeat complaints in this area",
		})
	}
	if len(cards) == 0 {
		return []ActionCard{{
			Insight: "No category needs action",
			Action:  "Monitor and collect more data",
			Impact:  "Low immediate intervention",
		}}
	}
	return cards
}
