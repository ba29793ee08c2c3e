package aggregator

import (
	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/types"
)

// Matrix counts records per importance level (1..5) and sentiment label.
type Matrix struct {
	Levels  map[int]map[string]int `json:"levels"`
	Counted int                    `json:"counted"`
	Skipped int                    `json:"skipped"`
}

// Count returns the number of records at level with the given sentiment.
func (m Matrix) Count(level int, sentiment string) int {
	return m.Levels[level][sentiment]
}

func newMatrix() Matrix {
	m := Matrix{Levels: make(map[int]map[string]int, types.ImportanceLevels)}
	for level := types.MinImportance; level <= types.MaxImportance; level++ {
		row := make(map[string]int, len(types.SentimentLegend))
		for _, s := range types.SentimentLegend {
			row[s] = 0
		}
		m.Levels[level] = row
	}
	return m
}

// BuildImportanceSentimentMatrix counts records with a valid importance level
// per sentiment. Sentiments outside the legend are counted as Unknown.
func BuildImportanceSentimentMatrix(records []types.CommentRecord) Matrix {
	m := newMatrix()
	for _, r := range records {
		level, ok := r.Importance.Level()
		if !ok {
			m.Skipped++
			warnInvalidImportance(r, "sentiment/importance chart")
			continue
		}
		sentiment := r.SentimentLabel()
		if !types.IsKnownSentiment(sentiment) {
			sentiment = types.Unknown
		}
		m.Levels[level][sentiment]++
		m.Counted++
	}
	return m
}

// BuildImportanceDistribution tallies records per importance level; index 0 is level 1.
func BuildImportanceDistribution(records []types.CommentRecord) [types.ImportanceLevels]int {
	var counts [types.ImportanceLevels]int
	for _, r := range records {
		level, ok := r.Importance.Level()
		if !ok {
			warnInvalidImportance(r, "distribution chart")
			continue
		}
		counts[level-types.MinImportance]++
	}
	return counts
}

func warnInvalidImportance(r types.CommentRecord, chart string) {
	if r.Importance.Blank() {
		return
	}
	logger.New().WithField("component", "aggregator").
		WithField("importance", r.Importance.String()).
		WithField("comment_id", r.CommentID).
		Warn("skipping item with invalid importance for " + chart)
}
