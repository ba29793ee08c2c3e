package aggregator

import (
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/types"
)

func rec(level int, sentiment string) types.CommentRecord {
	return types.CommentRecord{Importance: types.NewImportance(level), Sentiment: sentiment}
}

func decode(t *testing.T, payload string) []types.CommentRecord {
	t.Helper()
	var raw types.RawComments
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return Records("test", raw)
}

func TestScenarioDistributionAndMatrix(t *testing.T) {
	records := []types.CommentRecord{
		rec(3, types.Positive),
		rec(3, types.Positive),
		rec(1, types.Negative),
	}

	dist := BuildImportanceDistribution(records)
	assert.Equal(t, [types.ImportanceLevels]int{1, 0, 2, 0, 0}, dist)

	m := BuildImportanceSentimentMatrix(records)
	assert.Equal(t, 3, m.Counted)
	assert.Equal(t, 0, m.Skipped)
	for _, s := range types.SentimentLegend {
		want := 0
		if s == types.Positive {
			want = 2
		}
		assert.Equal(t, want, m.Count(3, s), "level 3 %s", s)
	}
	assert.Equal(t, 1, m.Count(1, types.Negative))
}

func TestOnlyNonBlankInvalidImportanceWarns(t *testing.T) {
	hook := test.NewLocal(logger.New().Logger)
	defer hook.Reset()

	blank := decode(t, `[{"Importance": 0}, {"Importance": null}, {"Sentiment": "Neutral"}]`)
	BuildImportanceDistribution(blank)
	BuildImportanceSentimentMatrix(blank)
	assert.Empty(t, hook.AllEntries())

	invalid := decode(t, `[{"CommentID": "x", "Importance": 7}, {"Importance": "high"}, {"Importance": 2.5}]`)
	BuildImportanceDistribution(invalid)
	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, logrus.WarnLevel, e.Level)
		assert.Contains(t, e.Message, "distribution chart")
	}
	assert.Equal(t, "x", entries[0].Data["comment_id"])
	assert.Equal(t, "7", entries[0].Data["importance"])
}

func TestInvalidImportanceIsNotCounted(t *testing.T) {
	records := decode(t, `[
		{"Importance": 5, "Sentiment": "Positive"},
		{"Importance": 0, "Sentiment": "Positive"},
		{"Importance": null, "Sentiment": "Negative"},
		{"Sentiment": "Neutral"},
		{"Importance": 7, "Sentiment": "Mixed"},
		{"Importance": 2.5, "Sentiment": "Mixed"},
		{"Importance": "high", "Sentiment": "Mixed"},
		{"Importance": 2, "Sentiment": "Ecstatic"}
	]`)
	require.Len(t, records, 8)

	valid := 0
	for _, r := range records {
		if _, ok := r.Importance.Level(); ok {
			valid++
		}
	}
	dist := BuildImportanceDistribution(records)
	sum := 0
	for _, n := range dist {
		sum += n
	}
	assert.Equal(t, valid, sum)
	assert.Equal(t, 2, sum)

	m := BuildImportanceSentimentMatrix(records)
	assert.Equal(t, 2, m.Counted)
	assert.Equal(t, 6, m.Skipped)
	assert.Equal(t, 1, m.Count(2, types.Unknown), "unrecognized sentiment maps to Unknown")
	assert.Equal(t, 1, m.Count(5, types.Positive))
}

func TestMissingSentimentDefaultsToUnknown(t *testing.T) {
	m := BuildImportanceSentimentMatrix([]types.CommentRecord{rec(4, "")})
	assert.Equal(t, 1, m.Count(4, types.Unknown))
}

func TestToStackedSeriesOmitsEmptySeries(t *testing.T) {
	records := []types.CommentRecord{
		rec(1, types.FailedAnalysis),
		rec(2, types.Positive),
		rec(5, types.Positive),
		rec(5, types.Negative),
	}
	series := ToStackedSeries(BuildImportanceSentimentMatrix(records))

	require.Len(t, series, 3)
	assert.Equal(t, types.Positive, series[0].Label)
	assert.Equal(t, types.Negative, series[1].Label)
	assert.Equal(t, types.FailedAnalysis, series[2].Label)
	assert.Equal(t, []int{0, 1, 0, 0, 1}, series[0].Values)
	assert.Equal(t, "#28a745", series[0].Color)

	for _, s := range series {
		require.Len(t, s.Values, types.ImportanceLevels)
		total := 0
		for _, v := range s.Values {
			total += v
		}
		assert.NotZero(t, total, "series %s is all zero", s.Label)
	}
}

func TestToStackedSeriesEmptyInput(t *testing.T) {
	assert.Empty(t, ToStackedSeries(BuildImportanceSentimentMatrix(nil)))
}

func TestDistributionSeriesColors(t *testing.T) {
	s := DistributionSeries([types.ImportanceLevels]int{1, 2, 3, 4, 5})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, s.Values)
	assert.Equal(t, []string{"#007bff", "#28a745", "#ffc107", "#fd7e14", "#dc3545"}, s.Colors)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ImportanceAxis())
}

func TestRankAndPercentageSingleLabel(t *testing.T) {
	rows := RankAndPercentage(types.SentimentAxis, types.LabelCountMap{"Positive": 5}, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "Positive", rows[0].Label)
	assert.Equal(t, 5, rows[0].Count)
	assert.Equal(t, "N/A", rows[0].PercentageText())
}

func TestRankAndPercentageResidualsLast(t *testing.T) {
	counts := types.LabelCountMap{
		types.FailedAnalysis: 1,
		types.Unknown:        2,
		"Zebra":              3,
		types.Negative:       4,
		types.SkippedEmpty:   5,
		"Apple":              6,
		types.Positive:       7,
	}
	percentages := types.LabelPercentMap{types.Positive: 25, types.Negative: 12.345}

	want := []string{
		types.Positive, types.Negative, "Apple", "Zebra",
		types.Unknown, types.SkippedEmpty, types.FailedAnalysis,
	}
	for i := 0; i < 20; i++ {
		rows := RankAndPercentage(types.SentimentAxis, counts, percentages)
		got := make([]string, 0, len(rows))
		for _, r := range rows {
			got = append(got, r.Label)
		}
		require.Equal(t, want, got)
		assert.Equal(t, "25.0", rows[0].PercentageText())
		assert.Equal(t, "12.3", rows[1].PercentageText())
		assert.Equal(t, "N/A", rows[2].PercentageText())
	}
}

func TestRankAndPercentageCategoryOrder(t *testing.T) {
	counts := types.LabelCountMap{
		types.Other:          1,
		types.Unknown:        1,
		types.LectureContent: 1,
		types.Operations:     1,
	}
	rows := RankAndPercentage(types.CategoryAxis, counts, types.LabelPercentMap{})
	labels, series := LabelSeries(types.CategoryAxis, rows)
	assert.Equal(t, []string{types.LectureContent, types.Operations, types.Other, types.Unknown}, labels)
	assert.Equal(t, "Comment Count by Category", series.Label)
	assert.Equal(t, []string{"#007bff", "#fd7e14", "#e83e8c", "#6c757d"}, series.Colors)
}

func TestSelectHighRiskSortsStable(t *testing.T) {
	var raw types.RawComments
	require.NoError(t, json.Unmarshal([]byte(`[
		{"CommentID": "a", "Importance": 3},
		"not an object",
		{"CommentID": "b", "Importance": 5},
		null,
		{"CommentID": "c", "Importance": 3},
		{"CommentID": "d"},
		{"CommentID": "e", "Importance": 5},
		{"CommentID": 42}
	]`), &raw))

	got := SelectHighRisk(raw)
	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.CommentID)
	}
	assert.Equal(t, []string{"b", "e", "a", "c", "d"}, ids)
}

func TestSelectTopImportantKeepsOrder(t *testing.T) {
	var raw types.RawComments
	require.NoError(t, json.Unmarshal([]byte(`[
		{"CommentID": "x", "Importance": 4},
		{"CommentID": "y", "Importance": 5},
		[1, 2]
	]`), &raw))

	got := SelectTopImportant(raw)
	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].CommentID)
	assert.Equal(t, "y", got[1].CommentID)
}

func TestSummarizeImportance(t *testing.T) {
	s := SummarizeImportance([]types.CommentRecord{rec(1, ""), rec(2, ""), rec(5, ""), {}})
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 8.0/3.0, s.Mean, 1e-9)
	assert.Equal(t, 2.0, s.Median)

	assert.Equal(t, ImportanceSummary{}, SummarizeImportance(nil))
}
