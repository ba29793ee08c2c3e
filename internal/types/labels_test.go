package types

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAxisLess(t *testing.T) {
	labels := []string{FailedAnalysis, "Zeta", Operations, Unknown, "Alpha", LectureContent, SkippedEmpty}

	sort.SliceStable(labels, func(i, j int) bool { return CategoryAxis.Less(labels[i], labels[j]) })
	assert.Equal(t, []string{LectureContent, Operations, "Alpha", "Zeta", Unknown, SkippedEmpty, FailedAnalysis}, labels)

	assert.True(t, SentimentAxis.Less(Negative, Mixed))
	assert.True(t, SentimentAxis.Less("Ecstatic", Unknown))
	assert.False(t, SentimentAxis.Less(Unknown, "Ecstatic"))
	assert.False(t, SentimentAxis.Less(Positive, Positive))
}
