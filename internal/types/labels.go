package types

const (
	MinImportance = 1
	MaxImportance = 5
	// ImportanceLevels is the size of the importance x-axis (1..5).
	ImportanceLevels = MaxImportance - MinImportance + 1
)

// Sentiment labels.
const (
	Positive = "Positive"
	Negative = "Negative"
	Neutral  = "Neutral"
	Mixed    = "Mixed"
)

// Category labels.
const (
	LectureContent   = "Lecture Content"
	LectureMaterials = "Lecture Materials"
	Operations       = "Operations"
	Other            = "Other"
)

// Residual labels produced by the analysis pipeline rather than the model.
const (
	Unknown        = "Unknown"
	SkippedEmpty   = "Skipped - Empty"
	FailedAnalysis = "Failed Analysis"
)

// FallbackColor is used for labels missing from a palette.
const FallbackColor = "#adb5bd"

// SentimentLegend is the series order of the sentiment-by-importance chart.
var SentimentLegend = [...]string{Positive, Negative, Neutral, Mixed, Unknown, SkippedEmpty, FailedAnalysis}

var residualLabels = [...]string{Unknown, SkippedEmpty, FailedAnalysis}

var sentimentOrder = [...]string{
	Positive, Negative, Neutral, Mixed,
	LectureContent, LectureMaterials, Operations, Other,
	Unknown, SkippedEmpty, FailedAnalysis,
}

var categoryOrder = [...]string{
	LectureContent, LectureMaterials, Operations, Other,
	Positive, Negative, Neutral, Mixed,
	Unknown, SkippedEmpty, FailedAnalysis,
}

var sentimentColors = map[string]string{
	Positive:       "#28a745",
	Negative:       "#dc3545",
	Neutral:        "#ffc107",
	Mixed:          "#6610f2",
	Unknown:        "#6c757d",
	SkippedEmpty:   "#ced4da",
	FailedAnalysis: "#495057",
}

var categoryColors = map[string]string{
	LectureContent:   "#007bff",
	LectureMaterials: "#20c997",
	Operations:       "#fd7e14",
	Other:            "#e83e8c",
	Unknown:          "#6c757d",
	SkippedEmpty:     "#ced4da",
	FailedAnalysis:   "#495057",
}

var importanceColors = [ImportanceLevels]string{"#007bff", "#28a745", "#ffc107", "#fd7e14", "#dc3545"}

// Axis is a classification axis with its own display order and palette.
type Axis int

const (
	SentimentAxis Axis = iota
	CategoryAxis
)

func (a Axis) String() string {
	if a == CategoryAxis {
		return "category"
	}
	return "sentiment"
}

// Order returns the display priority list of the axis.
func (a Axis) Order() []string {
	if a == CategoryAxis {
		return categoryOrder[:]
	}
	return sentimentOrder[:]
}

// Color returns the palette color for label on this axis.
func (a Axis) Color(label string) string {
	palette := sentimentColors
	if a == CategoryAxis {
		palette = categoryColors
	}
	if c, ok := palette[label]; ok {
		return c
	}
	return FallbackColor
}

// Rank returns the position of label in the axis order, or -1.
func (a Axis) Rank(label string) int {
	for i, l := range a.Order() {
		if l == label {
			return i
		}
	}
	return -1
}

// Less orders labels for display: labels in the axis order first, then
// unlisted labels by name, then the residual labels.
func (a Axis) Less(x, y string) bool {
	gx, rx := a.rankKey(x)
	gy, ry := a.rankKey(y)
	if gx != gy {
		return gx < gy
	}
	if rx != ry {
		return rx < ry
	}
	return x < y
}

func (a Axis) rankKey(label string) (group, rank int) {
	rank = a.Rank(label)
	switch {
	case IsResidual(label):
		return 2, rank
	case rank < 0:
		return 1, 0
	default:
		return 0, rank
	}
}

// IsResidual reports whether label is one of the labels always displayed last.
func IsResidual(label string) bool {
	for _, l := range residualLabels {
		if l == label {
			return true
		}
	}
	return false
}

// IsKnownSentiment reports whether label is part of the sentiment legend.
func IsKnownSentiment(label string) bool {
	for _, l := range SentimentLegend {
		if l == label {
			return true
		}
	}
	return false
}

// ImportanceColor returns the color of an importance level (1..5).
func ImportanceColor(level int) string {
	if level < MinImportance || level > MaxImportance {
		return FallbackColor
	}
	return importanceColors[level-MinImportance]
}
