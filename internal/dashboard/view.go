package dashboard

import (
	"html/template"

	"feedback-insights-go/internal/actionable"
	"feedback-insights-go/internal/aggregator"
	"feedback-insights-go/internal/types"
)

type State string

const (
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateEmpty   State = "empty"
	StateError   State = "error"
)

// Status messages shown in the status area.
const (
	LoadingMessage = "Loading analysis data..."
	SuccessMessage = "Data loaded successfully."
	EmptyMessage   = "No analysis data available to display. Please process a CSV file first."
	ErrorPrefix    = "Error loading data: "
	ErrorRowText   = "Error loading data."
)

type Status struct {
	State   State  `json:"state"`
	Message string `json:"message"`
}

// Table is a rendered table body. When Placeholder is set the body is a
// single row spanning every column.
type Table struct {
	Columns     []string   `json:"columns"`
	Rows        [][]string `json:"rows,omitempty"`
	Placeholder string     `json:"placeholder,omitempty"`
}

// ChartView is a chart ready to be mounted on its canvas.
type ChartView struct {
	Canvas Canvas      `json:"canvas"`
	Title  string      `json:"title"`
	Option template.JS `json:"option"`
}

// View is the output of one render cycle.
type View struct {
	CycleID       string                       `json:"cycle_id"`
	Status        Status                       `json:"status"`
	TotalComments int                          `json:"total_comments"`
	HighRiskCount int                          `json:"high_risk_count"`
	Importance    aggregator.ImportanceSummary `json:"importance"`
	Sentiment     Table                        `json:"sentiment_table"`
	Category      Table                        `json:"category_table"`
	HighRisk      Table                        `json:"high_risk_table"`
	TopImportant  Table                        `json:"top_important_table"`
	Charts        []ChartView                  `json:"charts"`
	Actions       []actionable.ActionCard      `json:"actions,omitempty"`

	// Stats is the snapshot the view was built from; nil unless State is success.
	Stats *types.Stats `json:"-"`
}

var (
	sentimentColumns = []string{"Sentiment", "Count", "Percentage (%)"}
	categoryColumns  = []string{"Category", "Count", "Percentage (%)", "Action Recommended"}
	commentColumns   = []string{"Importance", "Comment", "Sentiment", "Category", "Original Row"}
)

func loadingView(cycleID string) *View {
	return &View{
		CycleID:      cycleID,
		Status:       Status{State: StateLoading, Message: LoadingMessage},
		Sentiment:    Table{Columns: sentimentColumns},
		Category:     Table{Columns: categoryColumns},
		HighRisk:     Table{Columns: commentColumns},
		TopImportant: Table{Columns: commentColumns},
	}
}

func emptyView(cycleID string) *View {
	return &View{
		CycleID:      cycleID,
		Status:       Status{State: StateEmpty, Message: EmptyMessage},
		Sentiment:    Table{Columns: sentimentColumns, Placeholder: "No sentiment data available."},
		Category:     Table{Columns: categoryColumns, Placeholder: "No category data available."},
		HighRisk:     Table{Columns: commentColumns, Placeholder: "No high-risk comments identified."},
		TopImportant: Table{Columns: commentColumns, Placeholder: "No top important comments identified."},
	}
}

func errorView(cycleID string, err error) *View {
	return &View{
		CycleID:      cycleID,
		Status:       Status{State: StateError, Message: ErrorPrefix + err.Error()},
		Sentiment:    Table{Columns: sentimentColumns, Placeholder: ErrorRowText},
		Category:     Table{Columns: categoryColumns, Placeholder: ErrorRowText},
		HighRisk:     Table{Columns: commentColumns, Placeholder: ErrorRowText},
		TopImportant: Table{Columns: commentColumns, Placeholder: ErrorRowText},
	}
}
