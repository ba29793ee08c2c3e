package dataset

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"feedback-insights-go/internal/aggregator"
	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/types"
)

// Sheet names of the exported workbook.
const (
	SummarySheet   = "Summary"
	SentimentSheet = "Sentiment"
	CategorySheet  = "Category"
	CommentsSheet  = "Comments"
)

// CommentColumns is the header row of the Comments sheet.
var CommentColumns = []string{
	"CommentID", "OriginalComment", "ProcessingTimestamp", "OriginalCsvRowIndex",
	"Sentiment", "Category", "Importance", "IsHighRisk", "BedrockModelId", "LLMError",
}

// WriteWorkbook writes stats as an XLSX workbook. The Comments sheet holds
// every processable record so the workbook can be loaded and summarized again.
func WriteWorkbook(w io.Writer, stats *types.Stats) error {
	log := logger.New().WithField("component", "dataset.workbook")

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SentimentSheet, CategorySheet, CommentsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("new sheet %s: %w", name, err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	records := aggregator.Records("all_mapped_comments_list", stats.AllMappedComments)
	imp := aggregator.SummarizeImportance(records)
	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Total Comments", stats.TotalComments},
		{"Total Processable Comments", stats.TotalProcessableComments},
		{"Total High-Risk", stats.HighRiskCount},
		{"Scored Comments", imp.Count},
		{"Mean Importance", imp.Mean},
		{"Median Importance", imp.Median},
	}
	if err := writeRows(f, SummarySheet, summary, bold); err != nil {
		return err
	}

	sentiment := [][]interface{}{{"Sentiment", "Count", "Percentage (%)"}}
	for _, r := range aggregator.RankAndPercentage(types.SentimentAxis, stats.SentimentCounts, stats.SentimentPercentages) {
		sentiment = append(sentiment, []interface{}{r.Label, r.Count, r.PercentageText()})
	}
	if err := writeRows(f, SentimentSheet, sentiment, bold); err != nil {
		return err
	}

	category := [][]interface{}{{"Category", "Count", "Percentage (%)", "Action Recommended"}}
	for _, r := range aggregator.RankAndPercentage(types.CategoryAxis, stats.CategoryCounts, stats.CategoryPercentages) {
		action := "N/A"
		if flagged, ok := stats.RecommendedActions[r.Label]; ok {
			action = "No"
			if flagged {
				action = "Yes"
			}
		}
		category = append(category, []interface{}{r.Label, r.Count, r.PercentageText(), action})
	}
	if err := writeRows(f, CategorySheet, category, bold); err != nil {
		return err
	}

	header := make([]interface{}, len(CommentColumns))
	for i, c := range CommentColumns {
		header[i] = c
	}
	comments := [][]interface{}{header}
	for _, r := range records {
		comments = append(comments, commentRow(r))
	}
	if err := writeRows(f, CommentsSheet, comments, bold); err != nil {
		return err
	}
	_ = f.SetColWidth(CommentsSheet, "B", "B", 60)

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	log.WithField("comments", len(records)).Info("workbook written")
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	return nil
}

func commentRow(r types.CommentRecord) []interface{} {
	var rowIndex, importance interface{}
	if r.OriginalRowIndex != nil {
		rowIndex = *r.OriginalRowIndex
	}
	switch {
	case r.Importance.Present:
		importance = r.Importance.Value
	case r.Importance.Raw != "":
		importance = r.Importance.Raw
	}
	return []interface{}{
		r.CommentID,
		r.OriginalComment,
		r.ProcessingTimestamp,
		rowIndex,
		r.Sentiment,
		r.Category,
		importance,
		strconv.FormatBool(r.IsHighRisk),
		r.ModelID,
		r.LLMError,
	}
}
