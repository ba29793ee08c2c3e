package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/types"
)

// Load reads comment records from the Comments sheet of an exported workbook.
func Load(path string) ([]types.CommentRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return readComments(f)
}

// Read is Load for a workbook held in memory or streamed over the network.
func Read(r io.Reader) ([]types.CommentRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readComments(f)
}

func readComments(f *excelize.File) ([]types.CommentRecord, error) {
	log := logger.New().WithField("component", "dataset.loader")

	sheet := CommentsSheet
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("no sheets")
		}
		sheet = sheets[0]
		log.WithField("sheet", sheet).Warn("no Comments sheet, using first sheet")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}

	cols := detectColumns(rows[0])
	if _, ok := cols["originalcomment"]; !ok {
		return nil, fmt.Errorf("sheet %s has no OriginalComment column", sheet)
	}
	log.WithField("columns", len(cols)).Debug("detected comment columns")

	out := make([]types.CommentRecord, 0, len(rows)-1)
	for i, r := range rows[1:] {
		get := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(r) {
				return ""
			}
			return strings.TrimSpace(r[idx])
		}
		rec := types.CommentRecord{
			CommentID:           get("commentid"),
			OriginalComment:     get("originalcomment"),
			ProcessingTimestamp: get("processingtimestamp"),
			Sentiment:           get("sentiment"),
			Category:            get("category"),
			ModelID:             get("bedrockmodelid"),
			LLMError:            get("llmerror"),
			Importance:          parseImportance(get("importance")),
			IsHighRisk:          parseBool(get("ishighrisk")),
		}
		if s := get("originalcsvrowindex"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				log.WithField("row", i+2).WithField("value", s).Warn("invalid row index, ignoring")
			} else {
				rec.OriginalRowIndex = &n
			}
		}
		if rec.CommentID == "" && rec.OriginalComment == "" && rec.Sentiment == "" {
			continue
		}
		out = append(out, rec)
	}
	log.WithField("sheet", sheet).WithField("records", len(out)).Info("comments loaded")
	return out, nil
}

// detectColumns maps normalized header names to column indices. The first
// occurrence of a header wins.
func detectColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		n := strings.ToLower(strings.TrimSpace(h))
		n = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(n)
		if n == "comment" || n == "text" {
			n = "originalcomment"
		}
		if _, seen := cols[n]; !seen && n != "" {
			cols[n] = i
		}
	}
	return cols
}

func parseImportance(s string) types.Importance {
	if s == "" {
		return types.Importance{}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return types.Importance{Value: f, Present: true}
	}
	if json.Valid([]byte(s)) {
		return types.Importance{Raw: s}
	}
	return types.Importance{Raw: strconv.Quote(s)}
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "1":
		return true
	}
	return false
}
