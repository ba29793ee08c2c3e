package aggregator

import (
	"bytes"
	"encoding/json"
	"sort"

	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/types"
)

// Records decodes a list payload, skipping entries that are not JSON objects
// or do not decode into a comment record.
func Records(list string, raw types.RawComments) []types.CommentRecord {
	log := logger.New().WithField("component", "aggregator").WithField("list", list)
	out := make([]types.CommentRecord, 0, len(raw))
	for i, entry := range raw {
		trimmed := bytes.TrimSpace(entry)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			log.WithField("index", i).WithField("entry", string(trimmed)).Warn("skipping non-object entry")
			continue
		}
		var r types.CommentRecord
		if err := json.Unmarshal(trimmed, &r); err != nil {
			log.WithField("index", i).WithField("error", err.Error()).Warn("skipping malformed entry")
			continue
		}
		out = append(out, r)
	}
	return out
}

// SelectHighRisk validates the backend's high-risk list and orders it by
// importance, highest first. Ties keep their original order.
func SelectHighRisk(raw types.RawComments) []types.CommentRecord {
	records := Records("high_risk_comments_list", raw)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Importance.SortKey() > records[j].Importance.SortKey()
	})
	return records
}

// SelectTopImportant validates the backend's top-important list. The backend
// already sorts it, so the order is kept.
func SelectTopImportant(raw types.RawComments) []types.CommentRecord {
	return Records("top_important_comments", raw)
}
