package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Importance is the 1–5 score attached to a comment. The zero value means the
// key was absent or null.
type Importance struct {
	Value   float64
	Present bool   // key held a JSON number
	Raw     string // original JSON text when it held something else
}

func NewImportance(level int) Importance {
	return Importance{Value: float64(level), Present: true}
}

func (i *Importance) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*i = Importance{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		*i = Importance{Raw: string(b)}
		return nil
	}
	*i = Importance{Value: f, Present: true}
	return nil
}

func (i Importance) MarshalJSON() ([]byte, error) {
	switch {
	case i.Present:
		return json.Marshal(i.Value)
	case i.Raw != "":
		return []byte(i.Raw), nil
	default:
		return []byte("null"), nil
	}
}

// Level reports the importance as an integer level when it is one of 1..5.
func (i Importance) Level() (int, bool) {
	if !i.Present || i.Value != math.Trunc(i.Value) {
		return 0, false
	}
	n := int(i.Value)
	if n < MinImportance || n > MaxImportance {
		return 0, false
	}
	return n, true
}

// Blank is true for absent, null and 0 values, which are excluded without a warning.
func (i Importance) Blank() bool {
	if i.Present {
		return i.Value == 0
	}
	return i.Raw == ""
}

// SortKey orders comments by importance; anything that is not a number counts as 0.
func (i Importance) SortKey() float64 {
	if !i.Present {
		return 0
	}
	return i.Value
}

func (i Importance) String() string {
	switch {
	case i.Present:
		return strconv.FormatFloat(i.Value, 'f', -1, 64)
	case i.Raw != "":
		return i.Raw
	default:
		return "N/A"
	}
}

// CommentRecord is one analyzed input row as returned by the stats API.
type CommentRecord struct {
	CommentID           string     `json:"CommentID,omitempty"`
	OriginalComment     string     `json:"OriginalComment,omitempty"`
	ProcessingTimestamp string     `json:"ProcessingTimestamp,omitempty"`
	OriginalRowIndex    *int       `json:"OriginalCsvRowIndex,omitempty"`
	ModelID             string     `json:"BedrockModelId,omitempty"`
	Sentiment           string     `json:"Sentiment,omitempty"`
	Category            string     `json:"Category,omitempty"`
	Importance          Importance `json:"Importance"`
	IsHighRisk          bool       `json:"IsHighRisk"`
	LLMError            string     `json:"LLMError,omitempty"`
}

// SentimentLabel returns the sentiment, defaulting to Unknown.
func (r CommentRecord) SentimentLabel() string {
	if r.Sentiment == "" {
		return Unknown
	}
	return r.Sentiment
}

// RawComments keeps list payloads undecoded so a malformed entry can be
// skipped on its own instead of failing the whole document.
type RawComments []json.RawMessage

// UnmarshalJSON treats anything other than an array as an empty list.
func (c *RawComments) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		*c = nil
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*c = items
	return nil
}

// EncodeComments turns records back into a list payload.
func EncodeComments(records []CommentRecord) RawComments {
	out := make(RawComments, 0, len(records))
	for _, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	return out
}

type LabelCountMap map[string]int

type LabelPercentMap map[string]float64

// Stats is the document carried inside the /stats envelope body.
type Stats struct {
	TotalComments            int             `json:"total_comments"`
	TotalProcessableComments int             `json:"total_processable_comments"`
	SentimentCounts          LabelCountMap   `json:"sentiment_counts"`
	SentimentPercentages     LabelPercentMap `json:"sentiment_percentages"`
	CategoryCounts           LabelCountMap   `json:"category_counts"`
	CategoryPercentages      LabelPercentMap `json:"category_percentages"`
	RecommendedActions       map[string]bool `json:"recommended_actions"`
	HighRiskCount            int             `json:"high_risk_count"`
	HighRiskComments         RawComments     `json:"high_risk_comments_list"`
	TopImportantComments     RawComments     `json:"top_important_comments"`
	AllMappedComments        RawComments     `json:"all_mapped_comments_list"`
}

// CommentListFields are the Stats keys holding comment lists.
var CommentListFields = [...]string{"high_risk_comments_list", "top_important_comments", "all_mapped_comments_list"}

// Envelope is the outer API Gateway response; Body holds the JSON-encoded Stats.
type Envelope struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
}
