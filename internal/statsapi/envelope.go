package statsapi

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/types"
)

// DecodeEnvelope unwraps {statusCode, headers, body} and parses body as the
// Stats document. A body that parses to something other than an object is
// returned as empty Stats. A comment list that is not an array decodes as
// empty, and a falsy "error" field is ignored.
func DecodeEnvelope(raw []byte) (*types.Stats, error) {
	log := logger.New().WithField("component", "statsapi.envelope")

	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: response is not JSON", ErrMalformedEnvelope)
	}
	outer := gjson.ParseBytes(raw)
	body := outer.Get("body")
	if body.Type != gjson.String || body.Str == "" {
		log.WithField("body_type", body.Type.String()).Error("envelope body missing or not a string")
		return nil, ErrMalformedEnvelope
	}
	log.WithField("envelope_status", outer.Get("statusCode").Int()).Debug("envelope received")

	if !gjson.Valid(body.Str) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformedEnvelope)
	}
	inner := gjson.Parse(body.Str)
	if e := inner.Get("error"); truthy(e) {
		return nil, &BackendError{Message: e.String()}
	}
	if !inner.IsObject() {
		log.WithField("body", body.Str).Warn("stats body is not an object, treating as empty")
		return &types.Stats{}, nil
	}

	for _, key := range types.CommentListFields {
		if l := inner.Get(key); l.Exists() && l.Type != gjson.Null && !l.IsArray() {
			log.WithField("field", key).WithField("type", l.Type.String()).
				Warn("comment list is not an array, treating as empty")
		}
	}

	var stats types.Stats
	if err := json.Unmarshal([]byte(body.Str), &stats); err != nil {
		return nil, fmt.Errorf("%w: decode stats: %v", ErrMalformedEnvelope, err)
	}
	return &stats, nil
}

// truthy mirrors how a loosely typed client treats an "error" field:
// present, non-null, non-false, non-empty, non-zero.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	case gjson.True, gjson.JSON:
		return true
	}
	return false
}
