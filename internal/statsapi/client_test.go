package statsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(t *testing.T, inner string) string {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"statusCode": 200,
		"headers":    map[string]string{"Content-Type": "application/json"},
		"body":       inner,
	})
	require.NoError(t, err)
	return string(b)
}

func serve(t *testing.T, status int, payload string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/stats" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/v1/", 5*time.Second, 0)
}

func TestFetchStatsDecodesDoubleEnvelope(t *testing.T) {
	inner := `{
		"total_comments": 3,
		"sentiment_counts": {"Positive": 2, "Negative": 1},
		"sentiment_percentages": {"Positive": 66.6, "Negative": 33.3},
		"category_counts": {"Operations": 3},
		"recommended_actions": {"Operations": true},
		"high_risk_count": 1,
		"high_risk_comments_list": [{"CommentID": "c1", "Importance": 5, "IsHighRisk": true}],
		"all_mapped_comments_list": [{"Importance": 3}, {"Importance": 3}, {"Importance": 1}]
	}`
	c := serve(t, http.StatusOK, envelope(t, inner))

	stats, err := c.FetchStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalComments)
	assert.Equal(t, 2, stats.SentimentCounts["Positive"])
	assert.Equal(t, 66.6, stats.SentimentPercentages["Positive"])
	assert.True(t, stats.RecommendedActions["Operations"])
	assert.Len(t, stats.HighRiskComments, 1)
	assert.Len(t, stats.AllMappedComments, 3)
	assert.Empty(t, stats.TopImportantComments)
}

func TestFetchStatsHTTPError(t *testing.T) {
	c := serve(t, http.StatusInternalServerError, "boom")

	_, err := c.FetchStats(context.Background())
	require.Error(t, err)
	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, 500, herr.StatusCode)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "boom")
}

func TestFetchStatsMalformedEnvelope(t *testing.T) {
	cases := map[string]string{
		"not json":       "<html>oops</html>",
		"missing body":   `{"statusCode": 200}`,
		"body not str":   `{"statusCode": 200, "body": {"total_comments": 1}}`,
		"empty body":     `{"statusCode": 200, "body": ""}`,
		"invalid inner":  `{"statusCode": 200, "body": "{not json"}`,
		"wrong field ty": `{"statusCode": 200, "body": "{\"total_comments\": \"many\"}"}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := serve(t, http.StatusOK, payload).FetchStats(context.Background())
			assert.ErrorIs(t, err, ErrMalformedEnvelope)
		})
	}
}

func TestFetchStatsBackendError(t *testing.T) {
	c := serve(t, http.StatusOK, envelope(t, `{"error": "table missing"}`))

	_, err := c.FetchStats(context.Background())
	var berr *BackendError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, "table missing", berr.Message)
	assert.Equal(t, "Backend error: table missing", err.Error())
}

func TestFetchStatsEmptyShapes(t *testing.T) {
	for _, inner := range []string{`{"total_comments": 0}`, `{}`, `[]`, `42`, `{"error": ""}`} {
		stats, err := serve(t, http.StatusOK, envelope(t, inner)).FetchStats(context.Background())
		require.NoError(t, err, inner)
		assert.Zero(t, stats.TotalComments, inner)
	}
}

func TestFetchStatsLenientShapes(t *testing.T) {
	cases := map[string]string{
		"list is object": `{"total_comments": 3, "sentiment_counts": {"Positive": 3}, "high_risk_comments_list": {}}`,
		"error is false": `{"total_comments": 3, "sentiment_counts": {"Positive": 3}, "error": false}`,
		"error is null":  `{"total_comments": 3, "sentiment_counts": {"Positive": 3}, "error": null}`,
		"list is string": `{"total_comments": 3, "sentiment_counts": {"Positive": 3}, "top_important_comments": "none"}`,
		"list is number": `{"total_comments": 3, "sentiment_counts": {"Positive": 3}, "all_mapped_comments_list": 7}`,
		"list is null":   `{"total_comments": 3, "sentiment_counts": {"Positive": 3}, "high_risk_comments_list": null}`,
	}
	for name, inner := range cases {
		t.Run(name, func(t *testing.T) {
			stats, err := serve(t, http.StatusOK, envelope(t, inner)).FetchStats(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 3, stats.TotalComments)
			assert.Equal(t, 3, stats.SentimentCounts["Positive"])
			assert.Empty(t, stats.HighRiskComments)
			assert.Empty(t, stats.TopImportantComments)
			assert.Empty(t, stats.AllMappedComments)
		})
	}
}

func TestFetchStatsKeepsValidListsBesideMalformedOnes(t *testing.T) {
	inner := `{"total_comments": 1, "high_risk_comments_list": "oops", "all_mapped_comments_list": [{"CommentID": "a", "Importance": 4}]}`
	stats, err := serve(t, http.StatusOK, envelope(t, inner)).FetchStats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats.HighRiskComments)
	assert.Len(t, stats.AllMappedComments, 1)
}

func TestFetchStatsTransportError(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second, 0)
	_, err := c.FetchStats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch stats")
}

func TestExportCSVRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/export/csv", r.URL.Path)
		if calls.Add(1) == 1 {
			http.Error(w, "cold start", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="feedback_analysis.csv"`)
		_, _ = w.Write([]byte("\"CommentID\"\n\"c1\"\n"))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, 2)
	c.RetryInterval = time.Millisecond

	var out bytes.Buffer
	name, err := c.ExportCSV(context.Background(), &out)
	require.NoError(t, err)
	assert.Equal(t, "feedback_analysis.csv", name)
	assert.Equal(t, "\"CommentID\"\n\"c1\"\n", out.String())
	assert.Equal(t, int32(2), calls.Load())
}

func TestExportCSVClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, 3)
	c.RetryInterval = time.Millisecond

	var out bytes.Buffer
	_, err := c.ExportCSV(context.Background(), &out)
	var herr *HTTPError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusForbidden, herr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
	assert.Zero(t, out.Len())
}

func TestAttachmentName(t *testing.T) {
	assert.Equal(t, "report.csv", attachmentName(`attachment; filename="report.csv"`))
	assert.Equal(t, defaultExportFilename, attachmentName(""))
	assert.Equal(t, defaultExportFilename, attachmentName("attachment"))
	assert.Equal(t, "http://x/export/csv", New("http://x/", time.Second, 0).ExportURL())
}
