package statsapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/types"
)

const defaultExportFilename = "feedback_analysis.csv"

// Client talks to the comment-analysis stats API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// ExportRetries bounds retries of the CSV download. The stats fetch is
	// never retried.
	ExportRetries uint64
	RetryInterval time.Duration
}

func New(baseURL string, timeout time.Duration, exportRetries int) *Client {
	if exportRetries < 0 {
		exportRetries = 0
	}
	return &Client{
		BaseURL:       strings.TrimRight(baseURL, "/"),
		HTTPClient:    &http.Client{Timeout: timeout},
		ExportRetries: uint64(exportRetries),
		RetryInterval: 500 * time.Millisecond,
	}
}

func (c *Client) StatsURL() string { return c.BaseURL + "/stats" }

// ExportURL is the navigation target for a browser CSV download.
func (c *Client) ExportURL() string { return c.BaseURL + "/export/csv" }

// FetchStats performs one GET /stats and decodes the double envelope.
func (c *Client) FetchStats(ctx context.Context) (*types.Stats, error) {
	log := logger.New().WithField("component", "statsapi").WithField("url", c.StatsURL())
	log.Info("fetching stats")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.StatsURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("build stats request: %w", err)
	}
	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.WithError(err).Error("stats request failed")
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read stats response: %w", err)
	}
	log = log.WithField("http_status", resp.StatusCode).WithField("duration_ms", time.Since(start).Milliseconds())
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithField("body", string(body)).Error("stats request returned non-2xx")
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	stats, err := DecodeEnvelope(body)
	if err != nil {
		log.WithField("error", err.Error()).Error("stats response rejected")
		return nil, err
	}
	log.WithField("total_comments", stats.TotalComments).Info("stats fetched")
	return stats, nil
}

// ExportCSV downloads the CSV export into w and returns the filename the
// server suggested. Transport errors and 5xx responses are retried.
func (c *Client) ExportCSV(ctx context.Context, w io.Writer) (string, error) {
	log := logger.New().WithField("component", "statsapi").WithField("url", c.ExportURL())

	var (
		buf      bytes.Buffer
		filename string
	)
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ExportURL(), nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build export request: %w", err))
		}
		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			log.WithError(err).Warn("export request failed")
			return fmt.Errorf("fetch export: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			b, _ := io.ReadAll(resp.Body)
			herr := &HTTPError{StatusCode: resp.StatusCode, Body: string(b)}
			if resp.StatusCode >= 500 {
				log.WithField("http_status", resp.StatusCode).Warn("export server error")
				return herr
			}
			return backoff.Permanent(herr)
		}

		buf.Reset()
		if _, err := io.Copy(&buf, resp.Body); err != nil {
			return fmt.Errorf("read export: %w", err)
		}
		filename = attachmentName(resp.Header.Get("Content-Disposition"))
		return nil
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.RetryInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, c.ExportRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return "", err
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	log.WithField("filename", filename).WithField("bytes", buf.Len()).Info("export downloaded")
	return filename, nil
}

func attachmentName(disposition string) string {
	if disposition == "" {
		return defaultExportFilename
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil || params["filename"] == "" {
		return defaultExportFilename
	}
	return params["filename"]
}
