package dashboard

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"feedback-insights-go/internal/actionable"
	"feedback-insights-go/internal/aggregator"
	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/types"
)

// Fetcher supplies one stats snapshot per render cycle.
type Fetcher interface {
	FetchStats(ctx context.Context) (*types.Stats, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (*types.Stats, error)

func (f FetcherFunc) FetchStats(ctx context.Context) (*types.Stats, error) { return f(ctx) }

// Static serves a fixed snapshot, e.g. one summarized from a workbook.
func Static(stats *types.Stats) Fetcher {
	return FetcherFunc(func(context.Context) (*types.Stats, error) { return stats, nil })
}

var errNoStats = errors.New("no stats returned")

// Controller runs render cycles and owns at most one chart handle per canvas.
type Controller struct {
	fetcher Fetcher
	group   singleflight.Group

	mu      sync.Mutex
	handles map[Canvas]*charts.Bar
	current *View
}

func NewController(f Fetcher) *Controller {
	return &Controller{
		fetcher: f,
		handles: make(map[Canvas]*charts.Bar, len(Canvases)),
	}
}

// Teardown releases every chart handle.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.handles)
}

// Bound returns the canvases that currently hold a chart, in page order.
func (c *Controller) Bound() []Canvas {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Canvas, 0, len(c.handles))
	for _, canvas := range Canvases {
		if _, ok := c.handles[canvas]; ok {
			out = append(out, canvas)
		}
	}
	return out
}

// Current is the most recent view, or nil before the first cycle starts.
func (c *Controller) Current() *View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) setCurrent(v *View) {
	c.mu.Lock()
	c.current = v
	c.mu.Unlock()
}

// bind releases the handle on canvas, if any, then binds bar to it.
func (c *Controller) bind(canvas Canvas, bar *charts.Bar) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handles, canvas)
	c.handles[canvas] = bar
}

// Refresh runs one render cycle. Concurrent callers share the in-flight
// cycle, which is not cancelled when the caller that started it goes away;
// the fetcher's own timeout bounds it.
func (c *Controller) Refresh(ctx context.Context) *View {
	shared := context.WithoutCancel(ctx)
	v, _, _ := c.group.Do("refresh", func() (any, error) {
		return c.cycle(shared), nil
	})
	return v.(*View)
}

func (c *Controller) cycle(ctx context.Context) *View {
	cycleID := uuid.NewString()
	log := logger.New().WithField("component", "dashboard").WithField("cycle_id", cycleID)

	c.setCurrent(loadingView(cycleID))
	c.Teardown()

	stats, err := c.fetcher.FetchStats(ctx)
	if err == nil && stats == nil {
		err = errNoStats
	}
	if err != nil {
		log.WithError(err).Error("render cycle failed")
		c.Teardown()
		v := errorView(cycleID, err)
		c.setCurrent(v)
		return v
	}
	if stats.TotalComments == 0 {
		log.Info("no analysis data")
		v := emptyView(cycleID)
		c.setCurrent(v)
		return v
	}

	v, err := c.build(cycleID, stats)
	if err != nil {
		log.WithError(err).Error("render cycle failed")
		c.Teardown()
		v = errorView(cycleID, err)
	} else {
		log.WithField("total_comments", stats.TotalComments).
			WithField("charts", len(v.Charts)).
			Info("render cycle complete")
	}
	c.setCurrent(v)
	return v
}

func (c *Controller) build(cycleID string, stats *types.Stats) (*View, error) {
	all := aggregator.Records("all_mapped_comments_list", stats.AllMappedComments)

	v := &View{
		CycleID:       cycleID,
		Status:        Status{State: StateSuccess, Message: SuccessMessage},
		TotalComments: stats.TotalComments,
		HighRiskCount: stats.HighRiskCount,
		Importance:    aggregator.SummarizeImportance(all),
		Actions:       actionable.Generate(stats),
		Stats:         stats,
	}

	sentimentRows := aggregator.RankAndPercentage(types.SentimentAxis, stats.SentimentCounts, stats.SentimentPercentages)
	categoryRows := aggregator.RankAndPercentage(types.CategoryAxis, stats.CategoryCounts, stats.CategoryPercentages)

	v.Sentiment = sentimentTable(sentimentRows)
	v.Category = categoryTable(categoryRows, stats.RecommendedActions)
	v.HighRisk = commentTable(aggregator.SelectHighRisk(stats.HighRiskComments), "No high-risk comments identified.")
	v.TopImportant = commentTable(aggregator.SelectTopImportant(stats.TopImportantComments), "No top important comments identified.")

	var built []chart
	if len(sentimentRows) > 0 {
		built = append(built, sentimentChart(sentimentRows))
	}
	if len(categoryRows) > 0 {
		built = append(built, categoryChart(categoryRows))
	}
	if len(stats.AllMappedComments) > 0 {
		built = append(built, importanceChart(all), sentimentImportanceChart(all))
	}
	for _, ch := range built {
		option, err := chartOption(ch.bar)
		if err != nil {
			return nil, err
		}
		c.bind(ch.canvas, ch.bar)
		v.Charts = append(v.Charts, ChartView{Canvas: ch.canvas, Title: ch.title, Option: option})
	}
	return v, nil
}

func sentimentTable(rows []aggregator.Row) Table {
	t := Table{Columns: sentimentColumns}
	if len(rows) == 0 {
		t.Placeholder = "No sentiment data available."
		return t
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Label, strconv.Itoa(r.Count), r.PercentageText()})
	}
	return t
}

func categoryTable(rows []aggregator.Row, recommended map[string]bool) Table {
	t := Table{Columns: categoryColumns}
	if len(rows) == 0 {
		t.Placeholder = "No category data available."
		return t
	}
	for _, r := range rows {
		action := "N/A"
		if flagged, ok := recommended[r.Label]; ok {
			action = "No"
			if flagged {
				action = "Yes"
			}
		}
		t.Rows = append(t.Rows, []string{r.Label, strconv.Itoa(r.Count), r.PercentageText(), action})
	}
	return t
}

// commentTable shows the placeholder when no valid record remains.
func commentTable(records []types.CommentRecord, placeholder string) Table {
	t := Table{Columns: commentColumns}
	if len(records) == 0 {
		t.Placeholder = placeholder
		return t
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			r.Importance.String(),
			orDefault(r.OriginalComment, "No Comment Text"),
			orDefault(r.Sentiment, "N/A"),
			orDefault(r.Category, "N/A"),
			rowIndex(r.OriginalRowIndex),
		})
	}
	return t
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func rowIndex(i *int) string {
	if i == nil {
		return "N/A"
	}
	return strconv.Itoa(*i)
}
