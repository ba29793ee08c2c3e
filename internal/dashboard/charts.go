package dashboard

import (
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"feedback-insights-go/internal/aggregator"
	"feedback-insights-go/internal/types"
)

// Canvas names a chart region on the page.
type Canvas string

const (
	SentimentCanvas           Canvas = "sentimentBarChart"
	CategoryCanvas            Canvas = "categoryBarChart"
	ImportanceCanvas          Canvas = "importanceDistributionChart"
	SentimentImportanceCanvas Canvas = "sentimentImportanceChart"
)

const sentimentImportanceStackID = "SentimentStack"

// Canvases lists every chart region in page order.
var Canvases = [...]Canvas{SentimentCanvas, CategoryCanvas, ImportanceCanvas, SentimentImportanceCanvas}

const (
	titleColor = "#343a40"
	tickColor  = "#6c757d"
)

// chart is a built chart not yet bound to its canvas.
type chart struct {
	canvas Canvas
	title  string
	bar    *charts.Bar
}

func newBar(canvas Canvas, title string, legend bool) *charts.Bar {
	bar := charts.NewBar()
	legendOpts := opts.Legend{Show: opts.Bool(false)}
	if legend {
		legendOpts = opts.Legend{
			Show:      opts.Bool(true),
			Bottom:    "0",
			TextStyle: &opts.TextStyle{Color: titleColor},
		}
	}
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: string(canvas),
			Width:   "100%",
			Height:  "360px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:      title,
			TitleStyle: &opts.TextStyle{Color: titleColor},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(legendOpts),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         "Count",
			NameLocation: "center",
			NameGap:      40,
			AxisLabel:    &opts.AxisLabel{Color: tickColor},
		}),
	)
	return bar
}

func withImportanceAxis(bar *charts.Bar) {
	bar.SetGlobalOptions(charts.WithXAxisOpts(opts.XAxis{
		Name:         "Importance Level",
		NameLocation: "center",
		NameGap:      30,
		AxisLabel:    &opts.AxisLabel{Color: tickColor},
	}))
}

// coloredBars gives each bar its own color.
func coloredBars(s aggregator.ChartSeries) []opts.BarData {
	data := make([]opts.BarData, len(s.Values))
	for i, v := range s.Values {
		color := s.Color
		if i < len(s.Colors) {
			color = s.Colors[i]
		}
		data[i] = opts.BarData{Value: v, ItemStyle: &opts.ItemStyle{Color: color}}
	}
	return data
}

func labelChart(canvas Canvas, title string, axis types.Axis, rows []aggregator.Row) chart {
	labels, series := aggregator.LabelSeries(axis, rows)
	bar := newBar(canvas, title, false)
	bar.SetGlobalOptions(charts.WithXAxisOpts(opts.XAxis{
		AxisLabel: &opts.AxisLabel{Color: tickColor},
	}))
	bar.SetXAxis(labels).AddSeries(series.Label, coloredBars(series))
	return chart{canvas: canvas, title: title, bar: bar}
}

func sentimentChart(rows []aggregator.Row) chart {
	return labelChart(SentimentCanvas, "Sentiment Distribution", types.SentimentAxis, rows)
}

func categoryChart(rows []aggregator.Row) chart {
	return labelChart(CategoryCanvas, "Category Breakdown", types.CategoryAxis, rows)
}

func importanceChart(records []types.CommentRecord) chart {
	const title = "Importance Distribution (1-5)"
	series := aggregator.DistributionSeries(aggregator.BuildImportanceDistribution(records))
	bar := newBar(ImportanceCanvas, title, false)
	withImportanceAxis(bar)
	bar.SetXAxis(aggregator.ImportanceAxis()).AddSeries(series.Label, coloredBars(series))
	return chart{canvas: ImportanceCanvas, title: title, bar: bar}
}

func sentimentImportanceChart(records []types.CommentRecord) chart {
	const title = "Sentiment Breakdown by Importance Level"
	bar := newBar(SentimentImportanceCanvas, title, true)
	withImportanceAxis(bar)
	bar.SetXAxis(aggregator.ImportanceAxis())
	for _, s := range aggregator.ToStackedSeries(aggregator.BuildImportanceSentimentMatrix(records)) {
		data := make([]opts.BarData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(s.Label, data,
			charts.WithBarChartOpts(opts.BarChart{Stack: sentimentImportanceStackID}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		)
	}
	return chart{canvas: SentimentImportanceCanvas, title: title, bar: bar}
}

// chartOption serializes the echarts option of a built chart.
func chartOption(bar *charts.Bar) (template.JS, error) {
	bar.Validate()
	b, err := json.Marshal(bar.JSON())
	if err != nil {
		return "", fmt.Errorf("marshal chart option: %w", err)
	}
	return template.JS(b), nil
}
