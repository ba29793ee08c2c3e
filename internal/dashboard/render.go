package dashboard

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"text/tabwriter"
)

const echartsCDN = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

const page = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Feedback Analysis Dashboard</title>
<script src="{{.Asset}}"></script>
<style>
body { font-family: sans-serif; color: #343a40; margin: 2rem; }
.status-message.success { color: #28a745; }
.status-message.error { color: #dc3545; }
.chart-container { width: 100%; height: 360px; margin-bottom: 2rem; }
table { border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #dee2e6; padding: 4px 8px; text-align: left; }
</style>
</head>
<body>
<h1>Feedback Analysis Dashboard</h1>
<div id="statusArea" class="status-message {{.View.Status.State}}">{{.View.Status.Message}}</div>
<p><a href="{{.CSVHref}}">Export CSV</a>{{if .XLSXHref}} | <a href="{{.XLSXHref}}">Export XLSX</a>{{end}}</p>

<h2 id="totalComments">Total Comments Processed: {{.View.TotalComments}}</h2>
{{with .View.Importance}}{{if .Count}}<p>Mean importance {{printf "%.2f" .Mean}}, median {{printf "%.1f" .Median}} over {{.Count}} scored comments.</p>{{end}}{{end}}

<h2>Sentiment</h2>
{{template "table" .View.Sentiment}}
<h2>Categories</h2>
{{template "table" .View.Category}}

{{range .View.Charts}}<div id="{{.Canvas}}" class="chart-container"></div>
{{end}}
{{if .View.Actions}}<h2>Recommended Actions</h2>
<ul>{{range .View.Actions}}<li><strong>{{.Insight}}</strong>: {{.Action}} ({{.Impact}})</li>{{end}}</ul>{{end}}

<h2>High-Risk Comments</h2>
<p id="highRiskCount">Total High-Risk: {{.View.HighRiskCount}}</p>
{{template "table" .View.HighRisk}}
<h2>Top Important Comments</h2>
{{template "table" .View.TopImportant}}

<script>
{{range .View.Charts}}echarts.init(document.getElementById({{.Canvas}})).setOption({{.Option}});
{{end}}</script>
</body>
</html>
{{define "table"}}<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>{{if .Placeholder}}<tr><td colspan="{{len .Columns}}">{{.Placeholder}}</td></tr>{{else}}{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}{{end}}</tbody>
</table>{{end}}`

var pageTmpl = template.Must(template.New("dashboard").Parse(page))

// Links are the export targets shown on the page.
type Links struct {
	CSV  string
	XLSX string
}

// RenderHTML writes the dashboard page. Comment text is escaped by the
// template; chart options are emitted as script literals.
func RenderHTML(w io.Writer, v *View, links Links) error {
	data := struct {
		Asset    string
		View     *View
		CSVHref  string
		XLSXHref string
	}{echartsCDN, v, links.CSV, links.XLSX}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

// RenderText writes the view as plain tables for a terminal.
func RenderText(w io.Writer, v *View) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Status: %s\n", v.Status.Message)
	if v.Status.State == StateSuccess {
		fmt.Fprintf(tw, "Total Comments Processed: %d\n", v.TotalComments)
		if v.Importance.Count > 0 {
			fmt.Fprintf(tw, "Importance: mean %.2f, median %.1f (%d scored)\n",
				v.Importance.Mean, v.Importance.Median, v.Importance.Count)
		}
	}

	section := func(title string, t Table) {
		fmt.Fprintf(tw, "\n%s\n", title)
		fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
		if t.Placeholder != "" {
			fmt.Fprintln(tw, t.Placeholder)
			return
		}
		for _, row := range t.Rows {
			cells := make([]string, len(row))
			for i, cell := range row {
				cells[i] = oneLine(cell)
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
	}
	section("SENTIMENT", v.Sentiment)
	section("CATEGORY", v.Category)
	section(fmt.Sprintf("HIGH-RISK (Total High-Risk: %d)", v.HighRiskCount), v.HighRisk)
	section("TOP IMPORTANT", v.TopImportant)

	if len(v.Actions) > 0 {
		fmt.Fprintf(tw, "\nACTIONS\n")
		for _, a := range v.Actions {
			fmt.Fprintf(tw, "- %s\t%s\n", a.Insight, a.Action)
		}
	}
	return tw.Flush()
}

// oneLine keeps multi-line comments from breaking the column layout.
func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > 80 {
		return string(r[:77]) + "..."
	}
	return s
}
