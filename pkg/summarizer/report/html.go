package report

import (
	"bytes"
	"html/template"

	"github.com/pkg/errors"

	"github.com/hybridsum/hybridsum/pkg/summarizer/evaluation"
)

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 40px;
            color: #333;
        }
        .meta {
            color: #777;
            font-size: 13px;
        }
        .entry {
            border: 1px solid #ddd;
            border-radius: 4px;
            padding: 12px 16px;
            margin: 16px 0;
        }
        .entry h3 {
            margin: 0 0 8px 0;
            font-size: 15px;
        }
        .method {
            color: #555;
            font-weight: normal;
        }
        table {
            border-collapse: collapse;
            margin-top: 12px;
        }
        th, td {
            border: 1px solid #ddd;
            padding: 6px 12px;
            text-align: right;
        }
        th:first-child, td:first-child {
            text-align: left;
        }
        .overall {
            margin-top: 12px;
            font-weight: bold;
        }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <p class="meta">Generated: {{.Generated}}</p>
    {{range .Entries}}
    <div class="entry">
        <h3>{{.Source}} <span class="method">({{.Method}})</span></h3>
        <p>{{.Summary}}</p>
    </div>
    {{end}}
    {{if .HasEvaluation}}
    <h2>Evaluation</h2>
    <p class="meta">Run {{.RunID}}: {{.NumSamples}} samples in {{.NumBatches}} batches</p>
    <table>
        <tr><th>Metric</th><th>Mean</th><th>Std</th><th>Min</th><th>Max</th></tr>
        {{range .Rows}}
        <tr>
            <td>{{.Name}}</td>
            <td>{{printf "%.4f" .Stats.Mean}}</td>
            <td>{{printf "%.4f" .Stats.Std}}</td>
            <td>{{printf "%.4f" .Stats.Min}}</td>
            <td>{{printf "%.4f" .Stats.Max}}</td>
        </tr>
        {{end}}
    </table>
    <p class="overall">Overall score: {{printf "%.4f" .Overall}}</p>
    {{end}}
</body>
</html>`

type metricRow struct {
	Name  string
	Stats evaluation.MetricStats
}

type htmlEntry struct {
	Source  string
	Method  string
	Summary string
}

func renderHTML(report *Report) ([]byte, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "parsing report template")
	}

	entries := make([]htmlEntry, 0, len(report.Entries))
	for _, entry := range report.Entries {
		source := entry.Source
		if source == "" {
			source = "input"
		}
		entries = append(entries, htmlEntry{
			Source:  source,
			Method:  entry.Method,
			Summary: entry.Summary,
		})
	}

	data := struct {
		Title         string
		Generated     string
		Entries       []htmlEntry
		HasEvaluation bool
		RunID         string
		NumSamples    int
		NumBatches    int
		Rows          []metricRow
		Overall       float64
	}{
		Title:     report.Title,
		Generated: report.Generated,
		Entries:   entries,
	}

	if report.Evaluation != nil {
		eval := report.Evaluation
		data.HasEvaluation = true
		data.RunID = eval.Metadata.RunID
		data.NumSamples = eval.Metadata.NumSamples
		data.NumBatches = eval.Metadata.NumBatches
		data.Overall = eval.Overall
		for _, name := range sortedMetricNames(eval.Metrics) {
			data.Rows = append(data.Rows, metricRow{Name: name, Stats: eval.Metrics[name]})
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "rendering report template")
	}
	return buf.Bytes(), nil
}
