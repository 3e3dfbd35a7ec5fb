// Package report renders summarization and evaluation results as text, JSON
// or HTML.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hybridsum/hybridsum/pkg/summarizer/evaluation"
	"github.com/hybridsum/hybridsum/pkg/summarizer/metrics"
)

// Output formats
const (
	FormatText = "txt"
	FormatJSON = "json"
	FormatHTML = "html"
)

// ErrUnknownFormat reports an output format outside the supported set.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat validates a format name, mapping the empty string to text.
func ParseFormat(s string) (string, error) {
	switch s {
	case "", FormatText, "text":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// Entry is one summarized input inside a report.
type Entry struct {
	Source  string      `json:"source,omitempty"`
	Method  string      `json:"method"`
	Summary string      `json:"summary"`
	Result  interface{} `json:"result,omitempty"`
}

// Report collects summaries and optional evaluation statistics for one run.
type Report struct {
	Title      string                   `json:"title"`
	Generated  string                   `json:"generated_at"`
	Entries    []Entry                  `json:"entries,omitempty"`
	Evaluation *evaluation.BatchResults `json:"evaluation,omitempty"`
}

// NewReport creates an empty report stamped with the current time
func NewReport(title string) *Report {
	return &Report{
		Title:     title,
		Generated: time.Now().UTC().Format(time.RFC3339),
	}
}

// AddSummary appends one summarized input.
func (r *Report) AddSummary(source, method, summary string, result interface{}) {
	r.Entries = append(r.Entries, Entry{
		Source:  source,
		Method:  method,
		Summary: summary,
		Result:  result,
	})
}

// SetEvaluation attaches batch evaluation statistics.
func (r *Report) SetEvaluation(batch *evaluation.BatchResults) {
	r.Evaluation = batch
}

// Writer renders reports to a file or, for an empty or "-" path, stdout.
type Writer struct {
	path   string
	format string
	logger *logrus.Logger
}

// NewWriter creates a report writer, validating the format name.
func NewWriter(path, format string) (*Writer, error) {
	parsed, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Writer{
		path:   path,
		format: parsed,
		logger: logger,
	}, nil
}

// Format returns the validated output format
func (w *Writer) Format() string {
	return w.format
}

// Write renders the report in the configured format.
func (w *Writer) Write(report *Report) error {
	var data []byte
	var err error

	switch w.format {
	case FormatJSON:
		data, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encoding report")
		}
	case FormatHTML:
		data, err = renderHTML(report)
		if err != nil {
			return err
		}
	default:
		data = []byte(renderText(report))
	}

	metrics.ReportsWritten.WithLabelValues(w.format).Inc()

	if w.path == "" || w.path == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "creating report directory")
		}
	}
	if err := os.WriteFile(w.path, data, 0644); err != nil {
		return errors.Wrap(err, "writing report")
	}

	w.logger.WithFields(logrus.Fields{
		"path":   w.path,
		"format": w.format,
	}).Info("Report written")
	return nil
}

func renderText(report *Report) string {
	var sb strings.Builder
	sb.WriteString(report.Title + "\n")
	sb.WriteString("Generated: " + report.Generated + "\n")

	for _, entry := range report.Entries {
		sb.WriteString("\n")
		source := entry.Source
		if source == "" {
			source = "input"
		}
		fmt.Fprintf(&sb, "--- %s (%s) ---\n", source, entry.Method)
		sb.WriteString(entry.Summary + "\n")
	}

	if report.Evaluation != nil {
		eval := report.Evaluation
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "Evaluation run %s: %d samples in %d batches\n",
			eval.Metadata.RunID, eval.Metadata.NumSamples, eval.Metadata.NumBatches)
		for _, name := range sortedMetricNames(eval.Metrics) {
			stats := eval.Metrics[name]
			fmt.Fprintf(&sb, "  %-10s mean %.4f  std %.4f  min %.4f  max %.4f\n",
				name, stats.Mean, stats.Std, stats.Min, stats.Max)
		}
		fmt.Fprintf(&sb, "  overall score: %.4f\n", eval.Overall)
	}
	return sb.String()
}

func sortedMetricNames(m map[string]evaluation.MetricStats) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
