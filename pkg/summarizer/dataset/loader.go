// Package dataset loads text/summary pairs from local files and extracts
// plain text from document formats.
package dataset

import (
	"bufio"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/hybridsum/hybridsum/pkg/summarizer/metrics"
)

// Sample is one dataset entry. Summary is empty for unannotated corpora.
type Sample struct {
	Text    string `json:"text"`
	Summary string `json:"summary,omitempty"`
}

// Loader reads datasets in json, jsonl, csv and txt form.
type Loader struct {
	// TextField and SummaryField name the columns/keys holding the source
	// text and the reference summary.
	TextField    string
	SummaryField string

	logger *logrus.Logger
}

// NewLoader creates a loader with the standard text/summary field names
func NewLoader() *Loader {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Loader{
		TextField:    "text",
		SummaryField: "summary",
		logger:       logger,
	}
}

// LoadDataset reads every sample in the file with the standard field names.
func LoadDataset(path string) ([]Sample, error) {
	return NewLoader().LoadFile(path)
}

// LoadFile reads every sample in the file, dispatching on the extension.
func (l *Loader) LoadFile(path string) ([]Sample, error) {
	var samples []Sample
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		samples, err = l.loadJSON(path)
	case ".jsonl":
		samples, err = l.loadJSONL(path)
	case ".csv":
		samples, err = l.loadCSV(path)
	case ".txt":
		samples, err = l.loadTxt(path)
	default:
		return nil, errors.Errorf("unsupported dataset format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	metrics.DatasetSamples.Add(float64(len(samples)))
	l.logger.WithFields(logrus.Fields{
		"path":    path,
		"samples": len(samples),
	}).Info("Loaded dataset")

	return samples, nil
}

// loadJSON accepts either an array of objects or a single object. Entries
// without the text field are dropped.
func (l *Loader) loadJSON(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading dataset")
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.Errorf("invalid JSON in %s", path)
	}

	parsed := gjson.ParseBytes(data)
	entries := []gjson.Result{parsed}
	if parsed.IsArray() {
		entries = parsed.Array()
	}

	var samples []Sample
	skipped := 0
	for _, entry := range entries {
		text := entry.Get(l.TextField)
		if !text.Exists() {
			skipped++
			continue
		}
		samples = append(samples, Sample{
			Text:    text.String(),
			Summary: entry.Get(l.SummaryField).String(),
		})
	}
	if skipped > 0 {
		l.logger.WithFields(logrus.Fields{
			"path":    path,
			"skipped": skipped,
		}).Warn("Dropped entries without a text field")
	}
	return samples, nil
}

// loadJSONL reads one JSON object per line, keeping lines that carry the
// text field.
func (l *Loader) loadJSONL(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading dataset")
	}
	defer f.Close()

	var samples []Sample
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry := gjson.Parse(line)
		text := entry.Get(l.TextField)
		if !text.Exists() {
			continue
		}
		samples = append(samples, Sample{
			Text:    text.String(),
			Summary: entry.Get(l.SummaryField).String(),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning dataset")
	}
	return samples, nil
}

// loadCSV requires a header row with the text column; the summary column is
// optional.
func (l *Loader) loadCSV(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading dataset")
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parsing CSV")
	}
	if len(records) == 0 {
		return nil, nil
	}

	textIdx, summaryIdx := -1, -1
	for i, col := range records[0] {
		switch strings.TrimSpace(col) {
		case l.TextField:
			textIdx = i
		case l.SummaryField:
			summaryIdx = i
		}
	}
	if textIdx < 0 {
		return nil, errors.Errorf("text column %q not found in %s", l.TextField, path)
	}

	var samples []Sample
	for _, record := range records[1:] {
		if textIdx >= len(record) {
			continue
		}
		sample := Sample{Text: record[textIdx]}
		if summaryIdx >= 0 && summaryIdx < len(record) {
			sample.Summary = record[summaryIdx]
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// loadTxt treats the whole file as a single unannotated sample.
func (l *Loader) loadTxt(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading dataset")
	}
	return []Sample{{Text: string(data)}}, nil
}
