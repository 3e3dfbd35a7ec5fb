package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hybridsum/hybridsum/pkg/summarizer/evaluation"
)

func sampleReport() *Report {
	r := NewReport("Summarization Report")
	r.AddSummary("doc.txt", "textrank", "The cat sat on the mat.", nil)
	r.AddSummary("", "hybrid", "Stocks fell sharply.", nil)
	r.SetEvaluation(&evaluation.BatchResults{
		Metrics: map[string]evaluation.MetricStats{
			"rouge-1": {Mean: 0.5, Std: 0.1, Min: 0.4, Max: 0.6},
			"bleu":    {Mean: 0.25, Std: 0.05, Min: 0.2, Max: 0.3},
		},
		Overall: 0.375,
		Metadata: evaluation.BatchMetadata{
			RunID:      "run-1",
			NumSamples: 4,
			NumBatches: 2,
		},
	})
	return r
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "", want: FormatText},
		{input: "txt", want: FormatText},
		{input: "text", want: FormatText},
		{input: "json", want: FormatJSON},
		{input: "html", want: FormatHTML},
		{input: "pdf", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewWriterRejectsUnknownFormat(t *testing.T) {
	if _, err := NewWriter("out.bin", "binary"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.json")
	w, err := NewWriter(path, "json")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write(sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if decoded.Title != "Summarization Report" {
		t.Errorf("title = %q", decoded.Title)
	}
	if len(decoded.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(decoded.Entries))
	}
	if decoded.Entries[0].Summary != "The cat sat on the mat." {
		t.Errorf("entry summary = %q", decoded.Entries[0].Summary)
	}
	if decoded.Evaluation == nil {
		t.Fatal("expected evaluation section")
	}
	if decoded.Evaluation.Overall != 0.375 {
		t.Errorf("overall = %v", decoded.Evaluation.Overall)
	}
}

func TestWriteText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.txt")
	w, err := NewWriter(path, "txt")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write(sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"Summarization Report",
		"doc.txt (textrank)",
		"The cat sat on the mat.",
		"input (hybrid)",
		"rouge-1",
		"overall score: 0.3750",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text report missing %q:\n%s", want, text)
		}
	}

	// bleu sorts before rouge-1
	if strings.Index(text, "bleu") > strings.Index(text, "rouge-1") {
		t.Error("metrics not sorted by name")
	}
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.html")
	w, err := NewWriter(path, "html")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write(sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	html := string(data)

	for _, want := range []string{
		"<title>Summarization Report</title>",
		"The cat sat on the mat.",
		"<td>rouge-1</td>",
		"<td>0.5000</td>",
		"Overall score: 0.3750",
		"Run run-1: 4 samples in 2 batches",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("html report missing %q", want)
		}
	}
}

func TestWriteHTMLWithoutEvaluation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.html")
	w, err := NewWriter(path, "html")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	r := NewReport("Summaries")
	r.AddSummary("a.txt", "lexrank", "One sentence.", nil)
	if err := w.Write(r); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if strings.Contains(string(data), "<h2>Evaluation</h2>") {
		t.Error("evaluation section rendered without data")
	}
}

func TestWriteCreatesParentDirectory(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "nested", "deeper", "run.json")
	w, err := NewWriter(path, "json")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write(NewReport("Empty")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report file not created: %v", err)
	}
}
