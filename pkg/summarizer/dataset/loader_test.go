package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, "data.json", `[
		{"text": "first document", "summary": "first"},
		{"text": "second document"},
		{"summary": "no text here"}
	]`)

	samples, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if samples[0].Text != "first document" || samples[0].Summary != "first" {
		t.Errorf("samples[0] = %+v", samples[0])
	}
	if samples[1].Summary != "" {
		t.Errorf("samples[1].Summary = %q, want empty", samples[1].Summary)
	}
}

func TestLoadFileJSONSingleObject(t *testing.T) {
	path := writeFile(t, "one.json", `{"text": "only document", "summary": "only"}`)

	samples, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(samples) != 1 || samples[0].Text != "only document" {
		t.Errorf("samples = %+v", samples)
	}
}

func TestLoadFileJSONInvalid(t *testing.T) {
	path := writeFile(t, "bad.json", `{"text": `)

	if _, err := NewLoader().LoadFile(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadFileJSONL(t *testing.T) {
	path := writeFile(t, "data.jsonl", `{"text": "line one", "summary": "s1"}

{"summary": "skipped, no text"}
{"text": "line two"}
`)

	samples, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if samples[0].Text != "line one" || samples[1].Text != "line two" {
		t.Errorf("samples = %+v", samples)
	}
}

func TestLoadFileCSV(t *testing.T) {
	path := writeFile(t, "data.csv", "text,summary\n\"doc one\",\"sum one\"\n\"doc two\",\"sum two\"\n")

	samples, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if samples[1].Text != "doc two" || samples[1].Summary != "sum two" {
		t.Errorf("samples[1] = %+v", samples[1])
	}
}

func TestLoadFileCSVMissingTextColumn(t *testing.T) {
	path := writeFile(t, "data.csv", "body,summary\n\"doc\",\"sum\"\n")

	if _, err := NewLoader().LoadFile(path); err == nil {
		t.Error("expected error for missing text column")
	}
}

func TestLoadFileCSVCustomFields(t *testing.T) {
	path := writeFile(t, "data.csv", "article,highlights\n\"doc\",\"sum\"\n")

	l := NewLoader()
	l.TextField = "article"
	l.SummaryField = "highlights"

	samples, err := l.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(samples) != 1 || samples[0].Text != "doc" || samples[0].Summary != "sum" {
		t.Errorf("samples = %+v", samples)
	}
}

func TestLoadFileTxt(t *testing.T) {
	path := writeFile(t, "data.txt", "The whole file is one document.")

	samples, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(samples) != 1 || samples[0].Text != "The whole file is one document." {
		t.Errorf("samples = %+v", samples)
	}
}

func TestLoadFileUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "data.parquet", "binary")

	if _, err := NewLoader().LoadFile(path); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := NewLoader().LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadDocumentPlain(t *testing.T) {
	path := writeFile(t, "doc.txt", "Plain text body.")

	text, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	if text != "Plain text body." {
		t.Errorf("text = %q", text)
	}
}

func TestReadDocumentHTML(t *testing.T) {
	path := writeFile(t, "doc.html", `<html><head><style>p{color:red}</style></head>`+
		`<body><p>Hello world.</p><script>var x = 1;</script></body></html>`)

	text, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	if text != "Hello world." {
		t.Errorf("text = %q, want %q", text, "Hello world.")
	}
}

func TestReadDocumentUnsupported(t *testing.T) {
	path := writeFile(t, "doc.docx", "binary")

	if _, err := ReadDocument(path); err == nil {
		t.Error("expected error for unsupported document format")
	}
}
