package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hybridsum/hybridsum/pkg/summarizer/metrics"
)

// ReadDocument extracts plain text from a document file. Supported formats
// are txt, md, html and pdf.
func ReadDocument(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var text string
	var err error
	switch ext {
	case ".txt", ".md":
		text, err = readPlain(path)
	case ".html", ".htm":
		text, err = readHTML(path)
	case ".pdf":
		text, err = readPDF(path)
	default:
		return "", errors.Errorf("unsupported document format %q", ext)
	}
	if err != nil {
		return "", err
	}

	metrics.DocumentReads.WithLabelValues(strings.TrimPrefix(ext, ".")).Inc()
	return text, nil
}

func readPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "reading document")
	}
	return string(data), nil
}

// readHTML strips script/style nodes and returns the body text with
// whitespace collapsed.
func readHTML(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "reading document")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "parsing HTML")
	}
	doc.Find("script, style, noscript").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}
	return strings.Join(strings.Fields(text), " "), nil
}

// readPDF concatenates the plain text of every page. Pages that fail to
// extract are skipped with a warning rather than failing the document.
func readPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening PDF")
	}
	defer f.Close()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"path": path,
				"page": i,
			}).Warn("Skipping unreadable PDF page")
			continue
		}
		sb.WriteString(text)
		sb.WriteString(" ")
	}
	return strings.TrimSpace(sb.String()), nil
}
