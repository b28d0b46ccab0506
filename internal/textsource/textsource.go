// Package textsource turns statement documents into plain text for parsing.
package textsource

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when a document yields no text
var ErrNoText = errors.New("no text extracted")

// Loader reads statement text from .txt and .pdf files
type Loader struct {
	logger *log.Logger
}

// NewLoader creates a new loader
func NewLoader(logger *log.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load returns the text of the document at path. PDFs are read row by row so
// that each printed line becomes one text line; anything else is read as
// plain text.
func (l *Loader) Load(path string) (string, error) {
	var (
		text string
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = l.loadPDF(path)
	} else {
		text, err = loadText(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read statement %s: %w", path, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("failed to read statement %s: %w", path, ErrNoText)
	}
	return text, nil
}

func loadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (l *Loader) loadPDF(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return "", errors.New("pdf has no pages")
	}

	pages := pagesByRow(r, numPages)
	if len(pages) > 0 {
		l.logger.Debug("Extracted pdf text by row", "path", path, "pages", len(pages))
		return strings.Join(pages, "\n"), nil
	}

	l.logger.Debug("Row extraction found nothing, falling back to plain text", "path", path)
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func pagesByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			parts := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			pages = append(pages, strings.Join(lines, "\n"))
		}
	}
	return pages
}
