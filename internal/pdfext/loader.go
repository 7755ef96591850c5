// Package pdfext opens PDF statements and yields per-page positioned words.
// It is the only package that touches the PDF library; everything
// downstream works on plain word grids.
package pdfext

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/akpradhn/nitiArthik/internal/logging"
	"github.com/akpradhn/nitiArthik/internal/parsererror"
)

// Word is one whitespace-delimited token with its position on the page.
// Coordinates are PDF points; Y grows upward.
type Word struct {
	X, Y, W float64
	Text    string
}

// Page holds the words of one page in reading order.
type Page struct {
	Number int
	Words  []Word
}

// Source abstracts PDF page extraction so the orchestrator can be tested
// without real PDF fixtures.
type Source interface {
	Pages(data []byte, name string) ([]Page, error)
}

// Loader is the production Source backed by ledongthuc/pdf.
type Loader struct {
	log logging.Logger
}

// NewLoader returns a Loader logging through the given logger.
func NewLoader(log logging.Logger) *Loader {
	if log == nil {
		log = logging.NewLogrusAdapter("info", "text")
	}
	return &Loader{log: log}
}

// Pages extracts positioned words for every page of the document. It fails
// with UnreadablePDFError when the bytes are not a valid PDF or when no
// page carries an extractable text layer (e.g. a scanned image).
func (l *Loader) Pages(data []byte, name string) (pages []Page, err error) {
	// The underlying library panics on some malformed files; treat that the
	// same as an unreadable document.
	defer func() {
		if r := recover(); r != nil {
			l.log.WithField("file", name).Error("recovered from PDF reader panic",
				logging.Field{Key: "panic", Value: r})
			pages = nil
			err = &parsererror.UnreadablePDFError{
				FileName: name,
				Reason:   "corrupt PDF structure",
				Err:      fmt.Errorf("reader panic: %v", r),
			}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &parsererror.UnreadablePDFError{
			FileName: name,
			Reason:   "not a valid PDF",
			Err:      err,
		}
	}

	total := 0
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		words := MergeWords(page.Content().Text)
		total += len(words)
		pages = append(pages, Page{Number: i, Words: words})
	}

	if total == 0 {
		return nil, &parsererror.UnreadablePDFError{
			FileName: name,
			Reason:   "no extractable text layer",
		}
	}

	l.log.Debug("loaded PDF",
		logging.Field{Key: "file", Value: name},
		logging.Field{Key: "pages", Value: len(pages)},
		logging.Field{Key: "words", Value: total})

	return pages, nil
}
