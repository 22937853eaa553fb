// Package pdftext provides page-level plain-text extraction and page
// re-serialization for PDF documents held in memory.
package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Document is an in-memory PDF. It is safe to read concurrently across
// groups since all operations work on the immutable source bytes.
type Document struct {
	data      []byte
	reader    *pdf.Reader
	pageCount int
}

// Open parses a PDF from raw bytes. It fails fast with a descriptive error
// when the document cannot be parsed; per-page text problems surface later
// from PageText instead.
func Open(data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty PDF document")
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}

	return &Document{data: data, reader: reader, pageCount: count}, nil
}

// OpenFile reads and parses a PDF from disk.
func OpenFile(path string) (*Document, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Open(data)
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.pageCount
}

// PageText extracts the plain text of a page (1-indexed). A page with no
// extractable text returns an empty string and an error; callers are
// expected to degrade rather than abort.
func (d *Document) PageText(pageNum int) (string, error) {
	if pageNum < 1 || pageNum > d.reader.NumPage() {
		return "", fmt.Errorf("page %d out of range (document has %d pages)", pageNum, d.reader.NumPage())
	}
	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d has no content", pageNum)
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d: %w", pageNum, err)
	}
	return text, nil
}

// CollectPages writes a new PDF containing exactly the given pages
// (1-indexed), in the given order, to w.
func (d *Document) CollectPages(pageNums []int, w io.Writer) error {
	if len(pageNums) == 0 {
		return fmt.Errorf("no pages selected")
	}
	selected := make([]string, len(pageNums))
	for i, n := range pageNums {
		selected[i] = strconv.Itoa(n)
	}
	if err := api.Collect(bytes.NewReader(d.data), w, selected, nil); err != nil {
		return fmt.Errorf("failed to collect pages: %w", err)
	}
	return nil
}
