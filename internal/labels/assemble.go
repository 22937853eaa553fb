package labels

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Document is a paginated source of label pages. Implementations must be
// read-only: Sort never mutates the source, and sub-documents are built by
// copying pages into new containers.
type Document interface {
	// NumPages returns the page count.
	NumPages() int
	// PageText returns the plain text of a page (1-indexed). An extraction
	// error degrades that page to default field values; it does not abort.
	PageText(pageNum int) (string, error)
	// CollectPages writes a new PDF containing the given pages (1-indexed),
	// in the given order, to w.
	CollectPages(pageNums []int, w io.Writer) error
}

// Options configures a sort run.
type Options struct {
	// Rules are extra carrier recognition rules, checked before the
	// built-in table.
	Rules []CarrierRule
	// Now supplies the processing date for pages without one. Defaults to
	// time.Now.
	Now func() time.Time
	// Logger receives progress updates. Defaults to slog.Default.
	Logger *slog.Logger
}

// Entry summarizes one output file. Consumers match on Filename, so its
// shape ({date}_{courier}_{sku}.pdf) is a contract.
type Entry struct {
	Filename   string `json:"file"`
	Date       string `json:"date"`
	Courier    string `json:"courier"`
	SKU        string `json:"sku"`
	LabelCount int    `json:"labels"`
}

// Result holds the outcome of a sort: summary entries in emission order,
// the verified total page count, and the serialized sub-documents ready
// for delivery as a directory or a zip archive.
type Result struct {
	Entries    []Entry `json:"files"`
	TotalPages int     `json:"total_labels"`

	docs [][]byte // one buffered PDF per entry, same order
}

// progressInterval is how often Sort logs scan progress, in pages.
const progressInterval = 50

// Sort runs the full pipeline over doc: extract fields from every page,
// group by (date, courier, sku), and serialize one sub-PDF per group in
// ascending key order. The returned Result buffers all sub-documents;
// nothing touches disk until WriteDir or WriteZip. A serialization failure
// aborts the whole run with no partial output.
//
// The invariant sum(Entry.LabelCount) == TotalPages holds for every input,
// including the zero-page document (zero entries).
func Sort(doc Document, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	ext, err := NewExtractor(opts.Rules, opts.Now)
	if err != nil {
		return nil, err
	}

	total := doc.NumPages()
	groups := NewGroups()

	for i := 0; i < total; i++ {
		text, err := doc.PageText(i + 1)
		if err != nil {
			// Pages without extractable text still belong to exactly one
			// group, keyed by all-default fields.
			log.Debug("page text extraction failed, using defaults", "page", i+1, "error", err)
			text = ""
		}
		groups.Add(i, ext.Extract(text).Key())

		if (i+1)%progressInterval == 0 {
			log.Info("scanning labels", "processed", i+1, "total", total)
		}
	}

	log.Info("label scan complete", "pages", total, "groups", groups.Len())

	// Entries starts non-nil so an empty document still serializes as an
	// empty list, not null.
	res := &Result{Entries: []Entry{}, TotalPages: total}
	for _, key := range groups.SortedKeys() {
		indices := groups.Pages(key)

		pageNums := make([]int, len(indices))
		for j, idx := range indices {
			pageNums[j] = idx + 1
		}

		var buf bytes.Buffer
		if err := doc.CollectPages(pageNums, &buf); err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", key.Filename(), err)
		}

		res.Entries = append(res.Entries, Entry{
			Filename:   key.Filename(),
			Date:       key.Date,
			Courier:    key.Courier,
			SKU:        key.SKU,
			LabelCount: len(indices),
		})
		res.docs = append(res.docs, buf.Bytes())
	}

	return res, nil
}

// WriteDir writes every sub-document into dir, creating it if needed.
// On any write failure the files written so far are removed, so the
// directory never holds a half-delivered package.
func (r *Result) WriteDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for i, e := range r.Entries {
		path := filepath.Join(dir, e.Filename)
		if err := os.WriteFile(path, r.docs[i], 0o644); err != nil {
			for _, p := range written {
				os.Remove(p)
			}
			return fmt.Errorf("failed to write %s: %w", e.Filename, err)
		}
		written = append(written, path)
	}
	return nil
}

// WriteZip writes all sub-documents into a single zip archive in emission
// order.
func (r *Result) WriteZip(w io.Writer) error {
	zw := zip.NewWriter(w)
	for i, e := range r.Entries {
		f, err := zw.Create(e.Filename)
		if err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", e.Filename, err)
		}
		if _, err := f.Write(r.docs[i]); err != nil {
			return fmt.Errorf("failed to write %s to archive: %w", e.Filename, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

// Doc returns the serialized sub-document for entry i, in Entries order.
func (r *Result) Doc(i int) []byte {
	return r.docs[i]
}
