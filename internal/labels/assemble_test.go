package labels

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// fakeDoc is an in-memory Document whose "pages" are just text strings.
// CollectPages writes a recognizable marker listing the collected pages so
// tests can verify membership and order without real PDF bytes.
type fakeDoc struct {
	pages      []string
	textErrOn  map[int]error
	collectErr error
}

func (d *fakeDoc) NumPages() int { return len(d.pages) }

func (d *fakeDoc) PageText(pageNum int) (string, error) {
	if err := d.textErrOn[pageNum]; err != nil {
		return "", err
	}
	return d.pages[pageNum-1], nil
}

func (d *fakeDoc) CollectPages(pageNums []int, w io.Writer) error {
	if d.collectErr != nil {
		return d.collectErr
	}
	_, err := fmt.Fprintf(w, "pages:%v", pageNums)
	return err
}

func sortOpts() Options {
	return Options{Now: fixedClock}
}

// The example scenario from the original tool's docs: three pages, two
// groups, sorted summary, every page accounted for.
func TestSort_ExampleScenario(t *testing.T) {
	doc := &fakeDoc{pages: []string{
		"Ekart Logistics\nSKU: ABC-123\nInvoice Date: 2024-01-15",
		"Ekart Logistics\nSKU: ABC-123\nInvoice Date: 2024-01-15",
		"Delhivery Express\nSKU: XYZ_99\nInvoice Date: 2024-01-16",
	}}

	res, err := Sort(doc, sortOpts())
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}

	if res.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", res.TotalPages)
	}

	want := []Entry{
		{Filename: "2024-01-15_Ekart_ABC-123.pdf", Date: "2024-01-15", Courier: "Ekart", SKU: "ABC-123", LabelCount: 2},
		{Filename: "2024-01-16_Delhivery_XYZ_99.pdf", Date: "2024-01-16", Courier: "Delhivery", SKU: "XYZ_99", LabelCount: 1},
	}
	if !reflect.DeepEqual(res.Entries, want) {
		t.Errorf("Entries = %+v, want %+v", res.Entries, want)
	}

	// Pages keep source order inside each group.
	if got := string(res.Doc(0)); got != "pages:[1 2]" {
		t.Errorf("group 0 pages = %s, want pages:[1 2]", got)
	}
	if got := string(res.Doc(1)); got != "pages:[3]" {
		t.Errorf("group 1 pages = %s, want pages:[3]", got)
	}
}

// sum(LabelCount) == TotalPages must hold for every input.
func TestSort_PageConservation(t *testing.T) {
	docs := map[string]*fakeDoc{
		"empty document": {pages: nil},
		"single page":    {pages: []string{"Ekart\nSKU: A\n2024-01-01"}},
		"all defaults":   {pages: []string{"", "", ""}},
		"mixed": {pages: []string{
			"Ekart\nSKU: A\n2024-01-01",
			"no patterns here",
			"DTDC\n2024-02-02",
			"Ekart\nSKU: A\n2024-01-01",
		}},
		"extraction errors": {
			pages:     []string{"Ekart\n2024-01-01", "x"},
			textErrOn: map[int]error{2: errors.New("no text layer")},
		},
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			res, err := Sort(doc, sortOpts())
			if err != nil {
				t.Fatalf("Sort() error = %v", err)
			}
			sum := 0
			for _, e := range res.Entries {
				sum += e.LabelCount
			}
			if sum != res.TotalPages {
				t.Errorf("sum(LabelCount) = %d, TotalPages = %d", sum, res.TotalPages)
			}
			if res.TotalPages != doc.NumPages() {
				t.Errorf("TotalPages = %d, want %d", res.TotalPages, doc.NumPages())
			}
		})
	}
}

func TestSort_EmptyDocument(t *testing.T) {
	res, err := Sort(&fakeDoc{}, sortOpts())
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	if len(res.Entries) != 0 || res.TotalPages != 0 {
		t.Errorf("expected zero entries and pages, got %+v", res)
	}

	// The summary must serialize as an empty list, not null.
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshaling result: %v", err)
	}
	if !strings.Contains(string(data), `"files":[]`) {
		t.Errorf(`expected "files":[] in %s`, data)
	}

	// Zero groups means an empty archive, not an error.
	var buf bytes.Buffer
	if err := res.WriteZip(&buf); err != nil {
		t.Fatalf("WriteZip() error = %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	if len(zr.File) != 0 {
		t.Errorf("expected empty archive, got %d files", len(zr.File))
	}
}

// A page whose text cannot be extracted still lands in exactly one group,
// keyed by default values.
func TestSort_ExtractionDegrades(t *testing.T) {
	doc := &fakeDoc{
		pages:     []string{"x", "y"},
		textErrOn: map[int]error{1: errors.New("scanned image only"), 2: errors.New("scanned image only")},
	}

	res, err := Sort(doc, sortOpts())
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	if len(res.Entries) != 1 {
		t.Fatalf("expected a single default group, got %d", len(res.Entries))
	}
	e := res.Entries[0]
	if e.Courier != "Unknown" || e.SKU != "Unknown" || e.Date != "2024-03-10" {
		t.Errorf("unexpected default entry: %+v", e)
	}
	if e.LabelCount != 2 {
		t.Errorf("LabelCount = %d, want 2", e.LabelCount)
	}
}

// Two runs over identical input on the same date produce identical output.
func TestSort_Deterministic(t *testing.T) {
	doc := &fakeDoc{pages: []string{
		"Delhivery\nSKU: B\n2024-01-02",
		"Ekart\nSKU: A\n2024-01-01",
		"Delhivery\nSKU: B\n2024-01-02",
		"unrecognized",
	}}

	first, err := Sort(doc, sortOpts())
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	second, err := Sort(doc, sortOpts())
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}

	if !reflect.DeepEqual(first.Entries, second.Entries) {
		t.Errorf("runs differ:\n%+v\n%+v", first.Entries, second.Entries)
	}
	for i := range first.Entries {
		if !bytes.Equal(first.Doc(i), second.Doc(i)) {
			t.Errorf("sub-document %d differs between runs", i)
		}
	}
}

func TestSort_CollectFailureAborts(t *testing.T) {
	doc := &fakeDoc{
		pages:      []string{"Ekart\n2024-01-01"},
		collectErr: errors.New("corrupt xref"),
	}
	if _, err := Sort(doc, sortOpts()); err == nil {
		t.Fatal("expected error when sub-document serialization fails")
	}
}

func TestResult_WriteDir(t *testing.T) {
	doc := &fakeDoc{pages: []string{
		"Ekart\nSKU: A\n2024-01-01",
		"DTDC\nSKU: B\n2024-01-02",
	}}
	res, err := Sort(doc, sortOpts())
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}

	dir := filepath.Join(t.TempDir(), "sorted_labels")
	if err := res.WriteDir(dir); err != nil {
		t.Fatalf("WriteDir() error = %v", err)
	}

	for i, e := range res.Entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Filename))
		if err != nil {
			t.Fatalf("missing output file %s: %v", e.Filename, err)
		}
		if !bytes.Equal(data, res.Doc(i)) {
			t.Errorf("%s content mismatch", e.Filename)
		}
	}
}

func TestResult_WriteZip(t *testing.T) {
	doc := &fakeDoc{pages: []string{
		"Ekart\nSKU: A\n2024-01-01",
		"DTDC\nSKU: B\n2024-01-02",
		"Ekart\nSKU: A\n2024-01-01",
	}}
	res, err := Sort(doc, sortOpts())
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}

	var buf bytes.Buffer
	if err := res.WriteZip(&buf); err != nil {
		t.Fatalf("WriteZip() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	if len(zr.File) != len(res.Entries) {
		t.Fatalf("archive has %d files, want %d", len(zr.File), len(res.Entries))
	}
	// Archive entries appear in emission (sorted key) order.
	for i, f := range zr.File {
		if f.Name != res.Entries[i].Filename {
			t.Errorf("archive entry %d = %s, want %s", i, f.Name, res.Entries[i].Filename)
		}
	}
}
