package labels

import (
	"testing"
	"time"
)

// fixedClock pins the processing date so fallback dates are deterministic.
func fixedClock() time.Time {
	return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
}

func newTestExtractor(t *testing.T, extra []CarrierRule) *Extractor {
	t.Helper()
	ext, err := NewExtractor(extra, fixedClock)
	if err != nil {
		t.Fatalf("NewExtractor() error = %v", err)
	}
	return ext
}

func TestExtract(t *testing.T) {
	ext := newTestExtractor(t, nil)

	tests := []struct {
		name string
		text string
		want Record
	}{
		{
			name: "full label",
			text: "Ekart Logistics\nSKU: ABC-123\nInvoice Date: 2024-01-15",
			want: Record{Courier: "Ekart", SKU: "ABC-123", Date: "2024-01-15"},
		},
		{
			name: "sku with spaces and junk",
			text: "Delhivery Express\nSKU: BLUE SHIRT (L)\nInvoice Date: 2024-01-16",
			want: Record{Courier: "Delhivery", SKU: "BLUE-SHIRT-L", Date: "2024-01-16"},
		},
		{
			name: "bare date fallback",
			text: "DTDC Courier\nSKU: X1\nShipped 2024-02-02 from warehouse",
			want: Record{Courier: "DTDC", SKU: "X1", Date: "2024-02-02"},
		},
		{
			name: "no date uses processing date",
			text: "Shadowfax\nSKU: Z9",
			want: Record{Courier: "Shadowfax", SKU: "Z9", Date: "2024-03-10"},
		},
		{
			name: "empty text all defaults",
			text: "",
			want: Record{Courier: "Unknown", SKU: "Unknown", Date: "2024-03-10"},
		},
		{
			name: "whitespace only",
			text: "   \n\t\n",
			want: Record{Courier: "Unknown", SKU: "Unknown", Date: "2024-03-10"},
		},
		{
			name: "courier case insensitive",
			text: "shipped by XPRESSBEES surface",
			want: Record{Courier: "Xpressbees", SKU: "Unknown", Date: "2024-03-10"},
		},
		{
			name: "ecom express with space",
			text: "Ecom  Express\n2024-05-05",
			want: Record{Courier: "EcomExpress", SKU: "Unknown", Date: "2024-05-05"},
		},
		{
			name: "first sku occurrence wins",
			text: "SKU: FIRST\nSKU: SECOND\n2024-01-01",
			want: Record{Courier: "Unknown", SKU: "FIRST", Date: "2024-01-01"},
		},
		{
			name: "invoice date preferred over earlier bare date",
			text: "Ekart\n2023-12-31\nInvoice Date: 2024-01-15",
			want: Record{Courier: "Ekart", SKU: "Unknown", Date: "2024-01-15"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ext.Extract(tt.text)
			if got != tt.want {
				t.Errorf("Extract() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// The carrier priority list, not position in the page text, decides ties.
func TestExtract_CarrierListPriority(t *testing.T) {
	ext := newTestExtractor(t, nil)

	// Delhivery appears first in the text, but Ekart is earlier in the
	// recognition list.
	got := ext.Extract("Handed to Delhivery hub\nEkart Logistics\n")
	if got.Courier != "Ekart" {
		t.Errorf("expected Ekart (list priority), got %s", got.Courier)
	}

	// Reversed text order, same winner.
	got = ext.Extract("Ekart Logistics\nHanded to Delhivery hub\n")
	if got.Courier != "Ekart" {
		t.Errorf("expected Ekart, got %s", got.Courier)
	}
}

func TestExtract_CustomRulesTakePriority(t *testing.T) {
	ext := newTestExtractor(t, []CarrierRule{
		{Match: `Speedy\s*Post`, Canonical: "SpeedyPost"},
	})

	got := ext.Extract("Speedy Post\nSKU: A1\n")
	if got.Courier != "SpeedyPost" {
		t.Errorf("expected SpeedyPost, got %s", got.Courier)
	}

	// Custom rules are checked before built-ins.
	got = ext.Extract("Ekart via Speedy Post\n")
	if got.Courier != "SpeedyPost" {
		t.Errorf("expected SpeedyPost to outrank built-ins, got %s", got.Courier)
	}
}

func TestNewExtractor_RejectsBadPattern(t *testing.T) {
	_, err := NewExtractor([]CarrierRule{{Match: `(`, Canonical: "Broken"}}, nil)
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestKeyOrdering(t *testing.T) {
	a := Key{Date: "2024-01-15", Courier: "Ekart", SKU: "A"}
	b := Key{Date: "2024-01-16", Courier: "Aaa", SKU: "A"}
	c := Key{Date: "2024-01-15", Courier: "Ekart", SKU: "B"}

	if !a.Less(b) {
		t.Error("date compares first")
	}
	if !a.Less(c) {
		t.Error("sku breaks ties")
	}
	if b.Less(a) {
		t.Error("ordering is antisymmetric")
	}
}

func TestKeyFilename(t *testing.T) {
	k := Key{Date: "2024-01-15", Courier: "Ekart", SKU: "ABC-123"}
	want := "2024-01-15_Ekart_ABC-123.pdf"
	if got := k.Filename(); got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}
