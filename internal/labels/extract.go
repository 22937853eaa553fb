// Package labels implements the shipping-label sorting pipeline: per-page
// field extraction, grouping by (date, courier, SKU), and emission of one
// PDF per group.
package labels

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// UnknownField is the sentinel used when a courier or SKU cannot be
// recognized on a page. It appears verbatim in output filenames.
const UnknownField = "Unknown"

// Record holds the fields extracted from a single label page.
type Record struct {
	Courier string // canonical carrier name or "Unknown"
	SKU     string // normalized SKU token or "Unknown"
	Date    string // YYYY-MM-DD; processing date when the page has none
}

// Key identifies a group of labels. Keys order lexicographically by
// date, then courier, then SKU.
type Key struct {
	Date    string
	Courier string
	SKU     string
}

// Less reports whether k sorts before other.
func (k Key) Less(other Key) bool {
	if k.Date != other.Date {
		return k.Date < other.Date
	}
	if k.Courier != other.Courier {
		return k.Courier < other.Courier
	}
	return k.SKU < other.SKU
}

// Filename returns the output filename for this group's PDF.
func (k Key) Filename() string {
	return fmt.Sprintf("%s_%s_%s.pdf", k.Date, k.Courier, k.SKU)
}

// CarrierRule recognizes one carrier in page text. Match is a regular
// expression fragment matched case-insensitively; the rest of the line
// after the match is consumed, mirroring how carrier names appear as a
// heading line on printed labels.
type CarrierRule struct {
	Match     string `json:"match"`
	Canonical string `json:"name"`
}

// builtinCarrierRules is the fixed recognition list. Order is the priority
// order: the first rule that matches anywhere in the page text wins.
var builtinCarrierRules = []CarrierRule{
	{Match: `Ekart`, Canonical: "Ekart"},
	{Match: `Delhivery`, Canonical: "Delhivery"},
	{Match: `Xpressbees`, Canonical: "Xpressbees"},
	{Match: `BlueDart`, Canonical: "BlueDart"},
	{Match: `DTDC`, Canonical: "DTDC"},
	{Match: `Shadowfax`, Canonical: "Shadowfax"},
	{Match: `Ecom\s*Express`, Canonical: "EcomExpress"},
}

var (
	skuRe         = regexp.MustCompile(`SKU:\s*([^\n]+)`)
	invoiceDateRe = regexp.MustCompile(`Invoice Date:\s*(\d{4}-\d{2}-\d{2})`)
	bareDateRe    = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// Extractor derives a Record from the plain text of one label page.
// The zero value is not usable; construct with NewExtractor.
type Extractor struct {
	rules []compiledRule
	now   func() time.Time
}

type compiledRule struct {
	re        *regexp.Regexp
	canonical string
}

// NewExtractor builds an extractor with the built-in carrier rules.
// Extra rules, if any, take priority over the built-ins. The clock defaults
// to time.Now and is only used for pages that carry no date.
func NewExtractor(extra []CarrierRule, now func() time.Time) (*Extractor, error) {
	if now == nil {
		now = time.Now
	}
	all := make([]CarrierRule, 0, len(extra)+len(builtinCarrierRules))
	all = append(all, extra...)
	all = append(all, builtinCarrierRules...)

	e := &Extractor{now: now}
	for _, r := range all {
		re, err := regexp.Compile(`(?i)` + r.Match + `[^\n]*`)
		if err != nil {
			return nil, fmt.Errorf("invalid carrier rule %q: %w", r.Match, err)
		}
		e.rules = append(e.rules, compiledRule{re: re, canonical: r.Canonical})
	}
	return e, nil
}

// Extract parses one page's text. It never fails: unrecognized fields
// degrade to "Unknown" (or the processing date), and empty text is valid.
func (e *Extractor) Extract(pageText string) Record {
	rec := Record{
		Courier: UnknownField,
		SKU:     UnknownField,
		Date:    e.now().Format("2006-01-02"),
	}

	// First rule in priority order that matches anywhere wins.
	for _, r := range e.rules {
		if r.re.MatchString(pageText) {
			rec.Courier = r.canonical
			break
		}
	}

	if m := skuRe.FindStringSubmatch(pageText); m != nil {
		rec.SKU = NormalizeSKU(strings.TrimSpace(m[1]))
	}

	if m := invoiceDateRe.FindStringSubmatch(pageText); m != nil {
		rec.Date = m[1]
	} else if m := bareDateRe.FindString(pageText); m != "" {
		rec.Date = m
	}

	return rec
}

// Key returns the grouping key for a record.
func (r Record) Key() Key {
	return Key{Date: r.Date, Courier: r.Courier, SKU: r.SKU}
}
