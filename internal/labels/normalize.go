package labels

import (
	"regexp"
	"strings"
)

const (
	// maxCourierLen bounds the fallback courier token in output filenames.
	maxCourierLen = 30
	// maxSKULen bounds the SKU token in output filenames.
	maxSKULen = 50
)

// knownCarriers maps raw-text substrings to canonical carrier display names.
// Order matters: the first substring found wins, so more specific names come
// before generic ones (e.g. "ecom" last since it is the loosest match).
var knownCarriers = []struct {
	substr    string
	canonical string
}{
	{"ekart", "Ekart"},
	{"delhivery", "Delhivery"},
	{"xpressbees", "Xpressbees"},
	{"bluedart", "BlueDart"},
	{"dtdc", "DTDC"},
	{"shadowfax", "Shadowfax"},
	{"ecom", "EcomExpress"},
}

// unsafeChars matches everything that may not appear in a filename token.
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// NormalizeCourier returns the canonical display name for a raw courier
// string, matching known carriers by substring (case-insensitive). Unknown
// carriers fall back to a filesystem-safe token capped at 30 characters.
func NormalizeCourier(raw string) string {
	lower := strings.ToLower(raw)
	for _, c := range knownCarriers {
		if strings.Contains(lower, c.substr) {
			return c.canonical
		}
	}
	return sanitizeToken(raw, maxCourierLen)
}

// NormalizeSKU returns a filesystem-safe SKU token capped at 50 characters.
func NormalizeSKU(raw string) string {
	return sanitizeToken(raw, maxSKULen)
}

// sanitizeToken replaces spaces with hyphens, strips everything outside
// [A-Za-z0-9_-], and truncates to max bytes. Empty input stays empty.
func sanitizeToken(raw string, max int) string {
	s := strings.ReplaceAll(raw, " ", "-")
	s = unsafeChars.ReplaceAllString(s, "")
	if len(s) > max {
		s = s[:max]
	}
	return s
}
