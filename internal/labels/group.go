package labels

import "sort"

// Groups accumulates page indices by Key. Pages must be added in ascending
// source order by a single caller; each group's index list then preserves
// the source page order. Create a fresh Groups per document.
type Groups struct {
	pages map[Key][]int
}

// NewGroups returns an empty accumulator.
func NewGroups() *Groups {
	return &Groups{pages: make(map[Key][]int)}
}

// Add records that the page at index (0-based, source order) belongs to key.
func (g *Groups) Add(pageIndex int, key Key) {
	g.pages[key] = append(g.pages[key], pageIndex)
}

// Len returns the number of distinct keys seen.
func (g *Groups) Len() int {
	return len(g.pages)
}

// Pages returns the ordered page indices for key.
func (g *Groups) Pages(key Key) []int {
	return g.pages[key]
}

// SortedKeys returns all keys in ascending (date, courier, sku) order.
// This ordering is part of the output contract: files and summary entries
// are emitted in exactly this order on every run.
func (g *Groups) SortedKeys() []Key {
	keys := make([]Key, 0, len(g.pages))
	for k := range g.pages {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}
