package labels

import (
	"reflect"
	"testing"
)

func TestGroups(t *testing.T) {
	g := NewGroups()

	k1 := Key{Date: "2024-01-15", Courier: "Ekart", SKU: "A"}
	k2 := Key{Date: "2024-01-14", Courier: "DTDC", SKU: "B"}

	g.Add(0, k1)
	g.Add(1, k2)
	g.Add(2, k1)
	g.Add(3, k1)

	if g.Len() != 2 {
		t.Fatalf("expected 2 groups, got %d", g.Len())
	}

	if got := g.Pages(k1); !reflect.DeepEqual(got, []int{0, 2, 3}) {
		t.Errorf("k1 pages = %v, want [0 2 3]", got)
	}
	if got := g.Pages(k2); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("k2 pages = %v, want [1]", got)
	}

	// Earlier date sorts first regardless of insertion order.
	keys := g.SortedKeys()
	if !reflect.DeepEqual(keys, []Key{k2, k1}) {
		t.Errorf("SortedKeys() = %v, want [%v %v]", keys, k2, k1)
	}
}

func TestGroups_Empty(t *testing.T) {
	g := NewGroups()
	if g.Len() != 0 {
		t.Errorf("expected 0 groups, got %d", g.Len())
	}
	if keys := g.SortedKeys(); len(keys) != 0 {
		t.Errorf("expected no keys, got %v", keys)
	}
}

func TestGroups_SortedKeysStable(t *testing.T) {
	g := NewGroups()
	keys := []Key{
		{Date: "2024-01-15", Courier: "Ekart", SKU: "B"},
		{Date: "2024-01-15", Courier: "Ekart", SKU: "A"},
		{Date: "2024-01-15", Courier: "Delhivery", SKU: "Z"},
		{Date: "2024-01-14", Courier: "Xpressbees", SKU: "Q"},
	}
	for i, k := range keys {
		g.Add(i, k)
	}

	want := []Key{
		{Date: "2024-01-14", Courier: "Xpressbees", SKU: "Q"},
		{Date: "2024-01-15", Courier: "Delhivery", SKU: "Z"},
		{Date: "2024-01-15", Courier: "Ekart", SKU: "A"},
		{Date: "2024-01-15", Courier: "Ekart", SKU: "B"},
	}

	for i := 0; i < 5; i++ {
		if got := g.SortedKeys(); !reflect.DeepEqual(got, want) {
			t.Fatalf("run %d: SortedKeys() = %v, want %v", i, got, want)
		}
	}
}
