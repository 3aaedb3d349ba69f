package economy

import (
	"reflect"
	"testing"
)

func TestParseListDropsEmptySegments(t *testing.T) {
	got := ParseList("Apple, , Bread,  , Apple")
	want := []string{"Apple", "Bread", "Apple"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if got := ParseList(""); got != nil {
		t.Fatalf("empty blob should parse to nil, got %v", got)
	}
	if got := ParseList("   "); got != nil {
		t.Fatalf("blank blob should parse to nil, got %v", got)
	}
}

func TestSerializeRoundTripIsIdempotent(t *testing.T) {
	inputs := []string{
		"Apple, Apple, Bread",
		"Apple,Apple,  Bread",
		" Apple , Bread ,",
	}
	for _, in := range inputs {
		once := SerializeList(ParseList(in))
		twice := SerializeList(ParseList(once))
		if once != twice {
			t.Fatalf("normalization not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestCountMapIsCaseInsensitive(t *testing.T) {
	counts := CountMap(ParseList("Apple, apple, APPLE"))
	if len(counts) != 1 || counts["apple"] != 3 {
		t.Fatalf("got %v want map[apple:3]", counts)
	}
}

func TestCountListKeepsFirstSeenCasing(t *testing.T) {
	got := CountList(ParseList("Apple, apple, Bread, APPLE"))
	want := []ItemCount{{Name: "Apple", Count: 3}, {Name: "Bread", Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestAddItems(t *testing.T) {
	got := AddItems("Apple", "Bread", 2)
	if got != "Apple, Bread, Bread" {
		t.Fatalf("got %q", got)
	}
	if got := AddItems("", "Apple", 1); got != "Apple" {
		t.Fatalf("add to empty blob got %q", got)
	}
}

func TestRemoveItemsScansFromEnd(t *testing.T) {
	updated, removed := RemoveItems("A, B, A", "A", 1)
	if updated != "A, B" || removed != 1 {
		t.Fatalf("got %q removed=%d, want \"A, B\" removed=1", updated, removed)
	}
}

func TestRemoveItemsPartialRemovalIsNotAnError(t *testing.T) {
	updated, removed := RemoveItems("Apple, Bread, apple", "apple", 5)
	if removed != 2 {
		t.Fatalf("removed=%d want 2", removed)
	}
	if updated != "Bread" {
		t.Fatalf("updated=%q want \"Bread\"", updated)
	}
}

func TestRemoveItemsCaseInsensitive(t *testing.T) {
	updated, removed := RemoveItems("Fishing License", "fishing license", 1)
	if removed != 1 || updated != "" {
		t.Fatalf("got %q removed=%d", updated, removed)
	}
}

func TestFormatCounts(t *testing.T) {
	counts := CountList(ParseList("apple, apple, bread"))
	got := FormatCounts(counts, "None")
	want := "Apple (2x)\nBread"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := FormatCounts(nil, "None"); got != "None" {
		t.Fatalf("empty counts got %q", got)
	}
}

func TestCapitalizeWords(t *testing.T) {
	got := CapitalizeWords("blackwater ranch, valentine stable")
	if got != "Blackwater ranch, Valentine stable" {
		t.Fatalf("got %q", got)
	}
}

func TestBuildInventoryViewMergesSections(t *testing.T) {
	a := &Account{
		Cash:       50,
		Bank:       120,
		Stash:      30,
		Food:       "Apple, Apple",
		Potion:     "Tonic",
		Pistol:     "Cattleman",
		Revolver:   "Schofield, Schofield",
		Horses:     "Arabian",
		Properties: "blackwater ranch",
	}
	v := BuildInventoryView(a)
	if v.Total != 200 {
		t.Fatalf("total=%d want 200", v.Total)
	}
	if len(v.Consumables) != 2 || v.Consumables[0].Count != 2 {
		t.Fatalf("consumables=%v", v.Consumables)
	}
	if len(v.Guns) != 2 || v.Guns[1].Count != 2 {
		t.Fatalf("guns=%v", v.Guns)
	}
	if v.Properties != "Blackwater ranch" {
		t.Fatalf("properties=%q", v.Properties)
	}
}
