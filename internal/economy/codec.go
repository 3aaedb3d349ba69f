package economy

import (
	"strconv"
	"strings"
)

// The datastore encodes inventories as comma-joined item names where
// duplicates carry quantity ("Apple, Apple, Apple" = 3 apples). This file
// is the only code that touches the raw encoding; everything else works
// with slices and counts.

// ItemCount is one distinct item with its quantity, in first-seen order.
type ItemCount struct {
	Name  string
	Count int
}

// ParseList splits a stored inventory blob into item names. Empty
// segments are dropped; a null/empty blob yields an empty list.
func ParseList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			items = append(items, p)
		}
	}
	return items
}

// SerializeList joins items back into the stored representation.
func SerializeList(items []string) string {
	return strings.Join(items, ", ")
}

// CountMap folds a list into quantities keyed by lowercased name.
func CountMap(items []string) map[string]int {
	counts := make(map[string]int, len(items))
	for _, item := range items {
		counts[strings.ToLower(item)]++
	}
	return counts
}

// CountList folds a list into quantities preserving first-seen order and
// first-seen casing, for display.
func CountList(items []string) []ItemCount {
	index := make(map[string]int, len(items))
	var out []ItemCount
	for _, item := range items {
		key := strings.ToLower(item)
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, ItemCount{Name: item, Count: 1})
	}
	return out
}

// CountOf returns how many of item (case-insensitive) the blob holds.
func CountOf(raw, item string) int {
	return CountMap(ParseList(raw))[strings.ToLower(strings.TrimSpace(item))]
}

// AddItems appends item qty times and re-serializes.
func AddItems(raw, item string, qty int) string {
	items := ParseList(raw)
	for i := 0; i < qty; i++ {
		items = append(items, item)
	}
	return SerializeList(items)
}

// RemoveItems removes up to qty case-insensitive matches of item,
// scanning from the end of the list so the most recently added copies go
// first. When fewer than qty matches exist, all available are removed and
// removed reports how many actually went; partial removal is not an error.
func RemoveItems(raw, item string, qty int) (updated string, removed int) {
	items := ParseList(raw)
	target := strings.ToLower(strings.TrimSpace(item))
	for i := len(items) - 1; i >= 0 && removed < qty; i-- {
		if strings.ToLower(items[i]) == target {
			items = append(items[:i], items[i+1:]...)
			removed++
		}
	}
	return SerializeList(items), removed
}

// FormatCounts renders counts for an embed field: one entry per line,
// first letter capitalized, quantity suffixed when above one. empty is
// returned for a bare inventory.
func FormatCounts(counts []ItemCount, empty string) string {
	if len(counts) == 0 {
		return empty
	}
	var b strings.Builder
	for i, c := range counts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(capitalizeFirst(c.Name))
		if c.Count > 1 {
			b.WriteString(" (")
			b.WriteString(strconv.Itoa(c.Count))
			b.WriteString("x)")
		}
	}
	return b.String()
}

// CapitalizeWords title-cases each comma-separated entry of a stored
// blob, for display of property and license lists.
func CapitalizeWords(raw string) string {
	items := ParseList(raw)
	for i, item := range items {
		items[i] = capitalizeFirst(strings.ToLower(item))
	}
	return SerializeList(items)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
