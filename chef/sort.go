package chef

import (
	"fmt"
	"sort"
)

// SortRows stably sorts rows in place by the value of the first occurrence
// of key in each row's decoded JSON tree.
//
// Ordering is by value type first — numbers (numeric order), then strings
// (lexicographic), then booleans (false before true), then everything else
// by formatted representation. Rows whose tree does not contain key sort
// after all rows that do, keeping their relative order.
func SortRows(rows []any, key string) {
	type entry struct {
		row   any
		value any
		found bool
	}

	entries := make([]entry, len(rows))
	for i, row := range rows {
		value, found := findKey(row, key)
		entries[i] = entry{row: row, value: value, found: found}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		if a.found != b.found {
			return a.found
		}

		if !a.found {
			return false
		}

		return lessValue(a.value, b.value)
	})

	for i := range entries {
		rows[i] = entries[i].row
	}
}

// findKey performs a depth-first search for key in a decoded JSON tree.
// An object's own keys are checked before descending into its values;
// object children are visited in sorted key order so the result does not
// depend on map iteration order, and array children in element order.
func findKey(doc any, key string) (any, bool) {
	switch node := doc.(type) {
	case map[string]any:
		if value, ok := node[key]; ok {
			return value, true
		}

		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if value, ok := findKey(node[k], key); ok {
				return value, true
			}
		}

	case []any:
		for _, item := range node {
			if value, ok := findKey(item, key); ok {
				return value, true
			}
		}
	}

	return nil, false
}

// lessValue orders two extracted sort values.
func lessValue(a, b any) bool {
	ra, rb := valueRank(a), valueRank(b)
	if ra != rb {
		return ra < rb
	}

	switch va := a.(type) {
	case float64:
		vb, _ := b.(float64)
		return va < vb

	case string:
		vb, _ := b.(string)
		return va < vb

	case bool:
		vb, _ := b.(bool)
		return !va && vb
	}

	return fmt.Sprint(a) < fmt.Sprint(b)
}

// valueRank groups sort values by type: numbers before strings before
// booleans before anything else.
func valueRank(v any) int {
	switch v.(type) {
	case float64:
		return 0
	case string:
		return 1
	case bool:
		return 2
	default:
		return 3
	}
}
