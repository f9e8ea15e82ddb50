package metadata

import (
	"cmp"
	"slices"
)

// Group returns the items in a deterministic build order: types first
// (records, enums, errors, objects), then constructors and methods, then
// functions. Within a kind, items sort by module, owner and name. The input
// slice is not modified.
func Group(items []Item) []Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b Item) int {
		return cmp.Or(
			cmp.Compare(a.Kind.rank(), b.Kind.rank()),
			cmp.Compare(a.Module, b.Module),
			cmp.Compare(a.SelfName, b.SelfName),
			cmp.Compare(a.Name, b.Name),
		)
	})
	return out
}

// ByKind splits grouped items per kind, preserving order.
func ByKind(items []Item) map[Kind][]Item {
	out := make(map[Kind][]Item)
	for _, it := range items {
		out[it.Kind] = append(out[it.Kind], it)
	}
	return out
}
