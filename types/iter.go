package types

import "iter"

// IterTypes yields t followed by every type structurally nested inside it.
// Named user types are not expanded; see component.Interface.IterTypesInItem.
func IterTypes(t Type) iter.Seq[Type] {
	return func(yield func(Type) bool) {
		walk(t, yield)
	}
}

func walk(t Type, yield func(Type) bool) bool {
	if t == nil {
		return true
	}
	if !yield(t) {
		return false
	}
	switch v := t.(type) {
	case Optional:
		return walk(v.Inner, yield)
	case Sequence:
		return walk(v.Inner, yield)
	case Map:
		return walk(v.Key, yield) && walk(v.Value, yield)
	case Custom:
		return walk(v.Builtin, yield)
	}
	return true
}
