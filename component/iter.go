package component

import (
	"iter"

	"github.com/wippyai/bindgen/types"
)

// IterTypesInItem yields every type reachable from item: its structural
// components and, for named user types, the member types of their
// declarations, transitively. Each named type is yielded once; the walk
// follows a frontier queue keyed by declaration name, so mutually
// recursive declarations terminate.
func (c *Interface) IterTypesInItem(item types.Type) iter.Seq[types.Type] {
	return func(yield func(types.Type) bool) {
		seen := make(map[string]bool)
		var frontier []types.Type

		visit := func(seq iter.Seq[types.Type]) bool {
			for t := range seq {
				if name, ok := types.DeclName(t); ok {
					if seen[name] {
						continue
					}
					seen[name] = true
					frontier = append(frontier, t)
				}
				if !yield(t) {
					return false
				}
			}
			return true
		}

		if !visit(types.IterTypes(item)) {
			return
		}
		for len(frontier) > 0 {
			next := frontier[0]
			frontier = frontier[1:]
			if !visit(c.declarationTypes(next)) {
				return
			}
		}
	}
}

// declarationTypes yields the member types of the declaration behind a named
// type. Unknown names yield nothing.
func (c *Interface) declarationTypes(t types.Type) iter.Seq[types.Type] {
	empty := func(func(types.Type) bool) {}
	switch v := t.(type) {
	case types.Record:
		if r := c.GetRecordDefinition(v.Name); r != nil {
			return r.IterTypes()
		}
	case types.Enum:
		if e := c.GetEnumDefinition(v.Name); e != nil {
			return e.IterTypes()
		}
	case types.Error:
		if e := c.GetErrorDefinition(v.Name); e != nil {
			return e.IterTypes()
		}
	case types.Object:
		if o := c.GetObjectDefinition(v.Name); o != nil {
			return o.IterTypes()
		}
	case types.CallbackInterface:
		if cb := c.GetCallbackInterfaceDefinition(v.Name); cb != nil {
			return cb.IterTypes()
		}
	}
	return empty
}
