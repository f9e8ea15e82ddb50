package component

import (
	"iter"

	"github.com/wippyai/bindgen/types"
)

// Variant is one case of an enum or error, optionally carrying fields.
type Variant struct {
	Name   string
	Fields []Field
}

func (v Variant) HasFields() bool { return len(v.Fields) > 0 }

// IterTypes yields the types of the variant's fields.
func (v Variant) IterTypes() iter.Seq[types.Type] {
	return iterFieldTypes(v.Fields)
}

// Enum is a flat enumeration or a tagged union.
//
// Flatness is fixed when the declaration is built; the variant list never
// changes afterwards.
type Enum struct {
	name     string
	variants []Variant
	flat     bool
}

func newEnum(name string, variants []Variant) Enum {
	flat := true
	for _, v := range variants {
		if v.HasFields() {
			flat = false
			break
		}
	}
	return Enum{name: name, variants: variants, flat: flat}
}

func (e *Enum) Name() string     { return e.name }
func (e *Enum) Type() types.Type { return types.Enum{Name: e.name} }
func (e *Enum) IsFlat() bool     { return e.flat }

// Variants returns the variants in declaration order.
func (e *Enum) Variants() []Variant {
	out := make([]Variant, len(e.variants))
	for i, v := range e.variants {
		out[i] = Variant{Name: v.Name, Fields: cloneFields(v.Fields)}
	}
	return out
}

// IterTypes yields the field types of every variant.
func (e *Enum) IterTypes() iter.Seq[types.Type] {
	return func(yield func(types.Type) bool) {
		for _, v := range e.variants {
			for t := range v.IterTypes() {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// Error is an error family. It has the shape of an Enum but is referenced
// as types.Error and may be named by Throws.
type Error struct {
	Enum
}

func (e *Error) Type() types.Type { return types.Error{Name: e.name} }
