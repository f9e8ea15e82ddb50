package component

import (
	"iter"

	"github.com/wippyai/bindgen/types"
)

// Field is a named, typed member of a record or enum variant.
type Field struct {
	Type     types.Type
	Default  *Literal
	Name     string
	Required bool
}

// IterTypes yields the field type and its structural components.
func (f Field) IterTypes() iter.Seq[types.Type] {
	return types.IterTypes(f.Type)
}

// Record is a named struct passed by value.
type Record struct {
	name   string
	fields []Field
}

func (r *Record) Name() string      { return r.name }
func (r *Record) Type() types.Type  { return types.Record{Name: r.name} }
func (r *Record) Fields() []Field   { return cloneFields(r.fields) }
func (r *Record) NumFields() int    { return len(r.fields) }
func (r *Record) Field(i int) Field { return cloneField(r.fields[i]) }

// IterTypes yields the types of every field in declaration order.
func (r *Record) IterTypes() iter.Seq[types.Type] {
	return iterFieldTypes(r.fields)
}

func iterFieldTypes(fields []Field) iter.Seq[types.Type] {
	return func(yield func(types.Type) bool) {
		for _, f := range fields {
			for t := range f.IterTypes() {
				if !yield(t) {
					return
				}
			}
		}
	}
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = cloneField(f)
	}
	return out
}

func cloneField(f Field) Field {
	f.Default = f.Default.clone()
	return f
}
