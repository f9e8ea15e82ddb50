package types

import (
	"iter"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/idl"
)

// builtins maps every builtin spelling accepted in type expressions.
var builtins = map[string]Type{
	"boolean": Boolean{},
	"bool":    Boolean{},
	"i8":      Int8{},
	"i16":     Int16{},
	"i32":     Int32{},
	"i64":     Int64{},
	"u8":      UInt8{},
	"u16":     UInt16{},
	"u32":     UInt32{},
	"u64":     UInt64{},
	"f32":     Float32{},
	"float":   Float32{},
	"f64":     Float64{},
	"double":  Float64{},
	"string":  String{},
	"String":  String{},
	"bytes":   Bytes{},
}

// Universe binds declared names to types and records every type observed
// while resolving the interface.
type Universe struct {
	defs  map[string]Type
	seen  map[Type]struct{}
	known []Type
}

// NewUniverse returns an empty Universe.
func NewUniverse() *Universe {
	return &Universe{
		defs: make(map[string]Type),
		seen: make(map[Type]struct{}),
	}
}

// AddTypeDefinition binds name to t. Rebinding a name to the same type is a
// no-op; binding it to a different type, or shadowing a builtin, fails.
func (u *Universe) AddTypeDefinition(name string, t Type) error {
	if _, ok := builtins[name]; ok {
		return errors.New(errors.PhaseDiscover, errors.KindDuplicateDefinition).
			Path(name).
			Detail("conflicts with builtin type").
			Build()
	}
	if existing, ok := u.defs[name]; ok {
		if existing == t {
			return nil
		}
		return errors.New(errors.PhaseDiscover, errors.KindDuplicateDefinition).
			Path(name).
			Type(t.String()).
			Detail("already bound to %s", describe(existing)).
			Build()
	}
	u.defs[name] = t
	u.AddKnownType(t)
	return nil
}

// AddKnownType records t and every type nested in it as observed.
func (u *Universe) AddKnownType(t Type) {
	for nested := range IterTypes(t) {
		if _, ok := u.seen[nested]; ok {
			continue
		}
		u.seen[nested] = struct{}{}
		u.known = append(u.known, nested)
	}
}

// GetTypeDefinition returns the type bound to name.
func (u *Universe) GetTypeDefinition(name string) (Type, bool) {
	t, ok := u.defs[name]
	return t, ok
}

// IterKnownTypes yields every observed type in first-seen order.
func (u *Universe) IterKnownTypes() iter.Seq[Type] {
	return func(yield func(Type) bool) {
		for _, t := range u.known {
			if !yield(t) {
				return
			}
		}
	}
}

// Len returns the number of distinct observed types.
func (u *Universe) Len() int { return len(u.known) }

// ResolveTypeExpression turns a type expression into a Type. Builtin names
// resolve directly; other names must already be bound. Every resolved type
// is recorded as known.
func (u *Universe) ResolveTypeExpression(expr idl.TypeExpr) (Type, error) {
	t, err := u.resolve(expr)
	if err != nil {
		return nil, err
	}
	u.AddKnownType(t)
	return t, nil
}

func (u *Universe) resolve(expr idl.TypeExpr) (Type, error) {
	switch e := expr.(type) {
	case idl.NamedType:
		if t, ok := builtins[e.Name]; ok {
			return t, nil
		}
		if t, ok := u.defs[e.Name]; ok {
			return t, nil
		}
		return nil, errors.UnknownType(nil, e.Name)
	case idl.OptionalType:
		inner, err := u.resolve(e.Inner)
		if err != nil {
			return nil, err
		}
		return Optional{Inner: inner}, nil
	case idl.SequenceType:
		inner, err := u.resolve(e.Elem)
		if err != nil {
			return nil, err
		}
		return Sequence{Inner: inner}, nil
	case idl.MapType:
		key, err := u.resolve(e.Key)
		if err != nil {
			return nil, err
		}
		value, err := u.resolve(e.Value)
		if err != nil {
			return nil, err
		}
		return Map{Key: key, Value: value}, nil
	case nil:
		return nil, errors.New(errors.PhaseResolve, errors.KindInvalidInput).
			Detail("missing type expression").
			Build()
	default:
		return nil, errors.New(errors.PhaseResolve, errors.KindInvalidInput).
			Type(expr.String()).
			Detail("unsupported type expression").
			Build()
	}
}

func describe(t Type) string {
	switch t.(type) {
	case Record:
		return "record " + t.String()
	case Enum:
		return "enum " + t.String()
	case Object:
		return "object " + t.String()
	case CallbackInterface:
		return "callback interface " + t.String()
	case Error:
		return "error " + t.String()
	case External:
		return "external " + t.String()
	case Custom:
		return "custom " + t.String()
	default:
		return t.String()
	}
}
