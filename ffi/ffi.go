package ffi

import (
	"slices"
	"strings"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/types"
)

// Type is a low-level FFI type.
type Type uint8

const (
	Int8 Type = iota + 1
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float32
	Float64
	// Buffer is an owned byte buffer carrying a serialized value.
	Buffer
	// ForeignBytes is a borrowed view of foreign-owned bytes.
	ForeignBytes
	// Handle is an opaque pointer to a shared object instance.
	Handle
	// ForeignCallback is the foreign callback dispatch stub.
	ForeignCallback
)

var typeNames = [...]string{
	Int8:            "Int8",
	Int16:           "Int16",
	Int32:           "Int32",
	Int64:           "Int64",
	UInt8:           "UInt8",
	UInt16:          "UInt16",
	UInt32:          "UInt32",
	UInt64:          "UInt64",
	Float32:         "Float32",
	Float64:         "Float64",
	Buffer:          "Buffer",
	ForeignBytes:    "ForeignBytes",
	Handle:          "Handle",
	ForeignCallback: "ForeignCallback",
}

func (t Type) String() string {
	if int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}
	return "Type(?)"
}

// Ptr returns a pointer to t, for use as a Function return type.
func Ptr(t Type) *Type { return &t }

// Argument is a named FFI argument.
type Argument struct {
	Name string
	Type Type
}

// Function is a symbol exported across the FFI boundary.
type Function struct {
	ReturnType *Type
	Name       string
	Arguments  []Argument
}

// String renders the signature, e.g. "ns_1a2b_add(a: Int32, b: Int32) -> Int32".
func (f Function) String() string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i, a := range f.Arguments {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.Name)
		sb.WriteString(": ")
		sb.WriteString(a.Type.String())
	}
	sb.WriteByte(')')
	if f.ReturnType != nil {
		sb.WriteString(" -> ")
		sb.WriteString(f.ReturnType.String())
	}
	return sb.String()
}

// Clone returns a copy of f that shares no memory with it.
func (f Function) Clone() Function {
	out := Function{Name: f.Name, Arguments: slices.Clone(f.Arguments)}
	if f.ReturnType != nil {
		out.ReturnType = Ptr(*f.ReturnType)
	}
	return out
}

// Equal reports whether two descriptors are identical.
func (f Function) Equal(other Function) bool {
	if f.Name != other.Name || len(f.Arguments) != len(other.Arguments) {
		return false
	}
	if (f.ReturnType == nil) != (other.ReturnType == nil) {
		return false
	}
	if f.ReturnType != nil && *f.ReturnType != *other.ReturnType {
		return false
	}
	for i := range f.Arguments {
		if f.Arguments[i] != other.Arguments[i] {
			return false
		}
	}
	return true
}

// Lower maps an interface type to its FFI representation.
func Lower(t types.Type) (Type, error) {
	switch v := t.(type) {
	case types.Boolean, types.Int8:
		return Int8, nil
	case types.Int16:
		return Int16, nil
	case types.Int32:
		return Int32, nil
	case types.Int64:
		return Int64, nil
	case types.UInt8:
		return UInt8, nil
	case types.UInt16:
		return UInt16, nil
	case types.UInt32:
		return UInt32, nil
	case types.UInt64:
		return UInt64, nil
	case types.Float32:
		return Float32, nil
	case types.Float64:
		return Float64, nil
	case types.String, types.Bytes, types.Optional, types.Sequence, types.Map,
		types.Record, types.Enum, types.Error, types.External:
		return Buffer, nil
	case types.Object:
		return Handle, nil
	case types.CallbackInterface:
		return ForeignCallback, nil
	case types.Custom:
		if v.Builtin == nil {
			return 0, errors.InternalMapping([]string{v.Name}, v.String())
		}
		return Lower(v.Builtin)
	case nil:
		return 0, errors.InternalMapping(nil, "<nil>")
	default:
		return 0, errors.InternalMapping(nil, t.String())
	}
}
