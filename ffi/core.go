package ffi

import "github.com/tetratelabs/wazero/api"

// CoreValType is a core wasm value type
type CoreValType = api.ValueType

// PointerType is the wasm32 address type.
const PointerType = api.ValueTypeI32

// CoreType lowers an FFI type to the core wasm value type used by a wasm32
// target. Aggregates (Buffer, ForeignBytes) are passed indirectly.
func CoreType(t Type) CoreValType {
	switch t {
	case Int64, UInt64:
		return api.ValueTypeI64
	case Float32:
		return api.ValueTypeF32
	case Float64:
		return api.ValueTypeF64
	default:
		// integers up to 32 bits, pointers, handles and callback slots
		return api.ValueTypeI32
	}
}

// returnsIndirect reports whether a result of type t is written through a
// caller-supplied pointer instead of returned in a register.
func returnsIndirect(t Type) bool {
	return t == Buffer || t == ForeignBytes
}

// CoreSignature flattens an FFI function into wasm32 core params and results.
// Buffer results become a leading out-pointer parameter and no result.
func CoreSignature(f Function) (params, results []CoreValType) {
	if f.ReturnType != nil && returnsIndirect(*f.ReturnType) {
		params = append(params, PointerType)
	}
	for _, a := range f.Arguments {
		params = append(params, CoreType(a.Type))
	}
	if f.ReturnType != nil && !returnsIndirect(*f.ReturnType) {
		results = []CoreValType{CoreType(*f.ReturnType)}
	}
	return params, results
}

// FormatCoreSignature renders a core signature as "(i32, i64) -> (i32)".
func FormatCoreSignature(params, results []CoreValType) string {
	return formatValTypes(params) + " -> " + formatValTypes(results)
}

func formatValTypes(ts []CoreValType) string {
	s := "("
	for i, t := range ts {
		if i > 0 {
			s += ", "
		}
		s += api.ValueTypeName(t)
	}
	return s + ")"
}
