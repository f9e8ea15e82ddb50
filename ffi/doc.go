// Package ffi describes the low-level calling convention derived from a
// component interface: the scalar and handle types that cross the boundary,
// the exported function descriptors, and the built-in buffer management
// functions every namespace exports.
//
// Lower maps interface types onto FFI types. Compound values travel as a
// serialized Buffer; objects travel as an opaque Handle; callback interfaces
// are registered through a ForeignCallback stub.
//
// CoreSignature additionally flattens a descriptor onto wasm32 core value
// types, for hosts that load the native side as a wasm module.
package ffi
