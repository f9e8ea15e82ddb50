// Package bindgen builds checksummed component interfaces: the single,
// validated description of a library's exported types and functions from
// which foreign-language bindings are generated.
//
// An interface is assembled from two kinds of input: a parsed interface
// definition document, or per-declaration metadata records emitted by
// annotated source. The build resolves every type, checks the declarations
// for consistency, computes a checksum over the whole interface and derives
// the flat FFI symbol table that both sides of the boundary agree on.
//
// # Architecture Overview
//
//	bindgen/
//	├── types/           Type model, universe of named types, traversal
//	├── idl/             Interface definition document AST and type expressions
//	├── metadata/        Metadata records: decoding, loading, build ordering
//	├── component/       Builder, Interface, checksum, FFI derivation, WIT view
//	├── ffi/             FFI descriptors, buffer built-ins, wasm32 lowering
//	├── errors/          Structured build errors with phase, kind and path
//	├── config/          YAML configuration and change watching
//	└── cmd/bindgen/     Command line interface
//
// # Quick Start
//
// Build from a metadata directory:
//
//	items, err := metadata.LoadDir(ctx, "meta")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	iface, err := component.NewBuilder().
//	    WithNamespace("bank").
//	    AddMetadata(items...).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(iface.FFINamespace()) // "bank_3f1a"
//	for f := range iface.IterFFIFunctionDefinitions() {
//	    fmt.Println(f)
//	}
//
// # Checksums
//
// The checksum covers every declaration and the generator version. Any
// change to a name, type, default or attribute changes it, and with it the
// FFI namespace, so bindings built against a stale interface fail to link
// instead of misbehaving at runtime.
//
// # Thread Safety
//
// A built Interface is immutable and safe for concurrent use. A Builder is
// not; it may be reused sequentially to build several interfaces.
package bindgen
