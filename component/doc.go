// Package component builds checksummed component interfaces.
//
// A Builder collects IDL documents and metadata items and turns them into an
// immutable Interface in two passes. Discovery binds every declared name so
// that later declarations may refer to earlier or later ones; detail
// resolution then resolves types, attributes and default values. A
// consistency check runs over the finished declarations before the checksum
// is computed.
//
//	b := component.NewBuilder().AddDocument(doc)
//	iface, err := b.Build()
//	if err != nil {
//		return err
//	}
//	for f := range iface.IterFFIFunctionDefinitions() {
//		fmt.Println(f)
//	}
//
// The checksum covers declarations only. Its low 16 bits are folded into
// the FFI namespace, so every exported symbol name changes whenever the
// interface does and mismatched bindings fail to link.
//
// An Interface can also be projected into WIT with WITTypeDefs and WIT.
package component
