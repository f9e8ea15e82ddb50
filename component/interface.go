package component

import (
	"iter"
	"slices"

	"github.com/wippyai/bindgen/ffi"
	"github.com/wippyai/bindgen/types"
)

// Interface is a finalized component interface. It is immutable and safe
// for concurrent use.
type Interface struct {
	universe           *types.Universe
	namespace          string
	ffiNamespace       string
	enums              []*Enum
	records            []*Record
	functions          []*Function
	objects            []*Object
	callbackInterfaces []*CallbackInterface
	errs               []*Error
	checksum           uint64
}

// Namespace returns the declared namespace.
func (c *Interface) Namespace() string { return c.namespace }

// EnumDefinitions returns the enums in declaration order.
func (c *Interface) EnumDefinitions() []*Enum { return clonePtrs(c.enums) }

// RecordDefinitions returns the records in declaration order.
func (c *Interface) RecordDefinitions() []*Record { return clonePtrs(c.records) }

// FunctionDefinitions returns the namespace functions in declaration order.
func (c *Interface) FunctionDefinitions() []*Function { return clonePtrs(c.functions) }

// ObjectDefinitions returns the objects in declaration order.
func (c *Interface) ObjectDefinitions() []*Object { return clonePtrs(c.objects) }

// ErrorDefinitions returns the error families in declaration order.
func (c *Interface) ErrorDefinitions() []*Error { return clonePtrs(c.errs) }

// CallbackInterfaceDefinitions returns the callback interfaces in
// declaration order.
func (c *Interface) CallbackInterfaceDefinitions() []*CallbackInterface {
	return clonePtrs(c.callbackInterfaces)
}

// GetEnumDefinition returns the enum called name, or nil.
func (c *Interface) GetEnumDefinition(name string) *Enum {
	return find(c.enums, func(e *Enum) bool { return e.name == name })
}

// GetRecordDefinition returns the record called name, or nil.
func (c *Interface) GetRecordDefinition(name string) *Record {
	return find(c.records, func(r *Record) bool { return r.name == name })
}

// GetFunctionDefinition returns the namespace function called name, or nil.
func (c *Interface) GetFunctionDefinition(name string) *Function {
	return find(c.functions, func(f *Function) bool { return f.name == name })
}

// GetObjectDefinition returns the object called name, or nil.
func (c *Interface) GetObjectDefinition(name string) *Object {
	return find(c.objects, func(o *Object) bool { return o.name == name })
}

// GetCallbackInterfaceDefinition returns the callback interface called
// name, or nil.
func (c *Interface) GetCallbackInterfaceDefinition(name string) *CallbackInterface {
	return find(c.callbackInterfaces, func(cb *CallbackInterface) bool { return cb.name == name })
}

// GetErrorDefinition returns the error family called name, or nil.
func (c *Interface) GetErrorDefinition(name string) *Error {
	return find(c.errs, func(e *Error) bool { return e.name == name })
}

func find[T any](s []*T, match func(*T) bool) *T {
	if i := slices.IndexFunc(s, match); i >= 0 {
		return s[i]
	}
	return nil
}

// IterTypes yields every type known to the interface, in first-seen order.
func (c *Interface) IterTypes() iter.Seq[types.Type] {
	if c.universe == nil {
		return func(func(types.Type) bool) {}
	}
	return c.universe.IterKnownTypes()
}

// GetType returns the type bound to a declared name.
func (c *Interface) GetType(name string) (types.Type, bool) {
	if c.universe == nil {
		return nil, false
	}
	return c.universe.GetTypeDefinition(name)
}

// IterExternalTypes yields name and source component of every external
// type.
func (c *Interface) IterExternalTypes() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for t := range c.IterTypes() {
			if ext, ok := t.(types.External); ok {
				if !yield(ext.Name, ext.Source) {
					return
				}
			}
		}
	}
}

// IterCustomTypes yields name and underlying builtin of every custom type.
func (c *Interface) IterCustomTypes() iter.Seq2[string, types.Type] {
	return func(yield func(string, types.Type) bool) {
		for t := range c.IterTypes() {
			if custom, ok := t.(types.Custom); ok {
				if !yield(custom.Name, custom.Builtin) {
					return
				}
			}
		}
	}
}

func (c *Interface) ContainsOptionalTypes() bool {
	return containsKind[types.Optional](c.IterTypes())
}

func (c *Interface) ContainsSequenceTypes() bool {
	return containsKind[types.Sequence](c.IterTypes())
}

func (c *Interface) ContainsMapTypes() bool {
	return containsKind[types.Map](c.IterTypes())
}

// ItemContainsObjectReferences reports whether item reaches an object type,
// directly or through the declarations it references.
func (c *Interface) ItemContainsObjectReferences(item types.Type) bool {
	return containsKind[types.Object](c.IterTypesInItem(item))
}

// ItemContainsUnsignedTypes reports whether item reaches an unsigned
// integer type.
func (c *Interface) ItemContainsUnsignedTypes(item types.Type) bool {
	for t := range c.IterTypesInItem(item) {
		if types.IsUnsigned(t) {
			return true
		}
	}
	return false
}

func containsKind[T types.Type](seq iter.Seq[types.Type]) bool {
	for t := range seq {
		if _, ok := t.(T); ok {
			return true
		}
	}
	return false
}

// Checksum returns the hash of the interface's declarations.
func (c *Interface) Checksum() uint64 { return c.checksum }

// FFINamespace returns the namespace followed by the low 16 bits of the
// checksum as four hex digits. Every FFI symbol carries it.
func (c *Interface) FFINamespace() string { return c.ffiNamespace }

// IterFFIFunctionDefinitions yields every FFI symbol: user functions first,
// then the buffer built-ins.
func (c *Interface) IterFFIFunctionDefinitions() iter.Seq[ffi.Function] {
	return func(yield func(ffi.Function) bool) {
		for f := range c.IterUserFFIFunctionDefinitions() {
			if !yield(f) {
				return
			}
		}
		for f := range c.IterBufferFFIFunctionDefinitions() {
			if !yield(f) {
				return
			}
		}
	}
}

// IterUserFFIFunctionDefinitions yields object functions, callback
// initializers and namespace functions, in that order.
func (c *Interface) IterUserFFIFunctionDefinitions() iter.Seq[ffi.Function] {
	return func(yield func(ffi.Function) bool) {
		for _, o := range c.objects {
			for f := range o.IterFFIFunctionDefinitions() {
				if !yield(f) {
					return
				}
			}
		}
		for _, cb := range c.callbackInterfaces {
			if !yield(cb.ffiInitCallback.Clone()) {
				return
			}
		}
		for _, f := range c.functions {
			if !yield(f.ffiFunc.Clone()) {
				return
			}
		}
	}
}

// IterBufferFFIFunctionDefinitions yields the four buffer built-ins.
func (c *Interface) IterBufferFFIFunctionDefinitions() iter.Seq[ffi.Function] {
	return slices.Values(ffi.BufferFunctions(c.ffiNamespace))
}
