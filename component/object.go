package component

import (
	"iter"

	"github.com/wippyai/bindgen/ffi"
	"github.com/wippyai/bindgen/types"
)

// primaryConstructorName is the name of the constructor exposed as primary.
const primaryConstructorName = "new"

// Object is a reference type with constructors and methods, passed across
// the boundary as an opaque handle.
type Object struct {
	name         string
	constructors []*Constructor
	methods      []*Method
	ffiFree      ffi.Function
	threadsafe   bool
}

func (o *Object) Name() string                 { return o.name }
func (o *Object) Type() types.Type             { return types.Object{Name: o.name} }
func (o *Object) Constructors() []*Constructor { return clonePtrs(o.constructors) }
func (o *Object) Methods() []*Method           { return clonePtrs(o.methods) }
func (o *Object) FFIObjectFree() ffi.Function  { return o.ffiFree.Clone() }

// UsesDeprecatedThreadsafeAttribute reports whether the declaration carried
// [Threadsafe].
func (o *Object) UsesDeprecatedThreadsafeAttribute() bool { return o.threadsafe }

// PrimaryConstructor returns the constructor named "new", or nil.
func (o *Object) PrimaryConstructor() *Constructor {
	for _, c := range o.constructors {
		if c.IsPrimaryConstructor() {
			return c
		}
	}
	return nil
}

// AlternateConstructors returns every constructor except the primary one.
func (o *Object) AlternateConstructors() []*Constructor {
	var out []*Constructor
	for _, c := range o.constructors {
		if !c.IsPrimaryConstructor() {
			out = append(out, c)
		}
	}
	return out
}

// GetMethod returns the method with the given name, or nil.
func (o *Object) GetMethod(name string) *Method {
	for _, m := range o.methods {
		if m.name == name {
			return m
		}
	}
	return nil
}

// IterFFIFunctionDefinitions yields the free function, then constructors,
// then methods.
func (o *Object) IterFFIFunctionDefinitions() iter.Seq[ffi.Function] {
	return func(yield func(ffi.Function) bool) {
		if !yield(o.ffiFree.Clone()) {
			return
		}
		for _, c := range o.constructors {
			if !yield(c.ffiFunc.Clone()) {
				return
			}
		}
		for _, m := range o.methods {
			if !yield(m.ffiFunc.Clone()) {
				return
			}
		}
	}
}

// IterTypes yields method types followed by constructor argument types.
func (o *Object) IterTypes() iter.Seq[types.Type] {
	return func(yield func(types.Type) bool) {
		for _, m := range o.methods {
			for t := range m.IterTypes() {
				if !yield(t) {
					return
				}
			}
		}
		for _, c := range o.constructors {
			for t := range c.IterTypes() {
				if !yield(t) {
					return
				}
			}
		}
	}
}

func (o *Object) deriveFFIFuncs(prefix string) error {
	o.ffiFree = ffi.Function{
		Name:      "ffi_" + prefix + "_" + o.name + "_object_free",
		Arguments: []ffi.Argument{{Name: "ptr", Type: ffi.Handle}},
	}
	for _, c := range o.constructors {
		if err := c.deriveFFIFunc(prefix, o.name); err != nil {
			return err
		}
	}
	for _, m := range o.methods {
		if err := m.deriveFFIFunc(prefix, o.name); err != nil {
			return err
		}
	}
	return nil
}

// Constructor creates an object instance and returns its handle.
type Constructor struct {
	name       string
	arguments  []Argument
	attributes ConstructorAttributes
	ffiFunc    ffi.Function
}

func (c *Constructor) Name() string              { return c.name }
func (c *Constructor) Arguments() []Argument     { return cloneArguments(c.arguments) }
func (c *Constructor) FullArguments() []Argument { return cloneArguments(c.arguments) }
func (c *Constructor) Throws() string            { return c.attributes.Throws() }
func (c *Constructor) ThrowsType() types.Type    { return throwsType(c.attributes.Throws()) }
func (c *Constructor) FFIFunc() ffi.Function     { return c.ffiFunc.Clone() }
func (c *Constructor) IsPrimaryConstructor() bool {
	return c.name == primaryConstructorName
}

// IterTypes yields the argument types.
func (c *Constructor) IterTypes() iter.Seq[types.Type] {
	return iterSignatureTypes(c.arguments, nil)
}

func (c *Constructor) deriveFFIFunc(prefix, objName string) error {
	args, err := lowerArguments(c.arguments)
	if err != nil {
		return err
	}
	c.ffiFunc = ffi.Function{
		Name:       prefix + "_" + objName + "_" + c.name,
		Arguments:  args,
		ReturnType: ffi.Ptr(ffi.Handle),
	}
	return nil
}

// Method is an instance method. It receives the object through an implicit
// leading argument named "ptr".
type Method struct {
	returnType types.Type
	name       string
	objectName string
	arguments  []Argument
	attributes MethodAttributes
	ffiFunc    ffi.Function
}

func (m *Method) Name() string           { return m.name }
func (m *Method) ObjectName() string     { return m.objectName }
func (m *Method) Arguments() []Argument  { return cloneArguments(m.arguments) }
func (m *Method) ReturnType() types.Type { return m.returnType }
func (m *Method) Throws() string         { return m.attributes.Throws() }
func (m *Method) ThrowsType() types.Type { return throwsType(m.attributes.Throws()) }
func (m *Method) FFIFunc() ffi.Function  { return m.ffiFunc.Clone() }

// TakesSelfByArc reports whether the receiver is a shared handle rather
// than a reference.
func (m *Method) TakesSelfByArc() bool { return m.attributes.SelfByArc() }

// FullArguments returns the receiver argument followed by the declared ones.
func (m *Method) FullArguments() []Argument {
	out := make([]Argument, 0, len(m.arguments)+1)
	out = append(out, Argument{
		Name:  "ptr",
		Type:  types.Object{Name: m.objectName},
		ByRef: !m.attributes.SelfByArc(),
	})
	return append(out, cloneArguments(m.arguments)...)
}

// IterTypes yields argument types followed by the return type. The
// receiver is not included.
func (m *Method) IterTypes() iter.Seq[types.Type] {
	return iterSignatureTypes(m.arguments, m.returnType)
}

func (m *Method) deriveFFIFunc(prefix, objName string) error {
	args, err := lowerArguments(m.FullArguments())
	if err != nil {
		return err
	}
	ret, err := lowerReturn(m.returnType)
	if err != nil {
		return err
	}
	m.ffiFunc = ffi.Function{
		Name:       prefix + "_" + objName + "_" + m.name,
		Arguments:  args,
		ReturnType: ret,
	}
	return nil
}

func clonePtrs[T any](s []*T) []*T {
	if s == nil {
		return nil
	}
	out := make([]*T, len(s))
	copy(out, s)
	return out
}
