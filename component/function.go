package component

import (
	"iter"

	"github.com/wippyai/bindgen/ffi"
	"github.com/wippyai/bindgen/types"
)

// Argument is a parameter of a function, constructor or method.
type Argument struct {
	Type     types.Type
	Default  *Literal
	Name     string
	ByRef    bool
	Optional bool
}

// IterTypes yields the argument type and its structural components.
func (a Argument) IterTypes() iter.Seq[types.Type] {
	return types.IterTypes(a.Type)
}

// Function is a namespace-level function.
type Function struct {
	returnType types.Type
	name       string
	arguments  []Argument
	attributes FunctionAttributes
	ffiFunc    ffi.Function
}

func (f *Function) Name() string              { return f.name }
func (f *Function) Arguments() []Argument     { return cloneArguments(f.arguments) }
func (f *Function) FullArguments() []Argument { return cloneArguments(f.arguments) }

// ReturnType returns the declared return type, or nil for none.
func (f *Function) ReturnType() types.Type { return f.returnType }

// Throws returns the name of the error this function may raise, or "".
func (f *Function) Throws() string { return f.attributes.Throws() }

// ThrowsType returns the raised error as a type, or nil.
func (f *Function) ThrowsType() types.Type { return throwsType(f.attributes.Throws()) }

// FFIFunc returns the derived FFI descriptor.
func (f *Function) FFIFunc() ffi.Function { return f.ffiFunc.Clone() }

// IterTypes yields argument types followed by the return type.
func (f *Function) IterTypes() iter.Seq[types.Type] {
	return iterSignatureTypes(f.arguments, f.returnType)
}

func (f *Function) deriveFFIFunc(prefix string) error {
	args, err := lowerArguments(f.arguments)
	if err != nil {
		return err
	}
	ret, err := lowerReturn(f.returnType)
	if err != nil {
		return err
	}
	f.ffiFunc = ffi.Function{
		Name:       prefix + "_" + f.name,
		Arguments:  args,
		ReturnType: ret,
	}
	return nil
}

func throwsType(name string) types.Type {
	if name == "" {
		return nil
	}
	return types.Error{Name: name}
}

func cloneArguments(args []Argument) []Argument {
	if args == nil {
		return nil
	}
	out := make([]Argument, len(args))
	for i, a := range args {
		a.Default = a.Default.clone()
		out[i] = a
	}
	return out
}

func iterSignatureTypes(args []Argument, ret types.Type) iter.Seq[types.Type] {
	return func(yield func(types.Type) bool) {
		for _, a := range args {
			for t := range a.IterTypes() {
				if !yield(t) {
					return
				}
			}
		}
		if ret == nil {
			return
		}
		for t := range types.IterTypes(ret) {
			if !yield(t) {
				return
			}
		}
	}
}

func lowerArguments(args []Argument) ([]ffi.Argument, error) {
	out := make([]ffi.Argument, 0, len(args))
	for _, a := range args {
		t, err := ffi.Lower(a.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, ffi.Argument{Name: a.Name, Type: t})
	}
	return out, nil
}

func lowerReturn(t types.Type) (*ffi.Type, error) {
	if t == nil {
		return nil, nil
	}
	ft, err := ffi.Lower(t)
	if err != nil {
		return nil, err
	}
	return &ft, nil
}
