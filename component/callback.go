package component

import (
	"iter"

	"github.com/wippyai/bindgen/ffi"
	"github.com/wippyai/bindgen/types"
)

// CallbackInterface is implemented on the foreign side and invoked from
// native code through a registered dispatch stub.
type CallbackInterface struct {
	name            string
	methods         []*Method
	ffiInitCallback ffi.Function
}

func (c *CallbackInterface) Name() string                  { return c.name }
func (c *CallbackInterface) Type() types.Type              { return types.CallbackInterface{Name: c.name} }
func (c *CallbackInterface) Methods() []*Method            { return clonePtrs(c.methods) }
func (c *CallbackInterface) FFIInitCallback() ffi.Function { return c.ffiInitCallback.Clone() }

// IterTypes yields the types used by every method.
func (c *CallbackInterface) IterTypes() iter.Seq[types.Type] {
	return func(yield func(types.Type) bool) {
		for _, m := range c.methods {
			for t := range m.IterTypes() {
				if !yield(t) {
					return
				}
			}
		}
	}
}

func (c *CallbackInterface) deriveFFIFuncs(prefix string) {
	c.ffiInitCallback = ffi.Function{
		Name:      "ffi_" + prefix + "_" + c.name + "_init_callback",
		Arguments: []ffi.Argument{{Name: "callback_stub", Type: ffi.ForeignCallback}},
	}
}
