package component

import "github.com/wippyai/bindgen/errors"

// deriveFFIFuncs computes the FFI descriptor of every exported operation.
// The prefix is the FFI namespace, so the checksum must already be set.
// Running it again yields identical descriptors.
func (c *Interface) deriveFFIFuncs() error {
	prefix := c.ffiNamespace
	for _, f := range c.functions {
		if err := f.deriveFFIFunc(prefix); err != nil {
			return errors.Prefix(err, f.name)
		}
	}
	for _, o := range c.objects {
		if err := o.deriveFFIFuncs(prefix); err != nil {
			return errors.Prefix(err, o.name)
		}
	}
	for _, cb := range c.callbackInterfaces {
		cb.deriveFFIFuncs(prefix)
	}
	return nil
}
