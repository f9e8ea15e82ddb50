package component

import (
	"fmt"

	"github.com/wippyai/bindgen/errors"
)

// checkConsistency verifies invariants that hold only for the interface as
// a whole. It runs after every declaration is added and before the
// checksum is computed.
func (c *Interface) checkConsistency() error {
	if c.namespace == "" {
		return errors.ConsistencyViolation("", "missing namespace definition")
	}

	// Variant names must not shadow type names.
	for _, e := range c.enums {
		if err := c.checkVariantNames(e.name, e.variants); err != nil {
			return err
		}
	}
	for _, e := range c.errs {
		if err := c.checkVariantNames(e.name, e.variants); err != nil {
			return err
		}
	}

	for _, f := range c.functions {
		if err := c.checkThrows(f.name, f.attributes.Throws()); err != nil {
			return err
		}
	}
	for _, o := range c.objects {
		for _, ctor := range o.constructors {
			if err := c.checkThrows(o.name+"."+ctor.name, ctor.attributes.Throws()); err != nil {
				return err
			}
		}
		for _, m := range o.methods {
			if err := c.checkThrows(o.name+"."+m.name, m.attributes.Throws()); err != nil {
				return err
			}
		}
	}
	for _, cb := range c.callbackInterfaces {
		for _, m := range cb.methods {
			if err := c.checkThrows(cb.name+"."+m.name, m.attributes.Throws()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Interface) checkVariantNames(owner string, variants []Variant) error {
	for _, v := range variants {
		if _, ok := c.universe.GetTypeDefinition(v.Name); ok {
			return errors.ConsistencyViolation(v.Name,
				fmt.Sprintf("variant %q of %s shadows a type name", v.Name, owner))
		}
	}
	return nil
}

func (c *Interface) checkThrows(member, throws string) error {
	if throws == "" || c.GetErrorDefinition(throws) != nil {
		return nil
	}
	return errors.ConsistencyViolation(member,
		fmt.Sprintf("%s throws %q, which is not a declared error", member, throws))
}
