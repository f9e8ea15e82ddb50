package component

import (
	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/idl"
)

// AttributeKey identifies a recognized attribute.
type AttributeKey uint8

const (
	AttrByRef AttributeKey = iota + 1
	AttrEnum
	AttrError
	AttrName
	AttrSelfType
	AttrThreadsafe // deprecated
	AttrThrows
	AttrExternal
	AttrCustom
)

type attributeSpec struct {
	key      AttributeKey
	hasValue bool
}

var attributeSpecs = map[string]attributeSpec{
	"ByRef":      {AttrByRef, false},
	"Enum":       {AttrEnum, false},
	"Error":      {AttrError, false},
	"Name":       {AttrName, true},
	"Self":       {AttrSelfType, true},
	"Threadsafe": {AttrThreadsafe, false},
	"Throws":     {AttrThrows, true},
	"External":   {AttrExternal, true},
	"Custom":     {AttrCustom, false},
}

// selfByArc is the only receiver convention accepted by [Self=...].
const selfByArc = "ByArc"

// Attribute is a validated attribute. Value is empty for flags.
type Attribute struct {
	Value string
	Key   AttributeKey
}

// attributeList is the common storage of every per-kind set.
type attributeList []Attribute

func (l attributeList) has(key AttributeKey) bool {
	for _, a := range l {
		if a.Key == key {
			return true
		}
	}
	return false
}

func (l attributeList) value(key AttributeKey) string {
	for _, a := range l {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// parseAttributes validates raw attributes against the keys allowed for a
// declaration kind. A nil list yields an empty set.
func parseAttributes(raw idl.Attributes, declKind string, allowed ...AttributeKey) (attributeList, error) {
	if raw == nil {
		return nil, nil
	}
	list := make(attributeList, 0, len(raw))
	for _, a := range raw {
		spec, ok := attributeSpecs[a.Key]
		if !ok || !keyAllowed(spec.key, allowed) {
			return nil, errors.UnsupportedAttribute(nil, declKind, a.String())
		}
		if spec.hasValue != (a.Value != nil) {
			return nil, errors.New(errors.PhaseResolve, errors.KindUnsupportedAttribute).
				Detail("malformed attribute %s on %s", a, declKind).
				Build()
		}
		if spec.hasValue && *a.Value == "" {
			return nil, errors.New(errors.PhaseResolve, errors.KindUnsupportedAttribute).
				Detail("attribute %s on %s requires a value", a.Key, declKind).
				Build()
		}
		if spec.key == AttrSelfType && *a.Value != selfByArc {
			return nil, errors.UnsupportedAttribute(nil, declKind, a.String())
		}
		if list.has(spec.key) {
			return nil, errors.New(errors.PhaseResolve, errors.KindUnsupportedAttribute).
				Detail("duplicate attribute %s on %s", a.Key, declKind).
				Build()
		}
		attr := Attribute{Key: spec.key}
		if a.Value != nil {
			attr.Value = *a.Value
		}
		list = append(list, attr)
	}
	return list, nil
}

func keyAllowed(key AttributeKey, allowed []AttributeKey) bool {
	for _, k := range allowed {
		if k == key {
			return true
		}
	}
	return false
}

// EnumAttributes apply to enum declarations.
type EnumAttributes struct{ list attributeList }

func parseEnumAttributes(raw idl.Attributes) (EnumAttributes, error) {
	l, err := parseAttributes(raw, "enum", AttrError)
	return EnumAttributes{l}, err
}

// IsError reports whether the enum declares an error family.
func (a EnumAttributes) IsError() bool { return a.list.has(AttrError) }

// InterfaceAttributes apply to interface declarations, which become objects,
// tagged enums or error families.
type InterfaceAttributes struct{ list attributeList }

func parseInterfaceAttributes(raw idl.Attributes) (InterfaceAttributes, error) {
	l, err := parseAttributes(raw, "interface", AttrEnum, AttrError, AttrThreadsafe)
	if err != nil {
		return InterfaceAttributes{}, err
	}
	if len(l) > 1 {
		return InterfaceAttributes{}, errors.New(errors.PhaseResolve, errors.KindUnsupportedAttribute).
			Detail("conflicting attributes on interface").
			Build()
	}
	return InterfaceAttributes{l}, nil
}

func (a InterfaceAttributes) IsEnum() bool     { return a.list.has(AttrEnum) }
func (a InterfaceAttributes) IsError() bool    { return a.list.has(AttrError) }
func (a InterfaceAttributes) Threadsafe() bool { return a.list.has(AttrThreadsafe) }

// FunctionAttributes apply to namespace functions.
type FunctionAttributes struct{ list attributeList }

func parseFunctionAttributes(raw idl.Attributes) (FunctionAttributes, error) {
	l, err := parseAttributes(raw, "function", AttrThrows)
	return FunctionAttributes{l}, err
}

// Throws returns the declared error name, or "".
func (a FunctionAttributes) Throws() string { return a.list.value(AttrThrows) }

// ArgumentAttributes apply to function, method and constructor arguments.
type ArgumentAttributes struct{ list attributeList }

func parseArgumentAttributes(raw idl.Attributes) (ArgumentAttributes, error) {
	l, err := parseAttributes(raw, "argument", AttrByRef)
	return ArgumentAttributes{l}, err
}

func (a ArgumentAttributes) ByRef() bool { return a.list.has(AttrByRef) }

// ConstructorAttributes apply to object constructors.
type ConstructorAttributes struct{ list attributeList }

func parseConstructorAttributes(raw idl.Attributes) (ConstructorAttributes, error) {
	l, err := parseAttributes(raw, "constructor", AttrThrows, AttrName)
	return ConstructorAttributes{l}, err
}

func (a ConstructorAttributes) Throws() string { return a.list.value(AttrThrows) }

// Name returns the [Name=...] override, or "".
func (a ConstructorAttributes) Name() string { return a.list.value(AttrName) }

// MethodAttributes apply to object and callback interface methods.
type MethodAttributes struct{ list attributeList }

func parseMethodAttributes(raw idl.Attributes) (MethodAttributes, error) {
	l, err := parseAttributes(raw, "method", AttrThrows, AttrSelfType)
	return MethodAttributes{l}, err
}

func (a MethodAttributes) Throws() string { return a.list.value(AttrThrows) }

// SelfByArc reports whether the receiver is passed as a shared handle.
func (a MethodAttributes) SelfByArc() bool { return a.list.has(AttrSelfType) }

// TypedefAttributes apply to typedefs, which must be [External=...] or
// [Custom].
type TypedefAttributes struct{ list attributeList }

func parseTypedefAttributes(raw idl.Attributes) (TypedefAttributes, error) {
	l, err := parseAttributes(raw, "typedef", AttrExternal, AttrCustom)
	if err != nil {
		return TypedefAttributes{}, err
	}
	if l.has(AttrExternal) == l.has(AttrCustom) {
		return TypedefAttributes{}, errors.New(errors.PhaseResolve, errors.KindUnsupportedAttribute).
			Detail("typedef requires exactly one of [External=...] or [Custom]").
			Build()
	}
	return TypedefAttributes{l}, nil
}

// External returns the source component of an external type, or "".
func (a TypedefAttributes) External() string { return a.list.value(AttrExternal) }
func (a TypedefAttributes) IsCustom() bool   { return a.list.has(AttrCustom) }

// parseDictionaryAttributes rejects everything: dictionaries take no
// attributes.
func parseDictionaryAttributes(raw idl.Attributes) error {
	_, err := parseAttributes(raw, "dictionary")
	return err
}
