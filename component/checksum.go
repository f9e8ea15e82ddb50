package component

import (
	"github.com/wippyai/bindgen/component/internal/digest"
	"github.com/wippyai/bindgen/types"
)

// GeneratorVersion is mixed into every checksum so that interfaces built by
// different generator versions never link against each other.
const GeneratorVersion = "bindgen/0.3.0"

// Type tags of the canonical encoding. Values are part of the checksum and
// must not be reordered.
const (
	tagAbsent byte = iota
	tagBoolean
	tagInt8
	tagInt16
	tagInt32
	tagInt64
	tagUInt8
	tagUInt16
	tagUInt32
	tagUInt64
	tagFloat32
	tagFloat64
	tagString
	tagBytes
	tagOptional
	tagSequence
	tagMap
	tagRecord
	tagEnum
	tagObject
	tagCallbackInterface
	tagError
	tagExternal
	tagCustom
)

// computeChecksum hashes the declarations only. FFI descriptors are derived
// from the result and never take part.
func (c *Interface) computeChecksum() uint64 {
	h := digest.New()
	h.String(GeneratorVersion)
	h.String(c.namespace)

	h.Len(len(c.enums))
	for _, e := range c.enums {
		hashEnum(h, e)
	}
	h.Len(len(c.records))
	for _, r := range c.records {
		h.String(r.name)
		hashFields(h, r.fields)
	}
	h.Len(len(c.functions))
	for _, f := range c.functions {
		h.String(f.name)
		hashArguments(h, f.arguments)
		hashType(h, f.returnType)
		hashAttributes(h, f.attributes.list)
	}
	h.Len(len(c.objects))
	for _, o := range c.objects {
		h.String(o.name)
		h.Bool(o.threadsafe)
		h.Len(len(o.constructors))
		for _, ctor := range o.constructors {
			h.String(ctor.name)
			hashArguments(h, ctor.arguments)
			hashAttributes(h, ctor.attributes.list)
		}
		hashMethods(h, o.methods)
	}
	h.Len(len(c.callbackInterfaces))
	for _, cb := range c.callbackInterfaces {
		h.String(cb.name)
		hashMethods(h, cb.methods)
	}
	h.Len(len(c.errs))
	for _, e := range c.errs {
		hashEnum(h, &e.Enum)
	}
	return h.Sum64()
}

func hashEnum(h *digest.Hasher, e *Enum) {
	h.String(e.name)
	h.Len(len(e.variants))
	for _, v := range e.variants {
		h.String(v.Name)
		hashFields(h, v.Fields)
	}
}

func hashMethods(h *digest.Hasher, methods []*Method) {
	h.Len(len(methods))
	for _, m := range methods {
		h.String(m.name)
		h.String(m.objectName)
		hashArguments(h, m.arguments)
		hashType(h, m.returnType)
		hashAttributes(h, m.attributes.list)
	}
}

func hashFields(h *digest.Hasher, fields []Field) {
	h.Len(len(fields))
	for _, f := range fields {
		h.String(f.Name)
		hashType(h, f.Type)
		h.Bool(f.Required)
		hashLiteral(h, f.Default)
	}
}

func hashArguments(h *digest.Hasher, args []Argument) {
	h.Len(len(args))
	for _, a := range args {
		h.String(a.Name)
		hashType(h, a.Type)
		h.Bool(a.ByRef)
		h.Bool(a.Optional)
		hashLiteral(h, a.Default)
	}
}

func hashAttributes(h *digest.Hasher, list attributeList) {
	h.Len(len(list))
	for _, a := range list {
		h.Tag(byte(a.Key))
		h.String(a.Value)
	}
}

func hashLiteral(h *digest.Hasher, l *Literal) {
	if l == nil {
		h.Tag(0)
		return
	}
	h.Tag(byte(l.Kind))
	hashType(h, l.Type)
	switch l.Kind {
	case LiteralBoolean:
		h.Bool(l.Bool)
	case LiteralString, LiteralFloat, LiteralEnum:
		h.String(l.Text)
	case LiteralInt:
		h.Int64(l.Int)
		h.Tag(byte(l.Radix))
	case LiteralUInt:
		h.Uint64(l.UInt)
		h.Tag(byte(l.Radix))
	}
}

func hashType(h *digest.Hasher, t types.Type) {
	switch v := t.(type) {
	case nil:
		h.Tag(tagAbsent)
	case types.Boolean:
		h.Tag(tagBoolean)
	case types.Int8:
		h.Tag(tagInt8)
	case types.Int16:
		h.Tag(tagInt16)
	case types.Int32:
		h.Tag(tagInt32)
	case types.Int64:
		h.Tag(tagInt64)
	case types.UInt8:
		h.Tag(tagUInt8)
	case types.UInt16:
		h.Tag(tagUInt16)
	case types.UInt32:
		h.Tag(tagUInt32)
	case types.UInt64:
		h.Tag(tagUInt64)
	case types.Float32:
		h.Tag(tagFloat32)
	case types.Float64:
		h.Tag(tagFloat64)
	case types.String:
		h.Tag(tagString)
	case types.Bytes:
		h.Tag(tagBytes)
	case types.Optional:
		h.Tag(tagOptional)
		hashType(h, v.Inner)
	case types.Sequence:
		h.Tag(tagSequence)
		hashType(h, v.Inner)
	case types.Map:
		h.Tag(tagMap)
		hashType(h, v.Key)
		hashType(h, v.Value)
	case types.Record:
		h.Tag(tagRecord)
		h.String(v.Name)
	case types.Enum:
		h.Tag(tagEnum)
		h.String(v.Name)
	case types.Object:
		h.Tag(tagObject)
		h.String(v.Name)
	case types.CallbackInterface:
		h.Tag(tagCallbackInterface)
		h.String(v.Name)
	case types.Error:
		h.Tag(tagError)
		h.String(v.Name)
	case types.External:
		h.Tag(tagExternal)
		h.String(v.Name)
		h.String(v.Source)
	case types.Custom:
		h.Tag(tagCustom)
		h.String(v.Name)
		hashType(h, v.Builtin)
	}
}
