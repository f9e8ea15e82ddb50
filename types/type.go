package types

// Type is a resolved interface type. The set of implementations is closed.
type Type interface {
	// String renders the type in IDL syntax.
	String() string
	isType()
}

// Scalar types
type (
	Boolean struct{}
	Int8    struct{}
	Int16   struct{}
	Int32   struct{}
	Int64   struct{}
	UInt8   struct{}
	UInt16  struct{}
	UInt32  struct{}
	UInt64  struct{}
	Float32 struct{}
	Float64 struct{}
	String  struct{}
	Bytes   struct{}
)

func (Boolean) isType() {}
func (Int8) isType()    {}
func (Int16) isType()   {}
func (Int32) isType()   {}
func (Int64) isType()   {}
func (UInt8) isType()   {}
func (UInt16) isType()  {}
func (UInt32) isType()  {}
func (UInt64) isType()  {}
func (Float32) isType() {}
func (Float64) isType() {}
func (String) isType()  {}
func (Bytes) isType()   {}

func (Boolean) String() string { return "boolean" }
func (Int8) String() string    { return "i8" }
func (Int16) String() string   { return "i16" }
func (Int32) String() string   { return "i32" }
func (Int64) String() string   { return "i64" }
func (UInt8) String() string   { return "u8" }
func (UInt16) String() string  { return "u16" }
func (UInt32) String() string  { return "u32" }
func (UInt64) String() string  { return "u64" }
func (Float32) String() string { return "f32" }
func (Float64) String() string { return "f64" }
func (String) String() string  { return "string" }
func (Bytes) String() string   { return "bytes" }

// Optional is a nullable T.
type Optional struct {
	Inner Type
}

// Sequence is an ordered list of T.
type Sequence struct {
	Inner Type
}

// Map is a string-keyed (or otherwise keyed) map from K to V.
type Map struct {
	Key   Type
	Value Type
}

func (Optional) isType() {}
func (Sequence) isType() {}
func (Map) isType()      {}

func (t Optional) String() string { return t.Inner.String() + "?" }
func (t Sequence) String() string { return "sequence<" + t.Inner.String() + ">" }
func (t Map) String() string {
	return "record<" + t.Key.String() + ", " + t.Value.String() + ">"
}

// Named user types, identified solely by declaration name.
type (
	Record            struct{ Name string }
	Enum              struct{ Name string }
	Object            struct{ Name string }
	CallbackInterface struct{ Name string }
	Error             struct{ Name string }
)

func (Record) isType()            {}
func (Enum) isType()              {}
func (Object) isType()            {}
func (CallbackInterface) isType() {}
func (Error) isType()             {}

func (t Record) String() string            { return t.Name }
func (t Enum) String() string              { return t.Name }
func (t Object) String() string            { return t.Name }
func (t CallbackInterface) String() string { return t.Name }
func (t Error) String() string             { return t.Name }

// External is a type declared by another component.
type External struct {
	Name   string
	Source string
}

// Custom is a declared type backed by a builtin representation.
type Custom struct {
	Builtin Type
	Name    string
}

func (External) isType() {}
func (Custom) isType()   {}

func (t External) String() string { return t.Name }
func (t Custom) String() string   { return t.Name }

// DeclName returns the declaration name of a named user type.
func DeclName(t Type) (string, bool) {
	switch v := t.(type) {
	case Record:
		return v.Name, true
	case Enum:
		return v.Name, true
	case Object:
		return v.Name, true
	case CallbackInterface:
		return v.Name, true
	case Error:
		return v.Name, true
	default:
		return "", false
	}
}

// IsUnsigned reports whether t is an unsigned integer type.
func IsUnsigned(t Type) bool {
	switch t.(type) {
	case UInt8, UInt16, UInt32, UInt64:
		return true
	default:
		return false
	}
}
