package idl

import "fmt"

// Pos is a source location.
type Pos struct {
	File string
	Line int
	Col  int
}

// String renders the position as file:line:col, or "" for the zero Pos.
func (p Pos) String() string {
	if p.Line == 0 {
		return p.File
	}
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Attribute is one entry of an extended attribute list, like [ByRef] or
// [Throws=MyError].
type Attribute struct {
	Value *string
	Key   string
}

// Flag creates a value-less attribute.
func Flag(key string) Attribute {
	return Attribute{Key: key}
}

// KeyValue creates a key=value attribute.
func KeyValue(key, value string) Attribute {
	return Attribute{Key: key, Value: &value}
}

// String renders the attribute in source form.
func (a Attribute) String() string {
	if a.Value == nil {
		return a.Key
	}
	return a.Key + "=" + *a.Value
}

// Attributes is an ordered attribute list. A nil list means the declaration
// carried no attribute block at all.
type Attributes []Attribute

// Document is a parsed interface description.
type Document struct {
	Definitions []Definition
	File        string
}

// Definition is a top-level declaration.
type Definition interface {
	Position() Pos
	DefName() string
	isDefinition()
}

// Namespace declares the component namespace and its free functions.
type Namespace struct {
	Name       string
	Attributes Attributes
	Operations []*Operation
	Pos        Pos
}

// Dictionary declares a record.
type Dictionary struct {
	Name       string
	Attributes Attributes
	Members    []*DictionaryMember
	Pos        Pos
}

// DictionaryMember is one field of a Dictionary.
type DictionaryMember struct {
	Type       TypeExpr
	Default    *LiteralExpr
	Name       string
	Attributes Attributes
	Pos        Pos
	Required   bool
}

// Enum declares a flat enum by its value names.
type Enum struct {
	Name       string
	Attributes Attributes
	Values     []string
	Pos        Pos
}

// Interface declares an object, or a tagged-union enum / error when carrying
// [Enum] or [Error].
type Interface struct {
	Name       string
	Attributes Attributes
	Members    []Member
	Pos        Pos
}

// CallbackInterface declares methods implemented by the foreign side.
type CallbackInterface struct {
	Name       string
	Attributes Attributes
	Operations []*Operation
	Pos        Pos
}

// Typedef declares an external or custom type.
type Typedef struct {
	Type       TypeExpr
	Name       string
	Attributes Attributes
	Pos        Pos
}

func (d *Namespace) Position() Pos         { return d.Pos }
func (d *Dictionary) Position() Pos        { return d.Pos }
func (d *Enum) Position() Pos              { return d.Pos }
func (d *Interface) Position() Pos         { return d.Pos }
func (d *CallbackInterface) Position() Pos { return d.Pos }
func (d *Typedef) Position() Pos           { return d.Pos }

func (d *Namespace) DefName() string         { return d.Name }
func (d *Dictionary) DefName() string        { return d.Name }
func (d *Enum) DefName() string              { return d.Name }
func (d *Interface) DefName() string         { return d.Name }
func (d *CallbackInterface) DefName() string { return d.Name }
func (d *Typedef) DefName() string           { return d.Name }

func (*Namespace) isDefinition()         {}
func (*Dictionary) isDefinition()        {}
func (*Enum) isDefinition()              {}
func (*Interface) isDefinition()         {}
func (*CallbackInterface) isDefinition() {}
func (*Typedef) isDefinition()           {}

// Member is a member of an Interface.
type Member interface {
	Position() Pos
	isMember()
}

// Constructor is an interface constructor.
type Constructor struct {
	Attributes Attributes
	Arguments  []*Argument
	Pos        Pos
}

// Operation is a function, method, or tagged-union variant. A nil
// ReturnType means void.
type Operation struct {
	ReturnType TypeExpr
	Name       string
	Attributes Attributes
	Arguments  []*Argument
	Pos        Pos
}

func (m *Constructor) Position() Pos { return m.Pos }
func (m *Operation) Position() Pos   { return m.Pos }

func (*Constructor) isMember() {}
func (*Operation) isMember()   {}

// Argument is an operation argument.
type Argument struct {
	Type       TypeExpr
	Default    *LiteralExpr
	Name       string
	Attributes Attributes
	Pos        Pos
	Optional   bool
}

// LiteralKind classifies a literal token.
type LiteralKind uint8

const (
	LitBool LiteralKind = iota
	LitInteger
	LitFloat
	LitString
	LitNull
	LitEmptySequence
	LitEmptyMap
)

// LiteralExpr is a literal as written in source. Text holds the raw token
// for numbers and booleans and the unquoted content for strings.
type LiteralExpr struct {
	Text string
	Kind LiteralKind
}
