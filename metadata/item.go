package metadata

import (
	"github.com/wippyai/bindgen/errors"
)

// Kind is the declaration kind a record describes.
type Kind string

const (
	KindFunction    Kind = "fn"
	KindConstructor Kind = "constructor"
	KindMethod      Kind = "method"
	KindRecord      Kind = "record"
	KindEnum        Kind = "enum"
	KindError       Kind = "error"
	KindObject      Kind = "object"
)

// rank orders kinds so that every type is declared before the members that
// attach to it.
func (k Kind) rank() int {
	switch k {
	case KindRecord:
		return 0
	case KindEnum:
		return 1
	case KindError:
		return 2
	case KindObject:
		return 3
	case KindConstructor:
		return 4
	case KindMethod:
		return 5
	case KindFunction:
		return 6
	default:
		return 7
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k.rank() < 7 }

// Item is one declaration extracted from annotated source. Type fields hold
// type expressions such as "u32" or "Option<Vec<String>>".
type Item struct {
	Kind      Kind      `yaml:"kind"`
	Module    string    `yaml:"module,omitempty"`
	Name      string    `yaml:"name"`
	SelfName  string    `yaml:"self_name,omitempty"`
	Output    string    `yaml:"output,omitempty"`
	Throws    string    `yaml:"throws,omitempty"`
	Inputs    []Param   `yaml:"inputs,omitempty"`
	Fields    []Field   `yaml:"fields,omitempty"`
	Variants  []Variant `yaml:"variants,omitempty"`
	SelfByArc bool      `yaml:"self_by_arc,omitempty"`

	// Source is the file the item was read from, if any.
	Source string `yaml:"-"`
}

// Param is a function or method input.
type Param struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Default string `yaml:"default,omitempty"`
	ByRef   bool   `yaml:"by_ref,omitempty"`
}

// Field is a record or variant field.
type Field struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Default string `yaml:"default,omitempty"`
}

// Variant is an enum or error case.
type Variant struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields,omitempty"`
}

// Validate checks the structural requirements of the item's kind. Type
// expressions are parsed later, by the builder.
func (it Item) Validate() error {
	if !it.Kind.Valid() {
		return it.invalid("unknown kind %q", it.Kind)
	}
	if it.Name == "" {
		return it.invalid("%s record without a name", it.Kind)
	}
	switch it.Kind {
	case KindMethod, KindConstructor:
		if it.SelfName == "" {
			return it.invalid("%s %s requires self_name", it.Kind, it.Name)
		}
	case KindRecord, KindObject:
		if len(it.Variants) > 0 {
			return it.invalid("%s %s cannot have variants", it.Kind, it.Name)
		}
	case KindEnum, KindError:
		if len(it.Fields) > 0 {
			return it.invalid("%s %s has fields; use variants", it.Kind, it.Name)
		}
	}
	if it.Kind != KindMethod && it.SelfByArc {
		return it.invalid("self_by_arc only applies to methods")
	}
	for _, p := range it.Inputs {
		if p.Name == "" || p.Type == "" {
			return it.invalid("input of %s requires name and type", it.Name)
		}
	}
	for _, f := range it.Fields {
		if f.Name == "" || f.Type == "" {
			return it.invalid("field of %s requires name and type", it.Name)
		}
	}
	for _, v := range it.Variants {
		if v.Name == "" {
			return it.invalid("variant of %s requires a name", it.Name)
		}
	}
	return nil
}

func (it Item) invalid(format string, args ...any) error {
	b := errors.New(errors.PhaseLoad, errors.KindInvalidInput).Detail(format, args...)
	if it.Name != "" {
		b = b.Path(it.Name)
	}
	if it.Source != "" {
		b = b.Pos(it.Source)
	}
	return b.Build()
}
