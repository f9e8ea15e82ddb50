package component

import (
	"strconv"
	"strings"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/idl"
	"github.com/wippyai/bindgen/types"
)

// LiteralKind identifies the shape of a default value.
type LiteralKind uint8

const (
	LiteralBoolean LiteralKind = iota + 1
	LiteralString
	LiteralUInt
	LiteralInt
	LiteralFloat
	LiteralEnum
	LiteralEmptySequence
	LiteralEmptyMap
	LiteralNull
)

// Radix is the base an integer literal was written in.
type Radix uint8

const (
	Decimal     Radix = 10
	Octal       Radix = 8
	Hexadecimal Radix = 16
)

// Literal is a typed default value for a field or argument.
//
// Text holds the value of String literals, the source spelling of Float
// literals and the variant name of Enum literals. Integers keep the radix
// they were written in so emitters can reproduce it.
type Literal struct {
	Type  types.Type
	Text  string
	Int   int64
	UInt  uint64
	Kind  LiteralKind
	Radix Radix
	Bool  bool
}

func (l *Literal) clone() *Literal {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

// String renders the literal in IDL syntax.
func (l Literal) String() string {
	switch l.Kind {
	case LiteralBoolean:
		return strconv.FormatBool(l.Bool)
	case LiteralString:
		return strconv.Quote(l.Text)
	case LiteralUInt:
		return radixPrefix(l.Radix, false) + strconv.FormatUint(l.UInt, int(l.Radix))
	case LiteralInt:
		if l.Int < 0 {
			return radixPrefix(l.Radix, true) + strconv.FormatUint(uint64(-l.Int), int(l.Radix))
		}
		return radixPrefix(l.Radix, false) + strconv.FormatInt(l.Int, int(l.Radix))
	case LiteralFloat:
		return l.Text
	case LiteralEnum:
		return l.Type.String() + "." + l.Text
	case LiteralEmptySequence:
		return "[]"
	case LiteralEmptyMap:
		return "{}"
	case LiteralNull:
		return "null"
	default:
		return "<invalid literal>"
	}
}

func radixPrefix(r Radix, negative bool) string {
	sign := ""
	if negative {
		sign = "-"
	}
	switch r {
	case Hexadecimal:
		return sign + "0x"
	case Octal:
		return sign + "0"
	default:
		return sign
	}
}

// convertLiteral types a source literal against the declared type of the
// member it defaults.
func convertLiteral(expr *idl.LiteralExpr, t types.Type) (*Literal, error) {
	if expr == nil {
		return nil, nil
	}

	target := t
	if c, ok := t.(types.Custom); ok {
		target = c.Builtin
	}

	switch expr.Kind {
	case idl.LitBool:
		if _, ok := target.(types.Boolean); ok {
			return &Literal{Kind: LiteralBoolean, Bool: expr.Text == "true", Type: t}, nil
		}
	case idl.LitString:
		switch target.(type) {
		case types.String:
			return &Literal{Kind: LiteralString, Text: expr.Text, Type: t}, nil
		case types.Enum:
			return &Literal{Kind: LiteralEnum, Text: expr.Text, Type: t}, nil
		}
	case idl.LitInteger:
		return convertInteger(expr, t, target)
	case idl.LitFloat:
		switch target.(type) {
		case types.Float32, types.Float64:
			return &Literal{Kind: LiteralFloat, Text: expr.Text, Type: t}, nil
		}
	case idl.LitNull:
		if _, ok := target.(types.Optional); ok {
			return &Literal{Kind: LiteralNull, Type: t}, nil
		}
	case idl.LitEmptySequence:
		if _, ok := target.(types.Sequence); ok {
			return &Literal{Kind: LiteralEmptySequence, Type: t}, nil
		}
	case idl.LitEmptyMap:
		if _, ok := target.(types.Map); ok {
			return &Literal{Kind: LiteralEmptyMap, Type: t}, nil
		}
	}
	return nil, literalMismatch(expr, t, "")
}

func convertInteger(expr *idl.LiteralExpr, t, target types.Type) (*Literal, error) {
	negative, digits, radix := splitInteger(expr.Text)

	var bits int
	signed := true
	switch target.(type) {
	case types.Int8:
		bits = 8
	case types.Int16:
		bits = 16
	case types.Int32:
		bits = 32
	case types.Int64:
		bits = 64
	case types.UInt8:
		bits, signed = 8, false
	case types.UInt16:
		bits, signed = 16, false
	case types.UInt32:
		bits, signed = 32, false
	case types.UInt64:
		bits, signed = 64, false
	case types.Float32, types.Float64:
		return &Literal{Kind: LiteralFloat, Text: expr.Text, Type: t}, nil
	default:
		return nil, literalMismatch(expr, t, "")
	}

	if !signed {
		if negative {
			return nil, literalMismatch(expr, t, "negative value for unsigned type")
		}
		v, err := strconv.ParseUint(digits, int(radix), bits)
		if err != nil {
			return nil, literalMismatch(expr, t, "out of range")
		}
		return &Literal{Kind: LiteralUInt, UInt: v, Radix: radix, Type: t}, nil
	}

	text := digits
	if negative {
		text = "-" + digits
	}
	v, err := strconv.ParseInt(text, int(radix), bits)
	if err != nil {
		return nil, literalMismatch(expr, t, "out of range")
	}
	return &Literal{Kind: LiteralInt, Int: v, Radix: radix, Type: t}, nil
}

// splitInteger separates sign, digits and radix: 0x.. is hexadecimal, a
// leading zero followed by more digits is octal.
func splitInteger(text string) (negative bool, digits string, radix Radix) {
	digits = text
	if strings.HasPrefix(digits, "-") {
		negative = true
		digits = digits[1:]
	}
	switch {
	case strings.HasPrefix(digits, "0x"), strings.HasPrefix(digits, "0X"):
		return negative, digits[2:], Hexadecimal
	case len(digits) > 1 && digits[0] == '0':
		return negative, digits[1:], Octal
	default:
		return negative, digits, Decimal
	}
}

func literalMismatch(expr *idl.LiteralExpr, t types.Type, reason string) error {
	b := errors.New(errors.PhaseResolve, errors.KindInvalidInput).Type(t.String())
	if reason != "" {
		return b.Detail("default %s: %s", expr, reason).Build()
	}
	return b.Detail("%s literal %s is not a valid default", expr.Kind, expr).Build()
}
