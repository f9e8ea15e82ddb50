package idl

import (
	"strconv"
	"strings"

	"github.com/wippyai/bindgen/errors"
)

var literalKindNames = [...]string{
	LitBool:          "boolean",
	LitInteger:       "integer",
	LitFloat:         "float",
	LitString:        "string",
	LitNull:          "null",
	LitEmptySequence: "empty sequence",
	LitEmptyMap:      "empty map",
}

func (k LiteralKind) String() string {
	if int(k) < len(literalKindNames) {
		return literalKindNames[k]
	}
	return "literal(" + strconv.Itoa(int(k)) + ")"
}

// String renders the literal in source form.
func (l LiteralExpr) String() string {
	switch l.Kind {
	case LitString:
		return strconv.Quote(l.Text)
	case LitNull:
		return "null"
	case LitEmptySequence:
		return "[]"
	case LitEmptyMap:
		return "{}"
	default:
		return l.Text
	}
}

// ParseLiteral classifies a default value written as text, as metadata
// records carry it: true, false, null, [], {}, a double-quoted string, or a
// number. Numbers containing '.', 'e' or 'E' (outside a hex prefix) are
// floats; everything else numeric is an integer.
func ParseLiteral(src string) (*LiteralExpr, error) {
	s := strings.TrimSpace(src)
	switch s {
	case "":
		return nil, literalError(src, "empty literal")
	case "true", "false":
		return &LiteralExpr{Kind: LitBool, Text: s}, nil
	case "null":
		return &LiteralExpr{Kind: LitNull, Text: s}, nil
	case "[]":
		return &LiteralExpr{Kind: LitEmptySequence, Text: s}, nil
	case "{}":
		return &LiteralExpr{Kind: LitEmptyMap, Text: s}, nil
	}

	if s[0] == '"' {
		text, err := strconv.Unquote(s)
		if err != nil {
			return nil, literalError(src, "malformed string literal")
		}
		return &LiteralExpr{Kind: LitString, Text: text}, nil
	}

	digits := strings.TrimPrefix(s, "-")
	if digits == "" {
		return nil, literalError(src, "malformed number")
	}
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		if _, err := strconv.ParseUint(digits[2:], 16, 64); err != nil {
			return nil, literalError(src, "malformed hexadecimal integer")
		}
		return &LiteralExpr{Kind: LitInteger, Text: s}, nil
	}
	if strings.ContainsAny(digits, ".eE") {
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return nil, literalError(src, "malformed float")
		}
		return &LiteralExpr{Kind: LitFloat, Text: s}, nil
	}
	if _, err := strconv.ParseUint(digits, 10, 64); err != nil {
		return nil, literalError(src, "malformed integer")
	}
	return &LiteralExpr{Kind: LitInteger, Text: s}, nil
}

func literalError(src, detail string) error {
	return errors.New(errors.PhaseLoad, errors.KindInvalidInput).
		Type(src).
		Detail("%s", detail).
		Build()
}
