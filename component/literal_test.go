package component

import (
	"testing"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/idl"
	"github.com/wippyai/bindgen/types"
)

func TestConvertLiteral(t *testing.T) {
	tests := []struct {
		name  string
		expr  idl.LiteralExpr
		typ   types.Type
		kind  LiteralKind
		radix Radix
		text  string
	}{
		{"bool", idl.LiteralExpr{Kind: idl.LitBool, Text: "true"}, types.Boolean{}, LiteralBoolean, 0, "true"},
		{"string", idl.LiteralExpr{Kind: idl.LitString, Text: "hi"}, types.String{}, LiteralString, 0, `"hi"`},
		{"enum", idl.LiteralExpr{Kind: idl.LitString, Text: "Red"}, types.Enum{Name: "Color"}, LiteralEnum, 0, "Color.Red"},
		{"signed", idl.LiteralExpr{Kind: idl.LitInteger, Text: "-12"}, types.Int8{}, LiteralInt, Decimal, "-12"},
		{"hex", idl.LiteralExpr{Kind: idl.LitInteger, Text: "0xff"}, types.UInt8{}, LiteralUInt, Hexadecimal, "0xff"},
		{"octal", idl.LiteralExpr{Kind: idl.LitInteger, Text: "017"}, types.UInt16{}, LiteralUInt, Octal, "017"},
		{"zero", idl.LiteralExpr{Kind: idl.LitInteger, Text: "0"}, types.UInt32{}, LiteralUInt, Decimal, "0"},
		{"int as float", idl.LiteralExpr{Kind: idl.LitInteger, Text: "2"}, types.Float64{}, LiteralFloat, 0, "2"},
		{"float", idl.LiteralExpr{Kind: idl.LitFloat, Text: "1.5"}, types.Float32{}, LiteralFloat, 0, "1.5"},
		{"null", idl.LiteralExpr{Kind: idl.LitNull}, types.Optional{Inner: types.String{}}, LiteralNull, 0, "null"},
		{"empty sequence", idl.LiteralExpr{Kind: idl.LitEmptySequence}, types.Sequence{Inner: types.Int8{}}, LiteralEmptySequence, 0, "[]"},
		{"empty map", idl.LiteralExpr{Kind: idl.LitEmptyMap}, types.Map{Key: types.String{}, Value: types.Int8{}}, LiteralEmptyMap, 0, "{}"},
		{"custom", idl.LiteralExpr{Kind: idl.LitString, Text: "x"}, types.Custom{Name: "Url", Builtin: types.String{}}, LiteralString, 0, `"x"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lit, err := convertLiteral(&tt.expr, tt.typ)
			if err != nil {
				t.Fatalf("convertLiteral failed: %v", err)
			}
			if lit.Kind != tt.kind {
				t.Errorf("kind = %d, want %d", lit.Kind, tt.kind)
			}
			if lit.Radix != tt.radix {
				t.Errorf("radix = %d, want %d", lit.Radix, tt.radix)
			}
			if lit.Type != tt.typ {
				t.Errorf("type = %v, want %v", lit.Type, tt.typ)
			}
			if got := lit.String(); got != tt.text {
				t.Errorf("String() = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestConvertLiteral_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr idl.LiteralExpr
		typ  types.Type
	}{
		{"bool for int", idl.LiteralExpr{Kind: idl.LitBool, Text: "true"}, types.Int32{}},
		{"negative unsigned", idl.LiteralExpr{Kind: idl.LitInteger, Text: "-1"}, types.UInt8{}},
		{"overflow", idl.LiteralExpr{Kind: idl.LitInteger, Text: "128"}, types.Int8{}},
		{"float for int", idl.LiteralExpr{Kind: idl.LitFloat, Text: "1.5"}, types.Int64{}},
		{"null for plain", idl.LiteralExpr{Kind: idl.LitNull}, types.String{}},
		{"sequence for map", idl.LiteralExpr{Kind: idl.LitEmptySequence}, types.Map{Key: types.String{}, Value: types.String{}}},
		{"int for record", idl.LiteralExpr{Kind: idl.LitInteger, Text: "1"}, types.Record{Name: "R"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := convertLiteral(&tt.expr, tt.typ)
			if !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("err = %v, want invalid input", err)
			}
		})
	}
}

func TestConvertLiteral_Nil(t *testing.T) {
	lit, err := convertLiteral(nil, types.String{})
	if lit != nil || err != nil {
		t.Errorf("convertLiteral(nil) = %v, %v", lit, err)
	}
}
