package idl

import (
	"strings"
	"unicode"

	"github.com/wippyai/bindgen/errors"
)

// TypeExpr is a syntactic type expression. Names are not resolved here.
type TypeExpr interface {
	String() string
	isTypeExpr()
}

// NamedType references a builtin or declared type by name.
type NamedType struct {
	Name string
}

// OptionalType is T?.
type OptionalType struct {
	Inner TypeExpr
}

// SequenceType is sequence<T>.
type SequenceType struct {
	Elem TypeExpr
}

// MapType is record<K, V>.
type MapType struct {
	Key   TypeExpr
	Value TypeExpr
}

func (NamedType) isTypeExpr()    {}
func (OptionalType) isTypeExpr() {}
func (SequenceType) isTypeExpr() {}
func (MapType) isTypeExpr()      {}

func (t NamedType) String() string    { return t.Name }
func (t OptionalType) String() string { return t.Inner.String() + "?" }
func (t SequenceType) String() string { return "sequence<" + t.Elem.String() + ">" }
func (t MapType) String() string {
	return "record<" + t.Key.String() + ", " + t.Value.String() + ">"
}

// Named is shorthand for NamedType{Name: name}.
func Named(name string) TypeExpr { return NamedType{Name: name} }

// Optional is shorthand for OptionalType{Inner: inner}.
func Optional(inner TypeExpr) TypeExpr { return OptionalType{Inner: inner} }

// Sequence is shorthand for SequenceType{Elem: elem}.
func Sequence(elem TypeExpr) TypeExpr { return SequenceType{Elem: elem} }

// Map is shorthand for MapType{Key: key, Value: value}.
func Map(key, value TypeExpr) TypeExpr { return MapType{Key: key, Value: value} }

// Generic heads accepted by ParseTypeExpr. Metadata extracted from annotated
// source spells containers the way the source language does.
var (
	sequenceHeads = map[string]bool{"sequence": true, "Vec": true}
	mapHeads      = map[string]bool{"record": true, "HashMap": true, "BTreeMap": true}
	optionHeads   = map[string]bool{"Option": true}
)

// ParseTypeExpr parses a single type expression such as "u32",
// "sequence<Point>?", "record<string, u64>" or "Option<Vec<String>>".
func ParseTypeExpr(src string) (TypeExpr, error) {
	p := &typeParser{src: src}
	p.next()
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.tok != "" {
		return nil, p.errorf("unexpected %q after type", p.tok)
	}
	return t, nil
}

type typeParser struct {
	src string
	tok string
	off int
}

func (p *typeParser) errorf(format string, args ...any) error {
	return errors.New(errors.PhaseLoad, errors.KindInvalidInput).
		Type(p.src).
		Detail(format, args...).
		Build()
}

// next advances to the following token: an identifier or one of <>,?
func (p *typeParser) next() {
	for p.off < len(p.src) && unicode.IsSpace(rune(p.src[p.off])) {
		p.off++
	}
	if p.off >= len(p.src) {
		p.tok = ""
		return
	}
	start := p.off
	switch c := p.src[p.off]; {
	case strings.IndexByte("<>,?", c) >= 0:
		p.off++
	default:
		for p.off < len(p.src) {
			r := rune(p.src[p.off])
			if r != '_' && r != ':' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			p.off++
		}
		if p.off == start {
			p.tok = p.src[start : start+1]
			p.off++
			return
		}
	}
	p.tok = p.src[start:p.off]
}

func (p *typeParser) expect(tok string) error {
	if p.tok != tok {
		if p.tok == "" {
			return p.errorf("expected %q, got end of input", tok)
		}
		return p.errorf("expected %q, got %q", tok, p.tok)
	}
	p.next()
	return nil
}

func (p *typeParser) parseType() (TypeExpr, error) {
	t, err := p.parseBase()
	if err != nil {
		return nil, err
	}
	for p.tok == "?" {
		p.next()
		t = OptionalType{Inner: t}
	}
	return t, nil
}

func (p *typeParser) parseBase() (TypeExpr, error) {
	name := p.tok
	if name == "" {
		return nil, p.errorf("expected type, got end of input")
	}
	if strings.IndexByte("<>,?", name[0]) >= 0 {
		return nil, p.errorf("expected type name, got %q", name)
	}
	p.next()
	if p.tok != "<" {
		return NamedType{Name: name}, nil
	}
	p.next()

	var args []TypeExpr
	for {
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.tok != "," {
			break
		}
		p.next()
	}
	if err := p.expect(">"); err != nil {
		return nil, err
	}

	switch {
	case sequenceHeads[name]:
		if len(args) != 1 {
			return nil, p.errorf("%s takes 1 type argument, got %d", name, len(args))
		}
		if name == "Vec" {
			if n, ok := args[0].(NamedType); ok && n.Name == "u8" {
				return NamedType{Name: "bytes"}, nil
			}
		}
		return SequenceType{Elem: args[0]}, nil
	case mapHeads[name]:
		if len(args) != 2 {
			return nil, p.errorf("%s takes 2 type arguments, got %d", name, len(args))
		}
		return MapType{Key: args[0], Value: args[1]}, nil
	case optionHeads[name]:
		if len(args) != 1 {
			return nil, p.errorf("%s takes 1 type argument, got %d", name, len(args))
		}
		return OptionalType{Inner: args[0]}, nil
	default:
		return nil, p.errorf("unknown generic type %q", name)
	}
}
