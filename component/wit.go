package component

import (
	"fmt"
	"strings"
	"unicode"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/types"
)

// WIT projection of an Interface.
//
// Records become records, flat enums become enums, enums with fields become
// variants, objects and callback interfaces become resources. Maps have no
// WIT counterpart and project to list<tuple<k, v>>; bytes project to
// list<u8>. A variant case with several fields carries a tuple payload.

type witDecl struct {
	def *wit.TypeDef
	obj *Object
	cb  *CallbackInterface
}

type witProjector struct {
	byName map[string]*witDecl
	decls  []*witDecl
}

// WITTypeDefs projects every named declaration into a WIT type definition,
// in declaration order: records, enums, errors, objects, callback
// interfaces, then custom and external types.
func (c *Interface) WITTypeDefs() ([]*wit.TypeDef, error) {
	p, err := c.projectWIT()
	if err != nil {
		return nil, err
	}
	defs := make([]*wit.TypeDef, len(p.decls))
	for i, d := range p.decls {
		defs[i] = d.def
	}
	return defs, nil
}

func (c *Interface) projectWIT() (*witProjector, error) {
	p := &witProjector{byName: make(map[string]*witDecl)}

	// Shells first so that declarations may reference each other in any
	// order, including recursively.
	for _, r := range c.records {
		p.declare(r.name)
	}
	for _, e := range c.enums {
		p.declare(e.name)
	}
	for _, e := range c.errs {
		p.declare(e.name)
	}
	for _, o := range c.objects {
		p.declare(o.name).obj = o
	}
	for _, cb := range c.callbackInterfaces {
		p.declare(cb.name).cb = cb
	}
	for name, builtin := range c.IterCustomTypes() {
		if _, ok := p.byName[name]; ok {
			continue
		}
		d := p.declare(name)
		kind, err := p.typeOf(builtin)
		if err != nil {
			return nil, errors.Prefix(err, name)
		}
		d.def.Kind = kind
	}
	for name := range c.IterExternalTypes() {
		if _, ok := p.byName[name]; ok {
			continue
		}
		p.declare(name).def.Kind = &wit.Resource{}
	}

	for _, r := range c.records {
		fields, err := p.fields(r.fields)
		if err != nil {
			return nil, errors.Prefix(err, r.name)
		}
		p.byName[r.name].def.Kind = &wit.Record{Fields: fields}
	}
	for _, e := range c.enums {
		if err := p.enum(e); err != nil {
			return nil, errors.Prefix(err, e.name)
		}
	}
	for _, e := range c.errs {
		if err := p.enum(&e.Enum); err != nil {
			return nil, errors.Prefix(err, e.name)
		}
	}
	for _, o := range c.objects {
		p.byName[o.name].def.Kind = &wit.Resource{}
	}
	for _, cb := range c.callbackInterfaces {
		p.byName[cb.name].def.Kind = &wit.Resource{}
	}
	return p, nil
}

func (p *witProjector) declare(name string) *witDecl {
	witName := witIdent(name)
	d := &witDecl{def: &wit.TypeDef{Name: &witName}}
	p.byName[name] = d
	p.decls = append(p.decls, d)
	return d
}

func (p *witProjector) fields(in []Field) ([]wit.Field, error) {
	out := make([]wit.Field, len(in))
	for i, f := range in {
		t, err := p.typeOf(f.Type)
		if err != nil {
			return nil, errors.Prefix(err, f.Name)
		}
		out[i] = wit.Field{Name: witIdent(f.Name), Type: t}
	}
	return out, nil
}

func (p *witProjector) enum(e *Enum) error {
	def := p.byName[e.name].def
	if e.flat {
		cases := make([]wit.EnumCase, len(e.variants))
		for i, v := range e.variants {
			cases[i] = wit.EnumCase{Name: witIdent(v.Name)}
		}
		def.Kind = &wit.Enum{Cases: cases}
		return nil
	}
	cases := make([]wit.Case, len(e.variants))
	for i, v := range e.variants {
		cases[i] = wit.Case{Name: witIdent(v.Name)}
		switch len(v.Fields) {
		case 0:
		case 1:
			t, err := p.typeOf(v.Fields[0].Type)
			if err != nil {
				return errors.Prefix(err, v.Name)
			}
			cases[i].Type = t
		default:
			fields, err := p.fields(v.Fields)
			if err != nil {
				return errors.Prefix(err, v.Name)
			}
			tuple := &wit.Tuple{Types: make([]wit.Type, len(fields))}
			for j, f := range fields {
				tuple.Types[j] = f.Type
			}
			cases[i].Type = &wit.TypeDef{Kind: tuple}
		}
	}
	def.Kind = &wit.Variant{Cases: cases}
	return nil
}

func (p *witProjector) named(name string) (*wit.TypeDef, error) {
	d, ok := p.byName[name]
	if !ok {
		return nil, errors.UnknownType(nil, name)
	}
	return d.def, nil
}

func (p *witProjector) typeOf(t types.Type) (wit.Type, error) {
	switch v := t.(type) {
	case types.Boolean:
		return wit.Bool{}, nil
	case types.Int8:
		return wit.S8{}, nil
	case types.Int16:
		return wit.S16{}, nil
	case types.Int32:
		return wit.S32{}, nil
	case types.Int64:
		return wit.S64{}, nil
	case types.UInt8:
		return wit.U8{}, nil
	case types.UInt16:
		return wit.U16{}, nil
	case types.UInt32:
		return wit.U32{}, nil
	case types.UInt64:
		return wit.U64{}, nil
	case types.Float32:
		return wit.F32{}, nil
	case types.Float64:
		return wit.F64{}, nil
	case types.String:
		return wit.String{}, nil
	case types.Bytes:
		return &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}, nil
	case types.Optional:
		inner, err := p.typeOf(v.Inner)
		if err != nil {
			return nil, err
		}
		return &wit.TypeDef{Kind: &wit.Option{Type: inner}}, nil
	case types.Sequence:
		inner, err := p.typeOf(v.Inner)
		if err != nil {
			return nil, err
		}
		return &wit.TypeDef{Kind: &wit.List{Type: inner}}, nil
	case types.Map:
		key, err := p.typeOf(v.Key)
		if err != nil {
			return nil, err
		}
		value, err := p.typeOf(v.Value)
		if err != nil {
			return nil, err
		}
		entry := &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{key, value}}}
		return &wit.TypeDef{Kind: &wit.List{Type: entry}}, nil
	case types.Object:
		def, err := p.named(v.Name)
		if err != nil {
			return nil, err
		}
		return &wit.TypeDef{Kind: &wit.Own{Type: def}}, nil
	case types.CallbackInterface:
		def, err := p.named(v.Name)
		if err != nil {
			return nil, err
		}
		return &wit.TypeDef{Kind: &wit.Own{Type: def}}, nil
	case types.Record, types.Enum, types.Error, types.External, types.Custom:
		name, _ := declOrAliasName(v)
		return p.named(name)
	default:
		return nil, errors.New(errors.PhaseProject, errors.KindInternalMapping).
			Type(fmt.Sprintf("%T", t)).
			Detail("no WIT mapping").
			Build()
	}
}

// argType projects an argument; objects passed by reference are borrowed.
func (p *witProjector) argType(a Argument) (wit.Type, error) {
	if obj, ok := a.Type.(types.Object); ok && a.ByRef {
		def, err := p.named(obj.Name)
		if err != nil {
			return nil, err
		}
		return &wit.TypeDef{Kind: &wit.Borrow{Type: def}}, nil
	}
	return p.typeOf(a.Type)
}

func declOrAliasName(t types.Type) (string, bool) {
	switch v := t.(type) {
	case types.External:
		return v.Name, true
	case types.Custom:
		return v.Name, true
	default:
		return types.DeclName(t)
	}
}

// WIT renders the interface as a WIT package with one interface named after
// the namespace.
func (c *Interface) WIT() (string, error) {
	p, err := c.projectWIT()
	if err != nil {
		return "", err
	}
	ns := witIdent(c.namespace)

	var b strings.Builder
	fmt.Fprintf(&b, "package local:%s;\n\ninterface %s {\n", ns, ns)
	for i, d := range p.decls {
		if i > 0 {
			b.WriteByte('\n')
		}
		if err := p.writeDecl(&b, d); err != nil {
			return "", errors.Prefix(err, *d.def.Name)
		}
	}
	if len(c.functions) > 0 && len(p.decls) > 0 {
		b.WriteByte('\n')
	}
	for _, f := range c.functions {
		sig, err := p.signature("func", f.arguments, f.returnType, f.Throws())
		if err != nil {
			return "", errors.Prefix(err, f.name)
		}
		fmt.Fprintf(&b, "    %s: %s;\n", witIdent(f.name), sig)
	}
	b.WriteString("}\n")
	return b.String(), nil
}

func (p *witProjector) writeDecl(b *strings.Builder, d *witDecl) error {
	name := *d.def.Name
	switch kind := d.def.Kind.(type) {
	case *wit.Record:
		fmt.Fprintf(b, "    record %s {\n", name)
		for _, f := range kind.Fields {
			fmt.Fprintf(b, "        %s: %s,\n", f.Name, renderWITType(f.Type))
		}
		b.WriteString("    }\n")
	case *wit.Enum:
		fmt.Fprintf(b, "    enum %s {\n", name)
		for _, c := range kind.Cases {
			fmt.Fprintf(b, "        %s,\n", c.Name)
		}
		b.WriteString("    }\n")
	case *wit.Variant:
		fmt.Fprintf(b, "    variant %s {\n", name)
		for _, c := range kind.Cases {
			if c.Type == nil {
				fmt.Fprintf(b, "        %s,\n", c.Name)
				continue
			}
			fmt.Fprintf(b, "        %s(%s),\n", c.Name, renderWITType(c.Type))
		}
		b.WriteString("    }\n")
	case *wit.Resource:
		return p.writeResource(b, d)
	case wit.Type:
		fmt.Fprintf(b, "    type %s = %s;\n", name, renderWITType(kind))
	default:
		return errors.New(errors.PhaseProject, errors.KindInternalMapping).
			Type(fmt.Sprintf("%T", kind)).
			Detail("no WIT rendering").
			Build()
	}
	return nil
}

func (p *witProjector) writeResource(b *strings.Builder, d *witDecl) error {
	name := *d.def.Name
	var lines []string
	switch {
	case d.obj != nil:
		for _, ctor := range d.obj.constructors {
			self := types.Object{Name: d.obj.name}
			if ctor.IsPrimaryConstructor() && ctor.Throws() == "" {
				params, err := p.params(ctor.arguments)
				if err != nil {
					return errors.Prefix(err, ctor.name)
				}
				lines = append(lines, fmt.Sprintf("constructor(%s);", params))
				continue
			}
			sig, err := p.signature("static func", ctor.arguments, self, ctor.Throws())
			if err != nil {
				return errors.Prefix(err, ctor.name)
			}
			lines = append(lines, fmt.Sprintf("%s: %s;", witIdent(ctor.name), sig))
		}
		for _, m := range d.obj.methods {
			sig, err := p.signature("func", m.arguments, m.returnType, m.Throws())
			if err != nil {
				return errors.Prefix(err, m.name)
			}
			lines = append(lines, fmt.Sprintf("%s: %s;", witIdent(m.name), sig))
		}
	case d.cb != nil:
		for _, m := range d.cb.methods {
			sig, err := p.signature("func", m.arguments, m.returnType, m.Throws())
			if err != nil {
				return errors.Prefix(err, m.name)
			}
			lines = append(lines, fmt.Sprintf("%s: %s;", witIdent(m.name), sig))
		}
	}
	if len(lines) == 0 {
		fmt.Fprintf(b, "    resource %s;\n", name)
		return nil
	}
	fmt.Fprintf(b, "    resource %s {\n", name)
	for _, l := range lines {
		fmt.Fprintf(b, "        %s\n", l)
	}
	b.WriteString("    }\n")
	return nil
}

func (p *witProjector) params(args []Argument) (string, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		t, err := p.argType(a)
		if err != nil {
			return "", errors.Prefix(err, a.Name)
		}
		parts[i] = witIdent(a.Name) + ": " + renderWITType(t)
	}
	return strings.Join(parts, ", "), nil
}

func (p *witProjector) signature(keyword string, args []Argument, ret types.Type, throws string) (string, error) {
	params, err := p.params(args)
	if err != nil {
		return "", err
	}
	sig := keyword + "(" + params + ")"

	var ok wit.Type
	if ret != nil {
		if ok, err = p.typeOf(ret); err != nil {
			return "", err
		}
	}
	if throws != "" {
		errDef, err := p.named(throws)
		if err != nil {
			return "", err
		}
		return sig + " -> " + renderWITType(&wit.TypeDef{Kind: &wit.Result{OK: ok, Err: errDef}}), nil
	}
	if ok != nil {
		sig += " -> " + renderWITType(ok)
	}
	return sig, nil
}

func renderWITType(t wit.Type) string {
	switch v := t.(type) {
	case nil:
		return "_"
	case wit.Bool:
		return "bool"
	case wit.S8:
		return "s8"
	case wit.S16:
		return "s16"
	case wit.S32:
		return "s32"
	case wit.S64:
		return "s64"
	case wit.U8:
		return "u8"
	case wit.U16:
		return "u16"
	case wit.U32:
		return "u32"
	case wit.U64:
		return "u64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if v.Name != nil {
			return *v.Name
		}
		switch k := v.Kind.(type) {
		case *wit.List:
			return "list<" + renderWITType(k.Type) + ">"
		case *wit.Option:
			return "option<" + renderWITType(k.Type) + ">"
		case *wit.Tuple:
			parts := make([]string, len(k.Types))
			for i, e := range k.Types {
				parts[i] = renderWITType(e)
			}
			return "tuple<" + strings.Join(parts, ", ") + ">"
		case *wit.Result:
			return "result<" + renderWITType(k.OK) + ", " + renderWITType(k.Err) + ">"
		case *wit.Own:
			return renderWITType(k.Type)
		case *wit.Borrow:
			return "borrow<" + renderWITType(k.Type) + ">"
		}
	}
	return "_"
}

var witKeywords = map[string]bool{
	"bool": true, "borrow": true, "char": true, "constructor": true,
	"enum": true, "export": true, "f32": true, "f64": true, "flags": true,
	"func": true, "import": true, "include": true, "interface": true,
	"list": true, "option": true, "own": true, "package": true,
	"record": true, "resource": true, "result": true, "s8": true, "s16": true,
	"s32": true, "s64": true, "static": true, "string": true, "tuple": true,
	"type": true, "u8": true, "u16": true, "u32": true, "u64": true,
	"use": true, "variant": true, "world": true,
}

// witIdent converts an identifier to kebab case, escaping WIT keywords.
func witIdent(name string) string {
	runes := []rune(name)
	var b strings.Builder
	dash := func() {
		s := b.String()
		if s != "" && !strings.HasSuffix(s, "-") {
			b.WriteByte('-')
		}
	}
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			dash()
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					dash()
				}
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), "-")
	if witKeywords[out] {
		return "%" + out
	}
	return out
}
