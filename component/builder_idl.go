package component

import (
	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/idl"
	"github.com/wippyai/bindgen/types"
)

// definitionError attaches the declaration name and source position.
func definitionError(err error, name string, pos idl.Pos) error {
	if name != "" {
		var e *errors.Error
		if errors.As(err, &e) && e.Name() != name {
			err = errors.Prefix(err, name)
		}
	}
	return errors.WithPos(err, pos.String())
}

// errorName is the name errors of def are reported under. Namespace
// functions are reported by their own name.
func errorName(def idl.Definition) string {
	if _, ok := def.(*idl.Namespace); ok {
		return ""
	}
	return def.DefName()
}

// discoverDocument registers every name the document introduces. Member
// types are not looked at.
func (bl *build) discoverDocument(doc *idl.Document) error {
	for _, def := range doc.Definitions {
		if err := bl.discoverDefinition(def); err != nil {
			return definitionError(err, errorName(def), def.Position())
		}
	}
	return nil
}

func (bl *build) discoverDefinition(def idl.Definition) error {
	switch d := def.(type) {
	case *idl.Namespace:
		bl.namespaces++
		if bl.namespaces > 1 {
			return errors.New(errors.PhaseDiscover, errors.KindDuplicateDefinition).
				Path("namespace").
				Detail("duplicate namespace definition %q", d.Name).
				Build()
		}
		return bl.setNamespace(d.Name)

	case *idl.Dictionary:
		return bl.define(d.Name, types.Record{Name: d.Name})

	case *idl.Enum:
		attrs, err := parseEnumAttributes(d.Attributes)
		if err != nil {
			return err
		}
		if attrs.IsError() {
			return bl.define(d.Name, types.Error{Name: d.Name})
		}
		return bl.define(d.Name, types.Enum{Name: d.Name})

	case *idl.Interface:
		attrs, err := parseInterfaceAttributes(d.Attributes)
		if err != nil {
			return err
		}
		switch {
		case attrs.IsEnum():
			return bl.define(d.Name, types.Enum{Name: d.Name})
		case attrs.IsError():
			return bl.define(d.Name, types.Error{Name: d.Name})
		default:
			return bl.define(d.Name, types.Object{Name: d.Name})
		}

	case *idl.CallbackInterface:
		return bl.define(d.Name, types.CallbackInterface{Name: d.Name})

	case *idl.Typedef:
		attrs, err := parseTypedefAttributes(d.Attributes)
		if err != nil {
			return err
		}
		if attrs.IsCustom() {
			if d.Type == nil {
				return errors.InvalidInput(errors.PhaseDiscover, "custom type requires an underlying type")
			}
			// The underlying representation must already be known, which
			// holds for builtins.
			builtin, err := bl.resolve(d.Type)
			if err != nil {
				return err
			}
			return bl.define(d.Name, types.Custom{Name: d.Name, Builtin: builtin})
		}
		return bl.define(d.Name, types.External{Name: d.Name, Source: attrs.External()})

	default:
		return errors.New(errors.PhaseDiscover, errors.KindInvalidInput).
			Detail("unsupported definition %T", def).
			Build()
	}
}

// detailDocument builds every declaration of the document with fully
// resolved member types.
func (bl *build) detailDocument(doc *idl.Document) error {
	for _, def := range doc.Definitions {
		if err := bl.detailDefinition(def); err != nil {
			return definitionError(err, errorName(def), def.Position())
		}
	}
	return nil
}

func (bl *build) detailDefinition(def idl.Definition) error {
	switch d := def.(type) {
	case *idl.Namespace:
		if err := rejectAttributes(d.Attributes, "namespace"); err != nil {
			return err
		}
		for _, op := range d.Operations {
			f, err := bl.function(op)
			if err != nil {
				return errors.WithPos(errors.Prefix(err, op.Name), op.Pos.String())
			}
			if err := bl.addFunction(f); err != nil {
				return errors.WithPos(err, op.Pos.String())
			}
		}
		return nil

	case *idl.Dictionary:
		r, err := bl.record(d)
		if err != nil {
			return err
		}
		return bl.addRecord(r)

	case *idl.Enum:
		attrs, err := parseEnumAttributes(d.Attributes)
		if err != nil {
			return err
		}
		variants := make([]Variant, len(d.Values))
		for i, v := range d.Values {
			variants[i] = Variant{Name: v}
		}
		if err := checkUniqueVariants(variants); err != nil {
			return err
		}
		e := newEnum(d.Name, variants)
		if attrs.IsError() {
			return bl.addError(&Error{Enum: e})
		}
		return bl.addEnum(&e)

	case *idl.Interface:
		attrs, err := parseInterfaceAttributes(d.Attributes)
		if err != nil {
			return err
		}
		if attrs.IsEnum() || attrs.IsError() {
			variants, err := bl.interfaceVariants(d)
			if err != nil {
				return err
			}
			e := newEnum(d.Name, variants)
			if attrs.IsError() {
				return bl.addError(&Error{Enum: e})
			}
			return bl.addEnum(&e)
		}
		o, err := bl.object(d, attrs)
		if err != nil {
			return err
		}
		return bl.addObject(o)

	case *idl.CallbackInterface:
		c, err := bl.callbackInterface(d)
		if err != nil {
			return err
		}
		return bl.addCallbackInterface(c)

	case *idl.Typedef:
		// fully handled during discovery
		return nil

	default:
		return errors.New(errors.PhaseResolve, errors.KindInvalidInput).
			Detail("unsupported definition %T", def).
			Build()
	}
}

func rejectAttributes(raw idl.Attributes, declKind string) error {
	_, err := parseAttributes(raw, declKind)
	return err
}

func (bl *build) record(d *idl.Dictionary) (*Record, error) {
	if err := parseDictionaryAttributes(d.Attributes); err != nil {
		return nil, err
	}
	fields := make([]Field, 0, len(d.Members))
	for _, m := range d.Members {
		f, err := bl.dictionaryField(m)
		if err != nil {
			return nil, errors.WithPos(errors.Prefix(err, m.Name), m.Pos.String())
		}
		fields = append(fields, f)
	}
	if err := checkUniqueFields(fields); err != nil {
		return nil, err
	}
	return &Record{name: d.Name, fields: fields}, nil
}

func (bl *build) dictionaryField(m *idl.DictionaryMember) (Field, error) {
	if err := rejectAttributes(m.Attributes, "dictionary member"); err != nil {
		return Field{}, err
	}
	t, err := bl.resolve(m.Type)
	if err != nil {
		return Field{}, err
	}
	def, err := convertLiteral(m.Default, t)
	if err != nil {
		return Field{}, err
	}
	return Field{Name: m.Name, Type: t, Required: m.Required, Default: def}, nil
}

// interfaceVariants turns the operations of an [Enum] or [Error] interface
// into variants whose arguments become fields.
func (bl *build) interfaceVariants(d *idl.Interface) ([]Variant, error) {
	variants := make([]Variant, 0, len(d.Members))
	for _, member := range d.Members {
		op, ok := member.(*idl.Operation)
		if !ok {
			return nil, errors.WithPos(
				errors.InvalidInput(errors.PhaseResolve, "constructors are not allowed in enum interfaces"),
				member.Position().String())
		}
		v, err := bl.variant(op)
		if err != nil {
			return nil, errors.WithPos(errors.Prefix(err, op.Name), op.Pos.String())
		}
		variants = append(variants, v)
	}
	if err := checkUniqueVariants(variants); err != nil {
		return nil, err
	}
	return variants, nil
}

func (bl *build) variant(op *idl.Operation) (Variant, error) {
	if op.Name == "" {
		return Variant{}, errors.InvalidInput(errors.PhaseResolve, "variant without a name")
	}
	if op.ReturnType != nil {
		return Variant{}, errors.InvalidInput(errors.PhaseResolve, "enum variants cannot have a return type")
	}
	if err := rejectAttributes(op.Attributes, "enum variant"); err != nil {
		return Variant{}, err
	}
	fields := make([]Field, 0, len(op.Arguments))
	for _, a := range op.Arguments {
		if err := rejectAttributes(a.Attributes, "variant field"); err != nil {
			return Variant{}, errors.Prefix(err, a.Name)
		}
		t, err := bl.resolve(a.Type)
		if err != nil {
			return Variant{}, errors.Prefix(err, a.Name)
		}
		def, err := convertLiteral(a.Default, t)
		if err != nil {
			return Variant{}, errors.Prefix(err, a.Name)
		}
		fields = append(fields, Field{Name: a.Name, Type: t, Default: def, Required: !a.Optional})
	}
	return Variant{Name: op.Name, Fields: fields}, nil
}

func (bl *build) arguments(args []*idl.Argument) ([]Argument, error) {
	out := make([]Argument, 0, len(args))
	for _, a := range args {
		attrs, err := parseArgumentAttributes(a.Attributes)
		if err != nil {
			return nil, errors.WithPos(errors.Prefix(err, a.Name), a.Pos.String())
		}
		t, err := bl.resolve(a.Type)
		if err != nil {
			return nil, errors.WithPos(errors.Prefix(err, a.Name), a.Pos.String())
		}
		def, err := convertLiteral(a.Default, t)
		if err != nil {
			return nil, errors.WithPos(errors.Prefix(err, a.Name), a.Pos.String())
		}
		out = append(out, Argument{
			Name:     a.Name,
			Type:     t,
			ByRef:    attrs.ByRef(),
			Optional: a.Optional,
			Default:  def,
		})
	}
	if err := checkUniqueArguments(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (bl *build) function(op *idl.Operation) (*Function, error) {
	if op.Name == "" {
		return nil, errors.InvalidInput(errors.PhaseResolve, "function without a name")
	}
	attrs, err := parseFunctionAttributes(op.Attributes)
	if err != nil {
		return nil, err
	}
	args, err := bl.arguments(op.Arguments)
	if err != nil {
		return nil, err
	}
	ret, err := bl.resolveOptional(op.ReturnType)
	if err != nil {
		return nil, err
	}
	return &Function{name: op.Name, arguments: args, returnType: ret, attributes: attrs}, nil
}

func (bl *build) method(op *idl.Operation, owner string) (*Method, error) {
	if op.Name == "" {
		return nil, errors.InvalidInput(errors.PhaseResolve, "method without a name")
	}
	attrs, err := parseMethodAttributes(op.Attributes)
	if err != nil {
		return nil, err
	}
	args, err := bl.arguments(op.Arguments)
	if err != nil {
		return nil, err
	}
	ret, err := bl.resolveOptional(op.ReturnType)
	if err != nil {
		return nil, err
	}
	return &Method{
		name:       op.Name,
		objectName: owner,
		arguments:  args,
		returnType: ret,
		attributes: attrs,
	}, nil
}

func (bl *build) constructor(c *idl.Constructor) (*Constructor, error) {
	attrs, err := parseConstructorAttributes(c.Attributes)
	if err != nil {
		return nil, err
	}
	args, err := bl.arguments(c.Arguments)
	if err != nil {
		return nil, err
	}
	name := attrs.Name()
	if name == "" {
		name = primaryConstructorName
	}
	return &Constructor{name: name, arguments: args, attributes: attrs}, nil
}

func (bl *build) object(d *idl.Interface, attrs InterfaceAttributes) (*Object, error) {
	o := &Object{name: d.Name, threadsafe: attrs.Threadsafe()}
	for _, member := range d.Members {
		switch m := member.(type) {
		case *idl.Constructor:
			c, err := bl.constructor(m)
			if err != nil {
				return nil, errors.WithPos(errors.Prefix(err, "constructor"), m.Pos.String())
			}
			if err := bl.addConstructor(o, c); err != nil {
				return nil, errors.WithPos(err, m.Pos.String())
			}
		case *idl.Operation:
			meth, err := bl.method(m, d.Name)
			if err != nil {
				return nil, errors.WithPos(errors.Prefix(err, m.Name), m.Pos.String())
			}
			if o.methods, err = addMethod(o.methods, meth); err != nil {
				return nil, errors.WithPos(err, m.Pos.String())
			}
		}
	}
	return o, nil
}

func (bl *build) callbackInterface(d *idl.CallbackInterface) (*CallbackInterface, error) {
	if err := rejectAttributes(d.Attributes, "callback interface"); err != nil {
		return nil, err
	}
	c := &CallbackInterface{name: d.Name}
	for _, op := range d.Operations {
		m, err := bl.method(op, d.Name)
		if err != nil {
			return nil, errors.WithPos(errors.Prefix(err, op.Name), op.Pos.String())
		}
		if c.methods, err = addMethod(c.methods, m); err != nil {
			return nil, errors.WithPos(err, op.Pos.String())
		}
	}
	return c, nil
}
