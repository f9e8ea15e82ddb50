package component

import (
	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/idl"
	"github.com/wippyai/bindgen/metadata"
	"github.com/wippyai/bindgen/types"
)

func (bl *build) discoverItem(it metadata.Item) error {
	switch it.Kind {
	case metadata.KindRecord:
		return bl.define(it.Name, types.Record{Name: it.Name})
	case metadata.KindEnum:
		return bl.define(it.Name, types.Enum{Name: it.Name})
	case metadata.KindError:
		return bl.define(it.Name, types.Error{Name: it.Name})
	case metadata.KindObject:
		return bl.define(it.Name, types.Object{Name: it.Name})
	default:
		// functions, constructors and methods introduce no type names
		return nil
	}
}

func (bl *build) detailItem(it metadata.Item) error {
	switch it.Kind {
	case metadata.KindRecord:
		fields, err := bl.metadataFields(it.Fields)
		if err != nil {
			return errors.Prefix(err, it.Name)
		}
		return bl.addRecord(&Record{name: it.Name, fields: fields})

	case metadata.KindEnum, metadata.KindError:
		variants := make([]Variant, 0, len(it.Variants))
		for _, v := range it.Variants {
			fields, err := bl.metadataFields(v.Fields)
			if err != nil {
				return errors.Prefix(err, it.Name, v.Name)
			}
			variants = append(variants, Variant{Name: v.Name, Fields: fields})
		}
		if err := checkUniqueVariants(variants); err != nil {
			return errors.Prefix(err, it.Name)
		}
		e := newEnum(it.Name, variants)
		if it.Kind == metadata.KindError {
			return bl.addError(&Error{Enum: e})
		}
		return bl.addEnum(&e)

	case metadata.KindObject:
		// An object may already be declared by an IDL interface; the record
		// then only confirms it.
		if bl.iface.GetObjectDefinition(it.Name) != nil {
			return nil
		}
		return bl.addObject(&Object{name: it.Name})

	case metadata.KindConstructor:
		o, err := bl.owner(it)
		if err != nil {
			return err
		}
		args, err := bl.metadataArguments(it.Inputs)
		if err != nil {
			return errors.Prefix(err, it.SelfName, it.Name)
		}
		c := &Constructor{
			name:       it.Name,
			arguments:  args,
			attributes: ConstructorAttributes{list: throwsList(it.Throws)},
		}
		return errors.Prefix(bl.addConstructor(o, c), it.SelfName)

	case metadata.KindMethod:
		o, err := bl.owner(it)
		if err != nil {
			return err
		}
		m, err := bl.metadataMethod(it)
		if err != nil {
			return errors.Prefix(err, it.SelfName, it.Name)
		}
		if o.methods, err = addMethod(o.methods, m); err != nil {
			return errors.Prefix(err, it.SelfName)
		}
		return nil

	case metadata.KindFunction:
		args, err := bl.metadataArguments(it.Inputs)
		if err != nil {
			return errors.Prefix(err, it.Name)
		}
		ret, err := bl.metadataType(it.Output)
		if err != nil {
			return errors.Prefix(err, it.Name)
		}
		return bl.addFunction(&Function{
			name:       it.Name,
			arguments:  args,
			returnType: ret,
			attributes: FunctionAttributes{list: throwsList(it.Throws)},
		})

	default:
		return errors.New(errors.PhaseResolve, errors.KindInvalidInput).
			Path(it.Name).
			Detail("unknown metadata kind %q", it.Kind).
			Build()
	}
}

// owner finds the object a constructor or method record attaches to.
func (bl *build) owner(it metadata.Item) (*Object, error) {
	o := bl.iface.GetObjectDefinition(it.SelfName)
	if o == nil {
		return nil, errors.UnknownType([]string{it.SelfName, it.Name}, it.SelfName)
	}
	return o, nil
}

func (bl *build) metadataMethod(it metadata.Item) (*Method, error) {
	args, err := bl.metadataArguments(it.Inputs)
	if err != nil {
		return nil, err
	}
	ret, err := bl.metadataType(it.Output)
	if err != nil {
		return nil, err
	}
	list := throwsList(it.Throws)
	if it.SelfByArc {
		list = append(list, Attribute{Key: AttrSelfType, Value: selfByArc})
	}
	return &Method{
		name:       it.Name,
		objectName: it.SelfName,
		arguments:  args,
		returnType: ret,
		attributes: MethodAttributes{list: list},
	}, nil
}

// metadataType parses and resolves a type expression; "" means no type.
func (bl *build) metadataType(src string) (types.Type, error) {
	if src == "" {
		return nil, nil
	}
	expr, err := idl.ParseTypeExpr(src)
	if err != nil {
		return nil, err
	}
	return bl.resolve(expr)
}

func (bl *build) metadataDefault(src string, t types.Type) (*Literal, error) {
	if src == "" {
		return nil, nil
	}
	expr, err := idl.ParseLiteral(src)
	if err != nil {
		return nil, err
	}
	return convertLiteral(expr, t)
}

func (bl *build) metadataFields(in []metadata.Field) ([]Field, error) {
	fields := make([]Field, 0, len(in))
	for _, f := range in {
		t, err := bl.metadataType(f.Type)
		if err != nil {
			return nil, errors.Prefix(err, f.Name)
		}
		def, err := bl.metadataDefault(f.Default, t)
		if err != nil {
			return nil, errors.Prefix(err, f.Name)
		}
		fields = append(fields, Field{Name: f.Name, Type: t, Default: def, Required: def == nil})
	}
	if err := checkUniqueFields(fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (bl *build) metadataArguments(in []metadata.Param) ([]Argument, error) {
	args := make([]Argument, 0, len(in))
	for _, p := range in {
		t, err := bl.metadataType(p.Type)
		if err != nil {
			return nil, errors.Prefix(err, p.Name)
		}
		def, err := bl.metadataDefault(p.Default, t)
		if err != nil {
			return nil, errors.Prefix(err, p.Name)
		}
		args = append(args, Argument{
			Name:     p.Name,
			Type:     t,
			ByRef:    p.ByRef,
			Optional: def != nil,
			Default:  def,
		})
	}
	if err := checkUniqueArguments(args); err != nil {
		return nil, err
	}
	return args, nil
}

func throwsList(throws string) attributeList {
	if throws == "" {
		return nil
	}
	return attributeList{{Key: AttrThrows, Value: throws}}
}
