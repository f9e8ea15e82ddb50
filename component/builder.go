package component

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/idl"
	"github.com/wippyai/bindgen/metadata"
	"github.com/wippyai/bindgen/types"
)

// Builder assembles an Interface from IDL documents and metadata records.
// Sources may be mixed; they are merged into one interface.
//
// A Builder is not safe for concurrent use. Build may be called more than
// once; every call starts from a fresh type universe.
type Builder struct {
	namespace string
	docs      []*idl.Document
	items     []metadata.Item
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithNamespace sets the namespace for sources that do not declare one,
// such as metadata records.
func (b *Builder) WithNamespace(ns string) *Builder {
	b.namespace = ns
	return b
}

// AddDocument queues a parsed IDL document.
func (b *Builder) AddDocument(doc *idl.Document) *Builder {
	if doc != nil {
		b.docs = append(b.docs, doc)
	}
	return b
}

// AddMetadata queues metadata records. Order does not matter.
func (b *Builder) AddMetadata(items ...metadata.Item) *Builder {
	b.items = append(b.items, items...)
	return b
}

// FromDocument builds an Interface from a single document.
func FromDocument(doc *idl.Document) (*Interface, error) {
	return NewBuilder().AddDocument(doc).Build()
}

// Build runs discovery, detail resolution, consistency checking, checksum
// computation and FFI derivation, in that order. Any failure aborts the
// build.
func (b *Builder) Build() (*Interface, error) {
	bl := &build{
		universe: types.NewUniverse(),
		iface:    &Interface{},
	}
	items := metadata.Group(b.items)

	if b.namespace != "" {
		if err := bl.setNamespace(b.namespace); err != nil {
			return nil, err
		}
	}

	for _, doc := range b.docs {
		if err := bl.discoverDocument(doc); err != nil {
			return nil, err
		}
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return nil, err
		}
		if err := bl.discoverItem(it); err != nil {
			return nil, errors.WithPos(err, it.Source)
		}
	}
	Logger().Debug("discovery complete", zap.Int("known_types", bl.universe.Len()))

	for _, doc := range b.docs {
		if err := bl.detailDocument(doc); err != nil {
			return nil, err
		}
	}
	for _, it := range items {
		if err := bl.detailItem(it); err != nil {
			return nil, errors.WithPos(err, it.Source)
		}
	}

	iface := bl.iface
	iface.universe = bl.universe
	if err := iface.checkConsistency(); err != nil {
		return nil, err
	}

	iface.checksum = iface.computeChecksum()
	iface.ffiNamespace = fmt.Sprintf("%s_%04x", iface.namespace, uint16(iface.checksum))
	if err := iface.deriveFFIFuncs(); err != nil {
		return nil, err
	}

	Logger().Debug("interface built",
		zap.String("namespace", iface.namespace),
		zap.String("ffi_namespace", iface.ffiNamespace),
		zap.Uint64("checksum", iface.checksum),
		zap.Int("records", len(iface.records)),
		zap.Int("enums", len(iface.enums)),
		zap.Int("errors", len(iface.errs)),
		zap.Int("functions", len(iface.functions)),
		zap.Int("objects", len(iface.objects)),
		zap.Int("callback_interfaces", len(iface.callbackInterfaces)))
	return iface, nil
}

// build carries the state of one Build call.
type build struct {
	universe *types.Universe
	iface    *Interface
	// namespace declarations seen across all documents
	namespaces int
}

func (bl *build) setNamespace(name string) error {
	if bl.iface.namespace != "" && bl.iface.namespace != name {
		return errors.New(errors.PhaseDiscover, errors.KindDuplicateDefinition).
			Path("namespace").
			Detail("namespace %q already declared as %q", name, bl.iface.namespace).
			Build()
	}
	bl.iface.namespace = name
	return nil
}

func (bl *build) define(name string, t types.Type) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseDiscover, "declaration without a name")
	}
	return bl.universe.AddTypeDefinition(name, t)
}

func (bl *build) resolve(expr idl.TypeExpr) (types.Type, error) {
	return bl.universe.ResolveTypeExpression(expr)
}

// resolveOptional resolves a possibly absent type, such as a return type.
func (bl *build) resolveOptional(expr idl.TypeExpr) (types.Type, error) {
	if expr == nil {
		return nil, nil
	}
	return bl.resolve(expr)
}

func (bl *build) addRecord(r *Record) error {
	if bl.iface.GetRecordDefinition(r.name) != nil {
		return errors.DuplicateDefinition(errors.PhaseResolve, r.name)
	}
	bl.iface.records = append(bl.iface.records, r)
	return nil
}

func (bl *build) addEnum(e *Enum) error {
	if bl.iface.GetEnumDefinition(e.name) != nil {
		return errors.DuplicateDefinition(errors.PhaseResolve, e.name)
	}
	bl.iface.enums = append(bl.iface.enums, e)
	return nil
}

func (bl *build) addError(e *Error) error {
	if bl.iface.GetErrorDefinition(e.name) != nil {
		return errors.DuplicateDefinition(errors.PhaseResolve, e.name)
	}
	bl.iface.errs = append(bl.iface.errs, e)
	return nil
}

// addFunction rejects duplicate function names and names that collide with
// a declared type, since functions are not registered in the universe.
func (bl *build) addFunction(f *Function) error {
	if bl.iface.GetFunctionDefinition(f.name) != nil {
		return errors.DuplicateDefinition(errors.PhaseResolve, f.name)
	}
	if t, ok := bl.universe.GetTypeDefinition(f.name); ok {
		return errors.New(errors.PhaseResolve, errors.KindDuplicateDefinition).
			Path(f.name).
			Type(t.String()).
			Detail("function %q conflicts with a type of the same name", f.name).
			Build()
	}
	bl.iface.functions = append(bl.iface.functions, f)
	return nil
}

func (bl *build) addObject(o *Object) error {
	if bl.iface.GetObjectDefinition(o.name) != nil {
		return errors.DuplicateDefinition(errors.PhaseResolve, o.name)
	}
	bl.iface.objects = append(bl.iface.objects, o)
	return nil
}

func (bl *build) addCallbackInterface(c *CallbackInterface) error {
	if bl.iface.GetCallbackInterfaceDefinition(c.name) != nil {
		return errors.DuplicateDefinition(errors.PhaseResolve, c.name)
	}
	bl.iface.callbackInterfaces = append(bl.iface.callbackInterfaces, c)
	return nil
}

func (bl *build) addConstructor(o *Object, c *Constructor) error {
	for _, existing := range o.constructors {
		if existing.name == c.name {
			return errors.DuplicateDefinition(errors.PhaseResolve, c.name)
		}
	}
	o.constructors = append(o.constructors, c)
	return nil
}

func addMethod(methods []*Method, m *Method) ([]*Method, error) {
	for _, existing := range methods {
		if existing.name == m.name {
			return nil, errors.DuplicateDefinition(errors.PhaseResolve, m.name)
		}
	}
	return append(methods, m), nil
}

func checkUniqueFields(fields []Field) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			return errors.DuplicateDefinition(errors.PhaseResolve, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

func checkUniqueVariants(variants []Variant) error {
	seen := make(map[string]bool, len(variants))
	for _, v := range variants {
		if seen[v.Name] {
			return errors.DuplicateDefinition(errors.PhaseResolve, v.Name)
		}
		seen[v.Name] = true
		if err := checkUniqueFields(v.Fields); err != nil {
			return errors.Prefix(err, v.Name)
		}
	}
	return nil
}

func checkUniqueArguments(args []Argument) error {
	seen := make(map[string]bool, len(args))
	for _, a := range args {
		if seen[a.Name] {
			return errors.DuplicateDefinition(errors.PhaseResolve, a.Name)
		}
		seen[a.Name] = true
	}
	return nil
}
