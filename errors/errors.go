package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates which build pass produced the error
type Phase string

const (
	PhaseDiscover Phase = "discover" // name discovery
	PhaseResolve  Phase = "resolve"  // detailed type resolution
	PhaseCheck    Phase = "check"    // global consistency checks
	PhaseDerive   Phase = "derive"   // FFI derivation
	PhaseLoad     Phase = "load"     // metadata/config loading
	PhaseProject  Phase = "project"  // projection into other type systems
)

// Kind categorizes the error
type Kind string

const (
	KindDuplicateDefinition  Kind = "duplicate_definition"
	KindUnknownType          Kind = "unknown_type"
	KindUnsupportedAttribute Kind = "unsupported_attribute"
	KindConsistency          Kind = "consistency_violation"
	KindInternalMapping      Kind = "internal_mapping"
	KindInvalidInput         Kind = "invalid_input"
	KindNotFound             Kind = "not_found"
)

// Kind-only sentinels for errors.Is. They match an *Error of the same kind
// raised in any phase.
var (
	ErrDuplicateDefinition  = &Error{Kind: KindDuplicateDefinition}
	ErrUnknownType          = &Error{Kind: KindUnknownType}
	ErrUnsupportedAttribute = &Error{Kind: KindUnsupportedAttribute}
	ErrConsistency          = &Error{Kind: KindConsistency}
	ErrInternalMapping      = &Error{Kind: KindInternalMapping}
	ErrInvalidInput         = &Error{Kind: KindInvalidInput}
)

// Error is the structured error type used throughout the builder
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string
	Pos    string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Pos != "" {
		b.WriteString(" (")
		b.WriteString(e.Pos)
		b.WriteByte(')')
	}

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a phase matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Name returns the offending declaration name, the first path element.
func (e *Error) Name() string {
	if len(e.Path) == 0 {
		return ""
	}
	return e.Path[0]
}

// As is a re-export of the standard library errors.As so callers can keep a
// single errors import.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is is a re-export of the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the declaration path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Pos sets the source position
func (b *Builder) Pos(pos string) *Builder {
	b.err.Pos = pos
	return b
}

// Type sets the offending type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// DuplicateDefinition creates a conflicting re-declaration error
func DuplicateDefinition(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicateDefinition,
		Path:   []string{name},
		Detail: fmt.Sprintf("conflicting definition of %q", name),
	}
}

// UnknownType creates an unresolved type reference error
func UnknownType(path []string, typeName string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindUnknownType,
		Path:   path,
		Type:   typeName,
		Detail: fmt.Sprintf("no type named %q", typeName),
	}
}

// UnsupportedAttribute creates an attribute validation error
func UnsupportedAttribute(path []string, declKind, attr string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindUnsupportedAttribute,
		Path:   path,
		Detail: fmt.Sprintf("attribute %q is not supported on %s", attr, declKind),
	}
}

// ConsistencyViolation creates a global invariant failure
func ConsistencyViolation(name, detail string) *Error {
	var path []string
	if name != "" {
		path = []string{name}
	}
	return &Error{
		Phase:  PhaseCheck,
		Kind:   KindConsistency,
		Path:   path,
		Detail: detail,
	}
}

// InternalMapping creates an error for a type with no FFI lowering.
// It indicates a bug in the builder rather than bad input.
func InternalMapping(path []string, typeName string) *Error {
	return &Error{
		Phase:  PhaseDerive,
		Kind:   KindInternalMapping,
		Path:   path,
		Type:   typeName,
		Detail: "no FFI mapping",
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// WithPos returns err with its position set when err is an *Error without
// one; other errors are returned unchanged.
func WithPos(err error, pos string) error {
	if pos == "" {
		return err
	}
	var e *Error
	if stderrors.As(err, &e) && e.Pos == "" {
		e.Pos = pos
	}
	return err
}

// Prefix returns err with path elements prepended when err is an *Error.
func Prefix(err error, path ...string) error {
	var e *Error
	if stderrors.As(err, &e) {
		e.Path = append(append([]string(nil), path...), e.Path...)
	}
	return err
}
