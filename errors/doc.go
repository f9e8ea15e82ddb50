// Package errors provides structured error types for interface building.
//
// Errors are categorized by Phase (which build pass failed) and Kind (error
// category). The Error type carries the offending declaration path, the
// source position when the syntax tree supplied one, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindUnknownType).
//		Path("Point", "x").
//		Type("Coord").
//		Detail("no declaration named %q", "Coord").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.DuplicateDefinition(errors.PhaseDiscover, "compute")
//	err := errors.UnknownType(path, "Coord")
//
// Kind-only sentinels match any phase:
//
//	if errors.Is(err, errors.ErrUnknownType) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
