// Package types defines the closed set of interface types and the Universe
// registry that resolves type expressions against declared names.
//
// Types are plain comparable values. Named user types (Record, Enum, Object,
// CallbackInterface, Error) carry only their declaration name; the matching
// declaration is looked up through the owner of the Universe, never through a
// pointer embedded in the type.
//
// A Universe is filled in two passes. Discovery binds every declared name to
// its placeholder type:
//
//	u := types.NewUniverse()
//	_ = u.AddTypeDefinition("Point", types.Record{Name: "Point"})
//
// Detail resolution then turns syntax into types, registering every
// structural type it builds along the way:
//
//	t, err := u.ResolveTypeExpression(idl.Optional(idl.Sequence(idl.Named("Point"))))
//	// t == types.Optional{Inner: types.Sequence{Inner: types.Record{Name: "Point"}}}
package types
