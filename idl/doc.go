// Package idl defines the typed syntax tree of an interface description
// document.
//
// Grammar parsing lives outside this module: a front end hands the builder a
// *Document whose definitions mirror the source declarations one to one. The
// only text this package parses is a single type expression, which metadata
// records carry as a string:
//
//	expr, err := idl.ParseTypeExpr("sequence<Point>?")
//
// Positions are optional. A zero Pos renders as the empty string and is
// omitted from error messages.
package idl
