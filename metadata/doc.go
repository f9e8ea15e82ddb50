// Package metadata reads declaration records extracted from annotated
// source.
//
// Extraction writes one file per declaration, named by convention:
//
//	mod.<module>.fn.<name>.json            free function
//	mod.<module>.impl.<Type>.fn.<name>.json method of Type
//	type.<Type>.json                       record, enum, error or object
//
// Files are JSON or YAML and may omit whatever the file name already says.
// Records arrive in no particular order; Group sorts them so that the
// builder sees every type before the members attached to it, and so that
// the resulting checksum does not depend on directory listing order.
//
//	items, err := metadata.LoadDir(ctx, "target/uniffi")
//	iface, err := component.NewBuilder().AddMetadata(items...).Build()
package metadata
