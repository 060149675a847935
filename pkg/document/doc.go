// Package document defines the serializable input and output of a flow layout.
//
// A [Document] describes a container (width/height constraints, gaps,
// padding) and an ordered list of [Item]s. Documents are read from JSON or
// TOML:
//
//	width = 100
//	width_mode = "at_most"
//	horizontal_gap = 10
//	vertical_gap = 10
//
//	[[items]]
//	id = "go"
//	width = 40
//	height = 20
//
// [Compute] lays a document out with pkg/flow and returns a [Layout], the
// serialization format shared by the CLI, the cache and the HTTP API.
package document
