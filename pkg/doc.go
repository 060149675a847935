// Package pkg provides the libraries behind flowlayout.
//
// # Overview
//
// Flowlayout arranges a container's items left to right, wrapping onto a new
// row whenever the next item would overflow the available width. The pkg
// directory is organized into three areas:
//
//  1. [flow] - The layout engine (constraints, measuring, packing, positioning)
//  2. [document] - The document and layout formats the engine reads and writes
//  3. [pipeline] - Orchestration (read → layout → render) with caching
//
// Supporting packages:
//
//   - [cache]: File, Redis and no-op caches for layouts and artifacts
//   - [sink]: JSON, TOML and table renderers
//   - [store]: Stored layouts for the HTTP service (memory or MongoDB)
//   - [server]: The HTTP API
//   - [config]: The user configuration file
//   - [observability]: Hooks for pipeline, cache and HTTP events
//   - [errors]: Coded errors shared by every package
//
// # Architecture
//
//	Document (.json / .toml)
//	         ↓
//	    [document] package (validate, build a flow container)
//	         ↓
//	    [flow] package (measure → pack → aggregate → position)
//	         ↓
//	    [sink] package (render)
//	         ↓
//	    JSON/TOML/table output
//
// # Quick Start
//
//	doc, err := document.ReadFile("chips.json")
//	if err != nil {
//	    return err
//	}
//	l, err := document.Compute(doc)
//	if err != nil {
//	    return err
//	}
//	out, err := sink.Render(l, sink.FormatTable)
package pkg
