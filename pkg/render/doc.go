// Package render draws dependency graphs as node-link diagrams.
//
// # Overview
//
// The package converts a manifest's packages and their resolved closures
// into Graphviz DOT, then renders the DOT to SVG in-process via the
// go-graphviz bindings. No external graphviz installation is required.
//
//	dot := render.ToDOT(project.Packages, res, render.Options{})
//	svg, err := render.SVG(dot)
//
// # Edge Semantics
//
// Solid edges are direct pins from the manifest, labeled with the pinned
// version. When a [resolve.Result] is supplied, transitive edges appear
// dashed so a reader can tell what a package pulls in indirectly.
package render
