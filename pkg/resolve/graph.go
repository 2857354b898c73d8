package resolve

import (
	"maps"
	"slices"
)

// Dependency is a directed edge from a consumer package to the package it
// depends on, carrying the version pin in effect for that edge. An empty
// Version means the dependency is unconstrained and yields to any pinned
// version during arbitration.
type Dependency struct {
	Package string `json:"package"`
	Version string `json:"version,omitempty"`
}

// Package is one manifest entry: a uniquely named package, its current
// version, and its declared direct dependencies in manifest order.
type Package struct {
	Name         string       `json:"name"`
	Version      string       `json:"version,omitempty"`
	Dependencies []Dependency `json:"dependencies,omitempty"`
}

// Graph maps package names to their direct dependency edges. It preserves
// the order packages were added in, which makes resolution output
// deterministic for a given manifest.
//
// A Graph is a private copy of the caller's data: constructors clone every
// dependency slice, so resolution never observes or mutates caller-owned
// structures.
type Graph struct {
	names []string
	deps  map[string][]Dependency
}

// NewGraph builds a dependency graph from a manifest package list.
// Dependency slices are cloned; later duplicate package names override
// earlier ones without creating a second entry.
func NewGraph(pkgs []Package) *Graph {
	g := &Graph{deps: make(map[string][]Dependency, len(pkgs))}
	for _, p := range pkgs {
		if _, ok := g.deps[p.Name]; !ok {
			g.names = append(g.names, p.Name)
		}
		g.deps[p.Name] = slices.Clone(p.Dependencies)
	}
	return g
}

// MergeExternal overlays externally declared dependency lists onto the graph
// and returns the derived graph; the receiver is left untouched. For every
// key in external the package's direct dependency list is replaced
// wholesale. Keys naming packages absent from the graph create synthetic
// entries, which is how dependencies of aliased third-party packages enter
// resolution. A nil or empty map returns an equivalent copy.
//
// External-only keys are appended after the manifest packages in sorted
// order, keeping iteration deterministic.
func (g *Graph) MergeExternal(external map[string][]Dependency) *Graph {
	out := &Graph{
		names: slices.Clone(g.names),
		deps:  make(map[string][]Dependency, len(g.deps)+len(external)),
	}
	for name, deps := range g.deps {
		out.deps[name] = slices.Clone(deps)
	}
	for _, name := range slices.Sorted(maps.Keys(external)) {
		if _, ok := out.deps[name]; !ok {
			out.names = append(out.names, name)
		}
		out.deps[name] = slices.Clone(external[name])
	}
	return out
}

// Packages returns the package names in graph order: manifest order first,
// then external-only entries. The returned slice is a copy.
func (g *Graph) Packages() []string { return slices.Clone(g.names) }

// Deps returns the direct dependency edges of the named package, or nil for
// unknown names. The returned slice must be treated as read-only.
func (g *Graph) Deps(name string) []Dependency { return g.deps[name] }

// Len returns the number of packages in the graph.
func (g *Graph) Len() int { return len(g.names) }
