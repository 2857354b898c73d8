package resolve

import (
	"slices"
	"sort"
)

// UnknownVersion is the sentinel reported in [Detail.Version] when a
// dependency was resolved without any version pin.
const UnknownVersion = "unknown"

// Logger receives diagnostic messages about non-fatal anomalies (malformed
// versions, undeclared dependency targets). It matches the printf-style
// signature of charmbracelet/log's Warnf so callers can pass it directly.
type Logger func(format string, args ...any)

// Options configures a resolution pass.
type Options struct {
	// External maps package names to externally declared dependency lists,
	// overlaid onto the graph before expansion. See [Graph.MergeExternal].
	External map[string][]Dependency

	// Logger receives non-fatal diagnostics. Nil discards them.
	Logger Logger
}

func (o Options) logf() Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return func(string, ...any) {}
}

// Detail is the provenance record for one resolved dependency.
type Detail struct {
	// Version is the arbitrated version, or [UnknownVersion] when the
	// dependency carried no pin anywhere.
	Version string `json:"version"`

	// IsDirect reports whether the consuming package declares this exact
	// (package, version) pair itself rather than inheriting it.
	IsDirect bool `json:"isDirect"`

	// Contributors lists, sorted, the packages whose direct or transitive
	// chains introduced the winning version.
	Contributors []string `json:"contributors"`
}

// Result is the output of one resolution pass.
type Result struct {
	// Order is the global topological order: every package appears after
	// everything it depends on, so the order doubles as a build order.
	Order []string `json:"order"`

	// Resolved maps each package in the graph to its complete dependency
	// closure: deduplicated (one edge per target), version-arbitrated, and
	// sorted by global topological position. Packages without dependencies
	// map to an empty list.
	Resolved map[string][]Dependency `json:"resolved"`

	// Details maps package → dependency → provenance. Packages without
	// dependencies have no entry.
	Details map[string]map[string]Detail `json:"details,omitempty"`
}

// Dependents returns the packages whose resolved closure includes name,
// in topological order. Useful for answering "what do I rebuild if this
// changes" and for propagating version bumps.
func (r *Result) Dependents(name string) []string {
	var out []string
	for _, pkg := range r.Order {
		for _, d := range r.Resolved[pkg] {
			if d.Package == name {
				out = append(out, pkg)
				break
			}
		}
	}
	return out
}

// Resolve computes the transitive dependency closure of every package in
// pkgs. The input is never mutated; all intermediate state lives in private
// copies discarded when the call returns.
//
// Resolution is all-or-nothing: a dependency cycle anywhere in the graph
// returns a [*CycleError] and no partial result. All other anomalies
// degrade gracefully and are reported through [Options.Logger].
func Resolve(pkgs []Package, opts Options) (*Result, error) {
	g := NewGraph(pkgs).MergeExternal(opts.External)

	e := newExpander(g, opts.logf())
	expanded, err := e.expandAll()
	if err != nil {
		return nil, err
	}

	order := sortTopological(g)
	return assemble(g, order, expanded, e), nil
}

// assemble turns the raw expansion into the final result: each package's
// edge list is re-sorted by global topological position and paired with its
// provenance details.
func assemble(g *Graph, order []string, expanded map[string][]Dependency, e *expander) *Result {
	pos := positions(order)

	res := &Result{
		Order:    order,
		Resolved: make(map[string][]Dependency, g.Len()),
		Details:  make(map[string]map[string]Detail),
	}

	for _, name := range g.names {
		edges := slices.Clone(expanded[name])
		if edges == nil {
			edges = []Dependency{}
		}
		sort.SliceStable(edges, func(i, j int) bool {
			return pos[edges[i].Package] < pos[edges[j].Package]
		})
		res.Resolved[name] = edges

		if len(edges) == 0 {
			continue
		}
		details := make(map[string]Detail, len(edges))
		for _, d := range edges {
			details[d.Package] = Detail{
				Version:      versionOrUnknown(d.Version),
				IsDirect:     isDirect(g, name, d),
				Contributors: e.contributors(d.Package, d.Version),
			}
		}
		res.Details[name] = details
	}
	return res
}

// isDirect reports whether the direct-edge graph declares this exact
// (package, version) pair on name. A matching package at a different
// version still counts as transitive: the declared pin lost the
// arbitration.
func isDirect(g *Graph, name string, d Dependency) bool {
	for _, direct := range g.deps[name] {
		if direct.Package == d.Package && direct.Version == d.Version {
			return true
		}
	}
	return false
}

func versionOrUnknown(v string) string {
	if v == "" {
		return UnknownVersion
	}
	return v
}
