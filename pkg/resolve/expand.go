package resolve

import (
	"slices"
	"strings"
)

// CycleError reports a circular dependency. Chain holds the packages along
// the offending path in traversal order, ending with the repeated package,
// e.g. ["app", "core", "app"]. A cycle aborts the entire resolution: callers
// must treat the result as all-or-nothing.
type CycleError struct {
	Chain []string
}

// Error formats the cycle as an arrow-joined chain so both humans and tests
// can pattern-match the exact path.
func (e *CycleError) Error() string {
	return "circular dependency detected: " + strings.Join(e.Chain, " -> ")
}

// contribKey identifies a (dependency, version) pair discovered during
// expansion. Contributor sets are tracked per exact version: when a higher
// version replaces a lower one, the losing version's contributors stay under
// their own key and drop out of the final report naturally.
type contribKey struct {
	pkg     string
	version string
}

// expander carries the shared state of one expansion pass. The direct-edge
// graph is read-only; every package's closure accumulates into its own map,
// so no package ever observes another's partially expanded state.
type expander struct {
	g        *Graph
	contribs map[contribKey]map[string]struct{}
	logf     Logger
	warned   map[string]struct{} // version strings already reported as malformed
	missing  map[string]struct{} // undeclared targets already reported
}

func newExpander(g *Graph, logf Logger) *expander {
	return &expander{
		g:        g,
		contribs: make(map[contribKey]map[string]struct{}),
		logf:     logf,
		warned:   make(map[string]struct{}),
		missing:  make(map[string]struct{}),
	}
}

// expandAll computes the transitive closure of every package in the graph.
// The result maps each package name to its deduplicated edge list in
// first-seen order; version arbitration has already been applied. Any cycle
// fails the whole pass.
func (e *expander) expandAll() (map[string][]Dependency, error) {
	out := make(map[string][]Dependency, e.g.Len())
	for _, name := range e.g.names {
		acc, order, err := e.expand(name, []string{name})
		if err != nil {
			return nil, err
		}
		edges := make([]Dependency, len(order))
		for i, target := range order {
			edges[i] = acc[target]
		}
		out[name] = edges
	}
	return out, nil
}

// expand returns the closure of one package as a target→edge map plus the
// first-seen target order. chain is the active ancestor path including the
// package itself; each recursive descent extends a copy, so sibling branches
// can revisit the same package without tripping cycle detection.
func (e *expander) expand(name string, chain []string) (map[string]Dependency, []string, error) {
	acc := make(map[string]Dependency)
	var order []string

	for _, d := range e.g.deps[name] {
		e.record(acc, &order, d, name)

		// Targets without graph entries are leaves: either packages with no
		// dependencies of their own, or references the manifest never
		// declares. Both stop expansion here.
		if len(e.g.deps[d.Package]) == 0 {
			if _, known := e.g.deps[d.Package]; !known {
				if _, seen := e.missing[d.Package]; !seen {
					e.missing[d.Package] = struct{}{}
					e.logf("dependency %s of %s is not declared in the project; treating as leaf", d.Package, name)
				}
			}
			continue
		}

		if slices.Contains(chain, d.Package) {
			return nil, nil, &CycleError{Chain: append(slices.Clone(chain), d.Package)}
		}

		sub, subOrder, err := e.expand(d.Package, append(slices.Clone(chain), d.Package))
		if err != nil {
			return nil, nil, err
		}
		// The intermediate package is the contributor for everything it
		// transitively pulled in.
		for _, target := range subOrder {
			e.record(acc, &order, sub[target], d.Package)
		}
	}
	return acc, order, nil
}

// record merges one edge into the accumulator under the higher-version-wins
// rule. Equal versions keep whichever edge was recorded first but still
// merge contributor sets, so no provenance is lost.
func (e *expander) record(acc map[string]Dependency, order *[]string, d Dependency, owner string) {
	e.checkVersion(d)

	cur, ok := acc[d.Package]
	switch {
	case !ok:
		acc[d.Package] = d
		*order = append(*order, d.Package)
		e.addContributor(d.Package, d.Version, owner)
	case Compare(d.Version, cur.Version) > 0:
		acc[d.Package] = d
		e.addContributor(d.Package, d.Version, owner)
	case Compare(d.Version, cur.Version) == 0:
		e.addContributor(d.Package, cur.Version, owner)
	}
}

func (e *expander) addContributor(pkg, version, owner string) {
	key := contribKey{pkg: pkg, version: version}
	set := e.contribs[key]
	if set == nil {
		set = make(map[string]struct{})
		e.contribs[key] = set
	}
	set[owner] = struct{}{}
}

// checkVersion reports a malformed version once per distinct string. The
// value still participates in arbitration with its segments coerced to zero.
func (e *expander) checkVersion(d Dependency) {
	if d.Version == "" {
		return
	}
	if _, seen := e.warned[d.Version]; seen {
		return
	}
	if _, clean := ParseVersion(d.Version); !clean {
		e.warned[d.Version] = struct{}{}
		e.logf("malformed version %q on dependency %s; comparing with segments coerced to zero", d.Version, d.Package)
	}
}

// contributors returns the sorted contributor names recorded for the given
// (dependency, version) pair, or nil when none were recorded.
func (e *expander) contributors(pkg, version string) []string {
	set := e.contribs[contribKey{pkg: pkg, version: version}]
	if len(set) == 0 {
		return nil
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
