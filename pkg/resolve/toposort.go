package resolve

// sortTopological orders every name reachable in the graph so that each
// package appears after all packages it depends on. The traversal is a
// depth-first post-order walk seeded from the graph's packages in graph
// order, which makes the result deterministic for a given manifest.
//
// Self-dependencies and targets without a graph entry are tolerated here:
// they are treated as having no further dependencies and still receive a
// position. Cycle detection is the closure engine's job and has already run
// by the time the sorter sees the graph.
func sortTopological(g *Graph) []string {
	visited := make(map[string]bool, g.Len())
	order := make([]string, 0, g.Len())

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		for _, d := range g.deps[name] {
			visit(d.Package)
		}
		order = append(order, name)
	}

	for _, name := range g.names {
		visit(name)
	}
	return order
}

// positions maps each name in order to its index, for fast rank lookups
// when sorting a package's resolved dependency list.
func positions(order []string) map[string]int {
	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}
	return pos
}
