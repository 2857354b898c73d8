package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/deptower/pkg/resolve"
)

// Options configures DOT generation.
type Options struct {
	// Transitive draws dashed edges for dependencies a package only
	// reaches through intermediaries. Requires a resolution result.
	Transitive bool

	// Versions labels direct edges with the pinned version string.
	Versions bool
}

// ToDOT converts manifest packages to Graphviz DOT. res supplies resolved
// closures for transitive edges and may be nil when opts.Transitive is
// false. Dependency targets that are not manifest packages are rendered
// with dashed outlines and grey fill.
func ToDOT(pkgs []resolve.Package, res *resolve.Result, opts Options) string {
	known := make(map[string]bool, len(pkgs))
	for _, p := range pkgs {
		known[p.Name] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	seen := make(map[string]bool)
	node := func(name, version string, external bool) {
		if seen[name] {
			return
		}
		seen[name] = true
		label := name
		if version != "" {
			label = name + "\n" + version
		}
		if external {
			fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n", name, label)
			return
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", name, label)
	}

	for _, p := range pkgs {
		node(p.Name, p.Version, false)
	}
	for _, p := range pkgs {
		for _, d := range p.Dependencies {
			if !known[d.Package] {
				node(d.Package, "", true)
			}
		}
	}

	buf.WriteString("\n")
	for _, p := range pkgs {
		direct := make(map[string]bool, len(p.Dependencies))
		for _, d := range p.Dependencies {
			direct[d.Package] = true
			if opts.Versions && d.Version != "" {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q, fontsize=16];\n", p.Name, d.Package, d.Version)
			} else {
				fmt.Fprintf(&buf, "  %q -> %q;\n", p.Name, d.Package)
			}
		}

		if !opts.Transitive || res == nil {
			continue
		}
		for _, d := range res.Resolved[p.Name] {
			if direct[d.Package] {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=grey];\n", p.Name, d.Package)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}
