package resolve

import (
	"errors"
	"strings"
	"testing"
)

func expandGraph(t *testing.T, pkgs []Package) (map[string][]Dependency, *expander) {
	t.Helper()
	g := NewGraph(pkgs)
	e := newExpander(g, func(string, ...any) {})
	out, err := e.expandAll()
	if err != nil {
		t.Fatalf("expandAll() error: %v", err)
	}
	return out, e
}

func TestExpand_SimpleCycle(t *testing.T) {
	g := NewGraph([]Package{
		{Name: "package-a", Dependencies: []Dependency{{Package: "package-b"}}},
		{Name: "package-b", Dependencies: []Dependency{{Package: "package-a"}}},
	})

	_, err := newExpander(g, func(string, ...any) {}).expandAll()
	if err == nil {
		t.Fatal("expandAll() = nil error, want cycle")
	}

	var cerr *CycleError
	if !errors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *CycleError", err)
	}
	if !strings.Contains(err.Error(), "package-a -> package-b -> package-a") {
		t.Errorf("error %q does not contain the cycle chain", err)
	}
}

func TestExpand_LongerCycleChain(t *testing.T) {
	g := NewGraph([]Package{
		{Name: "a", Dependencies: []Dependency{{Package: "b"}}},
		{Name: "b", Dependencies: []Dependency{{Package: "c"}}},
		{Name: "c", Dependencies: []Dependency{{Package: "a"}}},
	})

	_, err := newExpander(g, func(string, ...any) {}).expandAll()
	if err == nil || !strings.Contains(err.Error(), "a -> b -> c -> a") {
		t.Errorf("error = %v, want chain a -> b -> c -> a", err)
	}
}

func TestExpand_SelfDependencyIsCycle(t *testing.T) {
	g := NewGraph([]Package{
		{Name: "loop", Dependencies: []Dependency{{Package: "loop"}}},
	})

	_, err := newExpander(g, func(string, ...any) {}).expandAll()
	if err == nil || !strings.Contains(err.Error(), "loop -> loop") {
		t.Errorf("error = %v, want chain loop -> loop", err)
	}
}

func TestExpand_DiamondIsNotCycle(t *testing.T) {
	// app -> left -> base and app -> right -> base: base is visited twice
	// via sibling branches, which must not trip cycle detection.
	out, _ := expandGraph(t, []Package{
		{Name: "app", Dependencies: []Dependency{{Package: "left"}, {Package: "right"}}},
		{Name: "left", Dependencies: []Dependency{{Package: "base", Version: "1.0.0"}}},
		{Name: "right", Dependencies: []Dependency{{Package: "base", Version: "1.0.0"}}},
		{Name: "base"},
	})

	targets := make(map[string]bool)
	for _, d := range out["app"] {
		if targets[d.Package] {
			t.Errorf("duplicate edge for %s", d.Package)
		}
		targets[d.Package] = true
	}
	for _, want := range []string{"left", "right", "base"} {
		if !targets[want] {
			t.Errorf("app closure missing %s (got %v)", want, out["app"])
		}
	}
}

func TestExpand_HigherVersionWins(t *testing.T) {
	out, _ := expandGraph(t, []Package{
		{Name: "app", Dependencies: []Dependency{
			{Package: "mid"},
			{Package: "base", Version: "1.1.0"},
		}},
		{Name: "mid", Dependencies: []Dependency{{Package: "base", Version: "1.0.0"}}},
		{Name: "base"},
	})

	for _, d := range out["app"] {
		if d.Package == "base" && d.Version != "1.1.0" {
			t.Errorf("base resolved to %q, want 1.1.0", d.Version)
		}
	}
}

func TestExpand_EqualVersionsMergeContributors(t *testing.T) {
	_, e := expandGraph(t, []Package{
		{Name: "root", Dependencies: []Dependency{{Package: "a"}, {Package: "b"}}},
		{Name: "a", Dependencies: []Dependency{{Package: "shared", Version: "1.0.0"}}},
		{Name: "b", Dependencies: []Dependency{{Package: "shared", Version: "1.0.0"}}},
		{Name: "shared"},
	})

	got := e.contributors("shared", "1.0.0")
	want := []string{"a", "b"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("contributors(shared, 1.0.0) = %v, want %v", got, want)
	}
}

func TestExpand_UndeclaredTargetIsLeaf(t *testing.T) {
	var warnings []string
	g := NewGraph([]Package{
		{Name: "app", Dependencies: []Dependency{{Package: "ghost", Version: "1.0.0"}}},
	})
	e := newExpander(g, func(format string, args ...any) {
		warnings = append(warnings, format)
	})

	out, err := e.expandAll()
	if err != nil {
		t.Fatalf("expandAll() error: %v", err)
	}
	if len(out["app"]) != 1 || out["app"][0].Package != "ghost" {
		t.Errorf("app closure = %v, want leaf edge to ghost", out["app"])
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(warnings))
	}
}

func TestExpand_MalformedVersionWarnsOnce(t *testing.T) {
	var warnings int
	g := NewGraph([]Package{
		{Name: "a", Dependencies: []Dependency{{Package: "x", Version: "not.a.version"}}},
		{Name: "b", Dependencies: []Dependency{{Package: "x", Version: "not.a.version"}}},
		{Name: "x"},
	})
	e := newExpander(g, func(string, ...any) { warnings++ })

	if _, err := e.expandAll(); err != nil {
		t.Fatalf("expandAll() error: %v", err)
	}
	if warnings != 1 {
		t.Errorf("got %d warnings, want 1 (deduplicated per version string)", warnings)
	}
}
