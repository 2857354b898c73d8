package resolve

import "testing"

// indexOf returns the position of name in order, or -1.
func indexOf(order []string, name string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return -1
}

func TestSortTopological_DependenciesFirst(t *testing.T) {
	g := NewGraph([]Package{
		{Name: "app", Dependencies: []Dependency{{Package: "core"}, {Package: "ui"}}},
		{Name: "core", Dependencies: []Dependency{{Package: "base"}}},
		{Name: "ui", Dependencies: []Dependency{{Package: "core"}}},
		{Name: "base"},
	})

	order := sortTopological(g)

	if len(order) != 4 {
		t.Fatalf("len(order) = %d, want 4", len(order))
	}
	pairs := [][2]string{{"base", "core"}, {"core", "app"}, {"core", "ui"}, {"ui", "app"}}
	for _, p := range pairs {
		if indexOf(order, p[0]) > indexOf(order, p[1]) {
			t.Errorf("order %v: %s should come before %s", order, p[0], p[1])
		}
	}
}

func TestSortTopological_Deterministic(t *testing.T) {
	pkgs := []Package{
		{Name: "b", Dependencies: []Dependency{{Package: "z"}}},
		{Name: "a", Dependencies: []Dependency{{Package: "z"}}},
		{Name: "z"},
	}

	first := sortTopological(NewGraph(pkgs))
	for i := 0; i < 10; i++ {
		again := sortTopological(NewGraph(pkgs))
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d: order %v differs from %v", i, again, first)
			}
		}
	}
}

func TestSortTopological_ToleratesSelfDependency(t *testing.T) {
	g := NewGraph([]Package{
		{Name: "loop", Dependencies: []Dependency{{Package: "loop"}}},
	})

	order := sortTopological(g)

	if len(order) != 1 || order[0] != "loop" {
		t.Errorf("order = %v, want [loop]", order)
	}
}

func TestSortTopological_MissingTargetGetsPosition(t *testing.T) {
	g := NewGraph([]Package{
		{Name: "app", Dependencies: []Dependency{{Package: "ghost"}}},
	})

	order := sortTopological(g)

	if indexOf(order, "ghost") == -1 {
		t.Fatalf("order %v missing dangling target", order)
	}
	if indexOf(order, "ghost") > indexOf(order, "app") {
		t.Errorf("order %v: ghost should come before app", order)
	}
}
