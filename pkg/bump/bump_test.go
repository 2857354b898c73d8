package bump

import (
	"errors"
	"testing"

	"github.com/matzehuels/deptower/pkg/manifest"
	"github.com/matzehuels/deptower/pkg/resolve"
)

func TestApply(t *testing.T) {
	tests := []struct {
		version string
		part    Part
		want    string
	}{
		{"1.2.3", Major, "2.0.0"},
		{"1.2.3", Minor, "1.3.0"},
		{"1.2.3", Patch, "1.2.4"},
		{"1.2.3", Build, "1.2.3.1"},
		{"1.2.3.7", Build, "1.2.3.8"},
		{"1.2.0.NEXT", Minor, "1.3.0.NEXT"},
		{"2.0.0.LATEST", Major, "3.0.0.LATEST"},
		{"1.2.3.7", Minor, "1.3.0"}, // build number resets on core bumps
		{"", Patch, "0.0.1"},
	}

	for _, tt := range tests {
		if got := Apply(tt.version, tt.part); got != tt.want {
			t.Errorf("Apply(%q, %s) = %q, want %q", tt.version, tt.part, got, tt.want)
		}
	}
}

func demoProject() *manifest.Project {
	return &manifest.Project{
		Packages: []resolve.Package{
			{Name: "app", Version: "1.0.0.NEXT", Dependencies: []resolve.Dependency{
				{Package: "core", Version: "2.1.0"},
			}},
			{Name: "tool", Version: "1.0.0.NEXT", Dependencies: []resolve.Dependency{
				{Package: "core", Version: "2.1.0"},
			}},
			{Name: "core", Version: "2.1.0"},
		},
	}
}

func TestPackage_BumpOnly(t *testing.T) {
	p := demoProject()

	changes, err := Package(p, "core", Minor, false, nil)
	if err != nil {
		t.Fatalf("Package() error: %v", err)
	}
	if len(changes) != 1 || changes[0].To != "2.2.0" {
		t.Errorf("changes = %+v, want single version change to 2.2.0", changes)
	}
	if got := p.Package("core").Version; got != "2.2.0" {
		t.Errorf("core version = %q, want 2.2.0", got)
	}
	// Pins untouched without propagation
	if got := p.Package("app").Dependencies[0].Version; got != "2.1.0" {
		t.Errorf("app pin = %q, want 2.1.0", got)
	}
}

func TestPackage_Propagates(t *testing.T) {
	p := demoProject()
	res, err := resolve.Resolve(p.Packages, resolve.Options{})
	if err != nil {
		t.Fatal(err)
	}

	changes, err := Package(p, "core", Patch, true, res)
	if err != nil {
		t.Fatalf("Package() error: %v", err)
	}
	if len(changes) != 3 {
		t.Fatalf("changes = %+v, want version change plus two pin updates", changes)
	}
	for _, name := range []string{"app", "tool"} {
		if got := p.Package(name).Dependencies[0].Version; got != "2.1.1" {
			t.Errorf("%s pin = %q, want 2.1.1", name, got)
		}
	}
}

func TestPackage_UnknownPackage(t *testing.T) {
	_, err := Package(demoProject(), "ghost", Patch, false, nil)
	if !errors.Is(err, ErrUnknownPackage) {
		t.Errorf("error = %v, want ErrUnknownPackage", err)
	}
}
