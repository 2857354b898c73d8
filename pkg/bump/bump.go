// Package bump mutates package versions in a project manifest.
//
// A bump increments one part of a package's version (major, minor, patch,
// or build number) and can propagate the new version to every dependent's
// pin, using the resolver's dependents view so indirect consumers are
// updated too.
package bump

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/deptower/pkg/manifest"
	"github.com/matzehuels/deptower/pkg/resolve"
)

// Part selects which version segment a bump increments.
type Part int

const (
	// Major increments the first segment and zeroes minor, patch, and build.
	Major Part = iota
	// Minor increments the second segment and zeroes patch and build.
	Minor
	// Patch increments the third segment and zeroes build.
	Patch
	// Build increments the fourth build-number segment only.
	Build
)

// String returns the flag-style name of the part.
func (p Part) String() string {
	switch p {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	case Build:
		return "build"
	}
	return fmt.Sprintf("Part(%d)", int(p))
}

// ErrUnknownPackage is returned when the named package is not in the manifest.
var ErrUnknownPackage = errors.New("unknown package")

// Change records one manifest edit performed by [Package], for reporting.
type Change struct {
	Package string // manifest entry that was edited
	Target  string // dependency pin that changed, empty for the version field
	From    string
	To      string
}

// Apply increments one part of a version string and returns the result.
// Floating markers survive the bump ("1.2.0.NEXT" bumped minor becomes
// "1.3.0.NEXT"). Malformed segments coerce to zero first, matching the
// resolver's comparator.
func Apply(version string, part Part) string {
	v, _ := resolve.ParseVersion(version)

	if part == Build {
		v.Build++
		return v.String()
	}

	sv := semver.New(v.Major, v.Minor, v.Patch, "", "")
	var next semver.Version
	switch part {
	case Major:
		next = sv.IncMajor()
	case Minor:
		next = sv.IncMinor()
	default:
		next = sv.IncPatch()
	}

	out := resolve.Version{
		Major:  next.Major(),
		Minor:  next.Minor(),
		Patch:  next.Patch(),
		Marker: v.Marker,
	}
	return out.String()
}

// Package bumps the named package's version inside the project. When
// propagate is true, every dependent's pin on the package is rewritten to
// the new version; res supplies the dependents view and is only consulted
// in that case. The project is edited in place; the returned changes
// describe every edit in manifest order.
func Package(p *manifest.Project, name string, part Part, propagate bool, res *resolve.Result) ([]Change, error) {
	pkg := p.Package(name)
	if pkg == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPackage, name)
	}

	next := Apply(pkg.Version, part)
	changes := []Change{{Package: name, From: pkg.Version, To: next}}
	pkg.Version = next

	if !propagate || res == nil {
		return changes, nil
	}

	dependents := make(map[string]bool)
	for _, d := range res.Dependents(name) {
		dependents[d] = true
	}
	for i := range p.Packages {
		consumer := &p.Packages[i]
		if !dependents[consumer.Name] {
			continue
		}
		for j := range consumer.Dependencies {
			dep := &consumer.Dependencies[j]
			if dep.Package != name || dep.Version == next {
				continue
			}
			changes = append(changes, Change{
				Package: consumer.Name,
				Target:  name,
				From:    dep.Version,
				To:      next,
			})
			dep.Version = next
		}
	}
	return changes, nil
}
