// Package manifest reads and writes the deptower project file.
//
// A project file declares every package in the project, its current version,
// and its direct dependency pins:
//
//	{
//	  "name": "my-project",
//	  "packages": [
//	    {
//	      "name": "core",
//	      "version": "1.4.0.NEXT",
//	      "dependencies": [{"package": "base", "version": "2.0.0"}]
//	    }
//	  ],
//	  "externalDependencies": {
//	    "vendor-alias": [{"package": "vendor-base", "version": "4.2.0.1"}]
//	  }
//	}
//
// JSON is the primary format; files ending in .yaml or .yml are parsed as
// YAML with the same shape. Dependency lists for packages that cannot be
// declared inline (third-party aliases) can additionally live in a TOML
// registry file, see [LoadExternal].
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/deptower/pkg/resolve"
)

// DefaultFile is the project file name looked up when none is given.
const DefaultFile = "deptower.json"

var (
	// ErrNoPackages is returned by [Project.Validate] for a manifest that
	// declares no packages at all.
	ErrNoPackages = errors.New("manifest declares no packages")

	// ErrEmptyPackageName is returned by [Project.Validate] when a package
	// entry has no name.
	ErrEmptyPackageName = errors.New("package name must not be empty")

	// ErrDuplicatePackage is returned by [Project.Validate] when two
	// entries share a name.
	ErrDuplicatePackage = errors.New("duplicate package name")
)

// Project is the in-memory form of a project file.
type Project struct {
	Name     string            `json:"name,omitempty" yaml:"name,omitempty"`
	Packages []resolve.Package `json:"packages" yaml:"packages"`

	// ExternalDependencies maps package names (typically aliases for
	// version-pinned third-party packages) to dependency lists declared
	// outside the package entries themselves.
	ExternalDependencies map[string][]resolve.Dependency `json:"externalDependencies,omitempty" yaml:"externalDependencies,omitempty"`
}

// Load reads and validates a project file. The format is chosen by
// extension: .yaml/.yml parses as YAML, everything else as JSON.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var p Project
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}

// Save writes the project as indented JSON, preserving package order.
// The file is created with 0644 permissions.
func (p *Project) Save(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Validate checks structural invariants: at least one package, non-empty
// unique names.
func (p *Project) Validate() error {
	if len(p.Packages) == 0 {
		return ErrNoPackages
	}
	seen := make(map[string]bool, len(p.Packages))
	for _, pkg := range p.Packages {
		if pkg.Name == "" {
			return ErrEmptyPackageName
		}
		if seen[pkg.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicatePackage, pkg.Name)
		}
		seen[pkg.Name] = true
	}
	return nil
}

// Package returns the package entry with the given name, or nil.
func (p *Project) Package(name string) *resolve.Package {
	for i := range p.Packages {
		if p.Packages[i].Name == name {
			return &p.Packages[i]
		}
	}
	return nil
}

// External combines the manifest's inline external dependencies with an
// overlay loaded from a registry file. Overlay entries win per key. Either
// argument may be nil; the result is never nil when any entries exist.
func (p *Project) External(overlay map[string][]resolve.Dependency) map[string][]resolve.Dependency {
	if len(p.ExternalDependencies) == 0 && len(overlay) == 0 {
		return nil
	}
	out := make(map[string][]resolve.Dependency, len(p.ExternalDependencies)+len(overlay))
	for name, deps := range p.ExternalDependencies {
		out[name] = deps
	}
	for name, deps := range overlay {
		out[name] = deps
	}
	return out
}
