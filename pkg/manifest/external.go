package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/deptower/pkg/resolve"
)

// externalFile is the TOML shape of an external dependency registry:
//
//	[external]
//	  [[external.vendor-alias]]
//	  package = "vendor-base"
//	  version = "4.2.0.1"
//
//	  [[external.vendor-alias]]
//	  package = "vendor-extras"
type externalFile struct {
	External map[string][]resolve.Dependency `toml:"external"`
}

// LoadExternal reads a TOML external dependency registry. The returned map
// overlays the manifest's inline externalDependencies via
// [Project.External]. A missing file is not an error and yields nil, so
// callers can probe a conventional location unconditionally.
func LoadExternal(path string) (map[string][]resolve.Dependency, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read external registry: %w", err)
	}

	var f externalFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f.External, nil
}
