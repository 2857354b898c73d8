package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deptower/pkg/manifest"
	"github.com/matzehuels/deptower/pkg/observability"
	"github.com/matzehuels/deptower/pkg/resolve"
)

// appName is the application name used for directories and display.
const appName = "deptower"

// manifestFlags holds the flags shared by commands that read a manifest.
type manifestFlags struct {
	file     string // manifest path
	external string // external dependency registry (TOML)
}

// register adds the manifest flags to cmd.
func (f *manifestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", manifest.DefaultFile, "manifest file")
	cmd.Flags().StringVar(&f.external, "external", "", "external dependency registry (TOML)")
}

// load reads the manifest and merges the optional external registry on top
// of the manifest's inline external dependencies.
func (f *manifestFlags) load() (*manifest.Project, map[string][]resolve.Dependency, error) {
	p, err := manifest.Load(f.file)
	if err != nil {
		return nil, nil, err
	}

	overlay, err := manifest.LoadExternal(f.external)
	if err != nil {
		return nil, nil, err
	}
	return p, p.External(overlay), nil
}

// runResolve resolves the project with warnings routed to the context logger.
func runResolve(ctx context.Context, p *manifest.Project, external map[string][]resolve.Dependency) (*resolve.Result, error) {
	logger := loggerFromContext(ctx)

	observability.Resolver().OnResolveStart(ctx, len(p.Packages))
	start := time.Now()
	res, err := resolve.Resolve(p.Packages, resolve.Options{
		External: external,
		Logger:   func(format string, args ...any) { logger.Warnf(format, args...) },
	})
	observability.Resolver().OnResolveComplete(ctx, len(p.Packages), time.Since(start), err)
	return res, err
}

// cacheDir returns the cache directory using XDG standard (~/.cache/deptower/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
