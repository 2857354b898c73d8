package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deptower/pkg/buildinfo"
	"github.com/matzehuels/deptower/pkg/cache"
	"github.com/matzehuels/deptower/pkg/report"
	"github.com/matzehuels/deptower/pkg/resolve"
)

// resolveOpts holds the command-line flags for the resolve command.
type resolveOpts struct {
	manifestFlags
	jsonOut bool   // emit the JSON report instead of styled text
	output  string // output file path (stdout if empty)
	noCache bool   // disable the resolution cache
	refresh bool   // recompute even on a cache hit
}

// newResolveCmd creates the resolve command.
//
// Resolution results are cached by manifest content, so repeated runs over
// an unchanged manifest skip the computation. Any edit to the manifest or
// the external registry naturally invalidates the entry.
func newResolveCmd() *cobra.Command {
	var opts resolveOpts

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a manifest's transitive dependency closure",
		Long: `Resolve every package in the manifest to its full dependency closure.

Version conflicts are arbitrated toward the higher version, packages are
ordered so dependencies precede dependents, and each resolved dependency
records whether it was pinned directly and which packages pulled it in.

Examples:
  deptower resolve                          # deptower.json in the working directory
  deptower resolve -f project.yaml          # explicit manifest
  deptower resolve --external vendors.toml  # overlay an external registry
  deptower resolve --json -o result.json    # machine-readable report`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runResolveCommand(c.Context(), &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit the JSON report")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the resolution cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")

	return cmd
}

func runResolveCommand(ctx context.Context, opts *resolveOpts) error {
	logger := loggerFromContext(ctx)

	p, external, err := opts.load()
	if err != nil {
		return err
	}

	c, err := newResolutionCache(ctx, opts.noCache)
	if err != nil {
		logger.Warnf("Cache unavailable: %v", err)
		c = cache.NewNull()
	}
	defer c.Close()

	key, err := resolutionKey(opts.file, opts.external)
	if err != nil {
		return err
	}

	var res *resolve.Result
	if !opts.refresh {
		if data, ok, err := c.Get(ctx, key); err == nil && ok {
			var cached resolve.Result
			if json.Unmarshal(data, &cached) == nil {
				logger.Debugf("Using cached resolution for %s", opts.file)
				res = &cached
			}
		}
	}

	if res == nil {
		prog := newProgress(logger)
		res, err = runResolve(ctx, p, external)
		if err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Resolved %d packages", len(res.Order)))

		if data, err := json.Marshal(res); err == nil {
			_ = c.Set(ctx, key, data, cache.DefaultTTL)
		}
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	r := report.New(res, p.Name, buildinfo.Version)
	if opts.jsonOut {
		if err := r.JSON(out); err != nil {
			return err
		}
	} else if err := r.Text(out); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Wrote resolution report")
		printFile(opts.output)
	}
	return nil
}

// newResolutionCache opens the default file-backed resolution cache, or a
// null cache when disabled.
func newResolutionCache(ctx context.Context, disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNull(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	c, err := cache.Open(ctx, dir)
	if err != nil {
		return nil, err
	}
	return cache.Instrument(c), nil
}

// resolutionKey derives the cache key from the manifest bytes plus the
// external registry bytes, so an overlay edit invalidates the entry too.
func resolutionKey(manifestPath, externalPath string) (string, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return "", fmt.Errorf("read manifest: %w", err)
	}
	if externalPath != "" {
		ext, err := os.ReadFile(externalPath)
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("read external registry: %w", err)
		}
		data = append(data, ext...)
	}
	return cache.ResolutionKey(data), nil
}
