package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/deptower/pkg/buildinfo"
	"github.com/matzehuels/deptower/pkg/cache"
	"github.com/matzehuels/deptower/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	cacheSpec string // cache backend specifier
}

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080", cacheSpec: "memory"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP resolve API",
		Long: `Serve the resolver over HTTP. POST a manifest body to /api/v1/resolve
to receive the resolution result as JSON.

The cache backend is selected by --cache:
  memory             in-process LRU (default)
  none               caching disabled
  redis://host/0     shared Redis cache
  mongodb://host     shared MongoDB cache
  /some/path         file cache at that directory`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			logger := loggerFromContext(ctx)

			cc, err := cache.Open(ctx, opts.cacheSpec)
			if err != nil {
				return err
			}
			defer cc.Close()

			srv := server.New(server.Config{
				Addr:    opts.addr,
				Cache:   cc,
				Log:     logger,
				Version: buildinfo.Version,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.cacheSpec, "cache", opts.cacheSpec, "cache backend (memory|none|redis://|mongodb://|path)")

	return cmd
}
