package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deptower/pkg/render"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	manifestFlags
	format     string // dot or svg
	output     string // output file path (stdout if empty)
	transitive bool   // include dashed transitive edges
	versions   bool   // label direct edges with pinned versions
}

// newGraphCmd creates the graph command.
func newGraphCmd() *cobra.Command {
	opts := graphOpts{format: "dot", versions: true}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the dependency graph as DOT or SVG",
		Long: `Render the manifest's dependency graph. Direct pins appear as solid
edges labeled with the pinned version; with --transitive, dependencies a
package only reaches through intermediaries appear dashed.

Examples:
  deptower graph                         # DOT to stdout
  deptower graph --format svg -o deps.svg
  deptower graph --transitive`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runGraphCommand(c, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format (dot|svg)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.transitive, "transitive", false, "include transitive edges")
	cmd.Flags().BoolVar(&opts.versions, "versions", opts.versions, "label edges with pinned versions")

	return cmd
}

func runGraphCommand(c *cobra.Command, opts *graphOpts) error {
	ctx := c.Context()
	logger := loggerFromContext(ctx)

	p, external, err := opts.load()
	if err != nil {
		return err
	}
	res, err := runResolve(ctx, p, external)
	if err != nil {
		return err
	}

	dot := render.ToDOT(p.Packages, res, render.Options{
		Transitive: opts.transitive,
		Versions:   opts.versions,
	})

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	switch opts.format {
	case "dot":
		if _, err := out.Write([]byte(dot)); err != nil {
			return err
		}
	case "svg":
		spin := newSpinnerWithContext(ctx, "Rendering graph")
		spin.Start()
		svg, err := render.SVG(ctx, dot)
		spin.Stop()
		if err != nil {
			return err
		}
		if _, err := out.Write(svg); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (expected dot or svg)", opts.format)
	}

	if opts.output != "" {
		logger.Infof("Wrote %s graph to %s", opts.format, opts.output)
	}
	return nil
}
