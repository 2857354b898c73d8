package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deptower/pkg/bump"
)

// bumpOpts holds the command-line flags for the bump command.
type bumpOpts struct {
	manifestFlags
	part      string // which version segment to increment
	propagate bool   // rewrite dependents' pins
	dryRun    bool   // show changes without saving
}

// newBumpCmd creates the bump command.
func newBumpCmd() *cobra.Command {
	opts := bumpOpts{part: "patch"}

	cmd := &cobra.Command{
		Use:   "bump <package>",
		Short: "Increment a package version in the manifest",
		Long: `Increment one segment of a package's version. Floating markers like
.NEXT survive the bump. With --propagate, every package that depends on
the bumped one (directly or transitively) has its pin updated too.

Examples:
  deptower bump core                      # patch bump
  deptower bump core --part minor
  deptower bump core --part build         # increment the build number
  deptower bump core --propagate          # update dependents' pins`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBumpCommand(c, &opts, args[0])
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.part, "part", opts.part, "version segment to bump (major|minor|patch|build)")
	cmd.Flags().BoolVar(&opts.propagate, "propagate", false, "update dependents' pins to the new version")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "show changes without writing the manifest")

	return cmd
}

func runBumpCommand(c *cobra.Command, opts *bumpOpts, name string) error {
	part, err := parsePart(opts.part)
	if err != nil {
		return err
	}

	p, external, err := opts.load()
	if err != nil {
		return err
	}

	res, err := runResolve(c.Context(), p, external)
	if err != nil {
		return err
	}

	changes, err := bump.Package(p, name, part, opts.propagate, res)
	if err != nil {
		return err
	}

	for _, ch := range changes {
		if ch.Target == "" {
			printSuccess("%s: %s %s %s", ch.Package, ch.From, iconArrow, ch.To)
		} else {
			printDetail("%s pins %s: %s %s %s", ch.Package, ch.Target, ch.From, iconArrow, ch.To)
		}
	}

	if opts.dryRun {
		printInfo("Dry run, manifest not written")
		return nil
	}
	if err := p.Save(opts.file); err != nil {
		return err
	}
	printFile(opts.file)
	return nil
}

// parsePart maps a --part flag value to a bump part.
func parsePart(s string) (bump.Part, error) {
	switch s {
	case "major":
		return bump.Major, nil
	case "minor":
		return bump.Minor, nil
	case "patch":
		return bump.Patch, nil
	case "build":
		return bump.Build, nil
	}
	return 0, fmt.Errorf("unknown part %q (expected major, minor, patch, or build)", s)
}
