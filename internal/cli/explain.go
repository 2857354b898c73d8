package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newExplainCmd creates the explain command.
//
// Explain answers "why is this dependency at this version": for every
// manifest package whose closure includes the named dependency, it shows
// the arbitrated version, whether the pin was direct, and which packages
// contributed the winning version.
func newExplainCmd() *cobra.Command {
	var mf manifestFlags

	cmd := &cobra.Command{
		Use:   "explain <dependency>",
		Short: "Show how a dependency's version was arbitrated",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			p, external, err := mf.load()
			if err != nil {
				return err
			}
			res, err := runResolve(c.Context(), p, external)
			if err != nil {
				return err
			}

			target := args[0]
			found := false
			for _, name := range res.Order {
				det, ok := res.Details[name][target]
				if !ok {
					continue
				}
				found = true

				fmt.Println(StyleTitle.Render(name))
				printKeyValue("version", det.Version)
				if det.IsDirect {
					printKeyValue("pinned", StyleSuccess.Render("directly in manifest"))
				} else {
					printKeyValue("pinned", "transitively")
				}
				if len(det.Contributors) > 0 {
					printKeyValue("contributors", strings.Join(det.Contributors, ", "))
				}
				fmt.Println()
			}

			if !found {
				printInfo("No package resolves %q", target)
				return nil
			}

			if dependents := res.Dependents(target); len(dependents) > 0 {
				printDetail("depended on by: %s", strings.Join(dependents, ", "))
			}
			return nil
		},
	}

	mf.register(cmd)
	return cmd
}
