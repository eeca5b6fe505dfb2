package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tatianab/ghostbook/internal/engine"
	"github.com/tatianab/ghostbook/internal/simulate"
)

func (a *app) simulateCmd() *cobra.Command {
	var flags struct {
		parallel int
		ghost    string
		verbose  bool
	}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay an investigation of every ghost by following the hints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			catalog, err := a.loadCatalog(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if flags.ghost != "" {
				g, ok := catalog.Lookup(flags.ghost)
				if !ok {
					return fmt.Errorf("no ghost %q in the catalog", flags.ghost)
				}
				o, err := simulate.Hunt(ctx, engine.New(catalog), g)
				if err != nil {
					return err
				}
				writeTrace(out, o)
				return nil
			}

			parallel := a.cfg.Parallel
			if cmd.Flags().Changed("parallel") {
				parallel = flags.parallel
			}
			outcomes, err := simulate.Run(ctx, catalog, parallel)
			if err != nil {
				return err
			}

			t := newTable("GHOST", "CHECKS", "RESULT", "ORDER")
			for _, o := range outcomes {
				t.Row(o.Ghost.Name, fmt.Sprintf("%d", o.Checks()), outcomeLabel(o), checkOrder(o))
			}
			fmt.Fprintln(out, t.String())
			if flags.verbose {
				for _, o := range outcomes {
					fmt.Fprintln(out)
					writeTrace(out, o)
				}
			}

			s := simulate.Summarize(outcomes)
			fmt.Fprintf(out, "%d hunts: %d identified, %d tied, %.2f checks on average, most %d (%s)\n",
				s.Hunts, s.Identified, s.Tied, s.AverageChecks(), s.MostChecks, s.HardestGhost)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&flags.parallel, "parallel", "p", 4, "hunts to run at once (default $GHOSTBOOK_PARALLEL)")
	f.StringVarP(&flags.ghost, "ghost", "g", "", "hunt a single ghost by id or name and print each step")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "print every step of every hunt")
	return cmd
}

func outcomeLabel(o simulate.Outcome) string {
	switch {
	case len(o.Tied) > 0:
		return "tied with " + strings.Join(o.Tied, ", ")
	case o.Identified:
		return "identified"
	}
	return o.Summary.Kind.String()
}

func checkOrder(o simulate.Outcome) string {
	slugs := make([]string, len(o.Steps))
	for i, s := range o.Steps {
		slugs[i] = s.Evidence.Slug()
	}
	return strings.Join(slugs, " > ")
}

func writeTrace(w io.Writer, o simulate.Outcome) {
	fmt.Fprintf(w, "Hunting the %s (%s)\n", o.Ghost.Name, o.Ghost.Signature())
	for i, s := range o.Steps {
		result := "not found"
		if s.Found {
			result = "found"
		}
		fmt.Fprintf(w, "  %d. %-22s %-9s %2d left  %s\n", i+1, s.Evidence, result, s.Remaining, s.Summary)
	}
	fmt.Fprintf(w, "  => %s\n", o.Summary)
}
