package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tatianab/ghostbook/internal/engine"
	"github.com/tatianab/ghostbook/internal/models"
)

func (a *app) identifyCmd() *cobra.Command {
	var flags struct {
		confirm string
		suspect string
		all     bool
		hints   int
		ask     bool
	}

	cmd := &cobra.Command{
		Use:   "identify",
		Short: "Rank the ghosts against the evidence found so far",
		Example: "  ghostbook identify --confirm emf,orb\n" +
			"  ghostbook identify -c freezing -s dots --ask",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := evidenceState(flags.confirm, flags.suspect)
			if err != nil {
				return err
			}
			catalog, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			e := engine.New(catalog)
			result := e.Classify(state)
			hints := e.SuggestNext(state, result)
			summary := e.Summarize(state, result)
			validation := e.Validate(state)

			ranked := result.Ranked
			if !flags.all {
				ranked = result.Remaining()
			}

			out := cmd.OutOrStdout()
			writeClassifications(out, ranked)
			fmt.Fprintln(out)
			writeHints(out, hints, flags.hints)
			fmt.Fprintln(out)
			writeIssues(out, validation.Issues)
			fmt.Fprintln(out, summary)

			if !flags.ask {
				return nil
			}
			g, err := a.newGuide(cmd.Context())
			if err != nil {
				return err
			}
			defer g.Close()
			advice, err := g.Advise(cmd.Context(), state, result, hints, summary)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nGuide: %s\n", advice)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.confirm, "confirm", "c", "", "confirmed evidence (comma separated)")
	f.StringVarP(&flags.suspect, "suspect", "s", "", "suspected evidence (comma separated)")
	f.BoolVar(&flags.all, "all", false, "include ghosts that are ruled out")
	f.IntVar(&flags.hints, "hints", 3, "number of suggestions to show (0 for all)")
	f.BoolVar(&flags.ask, "ask", false, "ask the guide for a tip (needs GEMINI_API_KEY)")
	return cmd
}

// evidenceState builds a state from comma-separated lists. A kind named in
// both lists is confirmed.
func evidenceState(confirm, suspect string) (models.EvidenceState, error) {
	state := models.EvidenceState{}
	suspected, err := models.ParseEvidenceList(suspect)
	if err != nil {
		return nil, fmt.Errorf("--suspect: %w", err)
	}
	for _, k := range suspected {
		state[k] = models.Suspected
	}
	confirmed, err := models.ParseEvidenceList(confirm)
	if err != nil {
		return nil, fmt.Errorf("--confirm: %w", err)
	}
	for _, k := range confirmed {
		state[k] = models.Confirmed
	}
	return state, nil
}
