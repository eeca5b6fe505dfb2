package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tatianab/ghostbook/internal/models"
)

func (a *app) ghostsCmd() *cobra.Command {
	var flags struct {
		evidence string
		search   string
	}

	cmd := &cobra.Command{
		Use:   "ghosts",
		Short: "List the ghosts in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			ghosts := catalog.Ghosts
			if flags.evidence != "" {
				kinds, err := models.ParseEvidenceList(flags.evidence)
				if err != nil {
					return err
				}
				ghosts = catalog.WithEvidence(models.NewEvidenceSet(kinds...))
			}
			if flags.search != "" {
				ghosts = filterGhosts(ghosts, catalog.Search(flags.search))
			}
			writeGhosts(cmd.OutOrStdout(), ghosts)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.evidence, "evidence", "e", "", "only ghosts that show all of these evidence kinds (comma separated)")
	f.StringVarP(&flags.search, "search", "s", "", "only ghosts whose id or name contains this text")

	cmd.AddCommand(a.exportCmd(), catalogsCmd())
	return cmd
}

// filterGhosts keeps the ghosts in list that also appear in keep, in list order.
func filterGhosts(list, keep []models.Ghost) []models.Ghost {
	ids := make(map[string]bool, len(keep))
	for _, g := range keep {
		ids[g.ID] = true
	}
	var out []models.Ghost
	for _, g := range list {
		if ids[g.ID] {
			out = append(out, g)
		}
	}
	return out
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export PATH",
		Short: "Write the catalog to a YAML file for editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := catalog.Save(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d ghosts to %s\n", catalog.Len(), args[0])
			return nil
		},
	}
}

func catalogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogs DIR",
		Short: "List the catalog files in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := models.ListCatalogs(args[0])
			if err != nil {
				return fmt.Errorf("list catalogs: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintf(out, "No catalogs in %s\n", args[0])
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}
