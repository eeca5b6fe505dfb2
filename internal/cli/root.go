// Package cli wires the ghostbook commands.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tatianab/ghostbook/internal/config"
	"github.com/tatianab/ghostbook/internal/guide"
	"github.com/tatianab/ghostbook/internal/logging"
	"github.com/tatianab/ghostbook/internal/models"
	"github.com/tatianab/ghostbook/internal/tui"
)

// app carries state shared by every command.
type app struct {
	cfg         *config.Config
	catalogPath string
	logCloser   io.Closer
}

// skipSetup marks commands that run without loading the environment.
const skipSetup = "ghostbook/skip-setup"

// newRoot builds the command tree. Running it without a subcommand opens the
// interactive journal.
func newRoot(version string) (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "ghostbook",
		Short: "Deduce the ghost type from the evidence you have found",
		Long: "Ghostbook ranks every ghost in the catalog against the evidence you\n" +
			"have confirmed and suggests which piece of equipment to use next.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: a.runJournal,
	}
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "ghost catalog YAML file (default: built-in catalog, or $GHOSTBOOK_CATALOG)")

	root.AddCommand(
		a.ghostsCmd(),
		a.identifyCmd(),
		a.simulateCmd(),
		versionCmd(version),
	)
	return root, a
}

// Execute runs the command tree against os.Args.
func Execute(ctx context.Context, version string) error {
	root, a := newRoot(version)
	defer a.closeLog()
	return root.ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command) error {
	if _, ok := cmd.Annotations[skipSetup]; ok {
		return nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.catalogPath != "" {
		cfg.CatalogPath = a.catalogPath
	}
	a.cfg = cfg

	// The journal owns the terminal, so it only logs to a file.
	var fallback io.Writer = cmd.ErrOrStderr()
	if cmd == cmd.Root() {
		fallback = nil
	}
	closer, err := logging.Configure(cfg, fallback)
	if err != nil {
		return err
	}
	a.logCloser = closer
	return nil
}

// closeLog releases the log file. It runs whether or not the command failed.
func (a *app) closeLog() error {
	if a.logCloser == nil {
		return nil
	}
	err := a.logCloser.Close()
	a.logCloser = nil
	return err
}

func (a *app) newCache() *models.Cache {
	return models.NewCache(models.FileLoader(a.cfg.CatalogPath), a.cfg.CatalogTTL)
}

func (a *app) loadCatalog(ctx context.Context) (*models.Catalog, error) {
	catalog, err := a.newCache().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logging.For("cli").Debug("catalog loaded", "path", a.cfg.CatalogPath, "ghosts", catalog.Len())
	return catalog, nil
}

func (a *app) newGuide(ctx context.Context) (*guide.Guide, error) {
	if !a.cfg.GuideEnabled() {
		return nil, fmt.Errorf("the guide needs GEMINI_API_KEY to be set")
	}
	return guide.New(ctx, a.cfg.GeminiAPIKey, a.cfg.GeminiModel)
}

func (a *app) runJournal(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var advisor tui.Advisor
	if a.cfg.GuideEnabled() {
		g, err := a.newGuide(ctx)
		if err != nil {
			return err
		}
		defer g.Close()
		advisor = g
	}
	return tui.Run(ctx, a.newCache(), advisor)
}

func versionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: ""},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ghostbook %s\n", version)
		},
	}
}
