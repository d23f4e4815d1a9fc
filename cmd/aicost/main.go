// Package main provides the aicost CLI entrypoint.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joss/aicost/internal/catalog"
	"github.com/joss/aicost/internal/config"
	"github.com/joss/aicost/internal/logging"
	"github.com/joss/aicost/internal/render"
	"github.com/joss/aicost/internal/selection"
	"github.com/joss/aicost/internal/share"
	"github.com/joss/aicost/internal/tui"
)

var (
	version = "0.1.0"
	dataDir string
	noColor bool
	log     = logging.New("cli")
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aicost",
		Short: "Compare AI service costs across models and subscription plans",
		Long: `aicost: browse a catalog of AI vendor offerings, select models and
plans with usage quantities, and see a running cost total you can
share as a URL.

Usage modes:
  aicost                 Start the interactive comparison TUI
  aicost --state TOKEN   Start the TUI from a shared selection
  aicost <command>       Run a specific command (see below)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor || config.Env().NoColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			state, _ := cmd.Flags().GetString("state")
			return runTUI(state)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", config.Env().DataDir,
		"directory holding the catalog database")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.Flags().String("state", "", "share token or URL to restore a selection from")

	rootCmd.AddCommand(
		listCmd(),
		showCmd(),
		costCmd(),
		stateCmd(),
		catalogCmd(),
		doctorCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openCatalog opens the catalog store, seeding the built-in services on
// a fresh database so the first run is never an empty screen.
func openCatalog(ctx context.Context) (*catalog.Store, error) {
	store, err := catalog.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	services, err := store.ListServices(ctx)
	if err == nil && len(services) == 0 {
		if err := store.Seed(ctx); err != nil {
			log.Warn("seed_failed", map[string]interface{}{"reason": err.Error()})
		}
	}
	return store, nil
}

func runTUI(stateArg string) error {
	env := config.Env()
	ctx, cancel := context.WithTimeout(context.Background(), env.FetchTimeout)
	defer cancel()

	store, err := openCatalog(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	selStore := selection.NewStore()
	hydrate(ctx, selStore, store, stateArg)

	return tui.Run(tui.Config{
		Reader:       store,
		Store:        selStore,
		BaseURL:      env.BaseURL,
		FetchTimeout: env.FetchTimeout,
	})
}

// hydrate restores selection state from a share token or URL, if one
// was given. A missing or malformed token means an empty selection,
// never a startup failure.
func hydrate(ctx context.Context, selStore *selection.Store, resolver share.Resolver, stateArg string) {
	raw := stateArg
	if raw == "" {
		raw = config.Env().State
	}
	if raw == "" {
		return
	}

	token := share.StateParam(raw)
	if token == "" {
		return
	}

	sels, err := share.Decode(ctx, token, resolver)
	if err != nil {
		log.Warn("state_ignored", map[string]interface{}{"reason": err.Error()})
		return
	}
	selStore.SetAll(sels)
}

func newRenderer() *render.Renderer {
	return render.New(render.IsTTY() && !noColor)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("aicost %s\n", version)
		},
	}
}
