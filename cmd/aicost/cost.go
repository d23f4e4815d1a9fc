package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joss/aicost/internal/config"
	"github.com/joss/aicost/internal/cost"
	"github.com/joss/aicost/internal/share"
)

func costCmd() *cobra.Command {
	var state string
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Compute the cost breakdown of a shared selection",
		Long: `Decode a share token (or full share URL) and print the cost
breakdown it resolves to against the current catalog.

Examples:
  aicost cost --state 'https://aicost.dev/compare?state=%5B...%5D'
  aicost cost --state '%5B...%5D'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if state == "" {
				return errors.New("--state is required")
			}

			ctx, cancel := context.WithTimeout(context.Background(), config.Env().FetchTimeout)
			defer cancel()

			store, err := openCatalog(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			token := share.StateParam(state)
			if token == "" {
				return errors.New("no state parameter found")
			}

			sels, err := share.Decode(ctx, token, store)
			if err != nil {
				return fmt.Errorf("decode state: %w", err)
			}

			r := newRenderer()
			r.Breakdown(cost.Breakdown(sels), cost.Compute(sels))
			return nil
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "share token or URL")
	return cmd
}
