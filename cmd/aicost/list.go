package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joss/aicost/internal/catalog"
	"github.com/joss/aicost/internal/config"
	aistrings "github.com/joss/aicost/internal/strings"
)

func listCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog services",
		Long: `List the services in the catalog.

Examples:
  aicost list                # all services
  aicost list --filter cl    # prefix match on name or provider`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), config.Env().FetchTimeout)
			defer cancel()

			store, err := openCatalog(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			services, err := store.ListServices(ctx)
			if err != nil {
				return fmt.Errorf("list services: %w", err)
			}

			if filter != "" {
				var matched []catalog.Summary
				for _, s := range services {
					if aistrings.HasPrefixFold(s.Name, filter) || aistrings.HasPrefixFold(s.Provider, filter) {
						matched = append(matched, s)
					}
				}
				services = matched
			}

			newRenderer().Services(services)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "case-insensitive name/provider prefix filter")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <service-id>",
		Short: "Show a service with its model and plan pricing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), config.Env().FetchTimeout)
			defer cancel()

			store, err := openCatalog(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			svc, err := store.GetService(ctx, args[0])
			if err != nil {
				// Returned, not exited, so the deferred Close runs and
				// main owns the exit code.
				return err
			}
			if svc == nil {
				return errors.New("service lookup returned nothing")
			}

			newRenderer().Service(svc)
			return nil
		},
	}
}
