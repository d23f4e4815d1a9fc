package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joss/aicost/internal/backup"
	"github.com/joss/aicost/internal/catalog"
	"github.com/joss/aicost/internal/config"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the local service catalog",
	}
	cmd.AddCommand(catalogSeedCmd(), catalogImportCmd(),
		catalogExportCmd(), catalogRestoreCmd(), catalogInspectCmd())
	return cmd
}

func catalogSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in illustrative catalog",
		Long: `Insert or refresh the built-in illustrative services. Safe to run
repeatedly; existing entries with the same ids are replaced.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), config.Env().FetchTimeout)
			defer cancel()

			store, err := catalog.Open(dataDir)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			if err := store.Seed(ctx); err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}
			fmt.Println("Catalog seeded")
			return nil
		},
	}
}

func catalogImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <glob>",
		Short: "Import catalog JSON files",
		Long: `Import services from JSON files matching a glob pattern.
Patterns support doublestar globs.

Examples:
  aicost catalog import catalogs/openai.json
  aicost catalog import 'catalogs/**/*.json'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), config.Env().FetchTimeout)
			defer cancel()

			store, err := catalog.Open(dataDir)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			n, err := catalog.NewImporter(store).ImportGlob(ctx, args[0])
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			fmt.Printf("Imported %d service(s)\n", n)
			return nil
		},
	}
}

func catalogExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.tar.gz>",
		Short: "Export the catalog to an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), config.Env().FetchTimeout)
			defer cancel()

			store, err := catalog.Open(dataDir)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			meta, err := backup.NewManager(store).Export(ctx, args[0])
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Printf("Exported %d service(s), %d model(s), %d plan(s) to %s\n",
				meta.Services, meta.Models, meta.Plans, args[0])
			return nil
		},
	}
}

func catalogRestoreCmd() *cobra.Command {
	var merge bool
	cmd := &cobra.Command{
		Use:   "restore <file.tar.gz>",
		Short: "Restore the catalog from an archive",
		Long: `Restore services from an archive created by "catalog export".
Replaces the current catalog unless --merge is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), config.Env().FetchTimeout)
			defer cancel()

			store, err := catalog.Open(dataDir)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			meta, err := backup.NewManager(store).Restore(ctx, args[0], merge)
			if err != nil {
				return fmt.Errorf("restore: %w", err)
			}
			fmt.Printf("Restored %d service(s) from %s\n", meta.Services, args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&merge, "merge", false, "keep existing services instead of replacing them")
	return cmd
}

func catalogInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.tar.gz>",
		Short: "Show archive contents without restoring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := backup.Inspect(args[0])
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			fmt.Printf("Version:  %s\nCreated:  %s\nServices: %d\nModels:   %d\nPlans:    %d\n",
				meta.Version, meta.CreatedAt.Format("2006-01-02 15:04:05 UTC"),
				meta.Services, meta.Models, meta.Plans)
			return nil
		},
	}
}
