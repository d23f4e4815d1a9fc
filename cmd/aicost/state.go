package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joss/aicost/internal/config"
	"github.com/joss/aicost/internal/selection"
	"github.com/joss/aicost/internal/share"
)

func stateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect and build share tokens",
	}
	cmd.AddCommand(stateDecodeCmd(), stateEncodeCmd())
	return cmd
}

func stateDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <token|url>",
		Short: "Decode a share token into JSON selection state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), config.Env().FetchTimeout)
			defer cancel()

			store, err := openCatalog(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			token := share.StateParam(args[0])
			if token == "" {
				return errors.New("no state parameter found")
			}

			sels, err := share.Decode(ctx, token, store)
			if err != nil {
				return fmt.Errorf("decode state: %w", err)
			}

			out, err := json.MarshalIndent(sels, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func stateEncodeCmd() *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "encode <selections.json>",
		Short: "Encode a JSON selection file into a share URL",
		Long: `Encode selection state into a share URL. The input file holds a
JSON array of service selections, the same shape "state decode" prints.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read selections: %w", err)
			}

			var sels []selection.ServiceSelection
			if err := json.Unmarshal(data, &sels); err != nil {
				return fmt.Errorf("parse selections: %w", err)
			}

			token, err := share.Encode(sels)
			if err != nil {
				return fmt.Errorf("encode state: %w", err)
			}

			if base == "" {
				base = config.Env().BaseURL
			}
			fmt.Println(share.BuildURL(base, token))
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base-url", "", "base URL for the share link")
	return cmd
}
