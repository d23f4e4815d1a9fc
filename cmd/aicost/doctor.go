package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joss/aicost/internal/selftest"
)

func doctorCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the local installation is healthy",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := selftest.Run(context.Background(), dataDir)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				printReport(report)
			}

			if report.Status == "unhealthy" {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the report as JSON")
	return cmd
}

func printReport(report *selftest.Report) {
	names := make([]string, 0, len(report.Components))
	for name := range report.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c := report.Components[name]
		mark := color.GreenString("✓")
		switch c.Status {
		case "degraded":
			mark = color.YellowString("!")
		case "error":
			mark = color.RedString("✗")
		}
		line := fmt.Sprintf("%s %-12s %s (%dms)", mark, name, c.Status, c.Latency)
		if c.Detail != "" {
			line += "  " + c.Detail
		}
		if c.Error != "" {
			line += "  " + c.Error
		}
		fmt.Println(line)
	}
	fmt.Printf("\nOverall: %s\n", report.Status)
}
