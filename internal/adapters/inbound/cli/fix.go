package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/preflight/preflight/internal/adapters/outbound/tui"
	"github.com/preflight/preflight/internal/application"
)

func newFixCmd() *cobra.Command {
	var (
		dryRun bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Apply deployment fixes to a project tree",
		Long:  "Analyze the project, then run the remediation catalogue: port and host rewrites, start scripts, environment files, and a configuration guide. Reapplying is a no-op.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			report := newAnalyzeService(logger).Analyze(absPath)

			if dryRun {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"dry_run": true,
					"issues":  report.Issues,
				})
			}

			ledger := application.NewFixService(logger).Apply(absPath, report)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ledger)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderLedger(ledger))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report issues without mutating any file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the fix ledger as JSON")

	return cmd
}
