package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/preflight/preflight/internal/adapters/outbound/gitsource"
	"github.com/preflight/preflight/internal/application"
)

func newDeployCmd() *cobra.Command {
	var (
		repoURL string
		dir     string
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Run the full deployment pipeline",
		Long:  "Clone the repository (or reuse an existing directory), analyze it, apply fixes, and install dependencies. Each stage reports its own result.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving directory: %w", err)
			}

			fetcher := gitsource.New(logger)
			svc := application.NewDeployService(
				fetcher,
				newAnalyzeService(logger),
				application.NewFixService(logger),
				logger,
			)

			pipeline, report, _ := svc.Run(cmd.Context(), repoURL, absDir)

			if report != nil {
				if err := writeReportFile(absDir, report); err != nil {
					logger.Warn("failed to persist analysis report", zap.Error(err))
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(pipeline); err != nil {
				return err
			}
			if !pipeline.Acquire.Ok() || !pipeline.Analyze.Ok() {
				return fmt.Errorf("deployment pipeline failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repoURL, "repo", "", "Repository URL to clone (omit to use an existing directory)")
	cmd.Flags().StringVar(&dir, "dir", ".", "Target project directory")

	return cmd
}
