package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/preflight/preflight/internal/adapters/outbound/classifier"
	"github.com/preflight/preflight/internal/adapters/outbound/manifest"
	"github.com/preflight/preflight/internal/adapters/outbound/probe"
	"github.com/preflight/preflight/internal/adapters/outbound/scanner"
	"github.com/preflight/preflight/internal/adapters/outbound/tui"
	"github.com/preflight/preflight/internal/application"
)

// reportFileName is written into the analyzed project so later stages
// and the web interface can pick the report up.
const reportFileName = "preflight-report.json"

func newAnalyzeService(log *zap.Logger) *application.AnalyzeService {
	return application.NewAnalyzeService(
		scanner.New(log),
		classifier.New(log),
		manifest.New(log),
		probe.New(log),
		log,
	)
}

func newAnalyzeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a project tree for deployment readiness",
		Long:  "Scan the project structure, classify the technology stack, extract dependencies, probe configuration, and report deployment blockers.",
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

			if err := writeReportFile(absPath, report); err != nil {
				logger.Warn("failed to persist analysis report", zap.Error(err))
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderReport(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the report as JSON")

	return cmd
}

func writeReportFile(root string, report any) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(root, reportFileName), data, 0o644)
}
