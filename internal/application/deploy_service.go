package application

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/preflight/preflight/internal/domain"
)

// installTimeout bounds the external dependency install; expiry is
// fatal to the install stage only.
const installTimeout = 5 * time.Minute

// DeployService sequences acquire → analyze → fix → install. Each
// stage produces an explicit StageResult; fix-stage problems are
// non-fatal to the pipeline.
type DeployService struct {
	fetcher  domain.RepoFetcher
	analyzer *AnalyzeService
	fixer    *FixService
	log      *zap.Logger
}

func NewDeployService(fetcher domain.RepoFetcher, analyzer *AnalyzeService, fixer *FixService, log *zap.Logger) *DeployService {
	return &DeployService{fetcher: fetcher, analyzer: analyzer, fixer: fixer, log: log}
}

// Run executes the pipeline. The returned report and ledger reflect
// whatever stages completed; the caller decides whether to persist
// them.
func (s *DeployService) Run(ctx context.Context, repoURL, dir string) (domain.PipelineReport, *domain.AnalysisReport, *domain.FixLedger) {
	pipeline := domain.PipelineReport{
		Acquire: domain.StageResult{Status: domain.StageNotRun},
		Analyze: domain.StageResult{Status: domain.StageNotRun},
		Fix:     domain.StageResult{Status: domain.StageNotRun},
		Install: domain.StageResult{Status: domain.StageNotRun},
	}

	if repoURL != "" {
		if err := s.fetcher.Fetch(ctx, repoURL, dir); err != nil {
			pipeline.Acquire = domain.Failed(err.Error())
			return pipeline, nil, nil
		}
		pipeline.Acquire = domain.Succeeded()
	} else {
		pipeline.Acquire = domain.Skipped("using existing directory")
	}

	if _, err := os.Stat(dir); err != nil {
		pipeline.Analyze = domain.Failed(fmt.Sprintf("project directory not found: %v", err))
		return pipeline, nil, nil
	}
	report := s.analyzer.Analyze(dir)
	pipeline.Analyze = domain.Succeeded()

	ledger := s.fixer.Apply(dir, report)
	if ledger.Empty() {
		pipeline.Fix = domain.Skipped("no fixes needed")
	} else {
		pipeline.Fix = domain.Succeeded()
	}

	pipeline.Install = s.install(ctx, dir, report.Stack.Primary)

	s.log.Info("pipeline finished",
		zap.String("acquire", string(pipeline.Acquire.Status)),
		zap.String("analyze", string(pipeline.Analyze.Status)),
		zap.String("fix", string(pipeline.Fix.Status)),
		zap.String("install", string(pipeline.Install.Status)))
	return pipeline, report, ledger
}

// install runs the stack's dependency install command with a fixed
// timeout. Stacks without an install step are skipped, not failed.
func (s *DeployService) install(ctx context.Context, dir string, stack domain.StackKind) domain.StageResult {
	var cmd *exec.Cmd
	installCtx, cancel := context.WithTimeout(ctx, installTimeout)
	defer cancel()

	switch stack {
	case domain.StackNodeJS:
		cmd = exec.CommandContext(installCtx, "npm", "install")
	case domain.StackPython:
		if _, err := os.Stat(filepath.Join(dir, "requirements.txt")); err != nil {
			return domain.Skipped("no requirements.txt")
		}
		cmd = exec.CommandContext(installCtx, "pip", "install", "-r", "requirements.txt")
	default:
		return domain.Skipped("no install step for stack " + string(stack))
	}

	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		s.log.Error("dependency install failed",
			zap.String("stack", string(stack)), zap.ByteString("output", out), zap.Error(err))
		return domain.Failed(fmt.Sprintf("install failed: %v", err))
	}
	return domain.Succeeded()
}
