package application

import (
	"os"

	"go.uber.org/zap"

	"github.com/preflight/preflight/internal/domain"
)

// AnalyzeService runs the read phase: scan, classify, inspect, probe,
// detect, recommend. It never mutates the tree and never returns an
// error. A missing or unreadable root degrades to an empty report.
type AnalyzeService struct {
	scanner    domain.ProjectScanner
	classifier domain.StackClassifier
	inspector  domain.DependencyInspector
	prober     domain.ConfigProber
	log        *zap.Logger
}

func NewAnalyzeService(
	scanner domain.ProjectScanner,
	classifier domain.StackClassifier,
	inspector domain.DependencyInspector,
	prober domain.ConfigProber,
	log *zap.Logger,
) *AnalyzeService {
	return &AnalyzeService{
		scanner:    scanner,
		classifier: classifier,
		inspector:  inspector,
		prober:     prober,
		log:        log,
	}
}

// Analyze builds a fresh report from a snapshot of the tree. The report
// is a pure function of the tree at scan time; no state carries across
// runs.
func (s *AnalyzeService) Analyze(root string) *domain.AnalysisReport {
	s.log.Info("starting project analysis", zap.String("root", root))

	report := &domain.AnalysisReport{
		Root:  root,
		Stack: domain.Stack{Primary: domain.StackUnknown},
		Structure: domain.Structure{
			FileTypes: map[string]int{},
		},
	}

	if _, err := os.Stat(root); err != nil {
		s.log.Error("project directory not found", zap.String("root", root), zap.Error(err))
		return report
	}

	report.Structure = s.scanner.Scan(root)
	report.Stack = s.classifier.Classify(root)
	report.Dependencies = s.inspector.Inspect(root, report.Stack)
	report.Configuration = s.prober.Probe(root)
	report.Issues = DetectIssues(root, report.Stack, report.Structure, report.Configuration, s.log)
	report.Recommendations = domain.Recommend(report)

	s.log.Info("project analysis completed",
		zap.String("primary", string(report.Stack.Primary)),
		zap.Int("files", report.Structure.FileCount),
		zap.Int("issues", len(report.Issues)))
	return report
}
