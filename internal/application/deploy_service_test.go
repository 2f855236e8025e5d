package application_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/preflight/preflight/internal/application"
	"github.com/preflight/preflight/internal/domain"
)

type fakeFetcher struct {
	err    error
	called bool
}

func (f *fakeFetcher) Fetch(_ context.Context, _, _ string) error {
	f.called = true
	return f.err
}

func (f *fakeFetcher) CommitHash(string) (string, error) { return "", errors.New("not a repo") }

func newTestDeployService(fetcher domain.RepoFetcher) *application.DeployService {
	log := zap.NewNop()
	return application.NewDeployService(fetcher, newTestAnalyzer(), application.NewFixService(log), log)
}

func TestDeployService_ExistingDirectorySkipsAcquire(t *testing.T) {
	// setup.py keeps the install stage off the network.
	root := t.TempDir()
	writeFile(t, root, "setup.py", "from setuptools import setup\nsetup(name=\"demo\")\n")
	writeFile(t, root, "app.py", "def main():\n    pass\n\nif __name__ == \"__main__\":\n    main()\n")

	fetcher := &fakeFetcher{}
	pipeline, report, ledger := newTestDeployService(fetcher).Run(context.Background(), "", root)

	assert.False(t, fetcher.called)
	assert.Equal(t, domain.StageSkipped, pipeline.Acquire.Status)
	assert.Equal(t, domain.StageSucceeded, pipeline.Analyze.Status)
	assert.Equal(t, domain.StageSucceeded, pipeline.Fix.Status)
	assert.Equal(t, domain.StageSkipped, pipeline.Install.Status)
	require.NotNil(t, report)
	assert.Equal(t, domain.StackPython, report.Stack.Primary)
	require.NotNil(t, ledger)
	assert.False(t, ledger.Empty())
}

func TestDeployService_FetchFailureAbortsPipeline(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("authentication required")}
	dir := filepath.Join(t.TempDir(), "checkout")

	pipeline, report, ledger := newTestDeployService(fetcher).Run(context.Background(), "https://example.com/repo.git", dir)

	assert.Equal(t, domain.StageFailed, pipeline.Acquire.Status)
	assert.Contains(t, pipeline.Acquire.Reason, "authentication required")
	assert.Equal(t, domain.StageNotRun, pipeline.Analyze.Status)
	assert.Equal(t, domain.StageNotRun, pipeline.Fix.Status)
	assert.Equal(t, domain.StageNotRun, pipeline.Install.Status)
	assert.Nil(t, report)
	assert.Nil(t, ledger)
}

func TestDeployService_MissingDirectoryFailsAnalyze(t *testing.T) {
	pipeline, report, _ := newTestDeployService(&fakeFetcher{}).Run(
		context.Background(), "", filepath.Join(t.TempDir(), "missing"))

	assert.Equal(t, domain.StageSkipped, pipeline.Acquire.Status)
	assert.Equal(t, domain.StageFailed, pipeline.Analyze.Status)
	assert.Nil(t, report)
}

func TestDeployService_InstallSkippedWithoutRequirements(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "setup.py", "from setuptools import setup\nsetup(name=\"demo\")\n")

	pipeline, _, _ := newTestDeployService(&fakeFetcher{}).Run(context.Background(), "", root)

	assert.Equal(t, domain.StageSkipped, pipeline.Install.Status)
	assert.Equal(t, "no requirements.txt", pipeline.Install.Reason)
}

func TestDeployService_InstallSkippedForUnknownStack(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes.txt", "nothing to deploy")

	pipeline, _, _ := newTestDeployService(&fakeFetcher{}).Run(context.Background(), "", root)

	assert.Equal(t, domain.StageSkipped, pipeline.Install.Status)
}
