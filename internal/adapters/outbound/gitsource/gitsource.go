package gitsource

import (
	"context"
	"fmt"
	"os"

	git "github.com/go-git/go-git/v5"
	"go.uber.org/zap"
)

// Fetcher implements domain.RepoFetcher using go-git.
type Fetcher struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Fetcher {
	return &Fetcher{log: log}
}

// Fetch clones url into dir, removing a stale checkout first. Depth 1:
// the pipeline only needs a working tree, not history. The caller owns
// the context deadline.
func (f *Fetcher) Fetch(ctx context.Context, url, dir string) error {
	if _, err := os.Stat(dir); err == nil {
		f.log.Info("removing existing checkout", zap.String("dir", dir))
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing existing checkout: %w", err)
		}
	}

	f.log.Info("cloning repository", zap.String("url", url), zap.String("dir", dir))
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:   url,
		Depth: 1,
	})
	if err != nil {
		return fmt.Errorf("cloning %s: %w", url, err)
	}
	return nil
}

// IsRepo reports whether dir is a git working tree.
func (f *Fetcher) IsRepo(dir string) bool {
	_, err := git.PlainOpen(dir)
	return err == nil
}

// CommitHash returns the HEAD hash of the checkout, used to annotate
// reports and ledgers.
func (f *Fetcher) CommitHash(dir string) (string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}
	return head.Hash().String(), nil
}
