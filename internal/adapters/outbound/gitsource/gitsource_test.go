package gitsource_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/preflight/preflight/internal/adapters/outbound/gitsource"
)

func TestIsRepo_PlainDirectory(t *testing.T) {
	assert.False(t, gitsource.New(zap.NewNop()).IsRepo(t.TempDir()))
}

func TestCommitHash_PlainDirectory(t *testing.T) {
	_, err := gitsource.New(zap.NewNop()).CommitHash(t.TempDir())
	assert.Error(t, err)
}

func TestFetch_InvalidSource(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "checkout")
	err := gitsource.New(zap.NewNop()).Fetch(context.Background(),
		filepath.Join(t.TempDir(), "no-such-repo"), dir)
	assert.Error(t, err)
}
