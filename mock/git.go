package mock

import (
	"context"

	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var _ redline.GitRunner = (*GitRunner)(nil)

// GitRunner is a mock implementation of redline.GitRunner.
type GitRunner struct {
	LogFn  func(ctx context.Context, repoPath, path string, limit int) ([]string, error)
	ShowFn func(ctx context.Context, repoPath, rev, path string) (string, error)
}

func (g *GitRunner) Log(ctx context.Context, repoPath, path string, limit int) ([]string, error) {
	return g.LogFn(ctx, repoPath, path, limit)
}

func (g *GitRunner) Show(ctx context.Context, repoPath, rev, path string) (string, error) {
	return g.ShowFn(ctx, repoPath, rev, path)
}
