// Package git provides access to contract versions via the git CLI.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var _ redline.GitRunner = (*Runner)(nil)

// Runner executes git commands via shell.
type Runner struct{}

// NewRunner creates a new git runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Log returns hashes of commits that touched path, newest first, limited to n commits.
func (r *Runner) Log(ctx context.Context, repoPath, path string, limit int) ([]string, error) {
	output, err := run(ctx, repoPath, "log", "--format=%H", fmt.Sprintf("-n%d", limit), "--", path)
	if err != nil {
		return nil, err
	}

	var hashes []string
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line != "" {
			hashes = append(hashes, line)
		}
	}
	return hashes, nil
}

// Show returns the content of path at rev.
func (r *Runner) Show(ctx context.Context, repoPath, rev, path string) (string, error) {
	return run(ctx, repoPath, "show", rev+":"+path)
}

func run(ctx context.Context, repoPath string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", repoPath}, args...)...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("git %s failed: %s", args[0], strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], err)
	}
	return string(output), nil
}

// SplitRevPath splits "rev:path" into its parts.
// It reports false when s has no revision or no path.
func SplitRevPath(s string) (rev, path string, ok bool) {
	rev, path, found := strings.Cut(s, ":")
	if !found || rev == "" || path == "" {
		return "", "", false
	}
	return rev, path, true
}

// Loader loads documents named "rev:path" from a repository.
type Loader struct {
	Runner   redline.GitRunner
	RepoPath string
}

// Load fetches the document at "rev:path". The document name is the input.
func (l *Loader) Load(ctx context.Context, revPath string) (redline.Document, error) {
	rev, path, ok := SplitRevPath(revPath)
	if !ok {
		return redline.Document{}, fmt.Errorf("%q is not of the form rev:path", revPath)
	}
	text, err := l.Runner.Show(ctx, l.RepoPath, rev, path)
	if err != nil {
		return redline.Document{}, err
	}
	return redline.Document{Name: revPath, Text: text}, nil
}
