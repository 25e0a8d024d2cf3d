package git_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/redline/git"
	"github.com/fwojciec/redline/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a temporary git repository holding two versions of
// contract.txt.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	runGit(t, dir, "init", "-b", "main")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")

	writeFile(t, dir, "contract.txt", "1. Term: One year.\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "Initial draft")

	writeFile(t, dir, "other.txt", "unrelated\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "Unrelated file")

	writeFile(t, dir, "contract.txt", "1. Term: Two years.\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "Extend term")

	return dir
}

// runGit executes a git command in the given directory.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "command git %v failed: %s", args, string(output))
	return string(output)
}

// writeFile creates a file with the given content.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
	require.NoError(t, err)
}

func TestRunner_Log(t *testing.T) {
	t.Parallel()

	t.Run("returns commits touching the path newest first", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)

		hashes, err := git.NewRunner().Log(context.Background(), dir, "contract.txt", 10)

		require.NoError(t, err)
		require.Len(t, hashes, 2)
		head := strings.TrimSpace(runGit(t, dir, "rev-parse", "HEAD"))
		assert.Equal(t, head, hashes[0])
	})

	t.Run("respects limit", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)

		hashes, err := git.NewRunner().Log(context.Background(), dir, "contract.txt", 1)

		require.NoError(t, err)
		assert.Len(t, hashes, 1)
	})

	t.Run("fails outside a repository", func(t *testing.T) {
		t.Parallel()
		if _, err := exec.LookPath("git"); err != nil {
			t.Skip("git not installed")
		}

		_, err := git.NewRunner().Log(context.Background(), t.TempDir(), "contract.txt", 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "git log failed")
	})
}

func TestRunner_Show(t *testing.T) {
	t.Parallel()

	t.Run("returns content at revision", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		r := git.NewRunner()

		head, err := r.Show(context.Background(), dir, "HEAD", "contract.txt")
		require.NoError(t, err)
		assert.Equal(t, "1. Term: Two years.\n", head)

		prev, err := r.Show(context.Background(), dir, "HEAD~2", "contract.txt")
		require.NoError(t, err)
		assert.Equal(t, "1. Term: One year.\n", prev)
	})

	t.Run("unknown path fails", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)

		_, err := git.NewRunner().Show(context.Background(), dir, "HEAD", "missing.txt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "git show failed")
	})
}

func TestSplitRevPath(t *testing.T) {
	t.Parallel()

	rev, path, ok := git.SplitRevPath("HEAD~1:contracts/nda.txt")
	assert.True(t, ok)
	assert.Equal(t, "HEAD~1", rev)
	assert.Equal(t, "contracts/nda.txt", path)

	for _, s := range []string{"nda.txt", ":nda.txt", "HEAD:"} {
		_, _, ok := git.SplitRevPath(s)
		assert.False(t, ok, s)
	}
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("loads document from runner", func(t *testing.T) {
		t.Parallel()

		runner := &mock.GitRunner{
			ShowFn: func(_ context.Context, repoPath, rev, path string) (string, error) {
				assert.Equal(t, "/repo", repoPath)
				assert.Equal(t, "v1", rev)
				assert.Equal(t, "nda.txt", path)
				return "text", nil
			},
		}
		l := &git.Loader{Runner: runner, RepoPath: "/repo"}

		doc, err := l.Load(context.Background(), "v1:nda.txt")

		require.NoError(t, err)
		assert.Equal(t, "v1:nda.txt", doc.Name)
		assert.Equal(t, "text", doc.Text)
	})

	t.Run("rejects malformed reference", func(t *testing.T) {
		t.Parallel()

		l := &git.Loader{Runner: &mock.GitRunner{}, RepoPath: "/repo"}
		_, err := l.Load(context.Background(), "nda.txt")
		assert.Error(t, err)
	})

	t.Run("propagates runner error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		l := &git.Loader{Runner: &mock.GitRunner{
			ShowFn: func(context.Context, string, string, string) (string, error) { return "", boom },
		}, RepoPath: "/repo"}

		_, err := l.Load(context.Background(), "v1:nda.txt")
		assert.ErrorIs(t, err, boom)
	})
}
