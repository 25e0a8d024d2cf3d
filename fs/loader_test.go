package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/chroma"
	"github.com/fwojciec/redline/fs"
	"github.com/fwojciec/redline/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("reads plain text", func(t *testing.T) {
		t.Parallel()

		path := writeDoc(t, t.TempDir(), "nda.txt", "Mutual NDA.\n")
		loader := fs.NewLoader(chroma.NewDetector(), nil)

		doc, err := loader.Load(path)

		require.NoError(t, err)
		assert.Equal(t, path, doc.Name)
		assert.Equal(t, "Mutual NDA.\n", doc.Text)
	})

	t.Run("reads markdown", func(t *testing.T) {
		t.Parallel()

		path := writeDoc(t, t.TempDir(), "msa.md", "# MSA\n")
		doc, err := fs.NewLoader(chroma.NewDetector(), nil).Load(path)

		require.NoError(t, err)
		assert.Equal(t, "# MSA\n", doc.Text)
	})

	t.Run("word documents load as placeholder", func(t *testing.T) {
		t.Parallel()

		path := writeDoc(t, t.TempDir(), "offer.docx", "PK\x03\x04")
		doc, err := fs.NewLoader(chroma.NewDetector(), nil).Load(path)

		require.NoError(t, err)
		assert.Equal(t, "[DOCX file uploaded: offer.docx]\n(Parsing not implemented in demo)", doc.Text)
	})

	t.Run("unsupported files load as placeholder", func(t *testing.T) {
		t.Parallel()

		loader := fs.NewLoader(&mock.FormatDetector{
			DetectFormatFn: func(string) string { return "" },
		}, nil)

		doc, err := loader.Load("/scans/contract.pdf")

		require.NoError(t, err)
		assert.Equal(t, "[Unsupported file type: contract.pdf]", doc.Text)
	})

	t.Run("missing text file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewLoader(chroma.NewDetector(), nil).Load(filepath.Join(t.TempDir(), "gone.txt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("reads stdin", func(t *testing.T) {
		t.Parallel()

		loader := fs.NewLoader(chroma.NewDetector(), strings.NewReader("pasted text"))
		doc, err := loader.Load(fs.StdinPath)

		require.NoError(t, err)
		assert.Equal(t, redline.Document{Name: "stdin", Text: "pasted text"}, doc)
	})

	t.Run("invalid UTF-8 is replaced", func(t *testing.T) {
		t.Parallel()

		path := writeDoc(t, t.TempDir(), "legacy.txt", "caf\xe9")
		doc, err := fs.NewLoader(chroma.NewDetector(), nil).Load(path)

		require.NoError(t, err)
		assert.Equal(t, "caf\uFFFD", doc.Text)
	})
}

func TestLoader_LoadAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeDoc(t, dir, "a.txt", "A")
	b := writeDoc(t, dir, "b.txt", "B")
	loader := fs.NewLoader(chroma.NewDetector(), nil)

	t.Run("keeps path order", func(t *testing.T) {
		t.Parallel()

		docs, err := loader.LoadAll(context.Background(), a, b)

		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "A", docs[0].Text)
		assert.Equal(t, "B", docs[1].Text)
	})

	t.Run("fails when any document fails", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadAll(context.Background(), a, filepath.Join(dir, "missing.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing.txt")
	})
}
