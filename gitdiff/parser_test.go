package gitdiff_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/gitdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRedline_EmptyInput(t *testing.T) {
	t.Parallel()

	entries, err := gitdiff.ParseRedline(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseRedline_ModifiedFile(t *testing.T) {
	t.Parallel()

	input := `diff --git a/nda.txt b/nda.txt
index 1234567..abcdefg 100644
--- a/nda.txt
+++ b/nda.txt
@@ -1,4 +1,4 @@
 Mutual Non-Disclosure Agreement
-Term: two years.
-Law: Delaware.
+Term: five years.
+Law: New York.
 Signatures follow.
`

	entries, err := gitdiff.ParseRedline(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []redline.DiffEntry{
		{
			Label: "Line 1",
			Left:  "Mutual Non-Disclosure Agreement",
			Right: "Mutual Non-Disclosure Agreement",
			Kind:  redline.DiffSame,
		},
		{
			Label: "Lines 2-3",
			Left:  "Term: two years.\nLaw: Delaware.",
			Right: "Term: five years.\nLaw: New York.",
			Kind:  redline.DiffChanged,
		},
		{
			Label: "Line 4",
			Left:  "Signatures follow.",
			Right: "Signatures follow.",
			Kind:  redline.DiffSame,
		},
	}, entries)
}

func TestParseRedline_AddedAndRemovedRuns(t *testing.T) {
	t.Parallel()

	input := `diff --git a/msa.txt b/msa.txt
--- a/msa.txt
+++ b/msa.txt
@@ -10,3 +10,3 @@
 Fees are fixed.
-Either party may assign.
 Notices in writing.
+Data stays in the EU.
`

	entries, err := gitdiff.ParseRedline(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, redline.DiffEntry{Label: "Line 11", Left: "Either party may assign.", Kind: redline.DiffRemoved}, entries[1])
	assert.Equal(t, redline.DiffEntry{Label: "Line 12", Right: "Data stays in the EU.", Kind: redline.DiffAdded}, entries[3])
	assert.NoError(t, redline.ValidateDiffEntries(entries))
}

func TestParseRedline_PeelsLinesEqualOnBothSides(t *testing.T) {
	t.Parallel()

	input := `diff --git a/msa.txt b/msa.txt
--- a/msa.txt
+++ b/msa.txt
@@ -1,4 +1,5 @@
 1. Scope.
-2. Fees.
-4. Law.
+2. Fees.
+3. Audit rights.
+4. Law.
 5. Notices.
`

	entries, err := gitdiff.ParseRedline(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []redline.DiffEntry{
		{Label: "Lines 1-2", Left: "1. Scope.\n2. Fees.", Right: "1. Scope.\n2. Fees.", Kind: redline.DiffSame},
		{Label: "Line 3", Right: "3. Audit rights.", Kind: redline.DiffAdded},
		{Label: "Lines 3-4", Left: "4. Law.\n5. Notices.", Right: "4. Law.\n5. Notices.", Kind: redline.DiffSame},
	}, entries)
	assert.NoError(t, redline.ValidateDiffEntries(entries))
}

func TestParseRedline_MultipleFilesPrefixLabels(t *testing.T) {
	t.Parallel()

	input := `diff --git a/a.txt b/a.txt
--- a/a.txt
+++ b/a.txt
@@ -1 +1 @@
-old
+new
diff --git a/b.txt b/b.txt
--- a/b.txt
+++ b/b.txt
@@ -1 +1 @@
-before
+after
`

	entries, err := gitdiff.ParseRedline(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt: Line 1", entries[0].Label)
	assert.Equal(t, "b.txt: Line 1", entries[1].Label)
}

func TestAligner_Align(t *testing.T) {
	t.Parallel()

	t.Run("changed line", func(t *testing.T) {
		t.Parallel()

		entries, err := gitdiff.NewAligner().Align(context.Background(),
			redline.Document{Text: "a\nb\nc\n"},
			redline.Document{Text: "a\nB\nc\n"},
		)

		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, redline.DiffEntry{Label: "Line 2", Left: "b", Right: "B", Kind: redline.DiffChanged}, entries[1])
	})

	t.Run("inserted line", func(t *testing.T) {
		t.Parallel()

		entries, err := gitdiff.NewAligner().Align(context.Background(),
			redline.Document{Text: "a\nc\n"},
			redline.Document{Text: "a\nb\nc\n"},
		)

		require.NoError(t, err)
		kinds := make([]redline.DiffKind, len(entries))
		for i, e := range entries {
			kinds[i] = e.Kind
		}
		assert.Equal(t, []redline.DiffKind{redline.DiffSame, redline.DiffAdded, redline.DiffSame}, kinds)
		assert.Equal(t, "b", entries[1].Right)
	})

	t.Run("deleted line", func(t *testing.T) {
		t.Parallel()

		entries, err := gitdiff.NewAligner().Align(context.Background(),
			redline.Document{Text: "a\nb\nc\n"},
			redline.Document{Text: "a\nc\n"},
		)

		require.NoError(t, err)
		kinds := make([]redline.DiffKind, len(entries))
		for i, e := range entries {
			kinds[i] = e.Kind
		}
		assert.Equal(t, []redline.DiffKind{redline.DiffSame, redline.DiffRemoved, redline.DiffSame}, kinds)
		assert.Equal(t, "b", entries[1].Left)
	})

	t.Run("inserted clause", func(t *testing.T) {
		t.Parallel()

		entries, err := gitdiff.NewAligner().Align(context.Background(),
			redline.Document{Text: "1. Term: One year.\n3. Law: Delaware.\n"},
			redline.Document{Text: "1. Term: One year.\n2. Fees: Fixed.\n3. Law: Delaware.\n"},
		)

		require.NoError(t, err)
		var added []string
		for _, e := range entries {
			assert.NotEqual(t, redline.DiffChanged, e.Kind)
			if e.Kind == redline.DiffAdded {
				added = append(added, e.Right)
			}
		}
		assert.Equal(t, []string{"2. Fees: Fixed."}, added)
	})

	t.Run("identical documents", func(t *testing.T) {
		t.Parallel()

		entries, err := gitdiff.NewAligner().Align(context.Background(),
			redline.Document{Text: "same\n"},
			redline.Document{Text: "same\n"},
		)

		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := gitdiff.NewAligner().Align(ctx, redline.Document{Text: "a"}, redline.Document{Text: "b"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
