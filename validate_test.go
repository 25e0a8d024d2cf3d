package redline_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/redline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAnnotations(t *testing.T) {
	t.Parallel()

	risk := func(start, end int) redline.Annotation {
		return redline.Annotation{Start: start, End: end, Category: redline.CategoryRisk}
	}

	tests := []struct {
		name   string
		text   string
		set    []redline.Annotation
		index  int
		reason redline.ValidationReason
	}{
		{
			name:   "end beyond text",
			text:   "abc",
			set:    []redline.Annotation{risk(1, 4)},
			reason: redline.ReasonOutOfBounds,
		},
		{
			name:   "negative start",
			text:   "abc",
			set:    []redline.Annotation{risk(-1, 2)},
			reason: redline.ReasonOutOfBounds,
		},
		{
			name:   "empty range",
			text:   "abc",
			set:    []redline.Annotation{risk(1, 1)},
			reason: redline.ReasonEmptyRange,
		},
		{
			name:   "inverted range",
			text:   "abc",
			set:    []redline.Annotation{risk(2, 1)},
			reason: redline.ReasonEmptyRange,
		},
		{
			name:   "overlap",
			text:   "abcdef",
			set:    []redline.Annotation{risk(0, 3), risk(2, 5)},
			index:  1,
			reason: redline.ReasonOverlap,
		},
		{
			name:   "unordered",
			text:   "abcdef",
			set:    []redline.Annotation{risk(3, 4), risk(0, 1)},
			index:  1,
			reason: redline.ReasonUnordered,
		},
		{
			name:   "splits multibyte rune",
			text:   "café au lait",
			set:    []redline.Annotation{risk(0, 4)},
			reason: redline.ReasonSplitsRune,
		},
		{
			name: "unknown category",
			text: "abc",
			set: []redline.Annotation{
				{Start: 0, End: 1, Category: "critical"},
			},
			reason: redline.ReasonUnknownCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := redline.ValidateAnnotations(tt.text, tt.set)

			require.Error(t, err)
			assert.ErrorIs(t, err, redline.ErrInvalidAnnotation)
			var annErr *redline.AnnotationError
			require.True(t, errors.As(err, &annErr))
			assert.Equal(t, tt.index, annErr.Index)
			assert.Equal(t, tt.reason, annErr.Reason)
			assert.NotEmpty(t, annErr.Error())
		})
	}

	t.Run("valid set passes", func(t *testing.T) {
		t.Parallel()

		err := redline.ValidateAnnotations("café au lait", []redline.Annotation{risk(0, 5), risk(5, 8)})
		assert.NoError(t, err)
	})

	t.Run("overlap error names previous range", func(t *testing.T) {
		t.Parallel()

		err := redline.ValidateAnnotations("abcdef", []redline.Annotation{risk(0, 3), risk(2, 5)})

		var annErr *redline.AnnotationError
		require.True(t, errors.As(err, &annErr))
		require.NotNil(t, annErr.Previous)
		assert.Equal(t, "annotation 1: range [2,5) overlaps previous range [0,3)", err.Error())
	})
}

func TestValidateDiffEntries(t *testing.T) {
	t.Parallel()

	t.Run("valid entries pass", func(t *testing.T) {
		t.Parallel()

		err := redline.ValidateDiffEntries([]redline.DiffEntry{
			{Label: "1. A", Left: "x", Right: "x", Kind: redline.DiffSame},
			{Label: "2. B", Left: "x", Right: "y", Kind: redline.DiffChanged},
			{Label: "3. C", Right: "y", Kind: redline.DiffAdded},
			{Label: "4. D", Left: "x", Kind: redline.DiffRemoved},
		})
		assert.NoError(t, err)
	})

	t.Run("added entry with left text fails", func(t *testing.T) {
		t.Parallel()

		err := redline.ValidateDiffEntries([]redline.DiffEntry{
			{Label: "3. C", Left: "x", Right: "y", Kind: redline.DiffAdded},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, redline.ErrInvalidDiffEntry)
	})

	t.Run("removed entry with right text fails", func(t *testing.T) {
		t.Parallel()

		err := redline.ValidateDiffEntries([]redline.DiffEntry{
			{Label: "ok", Kind: redline.DiffSame},
			{Label: "4. D", Left: "x", Right: "y", Kind: redline.DiffRemoved},
		})

		var entryErr *redline.DiffEntryError
		require.True(t, errors.As(err, &entryErr))
		assert.Equal(t, 1, entryErr.Index)
	})

	t.Run("unknown kind fails", func(t *testing.T) {
		t.Parallel()

		err := redline.ValidateDiffEntries([]redline.DiffEntry{{Label: "x", Kind: "moved"}})
		assert.ErrorIs(t, err, redline.ErrInvalidDiffEntry)
		assert.Contains(t, err.Error(), `unknown kind "moved"`)
	})
}

func TestIndexError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "annotation index 3 out of range (valid: 0-1)", (&redline.IndexError{Index: 3, Len: 2}).Error())
	assert.Equal(t, "annotation index 0: set is empty", (&redline.IndexError{Index: 0, Len: 0}).Error())
}
