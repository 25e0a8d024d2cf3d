package redline_test

import (
	"testing"

	"github.com/fwojciec/redline"
	"github.com/stretchr/testify/assert"
)

func TestDefaultFormatter_FormatDocument(t *testing.T) {
	t.Parallel()

	formatter := &redline.DefaultFormatter{}
	result := formatter.FormatDocument(redline.Document{Name: "nda.txt", Text: employeeText})

	assert.Contains(t, result, "<context>\nDocument: nda.txt\n")
	assert.Contains(t, result, "Categories: risk, ambiguous, missing")
	assert.Contains(t, result, "<document>\n"+employeeText+"\n</document>")
}

func TestDefaultFormatter_FormatDocument_NoName(t *testing.T) {
	t.Parallel()

	formatter := &redline.DefaultFormatter{}
	result := formatter.FormatDocument(redline.Document{Text: "Body.\n"})

	assert.NotContains(t, result, "Document:")
	assert.Contains(t, result, "<document>\nBody.\n</document>")
}

func TestDefaultFormatter_FormatEntry(t *testing.T) {
	t.Parallel()

	formatter := &redline.DefaultFormatter{}

	t.Run("changed entry shows both sides", func(t *testing.T) {
		t.Parallel()

		result := formatter.FormatEntry(redline.DiffEntry{
			Label: "1. Payment Terms",
			Left:  "Due in 30 days.",
			Right: "Due in 45 days.",
			Kind:  redline.DiffChanged,
		})

		assert.Equal(t, "=== CLAUSE: 1. Payment Terms (changed) ===\n\n"+
			"--- CONTRACT A ---\nDue in 30 days.\n\n"+
			"--- CONTRACT B ---\nDue in 45 days.\n", result)
	})

	t.Run("added entry marks left side as not present", func(t *testing.T) {
		t.Parallel()

		result := formatter.FormatEntry(redline.DiffEntry{
			Label: "4. Data Protection",
			Right: "Comply with GDPR.",
			Kind:  redline.DiffAdded,
		})

		assert.Contains(t, result, "--- CONTRACT A ---\n(Not present)\n")
		assert.Contains(t, result, "--- CONTRACT B ---\nComply with GDPR.")
	})
}
