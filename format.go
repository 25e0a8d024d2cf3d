package redline

import (
	"fmt"
	"strings"
)

// PromptFormatter renders review and comparison input as structured text for LLM prompts.
type PromptFormatter interface {
	FormatDocument(doc Document) string
	FormatEntry(entry DiffEntry) string
}

// DefaultFormatter implements PromptFormatter with the standard format.
type DefaultFormatter struct{}

// FormatDocument renders a document for review.
func (f *DefaultFormatter) FormatDocument(doc Document) string {
	var sb strings.Builder

	sb.WriteString("<context>\n")
	if doc.Name != "" {
		fmt.Fprintf(&sb, "Document: %s\n", doc.Name)
	}
	fmt.Fprintf(&sb, "Categories: %s\n", categoryList())
	sb.WriteString("</context>\n\n")

	sb.WriteString("<document>\n")
	sb.WriteString(doc.Text)
	if !strings.HasSuffix(doc.Text, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("</document>")
	return sb.String()
}

// FormatEntry renders one aligned clause pair for a risk note.
func (f *DefaultFormatter) FormatEntry(entry DiffEntry) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "=== CLAUSE: %s (%s) ===\n\n", entry.Label, entry.Kind)
	sb.WriteString("--- CONTRACT A ---\n")
	writeSide(&sb, entry.Left, entry.HasLeft())
	sb.WriteString("--- CONTRACT B ---\n")
	writeSide(&sb, entry.Right, entry.HasRight())
	return strings.TrimSuffix(sb.String(), "\n")
}

func writeSide(sb *strings.Builder, text string, present bool) {
	if !present {
		sb.WriteString(NotPresent + "\n\n")
		return
	}
	sb.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func categoryList() string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
