package redline

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for all visual elements of the review and
// comparison screens.
type Styles struct {
	Text      ColorPair // Plain document text
	Risk      ColorPair // Text under a risk annotation
	Ambiguous ColorPair // Text under an ambiguous annotation
	Missing   ColorPair // Text under a missing annotation
	Focused   ColorPair // Text under the focused annotation, any category
	Popover   ColorPair // Detail popover for the focused annotation
	Header    ColorPair // Panel and clause headers
	Muted     ColorPair // Hints, status line, "(Not present)"

	Same             ColorPair // Unchanged clause blocks
	Changed          ColorPair // Changed clause blocks
	Added            ColorPair // Clause blocks present only on the right
	Removed          ColorPair // Clause blocks present only on the left
	ChangedHighlight ColorPair // Changed words within a changed clause
	Note             ColorPair // Risk notes under comparison rows
}

// ForCategory returns the color pair used for text under an annotation of
// category c. Unknown categories get the plain text style.
func (s Styles) ForCategory(c Category) ColorPair {
	switch c {
	case CategoryRisk:
		return s.Risk
	case CategoryAmbiguous:
		return s.Ambiguous
	case CategoryMissing:
		return s.Missing
	default:
		return s.Text
	}
}

// ForBlock returns the color pair used for a comparison block.
func (s Styles) ForBlock(t BlockTreatment) ColorPair {
	switch t {
	case BlockChanged:
		return s.Changed
	case BlockAdded:
		return s.Added
	case BlockRemoved:
		return s.Removed
	case BlockAbsent:
		return s.Muted
	default:
		return s.Same
	}
}

// Theme provides styles for rendering reviews and comparisons.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
}
