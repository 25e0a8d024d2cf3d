package redline

import "fmt"

// Category classifies an annotation.
type Category string

// Annotation categories.
const (
	CategoryRisk      Category = "risk"
	CategoryAmbiguous Category = "ambiguous"
	CategoryMissing   Category = "missing"
)

// Treatment is the fixed display treatment of a category.
type Treatment struct {
	Label string // Capitalized name shown in popovers and summaries
	Icon  string // Single glyph shown before the label
}

var categories = []Category{CategoryRisk, CategoryAmbiguous, CategoryMissing}

var treatments = map[Category]Treatment{
	CategoryRisk:      {Label: "Risk", Icon: "▲"},
	CategoryAmbiguous: {Label: "Ambiguous", Icon: "≈"},
	CategoryMissing:   {Label: "Missing", Icon: "□"},
}

// Categories returns all known categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory returns the category named by s.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := treatments[c]
	return ok
}

// Treatment returns the display treatment for c.
// Unknown categories get their raw name and a "?" icon.
func (c Category) Treatment() Treatment {
	if t, ok := treatments[c]; ok {
		return t
	}
	return Treatment{Label: string(c), Icon: "?"}
}
