package redline

import (
	"fmt"
	"strings"
)

// DiffKind classifies how a clause differs between two documents.
type DiffKind string

// Diff kinds.
const (
	DiffSame    DiffKind = "same"
	DiffChanged DiffKind = "changed"
	DiffAdded   DiffKind = "added"
	DiffRemoved DiffKind = "removed"
)

// DiffEntry is one aligned clause pair.
// Left is absent for added entries and Right is absent for removed entries.
type DiffEntry struct {
	Label string   `json:"label"`
	Left  string   `json:"left,omitempty"`
	Right string   `json:"right,omitempty"`
	Kind  DiffKind `json:"kind"`
	Note  string   `json:"note,omitempty"` // Risk note, empty when there is none
}

// HasLeft reports whether the clause is present in the left document.
func (e DiffEntry) HasLeft() bool {
	return e.Kind != DiffAdded
}

// HasRight reports whether the clause is present in the right document.
func (e DiffEntry) HasRight() bool {
	return e.Kind != DiffRemoved
}

// Span is a run of clause text within a changed clause.
type Span struct {
	Text    string `json:"text"`
	Changed bool   `json:"changed"`
}

// WordDiffer computes word-level differences between two texts.
type WordDiffer interface {
	// Diff returns the spans of old and new. Concatenating each side's
	// span texts reproduces its input.
	Diff(old, new string) (oldSpans, newSpans []Span)
}

// BlockTreatment is the display treatment of one side of a comparison row.
type BlockTreatment string

// Block treatments.
const (
	BlockSame    BlockTreatment = "same"
	BlockChanged BlockTreatment = "changed"
	BlockAdded   BlockTreatment = "added"
	BlockRemoved BlockTreatment = "removed"
	BlockAbsent  BlockTreatment = "absent"
)

// NotPresent is the text shown in place of an absent clause.
const NotPresent = "(Not present)"

// Block is one side of a comparison row.
type Block struct {
	Label     string         `json:"label"`
	Text      string         `json:"text"`
	Present   bool           `json:"present"`
	Treatment BlockTreatment `json:"treatment"`
	Spans     []Span         `json:"spans,omitempty"` // Word-level highlights, changed rows only
}

// ComparisonRow is a DiffEntry projected for side-by-side display.
type ComparisonRow struct {
	Kind  DiffKind `json:"kind"`
	Left  Block    `json:"left"`
	Right Block    `json:"right"`
	Note  string   `json:"note,omitempty"`
}

// ProjectComparison validates entries and returns one row per entry.
// Changed rows carry word-level spans computed by differ; a nil differ
// marks each side's whole text as a single changed span.
func ProjectComparison(entries []DiffEntry, differ WordDiffer) ([]ComparisonRow, error) {
	if err := ValidateDiffEntries(entries); err != nil {
		return nil, err
	}
	rows := make([]ComparisonRow, len(entries))
	for i, e := range entries {
		rows[i] = projectEntry(e, differ)
	}
	return rows, nil
}

func projectEntry(e DiffEntry, differ WordDiffer) ComparisonRow {
	row := ComparisonRow{
		Kind:  e.Kind,
		Left:  Block{Label: e.Label, Text: e.Left, Present: e.HasLeft()},
		Right: Block{Label: e.Label, Text: e.Right, Present: e.HasRight()},
		Note:  e.Note,
	}
	switch e.Kind {
	case DiffSame:
		row.Left.Treatment, row.Right.Treatment = BlockSame, BlockSame
	case DiffChanged:
		row.Left.Treatment, row.Right.Treatment = BlockChanged, BlockChanged
		row.Left.Spans, row.Right.Spans = wordSpans(e.Left, e.Right, differ)
	case DiffAdded:
		row.Left.Treatment, row.Right.Treatment = BlockAbsent, BlockAdded
		row.Left.Text = NotPresent
	case DiffRemoved:
		row.Left.Treatment, row.Right.Treatment = BlockRemoved, BlockAbsent
		row.Right.Text = NotPresent
	}
	return row
}

func wordSpans(left, right string, differ WordDiffer) ([]Span, []Span) {
	if differ == nil {
		return wholeSpan(left), wholeSpan(right)
	}
	return differ.Diff(left, right)
}

func wholeSpan(text string) []Span {
	if text == "" {
		return nil
	}
	return []Span{{Text: text, Changed: true}}
}

// Side names used in comparison summaries.
const (
	LeftName  = "Contract A"
	RightName = "Contract B"
)

// ComparisonSummary lists what changed, what is risky and what is missing
// between two documents.
type ComparisonSummary struct {
	Changed []string `json:"changed"`
	Risky   []string `json:"risky"`
	Missing []string `json:"missing"`
}

// Empty reports whether the summary has no entries.
func (s ComparisonSummary) Empty() bool {
	return len(s.Changed) == 0 && len(s.Risky) == 0 && len(s.Missing) == 0
}

// SummarizeComparison builds the comparison summary in entry order.
// A changed clause with exactly one changed span per side is described
// as a change from the old span to the new one.
func SummarizeComparison(entries []DiffEntry, differ WordDiffer) ComparisonSummary {
	s := ComparisonSummary{Changed: []string{}, Risky: []string{}, Missing: []string{}}
	for _, e := range entries {
		title := ClauseTitle(e.Label)
		switch e.Kind {
		case DiffChanged:
			s.Changed = append(s.Changed, describeChange(title, e, differ))
		case DiffAdded:
			s.Missing = append(s.Missing, fmt.Sprintf("%s clause missing in %s.", title, LeftName))
		case DiffRemoved:
			s.Missing = append(s.Missing, fmt.Sprintf("%s clause missing in %s.", title, RightName))
		}
		if e.Note != "" {
			s.Risky = append(s.Risky, e.Note)
		}
	}
	return s
}

func describeChange(title string, e DiffEntry, differ WordDiffer) string {
	if differ != nil {
		oldSpans, newSpans := differ.Diff(e.Left, e.Right)
		from, okFrom := singleChanged(oldSpans)
		to, okTo := singleChanged(newSpans)
		if okFrom && okTo {
			return fmt.Sprintf("%s changed from %q to %q.", title, from, to)
		}
	}
	return title + " changed."
}

func singleChanged(spans []Span) (string, bool) {
	var text string
	n := 0
	for _, sp := range spans {
		if sp.Changed {
			text = strings.TrimSpace(sp.Text)
			n++
		}
	}
	return text, n == 1 && text != ""
}

// ClauseTitle strips a leading clause number such as "1." or "4.2" from label.
func ClauseTitle(label string) string {
	t := strings.TrimSpace(label)
	rest := strings.TrimLeft(t, "0123456789.")
	if rest == t || (rest != "" && rest[0] != ' ') {
		return t
	}
	if rest = strings.TrimSpace(rest); rest == "" {
		return t
	}
	return rest
}
