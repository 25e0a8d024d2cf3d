package redline

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Sentinel errors matched with errors.Is.
var (
	ErrInvalidAnnotation = errors.New("invalid annotation")
	ErrIndexOutOfRange   = errors.New("annotation index out of range")
	ErrInvalidDiffEntry  = errors.New("invalid diff entry")
)

// ValidationReason identifies why an annotation violates the renderer's preconditions.
type ValidationReason string

// Validation error reasons.
const (
	ReasonOutOfBounds     ValidationReason = "out_of_bounds"
	ReasonEmptyRange      ValidationReason = "empty_range"
	ReasonOverlap         ValidationReason = "overlap"
	ReasonUnordered       ValidationReason = "unordered"
	ReasonSplitsRune      ValidationReason = "splits_rune"
	ReasonUnknownCategory ValidationReason = "unknown_category"
)

// AnnotationError describes the first annotation that violates the renderer's preconditions.
type AnnotationError struct {
	Index      int              // Position of the offending annotation in the set
	Annotation Annotation       // The offending annotation
	Reason     ValidationReason // Why it is invalid
	TextLen    int              // Length of the text being annotated
	Previous   *Annotation      // The preceding annotation, for overlap and unordered errors
}

// Error implements the error interface.
func (e *AnnotationError) Error() string {
	a := e.Annotation
	switch e.Reason {
	case ReasonOutOfBounds:
		return fmt.Sprintf("annotation %d: range [%d,%d) is outside text of length %d",
			e.Index, a.Start, a.End, e.TextLen)
	case ReasonEmptyRange:
		return fmt.Sprintf("annotation %d: range [%d,%d) is empty or inverted",
			e.Index, a.Start, a.End)
	case ReasonOverlap:
		return fmt.Sprintf("annotation %d: range [%d,%d) overlaps previous range [%d,%d)",
			e.Index, a.Start, a.End, e.Previous.Start, e.Previous.End)
	case ReasonUnordered:
		return fmt.Sprintf("annotation %d: range [%d,%d) starts before previous range [%d,%d)",
			e.Index, a.Start, a.End, e.Previous.Start, e.Previous.End)
	case ReasonSplitsRune:
		return fmt.Sprintf("annotation %d: range [%d,%d) splits a UTF-8 sequence",
			e.Index, a.Start, a.End)
	case ReasonUnknownCategory:
		return fmt.Sprintf("annotation %d: unknown category %q", e.Index, a.Category)
	default:
		return fmt.Sprintf("annotation %d: invalid range [%d,%d)", e.Index, a.Start, a.End)
	}
}

// Is reports whether target is ErrInvalidAnnotation.
func (e *AnnotationError) Is(target error) bool {
	return target == ErrInvalidAnnotation
}

// IndexError reports an accept or dismiss against a position outside the active set.
type IndexError struct {
	Index int
	Len   int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("annotation index %d: set is empty", e.Index)
	}
	return fmt.Sprintf("annotation index %d out of range (valid: 0-%d)", e.Index, e.Len-1)
}

// Unwrap returns ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// ValidateAnnotations checks that annotations are in bounds, non-empty,
// ascending, pairwise non-overlapping, aligned to UTF-8 boundaries and of
// a known category. It returns the first violation as an *AnnotationError,
// or nil if the set is valid for text.
func ValidateAnnotations(text string, annotations []Annotation) error {
	for i, a := range annotations {
		fail := func(reason ValidationReason) error {
			err := &AnnotationError{Index: i, Annotation: a, Reason: reason, TextLen: len(text)}
			if i > 0 {
				prev := annotations[i-1]
				err.Previous = &prev
			}
			return err
		}

		if a.Start >= a.End {
			return fail(ReasonEmptyRange)
		}
		if a.Start < 0 || a.End > len(text) {
			return fail(ReasonOutOfBounds)
		}
		if !onRuneBoundary(text, a.Start) || !onRuneBoundary(text, a.End) {
			return fail(ReasonSplitsRune)
		}
		if !a.Category.Valid() {
			return fail(ReasonUnknownCategory)
		}
		if i > 0 {
			prev := annotations[i-1]
			if a.Start < prev.Start {
				return fail(ReasonUnordered)
			}
			if a.Start < prev.End {
				return fail(ReasonOverlap)
			}
		}
	}
	return nil
}

func onRuneBoundary(text string, offset int) bool {
	return offset == len(text) || utf8.RuneStart(text[offset])
}

// DiffEntryError describes an entry whose kind disagrees with its texts.
type DiffEntryError struct {
	Index int
	Entry DiffEntry
	Msg   string
}

// Error implements the error interface.
func (e *DiffEntryError) Error() string {
	return fmt.Sprintf("diff entry %d (%q): %s", e.Index, e.Entry.Label, e.Msg)
}

// Unwrap returns ErrInvalidDiffEntry.
func (e *DiffEntryError) Unwrap() error {
	return ErrInvalidDiffEntry
}

// ValidateDiffEntries checks that every entry has a known kind and that an
// absent side carries no text.
func ValidateDiffEntries(entries []DiffEntry) error {
	for i, e := range entries {
		fail := func(msg string) error {
			return &DiffEntryError{Index: i, Entry: e, Msg: msg}
		}
		switch e.Kind {
		case DiffSame, DiffChanged:
		case DiffAdded:
			if e.Left != "" {
				return fail("added entry must not have left text")
			}
		case DiffRemoved:
			if e.Right != "" {
				return fail("removed entry must not have right text")
			}
		default:
			return fail(fmt.Sprintf("unknown kind %q", e.Kind))
		}
	}
	return nil
}
