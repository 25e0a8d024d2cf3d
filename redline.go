// Package redline provides domain types for reviewing and comparing contracts.
//
// The core of the package is the annotated-text renderer: Project turns a
// document and an ordered set of non-overlapping annotations into display
// segments, and Accept/Dismiss remove annotations from the active set.
package redline

import (
	"context"
	"fmt"
)

// Document is a contract text together with a display name.
type Document struct {
	Name string `json:"name"` // File path, "rev:path", or "sample"
	Text string `json:"text"`
}

// Annotation marks a span of document text with a review finding.
// Start and End are byte offsets into the document text, End exclusive.
type Annotation struct {
	Start      int      `json:"start"`
	End        int      `json:"end"`
	Category   Category `json:"category"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion"`
}

// Len returns the number of bytes covered by the annotation.
func (a Annotation) Len() int {
	return a.End - a.Start
}

// SegmentKind distinguishes plain runs from annotated runs.
type SegmentKind int

// Segment kinds.
const (
	SegmentPlain SegmentKind = iota
	SegmentAnnotated
)

// String returns the kind name used in JSON output.
func (k SegmentKind) String() string {
	if k == SegmentAnnotated {
		return "annotated"
	}
	return "plain"
}

// MarshalText implements encoding.TextMarshaler.
func (k SegmentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SegmentKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "plain":
		*k = SegmentPlain
	case "annotated":
		*k = SegmentAnnotated
	default:
		return fmt.Errorf("unknown segment kind %q", text)
	}
	return nil
}

// Segment is a contiguous run of document text emitted by Project.
type Segment struct {
	Kind       SegmentKind `json:"kind"`
	Text       string      `json:"text"`
	Start      int         `json:"start"`
	End        int         `json:"end"`
	Index      int         `json:"index"`                // Position in the active set, -1 for plain runs
	Annotation *Annotation `json:"annotation,omitempty"` // nil for plain runs
}

// Annotated reports whether the segment carries an annotation.
func (s Segment) Annotated() bool {
	return s.Kind == SegmentAnnotated
}

// Analyzer produces annotations for a document.
// Implementations must return a set that passes ValidateAnnotations.
type Analyzer interface {
	Analyze(ctx context.Context, doc Document) ([]Annotation, error)
}

// Aligner pairs up the clauses of two documents for side-by-side display.
type Aligner interface {
	Align(ctx context.Context, left, right Document) ([]DiffEntry, error)
}

// DocumentLoader reads a document from a path.
type DocumentLoader interface {
	Load(path string) (Document, error)
}

// Document formats reported by a FormatDetector.
const (
	FormatPlaintext = "plaintext"
	FormatMarkdown  = "markdown"
	FormatDOCX      = "docx"
)

// FormatDetector determines a document format from a file path.
type FormatDetector interface {
	// DetectFormat returns the format name for the given path,
	// or an empty string if the format cannot be determined.
	DetectFormat(path string) string
}

// AnnotationLoader loads an annotation set from a source.
type AnnotationLoader interface {
	Load(path string) ([]Annotation, error)
}

// AnnotationSaver writes an annotation set to a destination.
type AnnotationSaver interface {
	Save(path string, annotations []Annotation) error
}

// DecisionLog records review decisions for later audit.
type DecisionLog interface {
	Append(path, document string, decisions []Decision) error
}

// GitRunner provides access to versions of a file tracked in git.
type GitRunner interface {
	// Log returns commit hashes that touched path, newest first, limited to n commits.
	Log(ctx context.Context, repoPath, path string, limit int) ([]string, error)
	// Show returns the content of path at the given revision.
	Show(ctx context.Context, repoPath, rev, path string) (string, error)
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}

// ReviewViewer displays a document for interactive review.
type ReviewViewer interface {
	ViewReview(ctx context.Context, doc Document) error
}

// ComparisonViewer displays two aligned documents side by side.
type ComparisonViewer interface {
	ViewComparison(ctx context.Context, left, right Document, entries []DiffEntry) error
}
