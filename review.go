package redline

import "fmt"

// Action records how an annotation left the active set.
type Action string

// Review actions.
const (
	ActionAccepted  Action = "accepted"
	ActionDismissed Action = "dismissed"
)

// Decision is a removal recorded by a Review.
type Decision struct {
	Action     Action     `json:"action"`
	Annotation Annotation `json:"annotation"`
}

// Review holds the interactive state of reviewing one document: the active
// annotation set, the focused annotation and the removals made so far.
//
// A removed annotation never returns to the active set. Focus is cleared
// whenever the set changes.
type Review struct {
	doc         Document
	annotations []Annotation
	focus       int // -1 when nothing is focused
	decisions   []Decision
}

// NewReview validates annotations against doc and returns a Review with
// nothing focused.
func NewReview(doc Document, annotations []Annotation) (*Review, error) {
	r := &Review{focus: -1}
	if err := r.Reset(doc, annotations); err != nil {
		return nil, err
	}
	return r, nil
}

// Reset replaces the document and annotation set wholesale.
// The decision log and focus are cleared.
func (r *Review) Reset(doc Document, annotations []Annotation) error {
	if err := ValidateAnnotations(doc.Text, annotations); err != nil {
		return err
	}
	r.doc = doc
	r.annotations = append([]Annotation(nil), annotations...)
	r.decisions = nil
	r.focus = -1
	return nil
}

// Clear drops every annotation while keeping the document.
// The decision log and focus are cleared.
func (r *Review) Clear() {
	r.annotations = nil
	r.decisions = nil
	r.focus = -1
}

// Document returns the document under review.
func (r *Review) Document() Document {
	return r.doc
}

// Annotations returns a copy of the active annotation set.
func (r *Review) Annotations() []Annotation {
	return append([]Annotation(nil), r.annotations...)
}

// Len returns the number of active annotations.
func (r *Review) Len() int {
	return len(r.annotations)
}

// Segments projects the document with the active annotation set.
func (r *Review) Segments() []Segment {
	return project(r.doc.Text, r.annotations)
}

// Focused returns the index of the focused annotation, if any.
func (r *Review) Focused() (int, bool) {
	return r.focus, r.focus >= 0
}

// FocusedAnnotation returns the focused annotation, if any.
func (r *Review) FocusedAnnotation() (Annotation, bool) {
	if r.focus < 0 {
		return Annotation{}, false
	}
	return r.annotations[r.focus], true
}

// Focus moves focus to the annotation at index, unfocusing any other.
func (r *Review) Focus(index int) error {
	if index < 0 || index >= len(r.annotations) {
		return &IndexError{Index: index, Len: len(r.annotations)}
	}
	r.focus = index
	return nil
}

// Blur clears focus.
func (r *Review) Blur() {
	r.focus = -1
}

// FocusNext moves focus to the next annotation, wrapping around.
// With nothing focused it focuses the first annotation.
func (r *Review) FocusNext() {
	n := len(r.annotations)
	if n == 0 {
		return
	}
	r.focus = (r.focus + 1) % n
}

// FocusPrev moves focus to the previous annotation, wrapping around.
// With nothing focused it focuses the last annotation.
func (r *Review) FocusPrev() {
	n := len(r.annotations)
	if n == 0 {
		return
	}
	if r.focus <= 0 {
		r.focus = n - 1
		return
	}
	r.focus--
}

// Accept removes the annotation at index and records the decision.
func (r *Review) Accept(index int) (Decision, error) {
	return r.remove(index, ActionAccepted)
}

// Dismiss removes the annotation at index and records the decision.
func (r *Review) Dismiss(index int) (Decision, error) {
	return r.remove(index, ActionDismissed)
}

func (r *Review) remove(index int, action Action) (Decision, error) {
	removed, err := remove(r.annotations, index)
	if err != nil {
		return Decision{}, fmt.Errorf("%s: %w", action, err)
	}
	d := Decision{Action: action, Annotation: r.annotations[index]}
	r.annotations = removed
	r.decisions = append(r.decisions, d)
	r.focus = -1
	return d, nil
}

// Decisions returns the removals made since the last Reset, oldest first.
func (r *Review) Decisions() []Decision {
	return append([]Decision(nil), r.decisions...)
}

// Summary summarizes the active annotation set.
func (r *Review) Summary() Summary {
	return Summarize(r.annotations)
}
