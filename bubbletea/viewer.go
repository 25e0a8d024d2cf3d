// Package bubbletea provides terminal review and comparison screens using
// the Bubble Tea framework.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var (
	_ redline.ReviewViewer     = (*Viewer)(nil)
	_ redline.ComparisonViewer = (*Viewer)(nil)
)

// Viewer implements redline.ReviewViewer and redline.ComparisonViewer
// using a Bubble Tea TUI.
type Viewer struct {
	opts []Option
}

// NewViewer creates a new Viewer. The options are applied to every model
// it runs.
func NewViewer(opts ...Option) *Viewer {
	return &Viewer{opts: opts}
}

// ViewReview displays the review panel for doc and blocks until the user
// exits or ctx is cancelled.
func (v *Viewer) ViewReview(ctx context.Context, doc redline.Document) error {
	opts := append(v.modelOptions(), WithContext(ctx))
	return v.run(ctx, NewReviewModel(doc, opts...))
}

// ViewComparison displays two documents side by side and blocks until the
// user exits or ctx is cancelled. A nil entries slice is filled in by the
// configured aligner.
func (v *Viewer) ViewComparison(ctx context.Context, left, right redline.Document, entries []redline.DiffEntry) error {
	opts := append(v.modelOptions(), WithContext(ctx))
	return v.run(ctx, NewCompareModel(left, right, entries, opts...))
}

func (v *Viewer) modelOptions() []Option {
	return append([]Option(nil), v.opts...)
}

func (v *Viewer) run(ctx context.Context, m tea.Model) error {
	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}
	programOpts = append(programOpts, newOptions(v.opts).programOpts...)
	_, err := tea.NewProgram(m, programOpts...).Run()
	return err
}
