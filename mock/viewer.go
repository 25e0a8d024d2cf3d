package mock

import (
	"context"

	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var (
	_ redline.ReviewViewer     = (*ReviewViewer)(nil)
	_ redline.ComparisonViewer = (*ComparisonViewer)(nil)
)

// ReviewViewer is a mock implementation of redline.ReviewViewer.
type ReviewViewer struct {
	ViewReviewFn func(ctx context.Context, doc redline.Document) error
}

func (v *ReviewViewer) ViewReview(ctx context.Context, doc redline.Document) error {
	return v.ViewReviewFn(ctx, doc)
}

// ComparisonViewer is a mock implementation of redline.ComparisonViewer.
type ComparisonViewer struct {
	ViewComparisonFn func(ctx context.Context, left, right redline.Document, entries []redline.DiffEntry) error
}

func (v *ComparisonViewer) ViewComparison(ctx context.Context, left, right redline.Document, entries []redline.DiffEntry) error {
	return v.ViewComparisonFn(ctx, left, right, entries)
}
