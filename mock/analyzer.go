package mock

import (
	"context"

	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var (
	_ redline.Analyzer   = (*Analyzer)(nil)
	_ redline.Aligner    = (*Aligner)(nil)
	_ redline.WordDiffer = (*WordDiffer)(nil)
)

// Analyzer is a mock implementation of redline.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, doc redline.Document) ([]redline.Annotation, error)
}

func (a *Analyzer) Analyze(ctx context.Context, doc redline.Document) ([]redline.Annotation, error) {
	return a.AnalyzeFn(ctx, doc)
}

// Aligner is a mock implementation of redline.Aligner.
type Aligner struct {
	AlignFn func(ctx context.Context, left, right redline.Document) ([]redline.DiffEntry, error)
}

func (a *Aligner) Align(ctx context.Context, left, right redline.Document) ([]redline.DiffEntry, error) {
	return a.AlignFn(ctx, left, right)
}

// WordDiffer is a mock implementation of redline.WordDiffer.
type WordDiffer struct {
	DiffFn func(old, new string) ([]redline.Span, []redline.Span)
}

func (d *WordDiffer) Diff(old, new string) ([]redline.Span, []redline.Span) {
	return d.DiffFn(old, new)
}
