package jsonl

import (
	"context"
	"fmt"

	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var _ redline.Analyzer = (*Analyzer)(nil)

// Analyzer serves annotations prepared offline in a JSONL file.
type Analyzer struct {
	loader redline.AnnotationLoader
	path   string
}

// NewAnalyzer creates an Analyzer that reads path with loader on every call.
func NewAnalyzer(loader redline.AnnotationLoader, path string) *Analyzer {
	return &Analyzer{loader: loader, path: path}
}

// Analyze loads the annotation file and checks it against the document.
func (a *Analyzer) Analyze(ctx context.Context, doc redline.Document) ([]redline.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	annotations, err := a.loader.Load(a.path)
	if err != nil {
		return nil, fmt.Errorf("loading annotations: %w", err)
	}
	if err := redline.ValidateAnnotations(doc.Text, annotations); err != nil {
		return nil, fmt.Errorf("%s: %w", a.path, err)
	}
	return annotations, nil
}
