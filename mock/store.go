package mock

import (
	"context"

	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var (
	_ redline.DocumentLoader   = (*DocumentLoader)(nil)
	_ redline.FormatDetector   = (*FormatDetector)(nil)
	_ redline.AnnotationLoader = (*AnnotationLoader)(nil)
	_ redline.AnnotationSaver  = (*AnnotationSaver)(nil)
	_ redline.Clipboard        = (*Clipboard)(nil)
	_ redline.DecisionLog      = (*DecisionLog)(nil)
)

// DocumentLoader is a mock implementation of redline.DocumentLoader.
type DocumentLoader struct {
	LoadFn    func(path string) (redline.Document, error)
	LoadAllFn func(ctx context.Context, paths ...string) ([]redline.Document, error)
}

func (l *DocumentLoader) Load(path string) (redline.Document, error) {
	return l.LoadFn(path)
}

func (l *DocumentLoader) LoadAll(ctx context.Context, paths ...string) ([]redline.Document, error) {
	return l.LoadAllFn(ctx, paths...)
}

// FormatDetector is a mock implementation of redline.FormatDetector.
type FormatDetector struct {
	DetectFormatFn func(path string) string
}

func (d *FormatDetector) DetectFormat(path string) string {
	return d.DetectFormatFn(path)
}

// AnnotationLoader is a mock implementation of redline.AnnotationLoader.
type AnnotationLoader struct {
	LoadFn func(path string) ([]redline.Annotation, error)
}

func (l *AnnotationLoader) Load(path string) ([]redline.Annotation, error) {
	return l.LoadFn(path)
}

// AnnotationSaver is a mock implementation of redline.AnnotationSaver.
type AnnotationSaver struct {
	SaveFn func(path string, annotations []redline.Annotation) error
}

func (s *AnnotationSaver) Save(path string, annotations []redline.Annotation) error {
	return s.SaveFn(path, annotations)
}

// Clipboard is a mock implementation of redline.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}

// DecisionLog is a mock implementation of redline.DecisionLog.
type DecisionLog struct {
	AppendFn func(path, document string, decisions []redline.Decision) error
}

func (l *DecisionLog) Append(path, document string, decisions []redline.Decision) error {
	return l.AppendFn(path, document, decisions)
}
