package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var _ redline.Analyzer = (*Analyzer)(nil)

// Analyzer wraps an Analyzer with file-based caching.
type Analyzer struct {
	inner     redline.Analyzer
	cacheDir  string
	namespace string
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithNamespace separates cache entries of different providers or models
// that share a cache directory.
func WithNamespace(ns string) AnalyzerOption {
	return func(a *Analyzer) {
		a.namespace = ns
	}
}

// NewAnalyzer creates a new caching analyzer.
func NewAnalyzer(inner redline.Analyzer, cacheDir string, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		inner:    inner,
		cacheDir: cacheDir,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze returns cached annotations or delegates to the inner analyzer.
// Cached sets that no longer validate against the text are ignored.
func (a *Analyzer) Analyze(ctx context.Context, doc redline.Document) ([]redline.Annotation, error) {
	hash := a.hashInput(doc)

	if cached, err := a.loadFromCache(hash); err == nil {
		if redline.ValidateAnnotations(doc.Text, cached) == nil {
			return cached, nil
		}
	}

	result, err := a.inner.Analyze(ctx, doc)
	if err != nil {
		return nil, err
	}

	// Store in cache (best-effort)
	_ = a.saveToCache(hash, result)

	return result, nil
}

// hashInput keys the cache on the text only; renaming a file keeps its entry.
func (a *Analyzer) hashInput(doc redline.Document) string {
	data, _ := json.Marshal(struct {
		Namespace string `json:"namespace"`
		Text      string `json:"text"`
	}{a.namespace, doc.Text})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (a *Analyzer) cachePath(hash string) string {
	return filepath.Join(a.cacheDir, hash+".json")
}

func (a *Analyzer) loadFromCache(hash string) ([]redline.Annotation, error) {
	data, err := os.ReadFile(a.cachePath(hash))
	if err != nil {
		return nil, err
	}

	var result []redline.Annotation
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (a *Analyzer) saveToCache(hash string, result []redline.Annotation) error {
	if err := os.MkdirAll(a.cacheDir, 0o755); err != nil {
		return err
	}

	if result == nil {
		result = []redline.Annotation{}
	}
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return os.WriteFile(a.cachePath(hash), data, 0o644)
}
