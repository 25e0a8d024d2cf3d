// Package chroma detects document formats using chroma's lexer registry.
package chroma

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var _ redline.FormatDetector = (*Detector)(nil)

// Detector detects document formats from file paths using chroma.
type Detector struct{}

// NewDetector creates a new chroma-based format detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectFormat returns the lower-cased lexer name for the given path,
// redline.FormatDOCX for Word documents, or an empty string if the format
// cannot be determined.
func (d *Detector) DetectFormat(path string) string {
	filename := filepath.Base(path)

	// Chroma has no lexer for binary office formats.
	if strings.EqualFold(filepath.Ext(filename), ".docx") {
		return redline.FormatDOCX
	}

	lexer := lexers.Match(filename)
	if lexer == nil {
		return ""
	}
	return strings.ToLower(lexer.Config().Name)
}
