package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/redline"
	"golang.org/x/sync/errgroup"
)

// Compile-time interface verification.
var _ redline.DocumentLoader = (*Loader)(nil)

// StdinPath is the path that reads a document from standard input.
const StdinPath = "-"

// Loader reads documents from disk.
//
// Plain text and markdown files are read as-is. Word documents and other
// formats are not parsed; they load as a placeholder text naming the file
// so the caller can still display something.
type Loader struct {
	detector redline.FormatDetector
	stdin    io.Reader
}

// NewLoader creates a Loader that classifies files with detector and reads
// StdinPath from stdin.
func NewLoader(detector redline.FormatDetector, stdin io.Reader) *Loader {
	return &Loader{detector: detector, stdin: stdin}
}

// Load reads the document at path.
func (l *Loader) Load(path string) (redline.Document, error) {
	if path == StdinPath {
		data, err := io.ReadAll(l.stdin)
		if err != nil {
			return redline.Document{}, fmt.Errorf("reading stdin: %w", err)
		}
		return redline.Document{Name: "stdin", Text: toValidUTF8(data)}, nil
	}

	name := filepath.Base(path)
	switch l.detector.DetectFormat(path) {
	case redline.FormatPlaintext, redline.FormatMarkdown:
		data, err := os.ReadFile(path)
		if err != nil {
			return redline.Document{}, fmt.Errorf("reading document: %w", err)
		}
		return redline.Document{Name: path, Text: toValidUTF8(data)}, nil
	case redline.FormatDOCX:
		if _, err := os.Stat(path); err != nil {
			return redline.Document{}, fmt.Errorf("reading document: %w", err)
		}
		return redline.Document{Name: path, Text: DOCXPlaceholder(name)}, nil
	default:
		return redline.Document{Name: path, Text: UnsupportedPlaceholder(name)}, nil
	}
}

// LoadAll loads documents concurrently, returning them in path order.
func (l *Loader) LoadAll(ctx context.Context, paths ...string) ([]redline.Document, error) {
	docs := make([]redline.Document, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := l.Load(p)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// DOCXPlaceholder is the text shown for an uploaded Word document.
func DOCXPlaceholder(name string) string {
	return "[DOCX file uploaded: " + name + "]\n(Parsing not implemented in demo)"
}

// UnsupportedPlaceholder is the text shown for a file of unknown type.
func UnsupportedPlaceholder(name string) string {
	return "[Unsupported file type: " + name + "]"
}

func toValidUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "\uFFFD")
}
