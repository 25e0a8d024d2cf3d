package jsonl

import (
	"os"

	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var _ redline.AnnotationSaver = (*Saver)(nil)

// Saver writes Annotation records to JSONL files.
type Saver struct{}

// NewSaver creates a new Saver.
func NewSaver() *Saver {
	return &Saver{}
}

// Save replaces the file at path with annotations, creating parent
// directories if needed.
func (s *Saver) Save(path string, annotations []redline.Annotation) error {
	f, err := openFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY)
	if err != nil {
		return err
	}
	if err := encode(f, annotations); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
