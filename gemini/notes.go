package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/redline"
	"golang.org/x/sync/errgroup"
)

// Compile-time interface verification.
var _ redline.Aligner = (*NoteWriter)(nil)

// DefaultNoteConcurrency bounds the number of note requests in flight.
const DefaultNoteConcurrency = 4

// NoteWriter decorates an Aligner and asks Gemini for a one-line risk note
// on every entry that differs between the two contracts.
type NoteWriter struct {
	inner       redline.Aligner
	client      GenerativeClient
	model       string
	formatter   redline.PromptFormatter
	timeout     time.Duration
	concurrency int
}

// NoteWriterOption configures a NoteWriter.
type NoteWriterOption func(*NoteWriter)

// WithNoteTimeout sets the timeout for each note request.
func WithNoteTimeout(d time.Duration) NoteWriterOption {
	return func(w *NoteWriter) {
		w.timeout = d
	}
}

// WithConcurrency sets the number of concurrent note requests.
func WithConcurrency(n int) NoteWriterOption {
	return func(w *NoteWriter) {
		if n > 0 {
			w.concurrency = n
		}
	}
}

// NewNoteWriter creates a NoteWriter around inner.
func NewNoteWriter(inner redline.Aligner, client GenerativeClient, model string, opts ...NoteWriterOption) *NoteWriter {
	w := &NoteWriter{
		inner:       inner,
		client:      client,
		model:       model,
		formatter:   &redline.DefaultFormatter{},
		timeout:     DefaultAnalyzeTimeout,
		concurrency: DefaultNoteConcurrency,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Align delegates to the inner aligner and fills in Note for entries that
// are not the same on both sides and have no note yet.
func (w *NoteWriter) Align(ctx context.Context, left, right redline.Document) ([]redline.DiffEntry, error) {
	entries, err := w.inner.Align(ctx, left, right)
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for i := range entries {
		if entries[i].Kind == redline.DiffSame || entries[i].Note != "" {
			continue
		}
		g.Go(func() error {
			note, err := w.note(ctx, entries[i])
			if err != nil {
				return fmt.Errorf("note for %s: %w", entries[i].Label, err)
			}
			entries[i].Note = note
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (w *NoteWriter) note(ctx context.Context, entry redline.DiffEntry) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	resp, err := w.client.GenerateContent(ctx, w.model, userContent(w.formatter.FormatEntry(entry)), BuildNoteConfig())
	if err != nil {
		return "", err
	}
	return firstLine(resp.Text), nil
}

const noteSystemInstruction = `You compare two versions of a contract clause.
Reply with a single short sentence, in plain language, describing the most
important risk the difference creates for the reader. Reply with an empty
line if the difference carries no meaningful risk.`

// BuildNoteConfig creates the generation config for clause notes.
func BuildNoteConfig() *GenerateContentConfig {
	temp := float32(0.2)
	return &GenerateContentConfig{
		SystemInstruction: systemInstruction(noteSystemInstruction),
		Temperature:       &temp,
		MaxOutputTokens:   128,
		ResponseMIMEType:  "text/plain",
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
