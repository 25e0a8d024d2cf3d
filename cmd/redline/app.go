package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/demo"
	"github.com/fwojciec/redline/fs"
	"github.com/fwojciec/redline/git"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrNoText is returned when a command has no contract to read.
var ErrNoText = errors.New("no contract text: pass a file, use --sample, or pipe a contract on stdin")

// ErrNoDocuments is returned when a comparison cannot find two documents.
var ErrNoDocuments = errors.New("compare needs two documents: pass two files, two rev:path references, or one path with --git-repo")

// FileLoader reads documents from files and stdin.
type FileLoader interface {
	redline.DocumentLoader
	LoadAll(ctx context.Context, paths ...string) ([]redline.Document, error)
}

// Documents resolves command arguments to documents.
//
// With Git set, arguments of the form "rev:path" are read from the
// repository; everything else is read by Files.
type Documents struct {
	Files FileLoader
	Git   *git.Loader
	Stdin bool // stdin is a pipe rather than a terminal
}

// One resolves a single document argument. With no argument it reads a
// piped stdin.
func (d *Documents) One(ctx context.Context, args []string) (redline.Document, error) {
	switch len(args) {
	case 0:
		if !d.Stdin {
			return redline.Document{}, ErrNoText
		}
		return d.Files.Load(fs.StdinPath)
	case 1:
		return d.load(ctx, args[0])
	default:
		return redline.Document{}, fmt.Errorf("expected one document, got %d", len(args))
	}
}

// Pair resolves the two sides of a comparison. A single path with Git set
// compares its two most recent revisions.
func (d *Documents) Pair(ctx context.Context, args []string) (left, right redline.Document, err error) {
	switch {
	case len(args) == 1 && d.Git != nil:
		args, err = d.latestRevisions(ctx, args[0])
		if err != nil {
			return left, right, err
		}
	case len(args) != 2:
		return left, right, ErrNoDocuments
	}

	docs, err := d.loadAll(ctx, args)
	if err != nil {
		return left, right, err
	}
	return docs[0], docs[1], nil
}

func (d *Documents) latestRevisions(ctx context.Context, path string) ([]string, error) {
	hashes, err := d.Git.Runner.Log(ctx, d.Git.RepoPath, path, 2)
	if err != nil {
		return nil, err
	}
	if len(hashes) < 2 {
		return nil, fmt.Errorf("%s has %d revision(s): %w", path, len(hashes), ErrNoDocuments)
	}
	return []string{hashes[1] + ":" + path, hashes[0] + ":" + path}, nil
}

func (d *Documents) isRevision(arg string) bool {
	if d.Git == nil {
		return false
	}
	_, _, ok := git.SplitRevPath(arg)
	return ok
}

func (d *Documents) load(ctx context.Context, arg string) (redline.Document, error) {
	if d.isRevision(arg) {
		return d.Git.Load(ctx, arg)
	}
	return d.Files.Load(arg)
}

func (d *Documents) loadAll(ctx context.Context, args []string) ([]redline.Document, error) {
	if !d.isRevision(args[0]) && !d.isRevision(args[1]) {
		return d.Files.LoadAll(ctx, args...)
	}

	docs := make([]redline.Document, len(args))
	g, ctx := errgroup.WithContext(ctx)
	for i, arg := range args {
		g.Go(func() error {
			doc, err := d.load(ctx, arg)
			if err != nil {
				return fmt.Errorf("%s: %w", arg, err)
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

// ReviewApp opens one contract for interactive review.
type ReviewApp struct {
	Documents *Documents
	Viewer    redline.ReviewViewer
	Logger    zerolog.Logger
	Sample    bool
}

// Run resolves the document and displays it.
func (a *ReviewApp) Run(ctx context.Context, args []string) error {
	doc := demo.SampleDocument()
	if !a.Sample {
		var err error
		if doc, err = a.Documents.One(ctx, args); err != nil {
			return err
		}
	}
	a.Logger.Info().Str("document", doc.Name).Int("bytes", len(doc.Text)).Msg("review")
	return a.Viewer.ViewReview(ctx, doc)
}

// CompareApp opens two contracts side by side. The viewer aligns them.
type CompareApp struct {
	Documents *Documents
	Viewer    redline.ComparisonViewer
	Logger    zerolog.Logger
	Sample    bool
}

// Run resolves both documents and displays the comparison.
func (a *CompareApp) Run(ctx context.Context, args []string) error {
	left, right := demo.SampleComparison()
	if !a.Sample {
		var err error
		if left, right, err = a.Documents.Pair(ctx, args); err != nil {
			return err
		}
	}
	a.Logger.Info().Str("left", left.Name).Str("right", right.Name).Msg("compare")
	return a.Viewer.ViewComparison(ctx, left, right, nil)
}

// Output formats of the segments command.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// SegmentsApp analyzes a contract and writes the projected segments.
type SegmentsApp struct {
	Documents *Documents
	Analyzer  redline.Analyzer
	Out       io.Writer
	Logger    zerolog.Logger
	Sample    bool
	Format    string
}

type segmentsOutput struct {
	Document    string               `json:"document"`
	Annotations []redline.Annotation `json:"annotations"`
	Segments    []redline.Segment    `json:"segments"`
	Summary     redline.Summary      `json:"summary"`
}

// Run analyzes the document and writes its segments or its findings summary.
func (a *SegmentsApp) Run(ctx context.Context, args []string) error {
	doc := demo.SampleDocument()
	if !a.Sample {
		var err error
		if doc, err = a.Documents.One(ctx, args); err != nil {
			return err
		}
	}

	annotations, err := a.Analyzer.Analyze(ctx, doc)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", doc.Name, err)
	}
	segments, err := redline.Project(doc.Text, annotations)
	if err != nil {
		return err
	}
	summary := redline.Summarize(annotations)
	a.Logger.Info().Str("document", doc.Name).Int("findings", summary.Total()).Msg("segments")

	if a.Format == FormatText {
		for _, line := range summary.Lines() {
			if _, err := fmt.Fprintln(a.Out, line); err != nil {
				return err
			}
		}
		return nil
	}

	if annotations == nil {
		annotations = []redline.Annotation{}
	}
	if segments == nil {
		segments = []redline.Segment{}
	}
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(segmentsOutput{
		Document:    doc.Name,
		Annotations: annotations,
		Segments:    segments,
		Summary:     summary,
	})
}
