package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/redline"
	theme "github.com/fwojciec/redline/lipgloss"
)

// Option configures the review and comparison models and the Viewer
// that runs them.
type Option func(*options)

type options struct {
	ctx         context.Context
	renderer    *lipgloss.Renderer
	theme       redline.Theme
	analyzer    redline.Analyzer
	annotations []redline.Annotation
	preloaded   bool
	aligner     redline.Aligner
	wordDiffer  redline.WordDiffer
	clipboard   redline.Clipboard
	saver       redline.AnnotationSaver
	exportPath  string
	decisionLog redline.DecisionLog
	logPath     string
	programOpts []tea.ProgramOption
}

func newOptions(opts []Option) *options {
	o := &options{ctx: context.Background()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) styles() redline.Styles {
	if o.theme != nil {
		return o.theme.Styles()
	}
	return theme.DefaultTheme().Styles()
}

// WithContext sets the context passed to analyzers and aligners.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// WithRenderer sets a custom lipgloss renderer.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithTheme sets the color theme.
func WithTheme(t redline.Theme) Option {
	return func(o *options) {
		o.theme = t
	}
}

// WithAnalyzer sets the analyzer that produces findings for the review
// panel. Without preloaded annotations the review starts on launch.
func WithAnalyzer(a redline.Analyzer) Option {
	return func(o *options) {
		o.analyzer = a
	}
}

// WithAnnotations preloads the review panel with findings, skipping the
// initial analysis.
func WithAnnotations(anns []redline.Annotation) Option {
	return func(o *options) {
		o.annotations = anns
		o.preloaded = true
	}
}

// WithAligner sets the aligner used to (re)compare documents.
func WithAligner(a redline.Aligner) Option {
	return func(o *options) {
		o.aligner = a
	}
}

// WithWordDiffer sets the word differ for word-level highlighting.
func WithWordDiffer(d redline.WordDiffer) Option {
	return func(o *options) {
		o.wordDiffer = d
	}
}

// WithClipboard sets the clipboard used to copy suggestions.
func WithClipboard(c redline.Clipboard) Option {
	return func(o *options) {
		o.clipboard = c
	}
}

// WithExport sets where the remaining findings are written on export.
func WithExport(s redline.AnnotationSaver, path string) Option {
	return func(o *options) {
		o.saver = s
		o.exportPath = path
	}
}

// WithDecisionLog records every accept and dismiss to path.
func WithDecisionLog(l redline.DecisionLog, path string) Option {
	return func(o *options) {
		o.decisionLog = l
		o.logPath = path
	}
}

// WithProgramOptions passes additional options to tea.NewProgram.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(o *options) {
		o.programOpts = append(o.programOpts, opts...)
	}
}
