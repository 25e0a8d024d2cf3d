package demo

import (
	"context"
	"time"

	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/clause"
)

// Compile-time interface verification.
var (
	_ redline.Analyzer = (*Analyzer)(nil)
	_ redline.Aligner  = (*Aligner)(nil)
)

// DefaultDelay is the simulated latency of the demo providers.
const DefaultDelay = 1200 * time.Millisecond

// Delay waits for d or until ctx is done, whichever comes first.
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Option configures demo providers.
type Option func(*options)

type options struct {
	delay time.Duration
}

// WithDelay sets the simulated latency.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		o.delay = d
	}
}

func newOptions(opts []Option) options {
	o := options{delay: DefaultDelay}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Analyzer returns fixture findings for the sample contract and rule-based
// findings for anything else.
type Analyzer struct {
	delay time.Duration
	rules []Rule
}

// NewAnalyzer creates a demo Analyzer using the built-in rule table.
func NewAnalyzer(opts ...Option) *Analyzer {
	o := newOptions(opts)
	return &Analyzer{delay: o.delay, rules: Rules()}
}

// Analyze waits for the simulated latency and returns findings.
func (a *Analyzer) Analyze(ctx context.Context, doc redline.Document) ([]redline.Annotation, error) {
	if err := Delay(ctx, a.delay); err != nil {
		return nil, err
	}
	if doc.Text == EmploymentContract {
		return Findings(), nil
	}
	return applyRules(doc.Text, a.rules), nil
}

// Aligner returns the fixture diff for the sample contracts and delegates
// everything else to an inner aligner.
type Aligner struct {
	delay time.Duration
	inner redline.Aligner
}

// NewAligner creates a demo Aligner. A nil inner aligner defaults to a
// clause aligner.
func NewAligner(inner redline.Aligner, opts ...Option) *Aligner {
	if inner == nil {
		inner = clause.NewAligner()
	}
	o := newOptions(opts)
	return &Aligner{delay: o.delay, inner: inner}
}

// Align waits for the simulated latency and returns aligned entries.
func (a *Aligner) Align(ctx context.Context, left, right redline.Document) ([]redline.DiffEntry, error) {
	if err := Delay(ctx, a.delay); err != nil {
		return nil, err
	}
	if left.Text == ContractA && right.Text == ContractB {
		return Diff(), nil
	}
	return a.inner.Align(ctx, left, right)
}
