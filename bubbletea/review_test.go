package bubbletea_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/bubbletea"
	"github.com/fwojciec/redline/demo"
	"github.com/fwojciec/redline/mock"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trueColorRenderer creates a lipgloss renderer that outputs true colors.
// This is useful for testing color output without affecting global state.
func trueColorRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

func sampleReviewModel(opts ...bubbletea.Option) bubbletea.ReviewModel {
	opts = append([]bubbletea.Option{bubbletea.WithAnnotations(demo.Findings())}, opts...)
	return bubbletea.NewReviewModel(demo.SampleDocument(), opts...)
}

func finalReview(t *testing.T, tm *teatest.TestModel) *redline.Review {
	t.Helper()
	m, ok := tm.FinalModel(t, teatest.WithFinalTimeout(time.Second)).(bubbletea.ReviewModel)
	require.True(t, ok)
	return m.Review()
}

func TestReviewModel_ViewBeforeReady(t *testing.T) {
	t.Parallel()

	m := sampleReviewModel()
	assert.Equal(t, "Loading...", m.View())
}

func TestReviewModel_RendersDocumentAndSummary(t *testing.T) {
	t.Parallel()

	tm := teatest.NewTestModel(t, sampleReviewModel(), teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Contract Review Panel")) &&
			bytes.Contains(out, []byte("Summary of Findings")) &&
			bytes.Contains(out, []byte("Risk: Missing non-compete clause."))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}

func TestReviewModel_AppliesCategoryColors(t *testing.T) {
	t.Parallel()

	m := sampleReviewModel(bubbletea.WithRenderer(trueColorRenderer()))
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	// True color backgrounds use 48;2;R;G;B.
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("48;2;"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}

func TestReviewModel_EmptyDocumentShowsHint(t *testing.T) {
	t.Parallel()

	tm := teatest.NewTestModel(t, bubbletea.NewReviewModel(redline.Document{}), teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Upload or paste a contract"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}

func TestReviewModel_TabShowsPopover(t *testing.T) {
	t.Parallel()

	tm := teatest.NewTestModel(t, sampleReviewModel(), teatest.WithInitialTermSize(100, 30))

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("≈ Ambiguous")) &&
			bytes.Contains(out, []byte("Suggestion: Specify the duties more clearly"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	review := finalReview(t, tm)
	idx, ok := review.Focused()
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestReviewModel_AcceptRemovesFocusedFinding(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var logged []redline.Decision
	log := &mock.DecisionLog{
		AppendFn: func(path, document string, decisions []redline.Decision) error {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, "decisions.jsonl", path)
			assert.Equal(t, demo.SampleName, document)
			logged = append(logged, decisions...)
			return nil
		},
	}

	m := sampleReviewModel(bubbletea.WithDecisionLog(log, "decisions.jsonl"))
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Accepted Risk finding"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	review := finalReview(t, tm)

	assert.Equal(t, 2, review.Len())
	_, focused := review.Focused()
	assert.False(t, focused, "removal clears focus")
	require.Len(t, review.Decisions(), 1)
	assert.Equal(t, redline.ActionAccepted, review.Decisions()[0].Action)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, logged, 1)
	assert.Equal(t, demo.Findings()[0], logged[0].Annotation)
}

func TestReviewModel_DismissWithoutFocusIsRejected(t *testing.T) {
	t.Parallel()

	tm := teatest.NewTestModel(t, sampleReviewModel(), teatest.WithInitialTermSize(100, 30))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("No finding selected"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Equal(t, 3, finalReview(t, tm).Len())
}

func TestReviewModel_DismissLastFinding(t *testing.T) {
	t.Parallel()

	tm := teatest.NewTestModel(t, sampleReviewModel(), teatest.WithInitialTermSize(100, 30))

	tm.Send(tea.KeyMsg{Type: tea.KeyShiftTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Dismissed Missing finding"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	review := finalReview(t, tm)
	assert.Equal(t, demo.Findings()[:2], review.Annotations())
}

func TestReviewModel_CopySuggestion(t *testing.T) {
	t.Parallel()

	copied := make(chan string, 1)
	clip := &mock.Clipboard{
		CopyFn: func(content string) error {
			copied <- content
			return nil
		},
	}

	tm := teatest.NewTestModel(t, sampleReviewModel(bubbletea.WithClipboard(clip)), teatest.WithInitialTermSize(100, 30))

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Suggestion copied"))
	})
	assert.Equal(t, demo.Findings()[0].Suggestion, <-copied)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}

func TestReviewModel_CopyFailureIsReported(t *testing.T) {
	t.Parallel()

	clip := &mock.Clipboard{
		CopyFn: func(string) error { return errors.New("no display") },
	}

	tm := teatest.NewTestModel(t, sampleReviewModel(bubbletea.WithClipboard(clip)), teatest.WithInitialTermSize(100, 30))

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Copy failed: no display"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}

func TestReviewModel_ExportSavesRemainingFindings(t *testing.T) {
	t.Parallel()

	saved := make(chan []redline.Annotation, 1)
	saver := &mock.AnnotationSaver{
		SaveFn: func(path string, anns []redline.Annotation) error {
			assert.Equal(t, "out.jsonl", path)
			saved <- anns
			return nil
		},
	}

	m := sampleReviewModel(bubbletea.WithExport(saver, "out.jsonl"))
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Exported 2 findings to out.jsonl"))
	})
	assert.Equal(t, demo.Findings()[1:], <-saved)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}

func TestReviewModel_AnalyzesOnLaunch(t *testing.T) {
	t.Parallel()

	analyzer := &mock.Analyzer{
		AnalyzeFn: func(_ context.Context, doc redline.Document) ([]redline.Annotation, error) {
			assert.Equal(t, demo.SampleName, doc.Name)
			return demo.Findings(), nil
		},
	}

	m := bubbletea.NewReviewModel(demo.SampleDocument(), bubbletea.WithAnalyzer(analyzer))
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("3 findings"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Equal(t, 3, finalReview(t, tm).Len())
}

func TestReviewModel_AnalysisErrorIsReported(t *testing.T) {
	t.Parallel()

	analyzer := &mock.Analyzer{
		AnalyzeFn: func(context.Context, redline.Document) ([]redline.Annotation, error) {
			return nil, errors.New("quota exceeded")
		},
	}

	m := bubbletea.NewReviewModel(demo.SampleDocument(), bubbletea.WithAnalyzer(analyzer))
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Review failed: quota exceeded"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}

func TestReviewModel_InvalidFindingsAreRejected(t *testing.T) {
	t.Parallel()

	analyzer := &mock.Analyzer{
		AnalyzeFn: func(context.Context, redline.Document) ([]redline.Annotation, error) {
			return []redline.Annotation{
				{Start: 10, End: 20, Category: redline.CategoryRisk},
				{Start: 15, End: 25, Category: redline.CategoryRisk},
			}, nil
		},
	}

	m := bubbletea.NewReviewModel(demo.SampleDocument(), bubbletea.WithAnalyzer(analyzer))
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Invalid findings"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Equal(t, 0, finalReview(t, tm).Len())
}

func TestReviewModel_StaleAnalysisIsDiscarded(t *testing.T) {
	t.Parallel()

	calls := 0
	analyzer := &mock.Analyzer{
		AnalyzeFn: func(context.Context, redline.Document) ([]redline.Annotation, error) {
			calls++
			if calls == 1 {
				return demo.Findings(), nil
			}
			return demo.Findings()[:1], nil
		},
	}

	var m tea.Model = bubbletea.NewReviewModel(demo.SampleDocument(), bubbletea.WithAnalyzer(analyzer))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	first := m.Init()
	require.NotNil(t, first)

	m, second := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, second)

	// The first request completes after the second was issued.
	staleMsg := first()
	freshMsg := second()

	m, _ = m.Update(freshMsg)
	m, _ = m.Update(staleMsg)

	review := m.(bubbletea.ReviewModel).Review()
	assert.Equal(t, 1, review.Len(), "result of the superseded request must not replace the fresh one")
}

func TestReviewModel_ReanalyzeWithoutAnalyzer(t *testing.T) {
	t.Parallel()

	var m tea.Model = sampleReviewModel()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "No analyzer configured")
	assert.Equal(t, 3, m.(bubbletea.ReviewModel).Review().Len())
}

func TestReviewModel_GotoTopOnGG(t *testing.T) {
	t.Parallel()

	var m tea.Model = sampleReviewModel()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 20, Height: 12})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})

	assert.Contains(t, m.View(), "This")
}
