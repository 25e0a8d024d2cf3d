package bubbletea

import (
	"context"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/redline"
)

// emptyReviewHint is shown in place of an empty document.
const emptyReviewHint = "Upload or paste a contract and run a review to see results here."

// analysisMsg carries the result of one analysis request. Results whose
// generation is older than the model's are discarded.
type analysisMsg struct {
	generation  int
	annotations []redline.Annotation
	err         error
}

// ReviewModel is the Bubble Tea model for the contract review panel.
type ReviewModel struct {
	review *redline.Review

	// Collaborators
	ctx         context.Context
	analyzer    redline.Analyzer
	clipboard   redline.Clipboard
	saver       redline.AnnotationSaver
	exportPath  string
	decisionLog redline.DecisionLog
	logPath     string

	// Analysis state
	generation int
	analyzing  bool
	status     string

	// UI state
	viewport    viewport.Model
	help        help.Model
	keymap      ReviewKeyMap
	styles      redline.Styles
	renderer    *lipgloss.Renderer
	lines       []lineSpan
	width       int
	height      int
	ready       bool
	pendingKey  string
	showSummary bool
}

// NewReviewModel creates a ReviewModel for doc. With an analyzer and no
// preloaded annotations the first analysis starts from Init.
func NewReviewModel(doc redline.Document, opts ...Option) ReviewModel {
	o := newOptions(opts)

	m := ReviewModel{
		ctx:         o.ctx,
		analyzer:    o.analyzer,
		clipboard:   o.clipboard,
		saver:       o.saver,
		exportPath:  o.exportPath,
		decisionLog: o.decisionLog,
		logPath:     o.logPath,
		help:        help.New(),
		keymap:      DefaultReviewKeyMap(),
		styles:      o.styles(),
		renderer:    o.renderer,
		showSummary: true,
	}

	review, err := redline.NewReview(doc, o.annotations)
	if err != nil {
		review, _ = redline.NewReview(doc, nil)
		m.status = "Invalid findings: " + err.Error()
	}
	m.review = review

	if m.analyzer != nil && !o.preloaded && doc.Text != "" {
		m.generation = 1
		m.analyzing = true
	}
	return m
}

// Review returns the underlying review state.
func (m ReviewModel) Review() *redline.Review {
	return m.review
}

// Init implements tea.Model.
func (m ReviewModel) Init() tea.Cmd {
	if m.analyzing {
		return m.analyzeCmd()
	}
	return nil
}

func (m ReviewModel) analyzeCmd() tea.Cmd {
	gen := m.generation
	doc := m.review.Document()
	analyzer := m.analyzer
	ctx := m.ctx
	return func() tea.Msg {
		anns, err := analyzer.Analyze(ctx, doc)
		return analysisMsg{generation: gen, annotations: anns, err: err}
	}
}

// Update implements tea.Model.
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case analysisMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.analyzing = false
		if msg.err != nil {
			m.status = "Review failed: " + msg.err.Error()
		} else if err := m.review.Reset(m.review.Document(), msg.annotations); err != nil {
			m.status = "Invalid findings: " + err.Error()
		} else {
			m.status = pluralize(m.review.Len(), "finding")
		}
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ReviewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle multi-key sequences (gg for go to top)
	if m.pendingKey == "g" && key.Matches(msg, m.keymap.GotoTop) {
		m.viewport.GotoTop()
		m.pendingKey = ""
		return m, nil
	}
	if key.Matches(msg, m.keymap.GotoTop) {
		m.pendingKey = "g"
		return m, nil
	}
	m.pendingKey = ""

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.GotoBottom):
		m.viewport.GotoBottom()
	case key.Matches(msg, m.keymap.HalfPageUp):
		m.viewport.HalfPageUp()
	case key.Matches(msg, m.keymap.HalfPageDown):
		m.viewport.HalfPageDown()
	case key.Matches(msg, m.keymap.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keymap.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keymap.NextFinding):
		m.review.FocusNext()
		m.layout()
		m.scrollToFocus()
	case key.Matches(msg, m.keymap.PrevFinding):
		m.review.FocusPrev()
		m.layout()
		m.scrollToFocus()
	case key.Matches(msg, m.keymap.Close):
		m.review.Blur()
		m.layout()
	case key.Matches(msg, m.keymap.Accept):
		m.decide(m.review.Accept)
	case key.Matches(msg, m.keymap.Dismiss):
		m.decide(m.review.Dismiss)
	case key.Matches(msg, m.keymap.Copy):
		m.copySuggestion()
	case key.Matches(msg, m.keymap.Export):
		m.export()
	case key.Matches(msg, m.keymap.ToggleSummary):
		m.showSummary = !m.showSummary
		m.layout()
	case key.Matches(msg, m.keymap.Reanalyze):
		return m.reanalyze()
	}
	return m, nil
}

// decide applies accept or dismiss to the focused finding.
func (m *ReviewModel) decide(apply func(int) (redline.Decision, error)) {
	idx, ok := m.review.Focused()
	if !ok {
		m.status = "No finding selected"
		return
	}
	d, err := apply(idx)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("%s %s finding", capitalize(string(d.Action)), d.Annotation.Category.Treatment().Label)
	if m.decisionLog != nil && m.logPath != "" {
		if err := m.decisionLog.Append(m.logPath, m.review.Document().Name, []redline.Decision{d}); err != nil {
			m.status = "Decision log: " + err.Error()
		}
	}
	m.layout()
}

func (m *ReviewModel) copySuggestion() {
	ann, ok := m.review.FocusedAnnotation()
	switch {
	case !ok:
		m.status = "No finding selected"
	case ann.Suggestion == "":
		m.status = "Finding has no suggestion"
	case m.clipboard == nil:
		m.status = "Clipboard unavailable"
	default:
		if err := m.clipboard.Copy(ann.Suggestion); err != nil {
			m.status = "Copy failed: " + err.Error()
			return
		}
		m.status = "Suggestion copied"
	}
}

func (m *ReviewModel) export() {
	if m.saver == nil || m.exportPath == "" {
		m.status = "Export not configured"
		return
	}
	anns := m.review.Annotations()
	if err := m.saver.Save(m.exportPath, anns); err != nil {
		m.status = "Export failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("Exported %s to %s", pluralize(len(anns), "finding"), m.exportPath)
}

// reanalyze clears the findings and starts a new analysis generation.
// A result still in flight from an earlier generation is ignored.
func (m ReviewModel) reanalyze() (tea.Model, tea.Cmd) {
	if m.analyzer == nil {
		m.status = "No analyzer configured"
		return m, nil
	}
	if m.review.Document().Text == "" {
		m.status = "Nothing to review"
		return m, nil
	}
	m.review.Clear()
	m.generation++
	m.analyzing = true
	m.status = ""
	m.layout()
	return m, m.analyzeCmd()
}

// layout re-renders the document and sizes the viewport around the
// header, bottom panel and status bar.
func (m *ReviewModel) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	focus := -1
	if idx, ok := m.review.Focused(); ok {
		focus = idx
	}

	var content string
	doc := m.review.Document()
	if doc.Text == "" {
		content = styleFromColorPair(m.styles.Muted, m.renderer).Render(emptyReviewHint)
		m.lines = nil
	} else {
		content, m.lines = renderAnnotated(annotatedConfig{
			text:     doc.Text,
			segments: m.review.Segments(),
			focus:    focus,
			styles:   m.styles,
			renderer: m.renderer,
			width:    m.width,
		})
	}

	height := m.height - 2 // header and status bar
	if panel := m.panelView(); panel != "" {
		height -= lipgloss.Height(panel)
	}
	height = max(height, 1)

	if !m.ready {
		m.viewport = viewport.New(m.width, height)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = height
	}
	m.viewport.SetContent(content)
}

// scrollToFocus brings the focused finding into view.
func (m *ReviewModel) scrollToFocus() {
	ann, ok := m.review.FocusedAnnotation()
	if !ok || len(m.lines) == 0 {
		return
	}
	line := lineOf(m.lines, ann.Start)
	if line < m.viewport.YOffset || line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(max(line-m.viewport.Height/3, 0))
	}
}

// View implements tea.Model.
func (m ReviewModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	parts := []string{m.headerView(), m.viewport.View()}
	if panel := m.panelView(); panel != "" {
		parts = append(parts, panel)
	}
	parts = append(parts, m.statusBarView())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m ReviewModel) headerView() string {
	header := styleFromColorPair(m.styles.Header, m.renderer).Bold(true)
	muted := styleFromColorPair(m.styles.Muted, m.renderer)

	title := header.Render("Contract Review Panel")
	if name := m.review.Document().Name; name != "" {
		title += muted.Render("  " + name)
	}
	if m.analyzing {
		title += muted.Render("  Reviewing...")
	}
	return title
}

// panelView renders the popover for the focused finding, or the findings
// summary when nothing is focused.
func (m ReviewModel) panelView() string {
	if ann, ok := m.review.FocusedAnnotation(); ok {
		return renderPopover(ann, m.styles, m.renderer, m.width)
	}
	if m.showSummary && !m.analyzing && m.review.Document().Text != "" {
		return renderFindings(m.review.Summary(), m.styles, m.renderer)
	}
	return ""
}

func (m ReviewModel) statusBarView() string {
	muted := styleFromColorPair(m.styles.Muted, m.renderer)

	left := m.status
	if idx, ok := m.review.Focused(); ok && left == "" {
		total := m.review.Len()
		left = fmt.Sprintf("finding %*d/%d", digitWidth(total), idx+1, total)
	}
	if left != "" {
		left += "  "
	}
	return padLine(muted.Render(left)+m.help.View(m.keymap), m.width)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
