package bubbletea

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/redline"
)

// alignMsg carries the result of one alignment request.
type alignMsg struct {
	generation int
	entries    []redline.DiffEntry
	err        error
}

// CompareModel is the Bubble Tea model for the side-by-side comparison viewer.
type CompareModel struct {
	left, right redline.Document
	entries     []redline.DiffEntry
	rows        []redline.ComparisonRow
	summary     redline.ComparisonSummary

	ctx        context.Context
	aligner    redline.Aligner
	wordDiffer redline.WordDiffer

	generation int
	comparing  bool
	status     string

	viewport    viewport.Model
	help        help.Model
	keymap      CompareKeyMap
	styles      redline.Styles
	renderer    *lipgloss.Renderer
	positions   []int
	current     int
	width       int
	height      int
	ready       bool
	pendingKey  string
	showSummary bool
}

// NewCompareModel creates a CompareModel for two documents. When entries
// is nil and an aligner is configured, the documents are aligned from Init.
func NewCompareModel(left, right redline.Document, entries []redline.DiffEntry, opts ...Option) CompareModel {
	o := newOptions(opts)
	m := CompareModel{
		left:        left,
		right:       right,
		ctx:         o.ctx,
		aligner:     o.aligner,
		wordDiffer:  o.wordDiffer,
		help:        help.New(),
		keymap:      DefaultCompareKeyMap(),
		styles:      o.styles(),
		renderer:    o.renderer,
		current:     -1,
		showSummary: true,
	}
	if entries == nil && m.aligner != nil {
		m.generation = 1
		m.comparing = true
		return m
	}
	m.setEntries(entries)
	return m
}

// Rows returns the projected comparison rows.
func (m CompareModel) Rows() []redline.ComparisonRow {
	return m.rows
}

// Summary returns the comparison summary.
func (m CompareModel) Summary() redline.ComparisonSummary {
	return m.summary
}

func (m *CompareModel) setEntries(entries []redline.DiffEntry) {
	rows, err := redline.ProjectComparison(entries, m.wordDiffer)
	if err != nil {
		m.status = "Invalid comparison: " + err.Error()
		m.entries, m.rows, m.summary = nil, nil, redline.ComparisonSummary{}
		return
	}
	m.entries = entries
	m.rows = rows
	m.summary = redline.SummarizeComparison(entries, m.wordDiffer)
	m.current = -1
}

// Init implements tea.Model.
func (m CompareModel) Init() tea.Cmd {
	if m.comparing {
		return m.alignCmd()
	}
	return nil
}

func (m CompareModel) alignCmd() tea.Cmd {
	gen := m.generation
	aligner := m.aligner
	ctx, left, right := m.ctx, m.left, m.right
	return func() tea.Msg {
		entries, err := aligner.Align(ctx, left, right)
		return alignMsg{generation: gen, entries: entries, err: err}
	}
}

// Update implements tea.Model.
func (m CompareModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case alignMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.comparing = false
		if msg.err != nil {
			m.status = "Comparison failed: " + msg.err.Error()
		} else {
			m.status = ""
			m.setEntries(msg.entries)
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

func (m CompareModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
	case key.Matches(msg, m.keymap.NextRow):
		if m.current < len(m.rows)-1 {
			m.gotoRow(m.current + 1)
		}
	case key.Matches(msg, m.keymap.PrevRow):
		if m.current > 0 {
			m.gotoRow(m.current - 1)
		}
	case key.Matches(msg, m.keymap.NextChange):
		m.gotoNextChange()
	case key.Matches(msg, m.keymap.ToggleSummary):
		m.showSummary = !m.showSummary
		m.layout()
	case key.Matches(msg, m.keymap.Recompare):
		if m.aligner == nil {
			m.status = "No aligner configured"
			return m, nil
		}
		m.generation++
		m.comparing = true
		m.status = ""
		m.layout()
		return m, m.alignCmd()
	}
	return m, nil
}

func (m *CompareModel) gotoRow(i int) {
	m.current = i
	if i >= 0 && i < len(m.positions) {
		m.viewport.SetYOffset(m.positions[i])
	}
}

// gotoNextChange moves to the next row that is not the same on both
// sides, wrapping around to the first.
func (m *CompareModel) gotoNextChange() {
	n := len(m.rows)
	for step := 1; step <= n; step++ {
		i := (m.current + step) % n
		if i < 0 {
			i += n
		}
		if m.rows[i].Kind != redline.DiffSame {
			m.gotoRow(i)
			return
		}
	}
	m.status = "No differences"
}

func (m *CompareModel) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	var content string
	switch {
	case m.comparing:
		content = styleFromColorPair(m.styles.Muted, m.renderer).Render("Comparing...")
		m.positions = nil
	case len(m.rows) == 0:
		content = styleFromColorPair(m.styles.Muted, m.renderer).Render("No differences found.")
		m.positions = nil
	default:
		content, m.positions = renderComparison(comparisonConfig{
			rows:     m.rows,
			styles:   m.styles,
			renderer: m.renderer,
			width:    m.width,
		})
	}

	height := m.height - 2
	if panel := m.panelView(); panel != "" {
		height -= lipgloss.Height(panel) + 1
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

// View implements tea.Model.
func (m CompareModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	parts := []string{m.headerView(), m.viewport.View()}
	if panel := m.panelView(); panel != "" {
		parts = append(parts, "", panel)
	}
	parts = append(parts, m.statusBarView())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m CompareModel) headerView() string {
	header := styleFromColorPair(m.styles.Header, m.renderer).Bold(true)
	muted := styleFromColorPair(m.styles.Muted, m.renderer)

	title := header.Render("Contract Comparison")
	if m.left.Name != "" || m.right.Name != "" {
		title += muted.Render(fmt.Sprintf("  %s vs %s", m.left.Name, m.right.Name))
	}
	return title
}

func (m CompareModel) panelView() string {
	if !m.showSummary || m.comparing || len(m.rows) == 0 {
		return ""
	}
	return renderComparisonSummary(m.summary, m.styles, m.renderer)
}

func (m CompareModel) statusBarView() string {
	muted := styleFromColorPair(m.styles.Muted, m.renderer)

	left := m.status
	if left == "" && m.current >= 0 && len(m.rows) > 0 {
		total := len(m.rows)
		left = fmt.Sprintf("clause %*d/%d: %s", digitWidth(total), m.current+1, total, m.rows[m.current].Left.Label)
	}
	if left != "" {
		left += "  "
	}
	return padLine(muted.Render(left)+m.help.View(m.keymap), m.width)
}
