package bubbletea

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/redline"
)

// lineSpan is one display line of a wrapped text, as a byte range into
// the text. Whitespace consumed by a soft wrap belongs to no line.
type lineSpan struct {
	start, end int
}

// wrapLines splits text into display lines no wider than width columns,
// breaking at spaces where possible. Hard newlines always break. A width
// of zero or less disables soft wrapping.
func wrapLines(text string, width int) []lineSpan {
	var lines []lineSpan
	lineStart := 0
	for lineStart <= len(text) {
		lineEnd := strings.IndexByte(text[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(text)
		} else {
			lineEnd += lineStart
		}
		lines = append(lines, wrapLine(text, lineStart, lineEnd, width)...)
		lineStart = lineEnd + 1
	}
	return lines
}

func wrapLine(text string, start, end, width int) []lineSpan {
	if width <= 0 || start == end {
		return []lineSpan{{start, end}}
	}

	var lines []lineSpan
	col := 0
	breakAt, resume := -1, -1
	base := start
	for i, r := range text[base:end] {
		i += base
		next := advance(col, r)
		if next > width && col > 0 && r != ' ' {
			if breakAt > start {
				lines = append(lines, lineSpan{start, breakAt})
				start = resume
			} else {
				lines = append(lines, lineSpan{start, i})
				start = i
			}
			breakAt, resume = -1, -1
			col = columns(text[start:i])
			next = advance(col, r)
		}
		if r == ' ' {
			breakAt, resume = i, i+1
		}
		col = next
	}
	return append(lines, lineSpan{start, end})
}

func columns(s string) int {
	col := 0
	for _, r := range s {
		col = advance(col, r)
	}
	return col
}

// lineOf returns the index of the display line containing offset.
func lineOf(lines []lineSpan, offset int) int {
	i := sort.Search(len(lines), func(i int) bool {
		return lines[i].end > offset
	})
	if i == len(lines) {
		return len(lines) - 1
	}
	return i
}

// annotatedConfig holds the rendering parameters for renderAnnotated.
type annotatedConfig struct {
	text     string
	segments []redline.Segment
	focus    int // Index of the focused annotation, -1 for none
	styles   redline.Styles
	renderer *lipgloss.Renderer
	width    int
}

// renderAnnotated renders the segments of a document as wrapped, styled
// lines and returns the display line layout alongside the content.
func renderAnnotated(cfg annotatedConfig) (string, []lineSpan) {
	lines := wrapLines(cfg.text, cfg.width)

	plain := styleFromColorPair(cfg.styles.Text, cfg.renderer)
	focused := styleFromColorPair(cfg.styles.Focused, cfg.renderer).Bold(true)
	byCategory := make(map[redline.Category]lipgloss.Style)
	for _, c := range redline.Categories() {
		byCategory[c] = styleFromColorPair(cfg.styles.ForCategory(c), cfg.renderer)
	}

	var sb strings.Builder
	seg := 0
	for n, line := range lines {
		if n > 0 {
			sb.WriteString("\n")
		}
		col := 0
		for seg < len(cfg.segments) && cfg.segments[seg].End <= line.start {
			seg++
		}
		for i := seg; i < len(cfg.segments) && cfg.segments[i].Start < line.end; i++ {
			s := cfg.segments[i]
			piece := cfg.text[max(s.Start, line.start):min(s.End, line.end)]
			style := plain
			switch {
			case s.Annotated() && s.Index == cfg.focus:
				style = focused
			case s.Annotated():
				style = byCategory[s.Annotation.Category]
			}
			expanded := ExpandTabs(piece, col)
			sb.WriteString(style.Render(expanded))
			col += lipgloss.Width(expanded)
		}
	}
	return sb.String(), lines
}

// renderPopover renders the detail box for the focused annotation,
// mirroring the hover card of the review panel.
func renderPopover(ann redline.Annotation, styles redline.Styles, renderer *lipgloss.Renderer, width int) string {
	t := ann.Category.Treatment()
	heading := styleFromColorPair(styles.ForCategory(ann.Category), renderer).Bold(true)
	muted := styleFromColorPair(styles.Muted, renderer)

	var sb strings.Builder
	sb.WriteString(heading.Render(t.Icon + " " + t.Label))
	sb.WriteString("\n")
	sb.WriteString(ann.Message)
	if ann.Suggestion != "" {
		sb.WriteString("\nSuggestion: ")
		sb.WriteString(ann.Suggestion)
	}
	sb.WriteString("\n")
	sb.WriteString(muted.Render("a accept  x dismiss  y copy suggestion  esc close"))

	box := styleFromColorPair(styles.Popover, renderer).Padding(0, 1)
	if width > 2 {
		box = box.Width(width)
	}
	return box.Render(sb.String())
}

// renderFindings renders the summary of findings panel.
func renderFindings(summary redline.Summary, styles redline.Styles, renderer *lipgloss.Renderer) string {
	header := styleFromColorPair(styles.Header, renderer).Bold(true)

	var sb strings.Builder
	sb.WriteString(header.Render("Summary of Findings"))
	sb.WriteString("\n")
	if summary.Total() > 0 {
		counts := make([]string, 0, len(redline.Categories()))
		for _, c := range redline.Categories() {
			t := c.Treatment()
			style := styleFromColorPair(styles.ForCategory(c), renderer)
			counts = append(counts, style.Render(fmt.Sprintf("%s %s %d", t.Icon, t.Label, summary.Counts[c])))
		}
		sb.WriteString(strings.Join(counts, "  "))
		sb.WriteString("\n")
	}
	for i, line := range summary.Lines() {
		if summary.Total() > 0 {
			icon := summary.Findings[i].Category.Treatment().Icon
			line = icon + " " + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// comparisonConfig holds the rendering parameters for renderComparison.
type comparisonConfig struct {
	rows     []redline.ComparisonRow
	styles   redline.Styles
	renderer *lipgloss.Renderer
	width    int
}

// minColumnWidth keeps comparison columns readable on narrow terminals.
const minColumnWidth = 16

// renderComparison renders rows as two columns and returns the display
// line at which each row starts.
func renderComparison(cfg comparisonConfig) (string, []int) {
	colWidth := (cfg.width - 3) / 2
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}

	header := styleFromColorPair(cfg.styles.Header, cfg.renderer).Bold(true)
	muted := styleFromColorPair(cfg.styles.Muted, cfg.renderer)
	note := styleFromColorPair(cfg.styles.Note, cfg.renderer)
	column := newStyle(cfg.renderer).Width(colWidth)

	var sb strings.Builder
	sb.WriteString(column.Render(header.Render(redline.LeftName)))
	sb.WriteString(muted.Render(" │ "))
	sb.WriteString(column.Render(header.Render(redline.RightName)))
	sb.WriteString("\n")
	lineNum := 1

	positions := make([]int, len(cfg.rows))
	for i, row := range cfg.rows {
		positions[i] = lineNum

		left := column.Render(renderBlock(row.Left, cfg.styles, cfg.renderer, header))
		right := column.Render(renderBlock(row.Right, cfg.styles, cfg.renderer, header))
		height := max(lipgloss.Height(left), lipgloss.Height(right))
		sep := muted.Render(strings.TrimSuffix(strings.Repeat(" │ \n", height), "\n"))

		block := lipgloss.JoinHorizontal(lipgloss.Top, left, sep, right)
		sb.WriteString(block)
		sb.WriteString("\n")
		lineNum += lipgloss.Height(block)

		if row.Note != "" {
			n := newStyle(cfg.renderer).Width(max(cfg.width, minColumnWidth)).Render(note.Render("⚠ " + row.Note))
			sb.WriteString(n)
			sb.WriteString("\n")
			lineNum += lipgloss.Height(n)
		}
		sb.WriteString("\n")
		lineNum++
	}
	return strings.TrimSuffix(sb.String(), "\n"), positions
}

func renderBlock(b redline.Block, styles redline.Styles, renderer *lipgloss.Renderer, header lipgloss.Style) string {
	base := styleFromColorPair(styles.ForBlock(b.Treatment), renderer)
	label := header.Render(b.Label)
	if !b.Present {
		return label + "\n" + base.Italic(true).Render(b.Text)
	}
	if len(b.Spans) == 0 {
		return label + "\n" + base.Render(b.Text)
	}

	highlight := styleFromColorPair(styles.ChangedHighlight, renderer)
	var sb strings.Builder
	for _, span := range b.Spans {
		if span.Changed {
			sb.WriteString(highlight.Render(span.Text))
		} else {
			sb.WriteString(base.Render(span.Text))
		}
	}
	return label + "\n" + sb.String()
}

// renderComparisonSummary renders the three comparison summary lists.
func renderComparisonSummary(s redline.ComparisonSummary, styles redline.Styles, renderer *lipgloss.Renderer) string {
	header := styleFromColorPair(styles.Header, renderer).Bold(true)
	muted := styleFromColorPair(styles.Muted, renderer)

	sections := []struct {
		title string
		items []string
	}{
		{"What's Changed?", s.Changed},
		{"What's Risky?", s.Risky},
		{"What's Missing?", s.Missing},
	}

	var sb strings.Builder
	for i, sec := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(header.Render(sec.title))
		sb.WriteString("\n")
		if len(sec.items) == 0 {
			sb.WriteString(muted.Render("  (none)"))
			sb.WriteString("\n")
			continue
		}
		for _, item := range sec.items {
			sb.WriteString("  • ")
			sb.WriteString(item)
			sb.WriteString("\n")
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// newStyle creates a style bound to renderer, or the default renderer when nil.
func newStyle(renderer *lipgloss.Renderer) lipgloss.Style {
	if renderer != nil {
		return renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// styleFromColorPair creates a lipgloss style from a ColorPair.
// If renderer is nil, the default lipgloss renderer is used.
func styleFromColorPair(cp redline.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	style := newStyle(renderer)
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

// padLine pads a line with spaces to the specified display width.
// If the line is already wider, it is returned unchanged.
func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth >= width {
		return line
	}
	return line + strings.Repeat(" ", width-lineWidth)
}

// digitWidth returns the number of digits needed to display n.
func digitWidth(n int) int {
	if n <= 0 {
		return 1
	}
	width := 0
	for n > 0 {
		width++
		n /= 10
	}
	return width
}
