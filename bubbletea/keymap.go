package bubbletea

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// Compile-time interface verification.
var (
	_ help.KeyMap = ReviewKeyMap{}
	_ help.KeyMap = CompareKeyMap{}
)

// ScrollKeyMap defines the vim-style scrolling bindings shared by both views.
type ScrollKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding
	Quit         key.Binding
}

// DefaultScrollKeyMap returns the default vim-style scrolling bindings.
func DefaultScrollKeyMap() ScrollKeyMap {
	return ScrollKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReviewKeyMap defines the key bindings for the review panel.
type ReviewKeyMap struct {
	ScrollKeyMap

	NextFinding   key.Binding
	PrevFinding   key.Binding
	Close         key.Binding
	Accept        key.Binding
	Dismiss       key.Binding
	Copy          key.Binding
	Reanalyze     key.Binding
	Export        key.Binding
	ToggleSummary key.Binding
}

// DefaultReviewKeyMap returns the default key bindings for the review panel.
func DefaultReviewKeyMap() ReviewKeyMap {
	return ReviewKeyMap{
		ScrollKeyMap: DefaultScrollKeyMap(),
		NextFinding: key.NewBinding(
			key.WithKeys("tab", "n"),
			key.WithHelp("tab", "next finding"),
		),
		PrevFinding: key.NewBinding(
			key.WithKeys("shift+tab", "N"),
			key.WithHelp("shift+tab", "prev finding"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Accept: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "accept"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy suggestion"),
		),
		Reanalyze: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "re-run review"),
		),
		Export: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "export findings"),
		),
		ToggleSummary: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "summary"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k ReviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFinding, k.Accept, k.Dismiss, k.Copy, k.Reanalyze, k.Export, k.ToggleSummary, k.Quit}
}

// FullHelp returns all bindings grouped by purpose.
func (k ReviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.HalfPageUp, k.HalfPageDown, k.GotoTop, k.GotoBottom},
		{k.NextFinding, k.PrevFinding, k.Close, k.Accept, k.Dismiss, k.Copy},
		{k.Reanalyze, k.Export, k.ToggleSummary, k.Quit},
	}
}

// CompareKeyMap defines the key bindings for the comparison viewer.
type CompareKeyMap struct {
	ScrollKeyMap

	NextRow       key.Binding
	PrevRow       key.Binding
	NextChange    key.Binding
	Recompare     key.Binding
	ToggleSummary key.Binding
}

// DefaultCompareKeyMap returns the default key bindings for the comparison viewer.
func DefaultCompareKeyMap() CompareKeyMap {
	return CompareKeyMap{
		ScrollKeyMap: DefaultScrollKeyMap(),
		NextRow: key.NewBinding(
			key.WithKeys("]", "tab"),
			key.WithHelp("]", "next clause"),
		),
		PrevRow: key.NewBinding(
			key.WithKeys("[", "shift+tab"),
			key.WithHelp("[", "prev clause"),
		),
		NextChange: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next difference"),
		),
		Recompare: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "re-compare"),
		),
		ToggleSummary: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "summary"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k CompareKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextRow, k.PrevRow, k.NextChange, k.Recompare, k.ToggleSummary, k.Quit}
}

// FullHelp returns all bindings grouped by purpose.
func (k CompareKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.HalfPageUp, k.HalfPageDown, k.GotoTop, k.GotoBottom},
		{k.NextRow, k.PrevRow, k.NextChange, k.Recompare, k.ToggleSummary, k.Quit},
	}
}
