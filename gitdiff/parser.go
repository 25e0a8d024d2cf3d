// Package gitdiff aligns documents line by line using unified diffs.
//
// Diffs are produced with aymanbagabas/go-udiff and parsed with
// bluekeyes/go-gitdiff.
package gitdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/redline"
)

// ParseRedline reads unified diff content and returns one entry per run of
// context, deleted or added lines. A run of deletions directly followed by
// additions becomes a single changed entry once lines equal on both sides
// are peeled off its ends.
func ParseRedline(r io.Reader) ([]redline.DiffEntry, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	var entries []redline.DiffEntry
	for _, f := range files {
		prefix := ""
		if len(files) > 1 {
			prefix = fileName(f) + ": "
		}
		for _, frag := range f.TextFragments {
			entries = append(entries, convertFragment(frag, prefix)...)
		}
	}
	return entries, nil
}

func fileName(f *gitdiff.File) string {
	if f.NewName != "" {
		return f.NewName
	}
	return f.OldName
}

// run is a block of consecutive lines of one class within a fragment.
type run struct {
	oldStart, newStart int
	context            []string
	deleted            []string
	added              []string
}

func convertFragment(frag *gitdiff.TextFragment, prefix string) []redline.DiffEntry {
	var runs []run

	oldLine := int(frag.OldPosition)
	newLine := int(frag.NewPosition)
	cur := run{oldStart: oldLine, newStart: newLine}

	flush := func() {
		runs = appendRuns(runs, cur.split()...)
		cur = run{oldStart: oldLine, newStart: newLine}
	}

	for _, l := range frag.Lines {
		text := strings.TrimSuffix(l.Line, "\n")
		switch l.Op {
		case gitdiff.OpContext:
			if len(cur.deleted) > 0 || len(cur.added) > 0 {
				flush()
			}
			cur.context = append(cur.context, text)
			oldLine++
			newLine++
		case gitdiff.OpDelete:
			if len(cur.context) > 0 || len(cur.added) > 0 {
				flush()
			}
			cur.deleted = append(cur.deleted, text)
			oldLine++
		case gitdiff.OpAdd:
			if len(cur.context) > 0 {
				flush()
			}
			cur.added = append(cur.added, text)
			newLine++
		}
	}
	flush()

	entries := make([]redline.DiffEntry, 0, len(runs))
	for _, r := range runs {
		if e, ok := r.entry(prefix); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// split peels lines that are equal on both sides off the ends of a
// delete/add run and returns them as context runs around the remainder.
// udiff widens character-level edits to whole lines, so an insertion can
// arrive as "-a +a +b".
func (r run) split() []run {
	if len(r.deleted) == 0 || len(r.added) == 0 {
		return []run{r}
	}

	head := 0
	for head < len(r.deleted) && head < len(r.added) && r.deleted[head] == r.added[head] {
		head++
	}
	tail := 0
	for tail < len(r.deleted)-head && tail < len(r.added)-head &&
		r.deleted[len(r.deleted)-1-tail] == r.added[len(r.added)-1-tail] {
		tail++
	}
	if head == 0 && tail == 0 {
		return []run{r}
	}

	return []run{
		{oldStart: r.oldStart, newStart: r.newStart, context: r.deleted[:head]},
		{
			oldStart: r.oldStart + head,
			newStart: r.newStart + head,
			deleted:  r.deleted[head : len(r.deleted)-tail],
			added:    r.added[head : len(r.added)-tail],
		},
		{
			oldStart: r.oldStart + len(r.deleted) - tail,
			newStart: r.newStart + len(r.added) - tail,
			context:  r.deleted[len(r.deleted)-tail:],
		},
	}
}

// appendRuns appends non-empty runs, merging adjacent context runs.
func appendRuns(runs []run, more ...run) []run {
	for _, r := range more {
		if len(r.context) == 0 && len(r.deleted) == 0 && len(r.added) == 0 {
			continue
		}
		if n := len(runs); n > 0 && len(r.context) > 0 && len(runs[n-1].context) > 0 {
			merged := append([]string(nil), runs[n-1].context...)
			runs[n-1].context = append(merged, r.context...)
			continue
		}
		runs = append(runs, r)
	}
	return runs
}

func (r run) entry(prefix string) (redline.DiffEntry, bool) {
	switch {
	case len(r.context) > 0:
		return redline.DiffEntry{
			Label: prefix + lineLabel(r.oldStart, len(r.context)),
			Left:  strings.Join(r.context, "\n"),
			Right: strings.Join(r.context, "\n"),
			Kind:  redline.DiffSame,
		}, true
	case len(r.deleted) > 0 && len(r.added) > 0:
		return redline.DiffEntry{
			Label: prefix + lineLabel(r.oldStart, len(r.deleted)),
			Left:  strings.Join(r.deleted, "\n"),
			Right: strings.Join(r.added, "\n"),
			Kind:  redline.DiffChanged,
		}, true
	case len(r.deleted) > 0:
		return redline.DiffEntry{
			Label: prefix + lineLabel(r.oldStart, len(r.deleted)),
			Left:  strings.Join(r.deleted, "\n"),
			Kind:  redline.DiffRemoved,
		}, true
	case len(r.added) > 0:
		return redline.DiffEntry{
			Label: prefix + lineLabel(r.newStart, len(r.added)),
			Right: strings.Join(r.added, "\n"),
			Kind:  redline.DiffAdded,
		}, true
	}
	return redline.DiffEntry{}, false
}

func lineLabel(start, count int) string {
	if count == 1 {
		return fmt.Sprintf("Line %d", start)
	}
	return fmt.Sprintf("Lines %d-%d", start, start+count-1)
}
