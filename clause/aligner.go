package clause

import (
	"context"
	"strings"

	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var _ redline.Aligner = (*Aligner)(nil)

// Aligner pairs clauses of two documents by heading.
type Aligner struct {
	splitter *Splitter
}

// NewAligner creates an Aligner using the default Splitter.
func NewAligner() *Aligner {
	return &Aligner{splitter: NewSplitter()}
}

// Align splits both documents and pairs clauses with equal headings.
//
// Entries follow left document order. A left clause without a partner is
// removed; a right clause without a partner is added and placed after the
// entry of the nearest preceding matched right clause.
func (a *Aligner) Align(ctx context.Context, left, right redline.Document) ([]redline.DiffEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lc := a.splitter.Split(left.Text)
	rc := a.splitter.Split(right.Text)

	// Right positions by key, first occurrence first.
	byKey := make(map[string][]int, len(rc))
	for j, c := range rc {
		byKey[c.key()] = append(byKey[c.key()], j)
	}

	partner := make([]int, len(lc)) // right index per left clause, -1 if none
	matched := make([]bool, len(rc))
	for i, c := range lc {
		partner[i] = -1
		if js := byKey[c.key()]; len(js) > 0 {
			partner[i] = js[0]
			matched[js[0]] = true
			byKey[c.key()] = js[1:]
		}
	}

	// Unmatched right clauses grouped by the right index they follow.
	after := make(map[int][]int)
	anchor := -1
	for j := range rc {
		if matched[j] {
			anchor = j
			continue
		}
		after[anchor] = append(after[anchor], j)
	}

	entries := make([]redline.DiffEntry, 0, len(lc)+len(rc))
	emitAdded := func(anchor int) {
		for _, j := range after[anchor] {
			entries = append(entries, redline.DiffEntry{
				Label: rc[j].Label,
				Right: rc[j].Body,
				Kind:  redline.DiffAdded,
			})
		}
	}

	emitAdded(-1)
	for i, c := range lc {
		j := partner[i]
		if j < 0 {
			entries = append(entries, redline.DiffEntry{
				Label: c.Label,
				Left:  c.Body,
				Kind:  redline.DiffRemoved,
			})
			continue
		}
		kind := redline.DiffChanged
		if normalize(c.Body) == normalize(rc[j].Body) {
			kind = redline.DiffSame
		}
		entries = append(entries, redline.DiffEntry{
			Label: c.Label,
			Left:  c.Body,
			Right: rc[j].Body,
			Kind:  kind,
		})
		emitAdded(j)
	}
	return entries, nil
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
