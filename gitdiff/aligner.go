package gitdiff

import (
	"context"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var _ redline.Aligner = (*Aligner)(nil)

// diffName labels both sides of the generated diff so the git header
// and the file headers agree.
const diffName = "contract"

// Aligner pairs up lines of two documents through a unified diff.
// Only lines inside diff hunks are reported, so long unchanged stretches
// are omitted.
type Aligner struct{}

// NewAligner creates a new Aligner.
func NewAligner() *Aligner {
	return &Aligner{}
}

// Align diffs the two documents and converts the hunks into entries.
// Identical documents yield no entries.
func (a *Aligner) Align(ctx context.Context, left, right redline.Document) ([]redline.DiffEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unified := udiff.Unified("a/"+diffName, "b/"+diffName, left.Text, right.Text)
	if unified == "" {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString("diff --git a/" + diffName + " b/" + diffName + "\n")
	sb.WriteString(unified)
	return ParseRedline(strings.NewReader(sb.String()))
}
