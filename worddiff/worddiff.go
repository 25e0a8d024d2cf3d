// Package worddiff computes word-level differences between clause texts.
package worddiff

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var _ redline.WordDiffer = (*Differ)(nil)

// Differ tokenizes prose and computes word-level diffs.
type Differ struct{}

// NewDiffer creates a new Differ instance.
func NewDiffer() *Differ {
	return &Differ{}
}

// Tokenize splits prose into tokens: words (letters with inner apostrophes
// or hyphens), numbers (with thousands separators, decimals and a trailing
// percent sign), whitespace runs, and single punctuation characters.
func (d *Differ) Tokenize(s string) []string {
	if len(s) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(s)/4+1)
	i := 0
	for i < len(s) {
		start := i
		r, size := utf8.DecodeRuneInString(s[i:])

		switch {
		case unicode.IsLetter(r):
			i = scanWord(s, i)

		case isDigit(s[i]):
			i = scanNumber(s, i)

		case isWhitespace(s[i]):
			i++
			for i < len(s) && isWhitespace(s[i]) {
				i++
			}

		default:
			i += size
		}
		tokens = append(tokens, s[start:i])
	}
	return tokens
}

// scanWord returns the end of the word starting at i.
func scanWord(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			i += size
			continue
		}
		// Joiners count only between letters: "party's", "non-compete".
		if (r == '\'' || r == '-' || r == '’') && i+size < len(s) {
			next, _ := utf8.DecodeRuneInString(s[i+size:])
			if unicode.IsLetter(next) {
				i += size
				continue
			}
		}
		break
	}
	return i
}

// scanNumber returns the end of the number starting at i: 30, 1,000, 2.5, 10%.
func scanNumber(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	for i+1 < len(s) && (s[i] == ',' || s[i] == '.') && isDigit(s[i+1]) {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && s[i] == '%' {
		i++
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// similarityThreshold is the minimum ratio for word-level diffing.
// Below this threshold, clauses are treated as complete replacements.
const similarityThreshold = 0.4

// Diff returns spans for both the old and new strings,
// marking which portions changed between them.
func (d *Differ) Diff(old, new string) (oldSpans, newSpans []redline.Span) {
	if old == "" && new == "" {
		return nil, nil
	}
	if old == "" {
		return nil, []redline.Span{{Text: new, Changed: true}}
	}
	if new == "" {
		return []redline.Span{{Text: old, Changed: true}}, nil
	}

	if old == new {
		span := redline.Span{Text: old}
		return []redline.Span{span}, []redline.Span{span}
	}

	oldTokens := d.Tokenize(old)
	newTokens := d.Tokenize(new)

	if !hasSufficientSimilarity(oldTokens, newTokens) {
		return []redline.Span{{Text: old, Changed: true}},
			[]redline.Span{{Text: new, Changed: true}}
	}

	return lcsSpans(oldTokens, newTokens)
}

// hasSufficientSimilarity checks if tokens have enough overlap to warrant word-level diff.
// Uses a count of common tokens as an upper bound estimate.
func hasSufficientSimilarity(oldTokens, newTokens []string) bool {
	oldLen, newLen := len(oldTokens), len(newTokens)
	if oldLen == 0 || newLen == 0 {
		return false
	}

	counts := make(map[string]int, oldLen)
	for _, t := range oldTokens {
		counts[t]++
	}

	common := 0
	for _, t := range newTokens {
		if counts[t] > 0 {
			counts[t]--
			common++
		}
	}

	return float64(2*common)/float64(oldLen+newLen) >= similarityThreshold
}

// spanBuilder accumulates tokens into spans, merging runs of equal status.
type spanBuilder struct {
	spans   []redline.Span
	text    strings.Builder
	changed bool
	have    bool
}

func (b *spanBuilder) add(token string, changed bool) {
	if b.have && b.changed != changed {
		b.flush()
	}
	b.text.WriteString(token)
	b.changed = changed
	b.have = true
}

func (b *spanBuilder) flush() {
	if !b.have {
		return
	}
	b.spans = append(b.spans, redline.Span{Text: b.text.String(), Changed: b.changed})
	b.text.Reset()
	b.have = false
}

// lcsSpans computes the LCS of two token sequences and returns merged spans.
// The DP table is a flat slice indexed as table[i*(n+1)+j].
func lcsSpans(oldTokens, newTokens []string) (oldSpans, newSpans []redline.Span) {
	m, n := len(oldTokens), len(newTokens)
	stride := n + 1
	table := make([]int, (m+1)*stride)

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			switch {
			case oldTokens[i-1] == newTokens[j-1]:
				table[i*stride+j] = table[(i-1)*stride+j-1] + 1
			case table[(i-1)*stride+j] > table[i*stride+j-1]:
				table[i*stride+j] = table[(i-1)*stride+j]
			default:
				table[i*stride+j] = table[i*stride+j-1]
			}
		}
	}

	lcsLen := table[m*stride+n]
	if lcsLen == 0 {
		return []redline.Span{{Text: strings.Join(oldTokens, ""), Changed: true}},
			[]redline.Span{{Text: strings.Join(newTokens, ""), Changed: true}}
	}

	type match struct{ oldIdx, newIdx int }
	matches := make([]match, 0, lcsLen)
	i, j := m, n
	for i > 0 && j > 0 {
		switch {
		case oldTokens[i-1] == newTokens[j-1]:
			matches = append(matches, match{i - 1, j - 1})
			i--
			j--
		case table[(i-1)*stride+j] > table[i*stride+j-1]:
			i--
		default:
			j--
		}
	}
	for l, r := 0, len(matches)-1; l < r; l, r = l+1, r-1 {
		matches[l], matches[r] = matches[r], matches[l]
	}

	var ob, nb spanBuilder
	oldIdx, newIdx := 0, 0
	for _, mt := range matches {
		for ; oldIdx < mt.oldIdx; oldIdx++ {
			ob.add(oldTokens[oldIdx], true)
		}
		for ; newIdx < mt.newIdx; newIdx++ {
			nb.add(newTokens[newIdx], true)
		}
		ob.add(oldTokens[mt.oldIdx], false)
		nb.add(newTokens[mt.newIdx], false)
		oldIdx, newIdx = mt.oldIdx+1, mt.newIdx+1
	}
	for ; oldIdx < m; oldIdx++ {
		ob.add(oldTokens[oldIdx], true)
	}
	for ; newIdx < n; newIdx++ {
		nb.add(newTokens[newIdx], true)
	}
	ob.flush()
	nb.flush()

	return ob.spans, nb.spans
}
