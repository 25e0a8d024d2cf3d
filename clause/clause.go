// Package clause splits contracts into numbered clauses and aligns them.
package clause

import (
	"fmt"
	"regexp"
	"strings"
)

// Clause is one numbered section of a contract.
type Clause struct {
	Number  string // "1", "4.2"; empty for preamble and paragraph clauses
	Heading string // "Payment Terms"
	Label   string // "1. Payment Terms"
	Body    string // Clause text after the heading, trimmed
}

// key is the alignment key: the heading folded to lower case with runs of
// whitespace collapsed, or the label when there is no heading.
func (c Clause) key() string {
	if c.Heading == "" {
		return c.Label
	}
	return strings.ToLower(strings.Join(strings.Fields(c.Heading), " "))
}

// Splitter finds numbered clause headings such as "1. Payment Terms:".
type Splitter struct {
	headingPattern *regexp.Regexp
	blankPattern   *regexp.Regexp
}

// NewSplitter creates a new Splitter instance.
func NewSplitter() *Splitter {
	return &Splitter{
		headingPattern: regexp.MustCompile(
			`(?m)^[ \t]*` + // indentation
				`(\d+(?:\.\d+)*)\.?` + // clause number: 1, 1., 4.2
				`[ \t]+([^:\n]{1,80}?)` + // heading
				`[ \t]*:[ \t]*`, // colon before the body
		),
		blankPattern: regexp.MustCompile(`\n[ \t]*\n`),
	}
}

// Split returns the clauses of text in document order.
//
// Text before the first heading becomes a "Preamble" clause. Text with no
// numbered headings is split into blank-line separated paragraphs labelled
// "Paragraph N".
func (s *Splitter) Split(text string) []Clause {
	locs := s.headingPattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return s.paragraphs(text)
	}

	var clauses []Clause
	if pre := strings.TrimSpace(text[:locs[0][0]]); pre != "" {
		clauses = append(clauses, Clause{Label: "Preamble", Body: pre})
	}
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		number := text[loc[2]:loc[3]]
		heading := strings.TrimSpace(text[loc[4]:loc[5]])
		clauses = append(clauses, Clause{
			Number:  number,
			Heading: heading,
			Label:   fmt.Sprintf("%s. %s", number, heading),
			Body:    strings.TrimSpace(text[loc[1]:end]),
		})
	}
	return clauses
}

func (s *Splitter) paragraphs(text string) []Clause {
	var clauses []Clause
	for _, p := range s.blankPattern.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		clauses = append(clauses, Clause{
			Label: fmt.Sprintf("Paragraph %d", len(clauses)+1),
			Body:  p,
		})
	}
	return clauses
}
