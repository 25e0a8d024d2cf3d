package redline

import "fmt"

// NoIssuesLine is the summary line shown for an empty annotation set.
const NoIssuesLine = "No issues detected!"

// Finding is one entry of a findings summary.
type Finding struct {
	Category Category `json:"category"`
	Message  string   `json:"message"`
}

// Summary is the findings summary of an annotation set.
type Summary struct {
	Counts   map[Category]int `json:"counts"`
	Findings []Finding        `json:"findings"`
}

// Summarize builds a findings summary in document order.
func Summarize(annotations []Annotation) Summary {
	s := Summary{
		Counts:   make(map[Category]int, len(categories)),
		Findings: make([]Finding, 0, len(annotations)),
	}
	for _, a := range annotations {
		s.Counts[a.Category]++
		s.Findings = append(s.Findings, Finding{Category: a.Category, Message: a.Message})
	}
	return s
}

// Total returns the number of findings.
func (s Summary) Total() int {
	return len(s.Findings)
}

// Lines renders the summary as "Label: message" lines, or a single
// NoIssuesLine when there are no findings.
func (s Summary) Lines() []string {
	if len(s.Findings) == 0 {
		return []string{NoIssuesLine}
	}
	lines := make([]string, len(s.Findings))
	for i, f := range s.Findings {
		lines[i] = fmt.Sprintf("%s: %s", f.Category.Treatment().Label, f.Message)
	}
	return lines
}
