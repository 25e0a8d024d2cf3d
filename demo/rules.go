package demo

import (
	"regexp"
	"sort"

	"github.com/fwojciec/redline"
)

// Rule flags text matching Pattern with a fixed finding.
type Rule struct {
	Category   redline.Category
	Pattern    *regexp.Regexp
	Unless     *regexp.Regexp // Rule is skipped when Unless matches anywhere in the text
	Once       bool           // Annotate only the first match
	Message    string
	Suggestion string
}

var rules = []Rule{
	{
		Category:   redline.CategoryAmbiguous,
		Pattern:    regexp.MustCompile(`(?i)\bas assigned\b`),
		Message:    "'as assigned' is ambiguous.",
		Suggestion: "Specify the duties more clearly to avoid confusion.",
	},
	{
		Category:   redline.CategoryAmbiguous,
		Pattern:    regexp.MustCompile(`(?i)\breasonable (efforts|time|notice)\b`),
		Message:    "'reasonable' is not defined.",
		Suggestion: "Replace with a measurable standard or period.",
	},
	{
		Category:   redline.CategoryAmbiguous,
		Pattern:    regexp.MustCompile(`(?i)\bfrom time to time\b`),
		Message:    "'from time to time' leaves timing open.",
		Suggestion: "State a fixed schedule.",
	},
	{
		Category:   redline.CategoryRisk,
		Pattern:    regexp.MustCompile(`(?i)\bunlimited liability\b`),
		Message:    "Unlimited liability exposure.",
		Suggestion: "Cap liability at a multiple of fees paid.",
	},
	{
		Category:   redline.CategoryRisk,
		Pattern:    regexp.MustCompile(`(?i)\bindemnif(y|ies|ication)\b`),
		Message:    "Indemnification may be one-sided.",
		Suggestion: "Make indemnification mutual and limit its scope.",
	},
	{
		Category:   redline.CategoryRisk,
		Pattern:    regexp.MustCompile(`(?i)\bat any time without (cause|notice)\b`),
		Message:    "Termination without cause or notice.",
		Suggestion: "Require written notice before termination.",
	},
	{
		Category:   redline.CategoryRisk,
		Pattern:    regexp.MustCompile(`(?i)\bautomatically renew(s|ed)?\b`),
		Message:    "Automatic renewal may lock in terms.",
		Suggestion: "Add an opt-out window before each renewal.",
	},
	{
		Category:   redline.CategoryMissing,
		Pattern:    regexp.MustCompile(`(?i)\btermination\b`),
		Unless:     regexp.MustCompile(`(?i)\bseverance\b`),
		Once:       true,
		Message:    "No severance terms.",
		Suggestion: "Add severance terms for clarity on termination conditions.",
	},
	{
		Category:   redline.CategoryMissing,
		Pattern:    regexp.MustCompile(`(?i)\b(payment|compensation)\b`),
		Unless:     regexp.MustCompile(`(?i)\blate (fee|payment|charge)s?\b`),
		Once:       true,
		Message:    "No late payment terms.",
		Suggestion: "Specify interest or fees for late payment.",
	},
	{
		Category:   redline.CategoryMissing,
		Pattern:    regexp.MustCompile(`(?i)\bagreement\b`),
		Unless:     regexp.MustCompile(`(?i)\bgoverning law\b|\blaws of\b`),
		Once:       true,
		Message:    "No governing law clause.",
		Suggestion: "State which jurisdiction's law governs the agreement.",
	},
}

// Rules returns the rule table applied to documents other than the sample.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

type match struct {
	annotation redline.Annotation
	rule       int
}

// applyRules returns the findings of rs in text, ascending by offset.
// A match overlapping an earlier kept match is dropped.
func applyRules(text string, rs []Rule) []redline.Annotation {
	var matches []match
	for ri, r := range rs {
		if r.Unless != nil && r.Unless.MatchString(text) {
			continue
		}
		n := -1
		if r.Once {
			n = 1
		}
		for _, loc := range r.Pattern.FindAllStringIndex(text, n) {
			if loc[0] == loc[1] {
				continue
			}
			matches = append(matches, match{
				annotation: redline.Annotation{
					Start:      loc[0],
					End:        loc[1],
					Category:   r.Category,
					Message:    r.Message,
					Suggestion: r.Suggestion,
				},
				rule: ri,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].annotation.Start != matches[j].annotation.Start {
			return matches[i].annotation.Start < matches[j].annotation.Start
		}
		return matches[i].rule < matches[j].rule
	})

	out := make([]redline.Annotation, 0, len(matches))
	end := 0
	for _, m := range matches {
		if m.annotation.Start < end {
			continue
		}
		out = append(out, m.annotation)
		end = m.annotation.End
	}
	return out
}
