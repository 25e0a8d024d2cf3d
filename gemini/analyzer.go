package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var _ redline.Analyzer = (*Analyzer)(nil)

// DefaultAnalyzeTimeout is the default timeout for a single analysis request.
const DefaultAnalyzeTimeout = 60 * time.Second

// Analyzer flags risky, ambiguous and missing language using the Gemini API.
type Analyzer struct {
	client    GenerativeClient
	model     string
	formatter redline.PromptFormatter
	timeout   time.Duration
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithTimeout sets the timeout for each analysis request.
func WithTimeout(d time.Duration) AnalyzerOption {
	return func(a *Analyzer) {
		a.timeout = d
	}
}

// WithFormatter replaces the prompt formatter.
func WithFormatter(f redline.PromptFormatter) AnalyzerOption {
	return func(a *Analyzer) {
		a.formatter = f
	}
}

// NewAnalyzer creates a new Analyzer with the given client and model.
func NewAnalyzer(client GenerativeClient, model string, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		client:    client,
		model:     model,
		formatter: &redline.DefaultFormatter{},
		timeout:   DefaultAnalyzeTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Finding is one issue as returned by the model. The model quotes the
// offending text instead of reporting offsets, which it cannot count reliably.
type Finding struct {
	Category   string `json:"category"`
	Quote      string `json:"quote"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

type analysisResponse struct {
	Findings []Finding `json:"findings"`
}

// Analyze sends the document to Gemini and converts the findings into a
// valid annotation set. Findings whose quote cannot be located, whose
// category is unknown, or which overlap an earlier finding are dropped.
func (a *Analyzer) Analyze(ctx context.Context, doc redline.Document) ([]redline.Annotation, error) {
	if strings.TrimSpace(doc.Text) == "" {
		return []redline.Annotation{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := BuildAnalysisPrompt(a.formatter, doc)
	resp, err := a.client.GenerateContent(ctx, a.model, userContent(prompt), BuildAnalysisConfig())
	if err != nil {
		return nil, err
	}

	var parsed analysisResponse
	if err := json.Unmarshal([]byte(resp.Text), &parsed); err != nil {
		return nil, fmt.Errorf("gemini: failed to parse response: %w", err)
	}

	anns := Locate(doc.Text, parsed.Findings)
	if err := redline.ValidateAnnotations(doc.Text, anns); err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return anns, nil
}

// Locate converts findings into annotations by searching for each quote in
// text. Repeated quotes claim successive occurrences. The result is sorted
// by start offset and contains no overlapping ranges.
func Locate(text string, findings []Finding) []redline.Annotation {
	anns := make([]redline.Annotation, 0, len(findings))
	claimed := make(map[string]int)
	for _, f := range findings {
		cat, err := redline.ParseCategory(f.Category)
		if err != nil {
			continue
		}
		quote := strings.TrimSpace(f.Quote)
		if quote == "" {
			continue
		}
		from := claimed[quote]
		idx := strings.Index(text[from:], quote)
		if idx < 0 {
			// The model sometimes repeats a quote it already reported.
			idx = strings.Index(text, quote)
			from = 0
			if idx < 0 {
				continue
			}
		}
		start := from + idx
		end := start + len(quote)
		claimed[quote] = end
		anns = append(anns, redline.Annotation{
			Start:      start,
			End:        end,
			Category:   cat,
			Message:    strings.TrimSpace(f.Message),
			Suggestion: strings.TrimSpace(f.Suggestion),
		})
	}

	sort.SliceStable(anns, func(i, j int) bool {
		return anns[i].Start < anns[j].Start
	})

	out := anns[:0]
	prevEnd := 0
	for _, ann := range anns {
		if ann.Start < prevEnd {
			continue
		}
		out = append(out, ann)
		prevEnd = ann.End
	}
	return out
}

const analysisSystemInstruction = `You are a contract reviewer helping a non-lawyer read an agreement.

Flag passages that fall into one of these categories:
- risk: terms that expose the reader to liability, loss of rights, or one-sided obligations
- ambiguous: vague wording that could be read more than one way
- missing: places where a standard protection or detail is absent

For each finding, quote the exact passage from the document verbatim,
character for character, keeping the quote as short as possible while
still identifying the issue. Write a one-sentence message in plain
language explaining the issue and, when you can, a short suggestion for
replacement wording. Do not report the same passage twice.`

// BuildAnalysisPrompt creates the user prompt for document analysis.
func BuildAnalysisPrompt(formatter redline.PromptFormatter, doc redline.Document) string {
	var sb strings.Builder
	sb.WriteString(formatter.FormatDocument(doc))
	sb.WriteString("\n\nReview the document above and report your findings.")
	return sb.String()
}

// BuildAnalysisConfig creates the generation config for document analysis.
func BuildAnalysisConfig() *GenerateContentConfig {
	temp := float32(0.2)
	return &GenerateContentConfig{
		SystemInstruction: systemInstruction(analysisSystemInstruction),
		Temperature:       &temp,
		ResponseMIMEType:  "application/json",
		ResponseSchema:    analysisSchema(),
	}
}

func analysisSchema() *Schema {
	names := make([]string, 0, len(redline.Categories()))
	for _, c := range redline.Categories() {
		names = append(names, string(c))
	}
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"findings": {
				Type: "array",
				Items: &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"category":   {Type: "string", Enum: names},
						"quote":      {Type: "string", Description: "Exact passage copied from the document"},
						"message":    {Type: "string", Description: "Plain-language explanation of the issue"},
						"suggestion": {Type: "string", Description: "Optional replacement wording"},
					},
					Required:         []string{"category", "quote", "message"},
					PropertyOrdering: []string{"category", "quote", "message", "suggestion"},
				},
			},
		},
		Required: []string{"findings"},
	}
}
