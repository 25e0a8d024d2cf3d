package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/clause"
	"github.com/fwojciec/redline/config"
	"github.com/fwojciec/redline/demo"
	"github.com/fwojciec/redline/fs"
	"github.com/fwojciec/redline/gemini"
	"github.com/fwojciec/redline/gitdiff"
	"github.com/fwojciec/redline/jsonl"
)

// Providers are the analysis and alignment backends selected by configuration.
type Providers struct {
	Analyzer redline.Analyzer
	Aligner  redline.Aligner
}

// NewProviders builds the providers named in cfg. apiKey is only needed
// for the gemini analyzer.
func NewProviders(ctx context.Context, cfg *config.Config, apiKey string) (*Providers, error) {
	var base redline.Aligner
	switch cfg.Aligner {
	case config.AlignerLines:
		base = gitdiff.NewAligner()
	default:
		base = clause.NewAligner()
	}

	switch cfg.Analyzer {
	case config.AnalyzerGemini:
		client, err := gemini.NewClient(ctx, apiKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		p := &Providers{
			Analyzer: fs.NewAnalyzer(gemini.NewAnalyzer(client, cfg.Model), cfg.CacheDir, fs.WithNamespace(cfg.Model)),
			Aligner:  base,
		}
		if cfg.Notes {
			p.Aligner = gemini.NewNoteWriter(base, client, cfg.Model)
		}
		return p, nil
	case config.AnalyzerJSONL:
		return &Providers{
			Analyzer: jsonl.NewAnalyzer(jsonl.NewLoader(), cfg.Annotations),
			Aligner:  base,
		}, nil
	default:
		return &Providers{
			Analyzer: demo.NewAnalyzer(demo.WithDelay(cfg.DemoDelay)),
			Aligner:  demo.NewAligner(base, demo.WithDelay(cfg.DemoDelay)),
		}, nil
	}
}
