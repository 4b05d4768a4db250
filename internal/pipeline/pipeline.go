// Package pipeline orchestrates the full riddle run: triples in, lookup index
// built, riddles generated, riddles validated, artifacts written.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/karmayogi/riddlequest/internal/cache"
	"github.com/karmayogi/riddlequest/internal/classify"
	"github.com/karmayogi/riddlequest/internal/fetch"
	"github.com/karmayogi/riddlequest/internal/llm"
	"github.com/karmayogi/riddlequest/internal/lookup"
	"github.com/karmayogi/riddlequest/internal/model"
	"github.com/karmayogi/riddlequest/internal/riddle"
	"github.com/karmayogi/riddlequest/internal/validate"
	"github.com/karmayogi/riddlequest/internal/worker"
)

// Pipeline wires the stages together under one configuration
type Pipeline struct {
	config    *model.Config
	templates *riddle.Templates
	provider  llm.Provider // nil when the LLM classifier is disabled
}

// NewPipeline creates a pipeline from the configuration. Template and LLM
// setup failures surface here, before any stage runs.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	templates := riddle.Default()
	if cfg.Paths.Templates != "" {
		loaded, err := riddle.Load(cfg.Paths.Templates)
		if err != nil {
			return nil, fmt.Errorf("load templates: %w", err)
		}
		templates = loaded
	}

	var provider llm.Provider
	if cfg.LLM.Provider != "" {
		p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return nil, fmt.Errorf("init LLM provider: %w", err)
		}
		provider = p
	}

	return &Pipeline{
		config:    cfg,
		templates: templates,
		provider:  provider,
	}, nil
}

// RunResult carries the statistics of one full run
type RunResult struct {
	Report    lookup.BuildReport
	Riddles   int
	Validated int
	Solved    int
	Elapsed   time.Duration
}

// Run executes triples → lookup → riddles → validation and writes the three
// artifacts named in Paths.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	verbose := p.config.Output.Verbose

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	progressf(verbose, "building lookup index from %s", p.config.Paths.Triples)
	ix, report, err := lookup.BuildFromFile(p.config.Paths.Triples)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	if err := ix.Save(p.config.Paths.Lookup); err != nil {
		return nil, fmt.Errorf("save index: %w", err)
	}
	progressf(verbose, "indexed %d concepts, %d records (%d skipped)",
		report.Concepts, report.Records, report.Skipped)

	seed := p.config.Generator.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	progressf(verbose, "generating riddles with %d workers", p.config.Concurrency.Workers)
	generated := worker.Generate(ix, p.templates, seed, p.config.Concurrency.Workers)

	riddles := make([]model.Riddle, 0, len(generated))
	for _, r := range generated {
		riddles = append(riddles, *r)
	}
	if err := writeJSON(p.config.Paths.Riddles, model.RiddleBatch{Riddles: riddles}); err != nil {
		return nil, err
	}
	progressf(verbose, "wrote %d riddles to %s", len(riddles), p.config.Paths.Riddles)

	validator := validate.New(ix)
	validated := validator.ValidateAll(riddles)
	solved := validate.Solved(validated)

	if err := writeJSON(p.config.Paths.Validated, validatedBatch{Riddles: validated}); err != nil {
		return nil, err
	}
	progressf(verbose, "validated %d riddles (%d solved) to %s",
		len(validated), solved, p.config.Paths.Validated)

	return &RunResult{
		Report:    report,
		Riddles:   len(riddles),
		Validated: len(validated),
		Solved:    solved,
		Elapsed:   time.Since(start),
	}, nil
}

// validatedBatch is the persisted shape for validated riddles
type validatedBatch struct {
	Riddles []model.ValidatedRiddle `json:"riddles"`
}

// ExtractResult carries the statistics of one extraction run
type ExtractResult struct {
	Concepts int
	Failed   map[string]error
	Entries  int
	Elapsed  time.Duration
}

// Extract fetches articles for the given concepts, classifies their property
// sentences, and writes the labeled triples batch to Paths.Triples.
//
// Per-concept fetch failures are collected, not fatal: a riddle corpus with a
// few missing articles is still useful. Classification falls back to the
// heuristic when no LLM provider is configured or the provider is down.
func (p *Pipeline) Extract(ctx context.Context, concepts []string) (*ExtractResult, error) {
	start := time.Now()
	verbose := p.config.Output.Verbose

	var pageCache cache.Cache
	if p.config.Cache.Enabled {
		pageCache = cache.NewLayeredCache(
			p.config.Cache.MemoryTTL, p.config.Cache.Dir, p.config.Cache.DiskTTL)
	}
	fetcher := fetch.NewFetcher(p.config.HTTP, p.config.RateLimiting, pageCache)

	batch := make(map[string][]string, len(concepts))
	failed := make(map[string]error)
	for _, concept := range concepts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sentences, err := fetcher.Sentences(ctx, concept)
		if err != nil {
			failed[concept] = err
			progressf(verbose, "skipping %s: %v", concept, err)
			continue
		}
		batch[concept] = sentences
		progressf(verbose, "fetched %s: %d sentences", concept, len(sentences))
	}

	if len(batch) == 0 {
		return nil, fmt.Errorf("no articles fetched for %d concepts", len(concepts))
	}

	entries := p.classifyBatch(ctx, batch, verbose)

	if err := writeJSON(p.config.Paths.Triples, entries); err != nil {
		return nil, err
	}

	total := 0
	for _, list := range entries {
		total += len(list)
	}
	progressf(verbose, "wrote %d labeled entries for %d concepts to %s",
		total, len(entries), p.config.Paths.Triples)

	return &ExtractResult{
		Concepts: len(entries),
		Failed:   failed,
		Entries:  total,
		Elapsed:  time.Since(start),
	}, nil
}

// classifyBatch labels the fetched sentences, preferring the LLM provider
// when one is configured and reachable.
func (p *Pipeline) classifyBatch(ctx context.Context, batch map[string][]string, verbose bool) map[string][]model.Entry {
	if p.provider == nil || !p.provider.IsAvailable(ctx) {
		if p.provider != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM provider %s unavailable, using heuristic classifier\n",
				p.provider.Name())
		}
		progressf(verbose, "classifying with heuristic")
		return classify.Heuristic(batch)
	}

	known := make([]string, 0, len(batch))
	for concept := range batch {
		known = append(known, concept)
	}

	out := make(map[string][]model.Entry, len(batch))
	for concept, sentences := range batch {
		resp, err := p.provider.Classify(ctx, llm.ClassifyRequest{
			Concept:       concept,
			Sentences:     sentences,
			KnownConcepts: known,
			MaxTokens:     p.config.LLM.MaxTokens,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: classify %s via %s failed (%v), using heuristic\n",
				concept, p.provider.Name(), err)
			out[concept] = classify.Heuristic(map[string][]string{concept: sentences})[concept]
			continue
		}
		out[concept] = resp.Entries
		progressf(verbose, "classified %s via %s: %d entries (%d tokens)",
			concept, p.provider.Name(), len(resp.Entries), resp.TokensUsed)
	}
	return out
}
