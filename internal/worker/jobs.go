package worker

import (
	"bufio"
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/karmayogi/riddlequest/internal/lookup"
	"github.com/karmayogi/riddlequest/internal/model"
	"github.com/karmayogi/riddlequest/internal/riddle"
)

// GenerateJob synthesizes all riddle versions for one concept. Each job owns
// its own random source, derived from the run seed and the concept name, so a
// run's output does not depend on worker scheduling.
type GenerateJob struct {
	Concept   string
	Index     *lookup.Index
	Templates *riddle.Templates
	Seed      int64
}

// GenerateResult carries the riddles produced for one concept
type GenerateResult struct {
	Concept string
	Riddles []*model.Riddle
	Err     error
}

// GetError implements the Result interface
func (r *GenerateResult) GetError() error {
	return r.Err
}

// Execute implements the Job interface
func (j *GenerateJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &GenerateResult{Concept: j.Concept, Err: err}
	}

	rng := rand.New(rand.NewSource(j.Seed ^ conceptSeed(j.Concept)))
	gen := riddle.NewGenerator(j.Index, j.Templates, rng)

	return &GenerateResult{
		Concept: j.Concept,
		Riddles: gen.MakeAll(j.Concept),
	}
}

func conceptSeed(concept string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(concept))
	return int64(h.Sum64())
}

// Generate runs one GenerateJob per index concept across the pool and returns
// the riddles ordered by concept, then version.
func Generate(ix *lookup.Index, templates *riddle.Templates, seed int64, workers int) []*model.Riddle {
	pool := NewPool(workers)
	pool.Start()

	go func() {
		for _, concept := range ix.Concepts() {
			pool.Submit(&GenerateJob{
				Concept:   concept,
				Index:     ix,
				Templates: templates,
				Seed:      seed,
			})
		}
		pool.Close()
	}()

	var riddles []*model.Riddle
	for _, result := range pool.Wait() {
		if gen, ok := result.(*GenerateResult); ok && gen.Err == nil {
			riddles = append(riddles, gen.Riddles...)
		}
	}

	sort.Slice(riddles, func(i, j int) bool {
		if riddles[i].Concept != riddles[j].Concept {
			return riddles[i].Concept < riddles[j].Concept
		}
		return riddles[i].Version < riddles[j].Version
	})

	return riddles
}

// ReadConceptsFromFile reads concept names from a file (one per line)
func ReadConceptsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var concepts []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			concepts = append(concepts, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return concepts, nil
}
