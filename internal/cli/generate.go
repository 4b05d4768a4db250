package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/karmayogi/riddlequest/internal/lookup"
	"github.com/karmayogi/riddlequest/internal/model"
	"github.com/karmayogi/riddlequest/internal/riddle"
	"github.com/karmayogi/riddlequest/internal/worker"
	"github.com/spf13/cobra"
)

var (
	generateTriples   string
	generateTemplates string
	generateOut       string
	generateSeed      int64
	concurrency       int
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Synthesize riddles from labeled triples",
	Long: `Generate builds the lookup index and synthesizes riddles for every
concept under all three template policies:
- v1: topic-defining properties only
- v2: common properties, with a neighbor concept negated by name
- v3: common properties, with one of the neighbor's own properties negated

A concept yields a riddle for a version only when it has at least three
usable clue lines; richer pools are sampled down to five. The run seed
fixes the sampling, so the same seed reproduces the same riddles.

Example:
  riddlequest generate
  riddlequest generate --triples triples_class.json --out riddles.json
  riddlequest generate --seed 42 --templates templates.yaml`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateTriples, "triples", "triples_class.json", "labeled triples input path")
	generateCmd.Flags().StringVar(&generateTemplates, "templates", "", "riddle templates YAML (empty = built-in)")
	generateCmd.Flags().StringVar(&generateOut, "out", "riddles.json", "output path for riddles")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "random seed (0 = wall clock)")
	generateCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()

	ix, report, err := lookup.BuildFromFile(generateTriples)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Indexed %d concepts, %d records (%d skipped)\n",
			report.Concepts, report.Records, report.Skipped)
	}

	templates := riddle.Default()
	if generateTemplates != "" {
		templates, err = riddle.Load(generateTemplates)
		if err != nil {
			return err
		}
	}

	seed := generateSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	generated := worker.Generate(ix, templates, seed, concurrency)

	riddles := make([]model.Riddle, 0, len(generated))
	for _, r := range generated {
		riddles = append(riddles, *r)
	}

	if err := writeJSONFile(generateOut, model.RiddleBatch{Riddles: riddles}); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Generated %d riddles for %d concepts in %v\n",
		len(riddles), report.Concepts, time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", generateOut)

	return nil
}

// writeJSONFile writes v as indented JSON
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
