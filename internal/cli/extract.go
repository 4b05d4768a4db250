package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/karmayogi/riddlequest/internal/model"
	"github.com/karmayogi/riddlequest/internal/pipeline"
	"github.com/karmayogi/riddlequest/internal/worker"
	"github.com/spf13/cobra"
)

var (
	extractOut     string
	extractTimeout time.Duration
	userAgent      string
	noCache        bool
	llmProvider    string
	llmModel       string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <concepts-file>",
	Short: "Fetch articles for concepts and classify their properties",
	Long: `Extract bootstraps the fact batch for riddle generation:
- Read concept names from the input file (one per line)
- Fetch the encyclopedia article for each concept (cached, rate-limited,
  robots.txt respected)
- Keep the sentences that mention the concept
- Classify each property as a topic marker or a common property, naming
  the neighbor concepts that share it

Classification uses the built-in heuristic unless an LLM provider is
selected with --llm.

Example:
  riddlequest extract concepts.txt
  riddlequest extract concepts.txt --out triples_class.json
  riddlequest extract concepts.txt --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractOut, "out", "triples_class.json", "output path for labeled triples")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 10*time.Minute, "overall extraction timeout")
	extractCmd.Flags().StringVar(&userAgent, "ua", model.DefaultConfig().HTTP.UserAgent, "HTTP User-Agent")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")

	// LLM flags
	extractCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM provider for classification (openai, ollama; empty = heuristic)")
	extractCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runExtract(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	concepts, err := worker.ReadConceptsFromFile(file)
	if err != nil {
		return fmt.Errorf("read concepts: %w", err)
	}
	if len(concepts) == 0 {
		return fmt.Errorf("no concepts in %s", file)
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.HTTP.UserAgent = userAgent
	cfg.Cache.Enabled = !noCache
	cfg.Paths.Triples = extractOut
	cfg.Output.Verbose = verbose

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "⚙️  Extracting facts for %d concepts...\n", len(concepts))

	result, err := p.Extract(ctx, concepts)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	for concept, ferr := range result.Failed {
		fmt.Fprintf(os.Stderr, "✗ %s: %v\n", concept, ferr)
	}
	fmt.Fprintf(os.Stderr, "✓ Classified %d entries for %d concepts in %v\n",
		result.Entries, result.Concepts, result.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", extractOut)

	return nil
}
