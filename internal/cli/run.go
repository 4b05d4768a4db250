package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/karmayogi/riddlequest/internal/model"
	"github.com/karmayogi/riddlequest/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	runTriples   string
	runTemplates string
	runLookup    string
	runRiddles   string
	runValidated string
	runSeed      int64
	runWorkers   int
	runTimeout   time.Duration
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: index, generate, validate",
	Long: `Run executes the complete riddle pipeline in one shot:
- Build the concept-property lookup index from labeled triples
- Synthesize riddles for every concept under all three template policies
- Re-solve each riddle from its own text and record the answers

All three artifacts (lookup index, riddles, validated riddles) are
written to their configured paths.

Example:
  riddlequest run
  riddlequest run --triples triples_class.json --seed 42
  riddlequest run --templates templates.yaml --workers 8`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runTriples, "triples", "triples_class.json", "labeled triples input path")
	runCmd.Flags().StringVar(&runTemplates, "templates", "", "riddle templates YAML (empty = built-in)")
	runCmd.Flags().StringVar(&runLookup, "lookup", "lookup.json", "output path for the lookup index")
	runCmd.Flags().StringVar(&runRiddles, "riddles", "riddles.json", "output path for riddles")
	runCmd.Flags().StringVar(&runValidated, "validated", "riddles_validated.json", "output path for validated riddles")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "random seed (0 = wall clock)")
	runCmd.Flags().IntVar(&runWorkers, "workers", runtime.NumCPU(), "number of concurrent generation workers")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 10*time.Minute, "overall pipeline timeout")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  RiddleQuest Pipeline\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Triples:    %s\n", runTriples)
	fmt.Fprintf(os.Stderr, "  Workers:    %d\n", runWorkers)
	if runSeed != 0 {
		fmt.Fprintf(os.Stderr, "  Seed:       %d\n", runSeed)
	}
	if runTemplates != "" {
		fmt.Fprintf(os.Stderr, "  Templates:  %s\n", runTemplates)
	}
	fmt.Fprintf(os.Stderr, "\n")

	cfg := model.DefaultConfig()
	cfg.Paths.Triples = runTriples
	cfg.Paths.Templates = runTemplates
	cfg.Paths.Lookup = runLookup
	cfg.Paths.Riddles = runRiddles
	cfg.Paths.Validated = runValidated
	cfg.Generator.Seed = runSeed
	cfg.Concurrency.Workers = runWorkers
	cfg.Output.Verbose = verbose

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	result, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Pipeline Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Concepts:   %d (%d records, %d skipped)\n",
		result.Report.Concepts, result.Report.Records, result.Report.Skipped)
	fmt.Fprintf(os.Stderr, "  Riddles:    %d\n", result.Riddles)
	fmt.Fprintf(os.Stderr, "  Solved:     %d/%d\n", result.Solved, result.Validated)
	fmt.Fprintf(os.Stderr, "  Elapsed:    %v\n", result.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Lookup:     %s\n", runLookup)
	fmt.Fprintf(os.Stderr, "  Riddles:    %s\n", runRiddles)
	fmt.Fprintf(os.Stderr, "  Validated:  %s\n", runValidated)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
