package cli

import (
	"fmt"
	"os"

	"github.com/karmayogi/riddlequest/internal/lookup"
	"github.com/spf13/cobra"
)

var buildOut string

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build <triples-file>",
	Short: "Build the concept-property lookup index from labeled triples",
	Long: `Build normalizes each labeled triple into a canonical property phrase
and indexes it both ways: concept → properties and property → concepts.
Malformed entries and entries that normalize to nothing are skipped and
counted, never fatal.

Example:
  riddlequest build triples_class.json
  riddlequest build triples_class.json --out lookup.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildOut, "out", "lookup.json", "output path for the lookup index")
}

func runBuild(cmd *cobra.Command, args []string) error {
	ix, report, err := lookup.BuildFromFile(args[0])
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	if err := ix.Save(buildOut); err != nil {
		return fmt.Errorf("save index: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Indexed %d concepts, %d records (%d skipped)\n",
		report.Concepts, report.Records, report.Skipped)
	fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", buildOut)

	return nil
}
