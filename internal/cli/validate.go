package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/karmayogi/riddlequest/internal/lookup"
	"github.com/karmayogi/riddlequest/internal/model"
	"github.com/karmayogi/riddlequest/internal/validate"
	"github.com/spf13/cobra"
)

var (
	validateRiddles string
	validateLookup  string
	validateOut     string
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Re-solve generated riddles from their own text",
	Long: `Validate closes the loop on generated riddles: each riddle's text is
re-read through the clue extractor, and the recovered clues are handed
to the constraint solver against the lookup index. The result records
the best answer and the full candidate set per riddle, so a riddle that
no longer points at its own concept is visible immediately.

Example:
  riddlequest validate
  riddlequest validate --riddles riddles.json --lookup lookup.json`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateRiddles, "riddles", "riddles.json", "riddles input path")
	validateCmd.Flags().StringVar(&validateLookup, "lookup", "lookup.json", "lookup index path")
	validateCmd.Flags().StringVar(&validateOut, "out", "riddles_validated.json", "output path for validated riddles")
}

func runValidate(cmd *cobra.Command, args []string) error {
	ix, err := lookup.Load(validateLookup)
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	data, err := os.ReadFile(validateRiddles)
	if err != nil {
		return fmt.Errorf("read riddles: %w", err)
	}
	var batch model.RiddleBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return fmt.Errorf("parse riddles: %w", err)
	}

	validator := validate.New(ix)
	validated := validator.ValidateAll(batch.Riddles)
	solved := validate.Solved(validated)

	out := struct {
		Riddles []model.ValidatedRiddle `json:"riddles"`
	}{Riddles: validated}
	if err := writeJSONFile(validateOut, out); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Validated %d riddles: %d solved to their own concept\n",
		len(validated), solved)
	fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", validateOut)

	return nil
}
