// Package validate closes the generate→solve loop: it re-reads each riddle's
// text through the clue extractor and checks which concepts the constraint
// solver considers consistent with what the text actually says.
package validate

import (
	"github.com/karmayogi/riddlequest/internal/clues"
	"github.com/karmayogi/riddlequest/internal/lookup"
	"github.com/karmayogi/riddlequest/internal/model"
	"github.com/karmayogi/riddlequest/internal/solve"
)

// Validator validates riddle batches against an immutable lookup index.
// Safe for concurrent use.
type Validator struct {
	extractor *clues.Extractor
	solver    *solve.Solver
	vocab     []clues.Term
}

// New creates a validator. The scan vocabulary is the index's full phrase
// universe plus its concept names, so v2's concept-name negations are
// recoverable alongside property clues.
func New(ix *lookup.Index) *Validator {
	vocab := append(clues.PhraseTerms(ix.Phrases()), clues.ConceptTerms(ix.Concepts())...)
	return &Validator{
		extractor: clues.New(),
		solver:    solve.New(ix),
		vocab:     vocab,
	}
}

// ValidateRiddle solves one riddle from its own text. The returned record
// carries the clues the text actually asserts (which may differ from what the
// generator intended), the best answer, and the full candidate set.
func (v *Validator) ValidateRiddle(r model.Riddle) model.ValidatedRiddle {
	pos, neg := v.extractor.Extract(r.Text, v.vocab)
	answers := v.solver.Solve(pos, neg)

	var answer *string
	if len(answers) > 0 {
		answer = &answers[0]
	}

	out := model.ValidatedRiddle{
		Riddle:          r,
		Answer:          answer,
		PossibleAnswers: answers,
	}
	out.PosClues = pos
	out.NegClues = neg
	return out
}

// ValidateAll validates a batch in order.
func (v *Validator) ValidateAll(riddles []model.Riddle) []model.ValidatedRiddle {
	out := make([]model.ValidatedRiddle, 0, len(riddles))
	for _, r := range riddles {
		out = append(out, v.ValidateRiddle(r))
	}
	return out
}

// Solved reports how many validated riddles name their ground-truth concept
// as the best answer.
func Solved(validated []model.ValidatedRiddle) int {
	n := 0
	for _, v := range validated {
		if v.Answer != nil && *v.Answer == v.Concept {
			n++
		}
	}
	return n
}
