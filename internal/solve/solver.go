// Package solve computes the concepts consistent with a riddle's clues.
//
// Solving is two-phase: a hard set intersection over the positive clues with
// negative clues subtracted, then - only when the hard phase comes up empty
// despite positive evidence - a scored best-effort ranking. Riddles carry
// imprecise clues often enough that returning a useless empty answer whenever
// one negative clue overshoots would make the validator pointless.
package solve

import (
	"sort"

	"github.com/karmayogi/riddlequest/internal/lookup"
	"github.com/karmayogi/riddlequest/internal/model"
)

// maxFallback caps the scored ranking returned when no concept satisfies
// every constraint.
const maxFallback = 5

// Solver answers clue queries against an immutable lookup index. Safe for
// concurrent use; it never mutates the index.
type Solver struct {
	ix *lookup.Index
}

func New(ix *lookup.Index) *Solver {
	return &Solver{ix: ix}
}

// Solve returns the concepts whose property set is consistent with every
// positive clue and no negative clue, sorted by name. Unknown phrases are
// empty sets, so a single unknown positive clue collapses the intersection;
// that is short-circuit behavior, not an error.
func (s *Solver) Solve(pos []string, neg []model.Clue) []string {
	posSet := dedupe(pos)

	var candidates map[string]struct{}
	if len(posSet) == 0 {
		candidates = make(map[string]struct{})
		for _, c := range s.ix.Concepts() {
			candidates[c] = struct{}{}
		}
	} else {
		for p := range posSet {
			matching := make(map[string]struct{})
			for _, c := range s.ix.ConceptsFor(p) {
				matching[c] = struct{}{}
			}
			if candidates == nil {
				candidates = matching
				continue
			}
			for c := range candidates {
				if _, ok := matching[c]; !ok {
					delete(candidates, c)
				}
			}
		}
	}

	for _, clue := range neg {
		switch clue.Kind {
		case model.ClueConcept:
			delete(candidates, clue.Value)
		case model.ClueProperty:
			for c := range candidates {
				if s.ix.HasProperty(c, clue.Value) {
					delete(candidates, c)
				}
			}
		}
	}

	if len(candidates) == 0 {
		if len(posSet) == 0 {
			return []string{}
		}
		return s.rankPartialMatches(posSet)
	}

	out := make([]string, 0, len(candidates))
	for c := range candidates {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// rankPartialMatches scores every concept by how many positive clues it
// carries, keeps strictly positive scores, and returns the top matches:
// descending score, ties broken by ascending name.
func (s *Solver) rankPartialMatches(posSet map[string]struct{}) []string {
	type scored struct {
		concept string
		score   int
	}
	var ranked []scored
	for _, c := range s.ix.Concepts() {
		score := 0
		for p := range posSet {
			if s.ix.HasProperty(c, p) {
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{concept: c, score: score})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].concept < ranked[j].concept
	})

	n := len(ranked)
	if n > maxFallback {
		n = maxFallback
	}
	out := make([]string, 0, n)
	for _, r := range ranked[:n] {
		out = append(out, r.concept)
	}
	return out
}

func dedupe(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
