package solve

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/karmayogi/riddlequest/internal/lookup"
	"github.com/karmayogi/riddlequest/internal/model"
)

func testIndex(t *testing.T) *lookup.Index {
	t.Helper()
	ix, _, err := lookup.Build(map[string][]model.Entry{
		"Dog": {
			{Triple: "Dog has acute hearing", Label: model.LabelTopicMarker, Neighbors: []string{"Wolf"}},
			{Triple: "Dog is a mammal", Label: model.LabelCommon, Neighbors: []string{"Cat"}},
		},
		"Cat": {
			{Triple: "Cat is a mammal", Label: model.LabelCommon, Neighbors: []string{"Dog"}},
		},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return ix
}

func TestSolve_NegatedConcept(t *testing.T) {
	s := New(testIndex(t))

	got := s.Solve([]string{"mammal"}, []model.Clue{{Kind: model.ClueConcept, Value: "Cat"}})
	if !reflect.DeepEqual(got, []string{"Dog"}) {
		t.Errorf("Solve = %v, want [Dog]", got)
	}
}

func TestSolve_NoNegatives(t *testing.T) {
	s := New(testIndex(t))

	got := s.Solve([]string{"mammal"}, nil)
	if !reflect.DeepEqual(got, []string{"Cat", "Dog"}) {
		t.Errorf("Solve = %v, want lexicographic [Cat Dog]", got)
	}
}

func TestSolve_NegatedProperty(t *testing.T) {
	s := New(testIndex(t))

	got := s.Solve([]string{"mammal"}, []model.Clue{{Kind: model.ClueProperty, Value: "acute hearing"}})
	if !reflect.DeepEqual(got, []string{"Cat"}) {
		t.Errorf("Solve = %v, want [Cat]", got)
	}
}

func TestSolve_UnknownPhraseCollapses(t *testing.T) {
	s := New(testIndex(t))

	// "flight capability" is not in the index; no concept partially matches
	// either, so the fallback yields nothing as well.
	got := s.Solve([]string{"flight capability"}, nil)
	if len(got) != 0 {
		t.Errorf("Solve = %v, want empty", got)
	}
}

func TestSolve_EmptyPositivesReturnsAll(t *testing.T) {
	s := New(testIndex(t))

	got := s.Solve(nil, nil)
	if !reflect.DeepEqual(got, []string{"Cat", "Dog"}) {
		t.Errorf("Solve = %v, want all concepts", got)
	}
}

func TestSolve_EmptyPositivesNoFallback(t *testing.T) {
	s := New(testIndex(t))

	// Negating every concept empties the candidate set; with no positive
	// evidence there is nothing to rank, so the result stays empty.
	got := s.Solve(nil, []model.Clue{
		{Kind: model.ClueConcept, Value: "Dog"},
		{Kind: model.ClueConcept, Value: "Cat"},
	})
	if len(got) != 0 {
		t.Errorf("Solve = %v, want empty with no fallback", got)
	}
}

func TestSolve_Monotonicity(t *testing.T) {
	s := New(testIndex(t))

	before := s.Solve([]string{"mammal"}, nil)
	after := s.Solve([]string{"mammal", "acute hearing"}, nil)

	if len(after) > len(before) {
		t.Fatalf("adding a positive clue grew the candidate set: %v -> %v", before, after)
	}
	for _, c := range after {
		found := false
		for _, b := range before {
			if b == c {
				found = true
			}
		}
		if !found {
			t.Errorf("candidate %q appeared only after narrowing", c)
		}
	}
}

func TestSolve_FallbackRanking(t *testing.T) {
	// Eight birds sharing "feathers"; only some also have "hooked beak".
	// Negating "feathers" empties the hard intersection, forcing the scored
	// fallback path.
	batch := make(map[string][]model.Entry)
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("Bird%d", i)
		entries := []model.Entry{{Triple: name + " has feathers"}}
		if i < 3 {
			entries = append(entries, model.Entry{Triple: name + " has a hooked beak"})
		}
		batch[name] = entries
	}
	ix, _, err := lookup.Build(batch)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	s := New(ix)

	got := s.Solve(
		[]string{"feathers", "hooked beak"},
		[]model.Clue{{Kind: model.ClueProperty, Value: "feathers"}},
	)

	if len(got) != 5 {
		t.Fatalf("fallback must cap at 5, got %d: %v", len(got), got)
	}
	// Two-property birds outrank one-property birds; ties resolve by name.
	want := []string{"Bird0", "Bird1", "Bird2", "Bird3", "Bird4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fallback ranking = %v, want %v", got, want)
	}
}

func TestSolve_FallbackRequiresPositiveScore(t *testing.T) {
	s := New(testIndex(t))

	// The positive clue matches Dog only; negating Dog empties the hard set.
	// The fallback may then return Dog again (it matches one positive clue),
	// but never a concept with zero matches.
	got := s.Solve([]string{"acute hearing"}, []model.Clue{{Kind: model.ClueConcept, Value: "Dog"}})
	if !reflect.DeepEqual(got, []string{"Dog"}) {
		t.Errorf("Solve = %v, want [Dog] via fallback", got)
	}
}
