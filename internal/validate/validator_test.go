package validate

import (
	"math/rand"
	"testing"

	"github.com/karmayogi/riddlequest/internal/lookup"
	"github.com/karmayogi/riddlequest/internal/model"
	"github.com/karmayogi/riddlequest/internal/riddle"
)

func testIndex(t *testing.T) *lookup.Index {
	t.Helper()
	ix, _, err := lookup.Build(map[string][]model.Entry{
		"Dog": {
			{Triple: "Dog has acute hearing", Label: model.LabelTopicMarker},
			{Triple: "Dog can bark loudly", Label: model.LabelTopicMarker},
			{Triple: "Dog has webbed paws", Label: model.LabelTopicMarker},
			{Triple: "Dog is a mammal", Label: model.LabelCommon, Neighbors: []string{"Cat"}},
			{Triple: "Dog has four legs", Label: model.LabelCommon, Neighbors: []string{"Cat"}},
			{Triple: "Dog is a loyal companion", Label: model.LabelCommon, Neighbors: []string{"Cat"}},
		},
		"Cat": {
			{Triple: "Cat has retractable claws", Label: model.LabelTopicMarker},
			{Triple: "Cat has slit pupils", Label: model.LabelTopicMarker},
			{Triple: "Cat is a mammal", Label: model.LabelCommon, Neighbors: []string{"Dog"}},
		},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return ix
}

func TestValidateRiddle_GeneratedRiddlesSolveToTheirConcept(t *testing.T) {
	ix := testIndex(t)
	g := riddle.NewGenerator(ix, nil, rand.New(rand.NewSource(3)))
	v := New(ix)

	for _, version := range []model.Version{model.V1, model.V2, model.V3} {
		r, err := g.Make("Dog", version)
		if err != nil {
			t.Fatalf("%s: Make failed: %v", version, err)
		}
		if r == nil {
			t.Fatalf("%s: expected a riddle", version)
		}

		got := v.ValidateRiddle(*r)
		if got.Answer == nil {
			t.Fatalf("%s: no answer for riddle:\n%s", version, r.Text)
		}
		if *got.Answer != "Dog" {
			t.Errorf("%s: answer = %q, want Dog (candidates %v)\n%s",
				version, *got.Answer, got.PossibleAnswers, r.Text)
		}
	}
}

func TestValidateRiddle_HandMadeText(t *testing.T) {
	v := New(testIndex(t))

	r := model.Riddle{
		Concept: "Dog",
		Version: model.V2,
		Text:    "I am a mammal, but I am not Cat.\nWhat am I?",
	}
	got := v.ValidateRiddle(r)

	if got.Answer == nil || *got.Answer != "Dog" {
		t.Fatalf("answer = %v, want Dog", got.Answer)
	}
	if len(got.PosClues) != 1 || got.PosClues[0] != "mammal" {
		t.Errorf("PosClues = %v", got.PosClues)
	}
	if len(got.NegClues) != 1 || got.NegClues[0].Value != "Cat" || got.NegClues[0].Kind != model.ClueConcept {
		t.Errorf("NegClues = %v", got.NegClues)
	}
}

func TestValidateRiddle_NoMatchYieldsNilAnswer(t *testing.T) {
	v := New(testIndex(t))

	r := model.Riddle{Concept: "Dog", Text: "Nothing recognizable here.\nWhat am I?"}
	got := v.ValidateRiddle(r)

	// No positive clues at all: every concept stays a candidate, the first
	// one lexicographically becomes the answer.
	if got.Answer == nil || *got.Answer != "Cat" {
		t.Errorf("answer = %v, want Cat (all concepts candidate)", got.Answer)
	}
}

func TestValidateAll_And_Solved(t *testing.T) {
	ix := testIndex(t)
	g := riddle.NewGenerator(ix, nil, rand.New(rand.NewSource(11)))
	v := New(ix)

	var batch []model.Riddle
	for _, r := range g.MakeAll("Dog") {
		batch = append(batch, *r)
	}
	if len(batch) != 3 {
		t.Fatalf("expected 3 riddles for Dog, got %d", len(batch))
	}

	validated := v.ValidateAll(batch)
	if len(validated) != 3 {
		t.Fatalf("expected 3 validated riddles, got %d", len(validated))
	}
	if got := Solved(validated); got != 3 {
		t.Errorf("Solved = %d, want 3", got)
	}
}
