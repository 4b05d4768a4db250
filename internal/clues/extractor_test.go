package clues

import (
	"reflect"
	"testing"

	"github.com/karmayogi/riddlequest/internal/model"
)

func TestExtract_PositiveAndNegative(t *testing.T) {
	vocab := append(
		PhraseTerms([]string{"acute hearing", "mammal", "retractable claws"}),
		ConceptTerms([]string{"Cat"})...,
	)

	text := "I have acute hearing.\nI am a mammal, but not Cat.\nWhat am I?"
	pos, neg := New().Extract(text, vocab)

	if !reflect.DeepEqual(pos, []string{"acute hearing", "mammal"}) {
		t.Errorf("pos = %v", pos)
	}
	want := []model.Clue{{Kind: model.ClueConcept, Value: "Cat"}}
	if !reflect.DeepEqual(neg, want) {
		t.Errorf("neg = %v, want %v", neg, want)
	}
}

func TestExtract_NegationWinsOverBareMention(t *testing.T) {
	vocab := PhraseTerms([]string{"mammal"})

	// The bare mention in the first line must not resurrect the phrase as a
	// positive clue once a negated mention is found.
	text := "Some say mammal.\nI am not mammal.\nWhat am I?"
	pos, neg := New().Extract(text, vocab)

	if len(pos) != 0 {
		t.Errorf("expected no positive clues, got %v", pos)
	}
	if len(neg) != 1 || neg[0].Value != "mammal" || neg[0].Kind != model.ClueProperty {
		t.Errorf("neg = %v", neg)
	}
}

func TestExtract_WordBoundary(t *testing.T) {
	vocab := PhraseTerms([]string{"cat"})

	pos, neg := New().Extract("I belong to a category of my own.", vocab)
	if len(pos) != 0 || len(neg) != 0 {
		t.Errorf("substring matched across word boundary: pos=%v neg=%v", pos, neg)
	}

	pos, _ = New().Extract("I am a cat person.", vocab)
	if !reflect.DeepEqual(pos, []string{"cat"}) {
		t.Errorf("whole-word mention missed: %v", pos)
	}
}

func TestExtract_CaseInsensitive(t *testing.T) {
	vocab := PhraseTerms([]string{"acute hearing"})

	pos, _ := New().Extract("I have Acute Hearing.", vocab)
	if !reflect.DeepEqual(pos, []string{"acute hearing"}) {
		t.Errorf("case-insensitive match failed: %v", pos)
	}
}

func TestExtract_ButNotMarker(t *testing.T) {
	vocab := PhraseTerms([]string{"sharp claws"})

	_, neg := New().Extract("I hunt, but not sharp claws for me.", vocab)
	if len(neg) != 1 || neg[0].Value != "sharp claws" {
		t.Errorf("'but not' marker missed: %v", neg)
	}
}

func TestExtract_BareConceptIgnored(t *testing.T) {
	vocab := ConceptTerms([]string{"Dog"})

	pos, neg := New().Extract("A Dog walks by.", vocab)
	if len(pos) != 0 || len(neg) != 0 {
		t.Errorf("bare concept mention should be ignored: pos=%v neg=%v", pos, neg)
	}
}
