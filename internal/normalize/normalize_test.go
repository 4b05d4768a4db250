package normalize

import "testing"

func TestPhrase_StripSteps(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		concept  string
		want     string
	}{
		{"aux and article", "Dog is a domesticated mammal.", "Dog", "domesticated mammal"},
		{"aux only", "Dog has acute hearing", "Dog", "acute hearing"},
		{"modal", "Dog can bark loudly!", "Dog", "bark loudly"},
		{"adverb auxiliary", "Cat often sleeps during daylight", "Cat", "sleeps during daylight"},
		{"connective by", "Dog was bred by humans", "Dog", "bred humans"},
		{"connective to", "Cat is able to climb trees", "Cat", "able climb trees"},
		{"concept case-insensitive", "dog is a mammal.", "Dog", "mammal"},
		{"concept not at start kept", "The wild dog is a mammal", "Dog", "wild dog is a mammal"},
		{"trailing question mark", "Dog is a loyal companion?", "Dog", "loyal companion"},
		{"whitespace collapse", "Dog  has   a   keen  sense of smell", "Dog", "keen sense of smell"},
		{"lower-cased output", "Dog is a Loyal Companion", "Dog", "loyal companion"},
		{"empty sentence", "", "Dog", ""},
		{"nothing left", "Dog is.", "Dog", ""},
		{"by not stripped inside words", "Dog is a bystander", "Dog", "bystander"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Phrase(tt.sentence, tt.concept)
			if got != tt.want {
				t.Errorf("Phrase(%q, %q) = %q, want %q", tt.sentence, tt.concept, got, tt.want)
			}
		})
	}
}

func TestPhrase_SingleAuxiliaryAndArticleOnly(t *testing.T) {
	// Only one auxiliary and one article are stripped, in that order.
	got := Phrase("Dog is has the a thing", "Dog")
	if got != "has the a thing" {
		t.Errorf("expected only the first auxiliary stripped, got %q", got)
	}

	// An article before the auxiliary blocks the auxiliary strip.
	got = Phrase("Dog the is fast", "Dog")
	if got != "is fast" {
		t.Errorf("expected article stripped after no auxiliary matched, got %q", got)
	}
}

func TestPhrase_Deterministic(t *testing.T) {
	a := Phrase("Dog has a keen sense of smell.", "Dog")
	b := Phrase("Dog has a keen sense of smell.", "Dog")
	if a != b {
		t.Errorf("normalization not deterministic: %q vs %q", a, b)
	}
}
