// Package clues recovers asserted and negated clue terms from riddle text.
package clues

import (
	"regexp"
	"sort"

	"github.com/karmayogi/riddlequest/internal/model"
)

// Term is one scannable vocabulary item: a property phrase or a concept name.
// Concept names only matter when negated ("but not Wolf"); a bare concept
// mention is never a positive clue.
type Term struct {
	Value string
	Kind  model.ClueKind
}

// Extractor scans riddle text for whole-word, case-insensitive mentions of a
// fixed vocabulary. A mention preceded by a negation marker ("not ",
// "but not ") is a negative clue and suppresses any bare mention of the same
// term elsewhere in the text.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract returns the positive phrases and negated clues asserted by text.
// Outputs are sorted; vocabulary iteration order never affects the result.
func (e *Extractor) Extract(text string, vocab []Term) ([]string, []model.Clue) {
	pos := []string{}
	neg := []model.Clue{}

	for _, term := range vocab {
		if term.Value == "" {
			continue
		}
		quoted := regexp.QuoteMeta(term.Value)

		negRe, err := regexp.Compile(`(?i)(?:but\s+not|not)\s+` + quoted + `\b`)
		if err != nil {
			continue
		}
		if negRe.MatchString(text) {
			neg = append(neg, model.Clue{Kind: term.Kind, Value: term.Value})
			continue
		}

		// Bare occurrence, word-boundary anchored so "cat" never matches
		// inside "category".
		if term.Kind != model.ClueProperty {
			continue
		}
		bareRe, err := regexp.Compile(`(?i)\b` + quoted + `\b`)
		if err != nil {
			continue
		}
		if bareRe.MatchString(text) {
			pos = append(pos, term.Value)
		}
	}

	sort.Strings(pos)
	sort.Slice(neg, func(i, j int) bool {
		if neg[i].Value != neg[j].Value {
			return neg[i].Value < neg[j].Value
		}
		return neg[i].Kind < neg[j].Kind
	})
	return pos, neg
}

// PhraseTerms wraps property phrases as vocabulary terms.
func PhraseTerms(phrases []string) []Term {
	terms := make([]Term, 0, len(phrases))
	for _, p := range phrases {
		terms = append(terms, Term{Value: p, Kind: model.ClueProperty})
	}
	return terms
}

// ConceptTerms wraps concept names as vocabulary terms.
func ConceptTerms(concepts []string) []Term {
	terms := make([]Term, 0, len(concepts))
	for _, c := range concepts {
		terms = append(terms, Term{Value: c, Kind: model.ClueConcept})
	}
	return terms
}
