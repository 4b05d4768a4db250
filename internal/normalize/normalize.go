// Package normalize turns raw fact sentences into canonical property phrases.
//
// A phrase is the atomic unit of matching everywhere downstream: two phrases
// are equal iff their normalized strings are byte-equal. The strip steps run
// in a fixed order (concept, auxiliary, article, connectives, punctuation);
// reordering them would change the phrase namespace and invalidate any
// previously built lookup index.
package normalize

import (
	"regexp"
	"strings"
)

var (
	auxiliaryRe  = regexp.MustCompile(`^(?i:is|are|was|were|has|have|can|often|commonly|sometimes|may)\b`)
	articleRe    = regexp.MustCompile(`^(?i:a|an|the)\b`)
	byRe         = regexp.MustCompile(`(?i)\bby\b`)
	toRe         = regexp.MustCompile(`(?i)\bto\b`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Phrase converts a sentence-like triple ("Dog is a domesticated mammal.")
// into a short lower-case property phrase ("domesticated mammal").
//
// Returns "" when nothing usable remains; callers must treat that as
// "no property" and skip the record. Pure: identical input always yields an
// identical phrase.
func Phrase(sentence, concept string) string {
	if sentence == "" {
		return ""
	}
	s := strings.TrimSpace(sentence)

	// concept mention anchored at the start, case-insensitive
	conceptRe, err := regexp.Compile(`^\s*(?i:` + regexp.QuoteMeta(concept) + `)\b`)
	if err == nil {
		s = strings.TrimSpace(conceptRe.ReplaceAllString(s, ""))
	}

	// one leading auxiliary, then one leading article
	s = strings.TrimSpace(auxiliaryRe.ReplaceAllString(s, ""))
	s = strings.TrimSpace(articleRe.ReplaceAllString(s, ""))

	// connective prepositions anywhere, as whole words
	s = byRe.ReplaceAllString(s, "")
	s = toRe.ReplaceAllString(s, "")

	s = strings.TrimSpace(strings.TrimRight(s, ".!?"))
	s = whitespaceRe.ReplaceAllString(s, " ")

	return strings.ToLower(strings.TrimSpace(s))
}
