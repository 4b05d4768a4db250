package classify

import (
	"sort"

	"github.com/karmayogi/riddlequest/internal/model"
	"github.com/karmayogi/riddlequest/internal/normalize"
)

// Heuristic labels property phrases without an LLM: a phrase appearing under
// a single concept is a topic marker, a phrase shared by several concepts is
// common, with the sharers recorded as neighbors.
//
// Input maps each concept to the article sentences collected for it; output
// is the labeled triples batch ready for index building. Entry.Triple holds
// the canonical phrase, not the source sentence: the index builder
// normalizes every entry it reads, so the phrase emitted here must be a
// normalization fixpoint or the triples artifact and the built index would
// disagree on spelling.
func Heuristic(batch map[string][]string) map[string][]model.Entry {
	// concept -> ordered unique phrases
	phrases := make(map[string][]string, len(batch))
	// phrase -> concepts that have it
	holders := make(map[string]map[string]bool)

	for concept, sentences := range batch {
		seen := make(map[string]bool)
		for _, sentence := range sentences {
			phrase := canonicalPhrase(sentence, concept)
			if phrase == "" || seen[phrase] {
				continue
			}
			seen[phrase] = true
			phrases[concept] = append(phrases[concept], phrase)

			if holders[phrase] == nil {
				holders[phrase] = make(map[string]bool)
			}
			holders[phrase][concept] = true
		}
	}

	out := make(map[string][]model.Entry, len(batch))
	for concept := range batch {
		entries := make([]model.Entry, 0, len(phrases[concept]))
		for _, phrase := range phrases[concept] {
			entry := model.Entry{Triple: phrase, Label: model.LabelTopicMarker}

			if len(holders[phrase]) > 1 {
				entry.Label = model.LabelCommon
				for other := range holders[phrase] {
					if other != concept {
						entry.Neighbors = append(entry.Neighbors, other)
					}
				}
				sort.Strings(entry.Neighbors)
			}

			entries = append(entries, entry)
		}
		out[concept] = entries
	}

	return out
}

// canonicalPhrase normalizes to a fixpoint. One pass is not always enough:
// "The Dog is loyal" keeps its concept mention after the first pass because
// the leading article hides it, and a second pass strips further.
func canonicalPhrase(sentence, concept string) string {
	phrase := normalize.Phrase(sentence, concept)
	for {
		again := normalize.Phrase(phrase, concept)
		if again == phrase {
			return phrase
		}
		phrase = again
	}
}
