package riddle

import (
	"math/rand"
	"strings"
	"time"

	"github.com/karmayogi/riddlequest/internal/lookup"
	"github.com/karmayogi/riddlequest/internal/model"
)

// Riddles need at least minClues lines of material; richer pools are sampled
// down to at most maxClues lines.
const (
	minClues = 3
	maxClues = 5
)

// Generator synthesizes riddles from the lookup index. It holds no state
// between calls apart from its random source, so concurrent generation wants
// one Generator (with its own seeded source) per worker.
type Generator struct {
	ix        *lookup.Index
	templates *Templates
	rng       *rand.Rand
}

// NewGenerator creates a generator. A nil templates argument selects the
// built-in templates; a nil rng seeds from the wall clock, so tests that need
// determinism must pass their own source.
func NewGenerator(ix *lookup.Index, templates *Templates, rng *rand.Rand) *Generator {
	if templates == nil {
		templates = Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{ix: ix, templates: templates, rng: rng}
}

// Make synthesizes one riddle for the concept under the given version.
// A nil riddle with a nil error means the concept lacks enough material for
// that version; scarce material is an expected steady-state condition, not a
// fault.
func (g *Generator) Make(concept string, version model.Version) (*model.Riddle, error) {
	switch version {
	case model.V1:
		return g.makeV1(concept)
	case model.V2:
		return g.makeV2(concept)
	case model.V3:
		return g.makeV3(concept)
	default:
		return nil, &UnknownVersionError{Version: string(version)}
	}
}

// MakeAll synthesizes every version with enough material for the concept.
func (g *Generator) MakeAll(concept string) []*model.Riddle {
	var out []*model.Riddle
	for _, v := range []model.Version{model.V1, model.V2, model.V3} {
		r, err := g.Make(concept, v)
		if err != nil || r == nil {
			continue
		}
		out = append(out, r)
	}
	return out
}

// makeV1 builds a topic-defining riddle: every line asserts one phrase
// labeled as a topic marker. One template is drawn for the whole riddle.
func (g *Generator) makeV1(concept string) (*model.Riddle, error) {
	var pool []string
	for _, fact := range g.ix.Facts(concept) {
		if fact.Label == model.LabelTopicMarker {
			pool = append(pool, fact.Phrase)
		}
	}
	if len(pool) < minClues {
		return nil, nil
	}

	chosen := g.sample(pool)
	tmplList, err := g.templates.ForVersion(model.V1)
	if err != nil {
		return nil, err
	}
	tmpl := tmplList[g.rng.Intn(len(tmplList))]

	lines := make([]string, 0, len(chosen)+1)
	for _, p := range chosen {
		lines = append(lines, strings.ReplaceAll(tmpl, "{prop}", p))
	}
	lines = append(lines, ClosingLine)

	return &model.Riddle{
		Concept:  concept,
		Version:  model.V1,
		Text:     strings.Join(lines, "\n"),
		PosClues: dedupeStrings(chosen),
		NegClues: []model.Clue{},
	}, nil
}

// candidateLine is one renderable riddle line with the clues it asserts.
type candidateLine struct {
	text   string
	phrase string
	neg    model.Clue
}

// makeV2 pairs each common property with a randomly chosen neighbor concept
// and negates the neighbor by name.
func (g *Generator) makeV2(concept string) (*model.Riddle, error) {
	tmplList, err := g.templates.ForVersion(model.V2)
	if err != nil {
		return nil, err
	}

	var lines []candidateLine
	for _, fact := range g.ix.Facts(concept) {
		if fact.Label != model.LabelCommon || len(fact.Neighbors) == 0 {
			continue
		}
		neighbor := fact.Neighbors[g.rng.Intn(len(fact.Neighbors))]
		tmpl := tmplList[g.rng.Intn(len(tmplList))]
		text := strings.ReplaceAll(tmpl, "{prop}", fact.Phrase)
		text = strings.ReplaceAll(text, "{neg_con}", neighbor)
		lines = append(lines, candidateLine{
			text:   text,
			phrase: fact.Phrase,
			neg:    model.Clue{Kind: model.ClueConcept, Value: neighbor},
		})
	}

	return g.assemble(concept, model.V2, lines)
}

// makeV3 negates one of the neighbor's own properties instead of its name.
// Neighbors with no known properties are skipped.
func (g *Generator) makeV3(concept string) (*model.Riddle, error) {
	tmplList, err := g.templates.ForVersion(model.V3)
	if err != nil {
		return nil, err
	}

	var lines []candidateLine
	for _, fact := range g.ix.Facts(concept) {
		if fact.Label != model.LabelCommon || len(fact.Neighbors) == 0 {
			continue
		}
		neighbor := fact.Neighbors[g.rng.Intn(len(fact.Neighbors))]

		neighborProps := g.neighborPhrases(neighbor)
		if len(neighborProps) == 0 {
			continue
		}
		negProp := neighborProps[g.rng.Intn(len(neighborProps))]

		tmpl := tmplList[g.rng.Intn(len(tmplList))]
		text := strings.ReplaceAll(tmpl, "{prop}", fact.Phrase)
		text = strings.ReplaceAll(text, "{neg_prop}", negProp)
		lines = append(lines, candidateLine{
			text:   text,
			phrase: fact.Phrase,
			neg:    model.Clue{Kind: model.ClueProperty, Value: negProp},
		})
	}

	return g.assemble(concept, model.V3, lines)
}

// neighborPhrases returns the neighbor's full phrase list regardless of
// label, in fact order.
func (g *Generator) neighborPhrases(neighbor string) []string {
	facts := g.ix.Facts(neighbor)
	phrases := make([]string, 0, len(facts))
	for _, f := range facts {
		phrases = append(phrases, f.Phrase)
	}
	return phrases
}

// assemble applies the shared min-3/sample-3..5/closing-line skeleton.
func (g *Generator) assemble(concept string, version model.Version, lines []candidateLine) (*model.Riddle, error) {
	if len(lines) < minClues {
		return nil, nil
	}

	idx := g.rng.Perm(len(lines))[:sampleSize(len(lines))]

	texts := make([]string, 0, len(idx)+1)
	phrases := make([]string, 0, len(idx))
	negs := make([]model.Clue, 0, len(idx))
	for _, i := range idx {
		texts = append(texts, lines[i].text)
		phrases = append(phrases, lines[i].phrase)
		negs = append(negs, lines[i].neg)
	}
	texts = append(texts, ClosingLine)

	return &model.Riddle{
		Concept:  concept,
		Version:  version,
		Text:     strings.Join(texts, "\n"),
		PosClues: dedupeStrings(phrases),
		NegClues: dedupeClues(negs),
	}, nil
}

// sample draws sampleSize(len(pool)) elements without replacement.
func (g *Generator) sample(pool []string) []string {
	idx := g.rng.Perm(len(pool))[:sampleSize(len(pool))]
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}

// sampleSize is min(maxClues, max(minClues, n)): pools of 3-4 are taken
// whole, larger pools are sampled down to 5.
func sampleSize(n int) int {
	size := n
	if size < minClues {
		size = minClues
	}
	if size > maxClues {
		size = maxClues
	}
	return size
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func dedupeClues(values []model.Clue) []model.Clue {
	seen := make(map[model.Clue]struct{}, len(values))
	out := make([]model.Clue, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
