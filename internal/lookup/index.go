// Package lookup builds and queries the bidirectional concept/property index.
//
// The index is the aggregate of concept→properties, its exact inverse
// property→concepts, and the per-concept fact records. It is built once per
// batch and never mutated afterwards, so any number of solver goroutines may
// read it without locking; a rebuild publishes a new Index value.
package lookup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/karmayogi/riddlequest/internal/model"
)

// Index is the immutable property lookup.
// Invariant: p ∈ concept_to_props[c] iff c ∈ prop_to_concepts[p].
type Index struct {
	conceptToProps map[string]map[string]struct{}
	propToConcepts map[string]map[string]struct{}
	facts          map[string][]model.FactRecord
}

func newIndex() *Index {
	return &Index{
		conceptToProps: make(map[string]map[string]struct{}),
		propToConcepts: make(map[string]map[string]struct{}),
		facts:          make(map[string][]model.FactRecord),
	}
}

// add records one normalized fact. Only the builder calls this; the index is
// read-only once Build returns.
func (ix *Index) add(concept, phrase string, rec model.FactRecord) {
	if ix.conceptToProps[concept] == nil {
		ix.conceptToProps[concept] = make(map[string]struct{})
	}
	ix.conceptToProps[concept][phrase] = struct{}{}

	if ix.propToConcepts[phrase] == nil {
		ix.propToConcepts[phrase] = make(map[string]struct{})
	}
	ix.propToConcepts[phrase][concept] = struct{}{}

	ix.facts[concept] = append(ix.facts[concept], rec)
}

// HasConcept reports whether the concept contributed at least one property.
func (ix *Index) HasConcept(concept string) bool {
	_, ok := ix.conceptToProps[concept]
	return ok
}

// HasProperty reports whether the concept owns the phrase.
func (ix *Index) HasProperty(concept, phrase string) bool {
	_, ok := ix.conceptToProps[concept][phrase]
	return ok
}

// Concepts returns all known concept names, sorted.
func (ix *Index) Concepts() []string {
	return sortedKeys(ix.conceptToProps)
}

// Phrases returns every known property phrase, sorted. This is the clue
// extractor's scan universe.
func (ix *Index) Phrases() []string {
	return sortedKeys(ix.propToConcepts)
}

// Properties returns the concept's property phrases, sorted.
func (ix *Index) Properties(concept string) []string {
	return sortedKeys(ix.conceptToProps[concept])
}

// ConceptsFor returns the concepts owning the phrase, sorted. A phrase absent
// from the index yields an empty slice, never an error.
func (ix *Index) ConceptsFor(phrase string) []string {
	return sortedKeys(ix.propToConcepts[phrase])
}

// Facts returns the concept's fact records in input order.
func (ix *Index) Facts(concept string) []model.FactRecord {
	return ix.facts[concept]
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// indexFile is the persisted artifact shape. Field names are a contract for
// consumers; sorted lists keep rebuilds diffable.
type indexFile struct {
	ConceptToProps map[string][]string           `json:"concept_to_props"`
	PropToConcepts map[string][]string           `json:"prop_to_concepts"`
	Triples        map[string][]model.FactRecord `json:"triples"`
}

// Save writes the index as indented JSON.
func (ix *Index) Save(path string) error {
	file := indexFile{
		ConceptToProps: make(map[string][]string, len(ix.conceptToProps)),
		PropToConcepts: make(map[string][]string, len(ix.propToConcepts)),
		Triples:        ix.facts,
	}
	for c, props := range ix.conceptToProps {
		file.ConceptToProps[c] = sortedKeys(props)
	}
	for p, concepts := range ix.propToConcepts {
		file.PropToConcepts[p] = sortedKeys(concepts)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal lookup: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create lookup dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write lookup: %w", err)
	}
	return nil
}

// Load reads a previously saved index.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingInputError{Path: path}
		}
		return nil, fmt.Errorf("read lookup: %w", err)
	}

	var file indexFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse lookup: %w", err)
	}

	ix := newIndex()
	for c, props := range file.ConceptToProps {
		for _, p := range props {
			if ix.conceptToProps[c] == nil {
				ix.conceptToProps[c] = make(map[string]struct{})
			}
			ix.conceptToProps[c][p] = struct{}{}
			if ix.propToConcepts[p] == nil {
				ix.propToConcepts[p] = make(map[string]struct{})
			}
			ix.propToConcepts[p][c] = struct{}{}
		}
	}
	ix.facts = file.Triples
	if ix.facts == nil {
		ix.facts = make(map[string][]model.FactRecord)
	}
	return ix, nil
}
