package lookup

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/karmayogi/riddlequest/internal/model"
	"github.com/karmayogi/riddlequest/internal/normalize"
)

// MissingInputError reports an absent triples input. It is fatal to the
// batch; a malformed individual entry is not (those are skipped and counted).
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("triples input not found: %s", e.Path)
}

// BuildReport carries build statistics. Skipped counts entries that were
// malformed or normalized to an empty phrase; upstream extraction is noisy,
// so these are expected and must be observable rather than silent.
type BuildReport struct {
	Concepts int
	Records  int
	Skipped  int
}

// Build constructs an index from upstream-classified entries. A nil batch is
// a MissingInputError; individual unusable entries are skipped best-effort.
func Build(raw map[string][]model.Entry) (*Index, BuildReport, error) {
	if raw == nil {
		return nil, BuildReport{}, &MissingInputError{Path: "(in-memory batch)"}
	}

	ix := newIndex()
	var report BuildReport

	for concept, entries := range raw {
		for _, e := range entries {
			phrase := normalize.Phrase(e.Triple, concept)
			if phrase == "" {
				report.Skipped++
				continue
			}
			neighbors := e.Neighbors
			if neighbors == nil {
				neighbors = []string{}
			}
			ix.add(concept, phrase, model.FactRecord{
				Phrase:    phrase,
				Label:     e.Label,
				Neighbors: neighbors,
			})
			report.Records++
		}
	}

	report.Concepts = len(ix.conceptToProps)
	return ix, report, nil
}

// BuildFromFile reads a triples JSON file and builds the index. Each entry
// may be a bare sentence string or an object with triple/label/
// neighboring_concepts fields; anything else is skipped.
func BuildFromFile(path string) (*Index, BuildReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, BuildReport{}, &MissingInputError{Path: path}
		}
		return nil, BuildReport{}, fmt.Errorf("read triples: %w", err)
	}

	var rawFile map[string][]json.RawMessage
	if err := json.Unmarshal(data, &rawFile); err != nil {
		return nil, BuildReport{}, fmt.Errorf("parse triples: %w", err)
	}

	raw := make(map[string][]model.Entry, len(rawFile))
	skipped := 0
	for concept, msgs := range rawFile {
		entries := make([]model.Entry, 0, len(msgs))
		for _, msg := range msgs {
			entry, ok := decodeEntry(msg)
			if !ok {
				skipped++
				continue
			}
			entries = append(entries, entry)
		}
		raw[concept] = entries
	}

	ix, report, err := Build(raw)
	if err != nil {
		return nil, report, err
	}
	report.Skipped += skipped
	return ix, report, nil
}

// decodeEntry accepts either a bare sentence string or an entry object.
func decodeEntry(msg json.RawMessage) (model.Entry, bool) {
	var sentence string
	if err := json.Unmarshal(msg, &sentence); err == nil {
		return model.Entry{Triple: sentence}, true
	}

	var entry model.Entry
	if err := json.Unmarshal(msg, &entry); err == nil && entry.Triple != "" {
		return entry, true
	}
	return model.Entry{}, false
}
