package model

// Label classifies how characteristic a property is of its owning concept
type Label string

const (
	LabelTopicMarker Label = "topic_marker" // defining for the concept
	LabelCommon      Label = "common"       // shared with neighboring concepts
)

// Entry is one upstream-classified fact for a concept, as delivered by the
// extraction/classification stage. Triple is a sentence-like statement
// ("Dog has acute hearing"); Label and Neighbors may be absent.
type Entry struct {
	Triple    string   `json:"triple"`
	Label     Label    `json:"label,omitempty"`
	Neighbors []string `json:"neighboring_concepts,omitempty"`
}

// FactRecord is the normalized form kept in the lookup index: the canonical
// property phrase plus the classification carried over from the entry.
// Neighbors is a non-owning reference to other concepts; it never requires
// synchronized deletion.
type FactRecord struct {
	Phrase    string   `json:"phrase"`
	Label     Label    `json:"label"`
	Neighbors []string `json:"neighboring_concepts"`
}
