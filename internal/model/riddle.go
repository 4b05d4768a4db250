package model

// Version tags a riddle synthesis policy
type Version string

const (
	V1 Version = "v1" // topic-defining properties only
	V2 Version = "v2" // common property, neighbor concept negated
	V3 Version = "v3" // common property, neighbor's own property negated
)

// ClueKind distinguishes the two negation namespaces: v2 riddles negate
// concept names, v3 riddles negate property phrases. Keeping the tag explicit
// means the solver never has to guess whether a string is a concept or a
// property that happens to share its spelling.
type ClueKind string

const (
	ClueConcept  ClueKind = "concept"
	ClueProperty ClueKind = "property"
)

// Clue is a single negative clue: a concept name or a property phrase the
// answer must not have.
type Clue struct {
	Kind  ClueKind `json:"kind"`
	Value string   `json:"value"`
}

// Riddle is one synthesized riddle. Text is newline-joined clue lines ending
// with the fixed closing line. PosClues and NegClues are derivable from Text
// via the clue extractor; the two representations must agree.
type Riddle struct {
	Concept  string   `json:"concept"`
	Version  Version  `json:"version"`
	Text     string   `json:"riddle"`
	PosClues []string `json:"pos_clues"`
	NegClues []Clue   `json:"neg_clues"`
}

// ValidatedRiddle is a riddle re-read through the extractor and solver.
// PosClues/NegClues hold what the text actually asserts; Answer is the best
// candidate (nil when nothing matched) and PossibleAnswers the full set.
type ValidatedRiddle struct {
	Riddle
	Answer          *string  `json:"answer"`
	PossibleAnswers []string `json:"possible_answers"`
}

// RiddleBatch is the persisted artifact shape for generated riddles.
type RiddleBatch struct {
	Riddles []Riddle `json:"riddles"`
}
