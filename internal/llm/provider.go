package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/karmayogi/riddlequest/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Classify labels a concept's property phrases as topic markers or
	// common properties, naming the neighbors sharing the common ones
	Classify(ctx context.Context, req ClassifyRequest) (*ClassifyResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ClassifyRequest contains the input for triple classification
type ClassifyRequest struct {
	// Concept is the subject being described
	Concept string

	// Sentences are raw article sentences about the concept
	Sentences []string

	// KnownConcepts is the STRICT allowlist of concepts the LLM may name as
	// neighbors. This prevents hallucinated concepts from entering the index.
	KnownConcepts []string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// ClassifyResponse contains the labeled property entries
type ClassifyResponse struct {
	// Entries are the classified property triples for the concept
	Entries []model.Entry

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// BuildPrompt constructs the classification prompt
func BuildPrompt(req ClassifyRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `You are labeling descriptive properties of the concept %q.

For each property, decide:
- "topic_marker": the property strongly identifies this concept on its own.
- "common": the property is shared with other concepts.

CRITICAL RULES:
1. For "common" properties, list the other concepts sharing them in
   "neighboring_concepts". You MUST ONLY name concepts from this allowed list:
%s

2. DO NOT invent concepts outside this list.
3. Property text must be a short noun or verb phrase, lowercase, no leading
   articles or auxiliaries (e.g. "acute sense of hearing", not "has an acute
   sense of hearing").
4. Respond with ONLY a JSON array, no prose. Each element:
   {"triple": "<property phrase>", "label": "topic_marker"|"common", "neighboring_concepts": ["..."]}

Sentences about %q:
`, req.Concept, joinConcepts(req.KnownConcepts), req.Concept)

	for i, sentence := range req.Sentences {
		if i >= 30 { // Limit to avoid token bloat
			fmt.Fprintf(&sb, "... and %d more sentences\n", len(req.Sentences)-30)
			break
		}
		fmt.Fprintf(&sb, "- %s\n", sentence)
	}

	return sb.String()
}

func joinConcepts(concepts []string) string {
	if len(concepts) == 0 {
		return "(no other concepts known; every property is a topic marker)"
	}
	var sb strings.Builder
	for _, c := range concepts {
		fmt.Fprintf(&sb, "\n- %s", c)
	}
	return sb.String()
}

// parseEntries extracts the JSON array from an LLM reply and filters it to
// well-formed entries with allowed labels and neighbors.
func parseEntries(reply string, knownConcepts []string) ([]model.Entry, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in reply")
	}

	var raw []model.Entry
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal entries: %w", err)
	}

	allowed := make(map[string]bool, len(knownConcepts))
	for _, c := range knownConcepts {
		allowed[c] = true
	}

	var entries []model.Entry
	for _, entry := range raw {
		entry.Triple = strings.TrimSpace(entry.Triple)
		if entry.Triple == "" {
			continue
		}
		if entry.Label != model.LabelTopicMarker && entry.Label != model.LabelCommon {
			continue
		}

		var neighbors []string
		for _, n := range entry.Neighbors {
			if allowed[n] {
				neighbors = append(neighbors, n)
			}
		}
		entry.Neighbors = neighbors

		// A common property with no surviving neighbors cannot anchor a
		// contrast clue; demote it.
		if entry.Label == model.LabelCommon && len(entry.Neighbors) == 0 {
			entry.Label = model.LabelTopicMarker
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
