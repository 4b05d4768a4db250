package fetch

import (
	"strings"

	"golang.org/x/net/html"
)

// extractVisibleText extracts text nodes from HTML, skipping scripts/styles
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

// splitSentences splits text into sentences (simple heuristic)
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Look ahead to avoid splitting on abbreviations
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t') {
				sentence := strings.TrimSpace(current.String())
				if len(sentence) >= 20 && len(sentence) <= 500 {
					sentences = append(sentences, sentence)
				}
				current.Reset()
			}
		}
	}

	if current.Len() > 0 {
		sentence := strings.TrimSpace(current.String())
		if len(sentence) >= 20 && len(sentence) <= 500 {
			sentences = append(sentences, sentence)
		}
	}

	return sentences
}

// filterMentions keeps sentences that mention the concept and dedupes them
func filterMentions(sentences []string, concept string) []string {
	needle := strings.ToLower(concept)
	seen := make(map[string]bool)
	var kept []string

	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		if !strings.Contains(lower, needle) {
			continue
		}
		if seen[lower] {
			continue
		}
		seen[lower] = true
		kept = append(kept, sentence)
	}

	return kept
}
