// Package riddle synthesizes riddle text from classified facts.
package riddle

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/karmayogi/riddlequest/internal/model"
)

// ClosingLine terminates every riddle regardless of version.
const ClosingLine = "What am I?"

// UnknownVersionError is returned when a riddle version tag outside the
// supported set is requested. Fatal to that call only.
type UnknownVersionError struct {
	Version string
}

func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("unknown riddle version %q (supported: easy, v1, v2, v3)", e.Version)
}

// ParseVersion maps a version tag to its canonical form. "easy" is the
// historical alias for v1.
func ParseVersion(tag string) (model.Version, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "easy", "v1":
		return model.V1, nil
	case "v2":
		return model.V2, nil
	case "v3":
		return model.V3, nil
	default:
		return "", &UnknownVersionError{Version: tag}
	}
}

// placeholders required per version. A template carrying a placeholder its
// version never substitutes would be emitted with literal braces, and one
// missing a placeholder its version always substitutes would drop the
// negative clue from the text; both are rejected at load time rather than
// discovered in riddle text.
var allowedPlaceholders = map[model.Version][]string{
	model.V1: {"{prop}"},
	model.V2: {"{prop}", "{neg_con}"},
	model.V3: {"{prop}", "{neg_prop}"},
}

var placeholderRe = regexp.MustCompile(`\{[a-z_]+\}`)

// Templates holds the fill-in line templates keyed by version.
type Templates struct {
	byVersion map[model.Version][]string
}

// Default returns the built-in templates. The negated term always follows a
// "not " marker so the clue extractor can recover it.
func Default() *Templates {
	return &Templates{byVersion: map[model.Version][]string{
		model.V1: {
			"I have {prop}.",
			"I am known for {prop}.",
			"People recognize me by my {prop}.",
		},
		model.V2: {
			"I have {prop}, but I am not {neg_con}.",
			"Like others I have {prop}, yet I am not {neg_con}.",
		},
		model.V3: {
			"I have {prop}, but not {neg_prop}.",
			"You will find {prop} on me, but not {neg_prop}.",
		},
	}}
}

// Load reads templates from a YAML file mapping version tags to template
// lists. Versions absent from the file keep the built-in defaults.
func Load(path string) (*Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	t := Default()
	for tag, lines := range raw {
		version, err := ParseVersion(tag)
		if err != nil {
			return nil, fmt.Errorf("templates %s: %w", path, err)
		}
		if len(lines) == 0 {
			return nil, fmt.Errorf("templates %s: version %s has no templates", path, version)
		}
		for _, line := range lines {
			if err := checkPlaceholders(version, line); err != nil {
				return nil, fmt.Errorf("templates %s: %w", path, err)
			}
		}
		t.byVersion[version] = lines
	}
	return t, nil
}

// ForVersion returns the template list for a version.
func (t *Templates) ForVersion(v model.Version) ([]string, error) {
	lines, ok := t.byVersion[v]
	if !ok {
		return nil, &UnknownVersionError{Version: string(v)}
	}
	return lines, nil
}

func checkPlaceholders(v model.Version, line string) error {
	allowed := allowedPlaceholders[v]
	seen := make(map[string]bool, len(allowed))
	for _, ph := range placeholderRe.FindAllString(line, -1) {
		ok := false
		for _, a := range allowed {
			if ph == a {
				ok = true
			}
		}
		if !ok {
			return fmt.Errorf("version %s template %q carries unsupported placeholder %s", v, line, ph)
		}
		seen[ph] = true
	}
	for _, a := range allowed {
		if !seen[a] {
			return fmt.Errorf("version %s template %q is missing the %s placeholder", v, line, a)
		}
	}
	return nil
}
