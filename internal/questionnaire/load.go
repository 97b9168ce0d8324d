package questionnaire

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads an answers file in YAML or JSON and validates it.
// The answers may sit at the top level or under an "answers" key.
func LoadFile(path string) (AnswerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AnswerSet{}, fmt.Errorf("reading answers file: %w", err)
	}
	return Decode(data)
}

// Decode parses YAML or JSON answer data
func Decode(data []byte) (AnswerSet, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return AnswerSet{}, fmt.Errorf("decoding answers: %w", err)
	}

	if nested, ok := raw["answers"].(map[string]any); ok && len(raw) == 1 {
		raw = nested
	}

	return Parse(raw)
}
