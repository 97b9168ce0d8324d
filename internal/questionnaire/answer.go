package questionnaire

import (
	"encoding/json"
	"sort"
)

// Answer holds a single typed answer. Only the field matching Kind is meaningful.
type Answer struct {
	Kind    Kind
	text    string
	number  float64
	boolean bool
	choice  string
	choices []string
}

// TextAnswer creates a free-text answer
func TextAnswer(s string) Answer { return Answer{Kind: KindText, text: s} }

// NumberAnswer creates a numeric answer
func NumberAnswer(f float64) Answer { return Answer{Kind: KindNumber, number: f} }

// BoolAnswer creates a yes/no answer
func BoolAnswer(b bool) Answer { return Answer{Kind: KindBoolean, boolean: b} }

// ChoiceAnswer creates a single-choice answer
func ChoiceAnswer(s string) Answer { return Answer{Kind: KindSingle, choice: s} }

// ChoicesAnswer creates a multi-choice answer
func ChoicesAnswer(values ...string) Answer {
	c := make([]string, len(values))
	copy(c, values)
	return Answer{Kind: KindMulti, choices: c}
}

// ScaleAnswer creates a scale answer
func ScaleAnswer(n int) Answer { return Answer{Kind: KindScale, number: float64(n)} }

// Text returns the free-text value
func (a Answer) Text() (string, bool) {
	return a.text, a.Kind == KindText
}

// Number returns the numeric value of number and scale answers
func (a Answer) Number() (float64, bool) {
	return a.number, a.Kind == KindNumber || a.Kind == KindScale
}

// Bool returns the boolean value
func (a Answer) Bool() (bool, bool) {
	return a.boolean, a.Kind == KindBoolean
}

// Choice returns the selected option of a single-choice answer
func (a Answer) Choice() (string, bool) {
	return a.choice, a.Kind == KindSingle
}

// Choices returns a copy of the selected options of a multi-choice answer
func (a Answer) Choices() ([]string, bool) {
	if a.Kind != KindMulti {
		return nil, false
	}
	c := make([]string, len(a.choices))
	copy(c, a.choices)
	return c, true
}

// raw returns the untyped value used for serialization
func (a Answer) raw() any {
	switch a.Kind {
	case KindText:
		return a.text
	case KindNumber:
		return a.number
	case KindScale:
		return int(a.number)
	case KindBoolean:
		return a.boolean
	case KindSingle:
		return a.choice
	case KindMulti:
		c := make([]string, len(a.choices))
		copy(c, a.choices)
		return c
	}
	return nil
}

// AnswerSet is one completed questionnaire. It is never modified after Parse.
type AnswerSet struct {
	answers map[string]Answer
}

// Get returns the answer for a question ID
func (s AnswerSet) Get(id string) (Answer, bool) {
	a, ok := s.answers[id]
	return a, ok
}

// Number returns the numeric answer for id, if present
func (s AnswerSet) Number(id string) (float64, bool) {
	a, ok := s.answers[id]
	if !ok {
		return 0, false
	}
	return a.Number()
}

// Choice returns the single-choice answer for id, if present
func (s AnswerSet) Choice(id string) (string, bool) {
	a, ok := s.answers[id]
	if !ok {
		return "", false
	}
	return a.Choice()
}

// Bool returns the boolean answer for id, if present
func (s AnswerSet) Bool(id string) (bool, bool) {
	a, ok := s.answers[id]
	if !ok {
		return false, false
	}
	return a.Bool()
}

// Choices returns the multi-choice answer for id, if present
func (s AnswerSet) Choices(id string) ([]string, bool) {
	a, ok := s.answers[id]
	if !ok {
		return nil, false
	}
	return a.Choices()
}

// Len returns the number of answered questions
func (s AnswerSet) Len() int {
	return len(s.answers)
}

// IDs returns the answered question IDs in sorted order
func (s AnswerSet) IDs() []string {
	ids := make([]string, 0, len(s.answers))
	for id := range s.answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Raw returns the answers as plain values keyed by question ID
func (s AnswerSet) Raw() map[string]any {
	out := make(map[string]any, len(s.answers))
	for id, a := range s.answers {
		out[id] = a.raw()
	}
	return out
}

// MarshalJSON encodes the answers as a flat JSON object
func (s AnswerSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Raw())
}

// UnmarshalJSON decodes and validates a flat JSON object of answers
func (s *AnswerSet) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
