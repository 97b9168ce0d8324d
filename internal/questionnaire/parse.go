package questionnaire

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// FieldError describes a problem with a single answer
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError collects every field problem found by Parse
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "invalid answers: " + strings.Join(parts, "; ")
}

// Parse validates raw answer values (as decoded from JSON or YAML) against the
// catalog. Null values and empty strings are treated as unanswered.
func Parse(raw map[string]any) (AnswerSet, error) {
	set, errs := parse(raw)
	if len(errs) > 0 {
		return AnswerSet{}, &ValidationError{Fields: errs}
	}
	return set, nil
}

// ParseLenient keeps every answer that validates and reports the ones it
// dropped. Used for stored answers.
func ParseLenient(raw map[string]any) (AnswerSet, []FieldError) {
	return parse(raw)
}

func parse(raw map[string]any) (AnswerSet, []FieldError) {
	set := AnswerSet{answers: make(map[string]Answer, len(raw))}
	var errs []FieldError

	for id, v := range raw {
		q, ok := Lookup(id)
		if !ok {
			errs = append(errs, FieldError{Field: id, Message: "unknown question"})
			continue
		}
		if isBlank(v) {
			continue
		}
		a, err := parseAnswer(q, v)
		if err != nil {
			errs = append(errs, FieldError{Field: id, Message: err.Error()})
			continue
		}
		set.answers[id] = a
	}

	sort.Slice(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
	return set, errs
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return true
	}
	return false
}

func parseAnswer(q Question, v any) (Answer, error) {
	switch q.Kind {
	case KindText:
		s, ok := v.(string)
		if !ok {
			return Answer{}, fmt.Errorf("expected text, got %T", v)
		}
		return TextAnswer(strings.TrimSpace(s)), nil

	case KindNumber:
		f, err := toFloat(v)
		if err != nil {
			return Answer{}, err
		}
		if f < q.Min || f > q.Max {
			return Answer{}, fmt.Errorf("must be between %g and %g, got %g", q.Min, q.Max, f)
		}
		return NumberAnswer(f), nil

	case KindScale:
		f, err := toFloat(v)
		if err != nil {
			return Answer{}, err
		}
		if f != math.Trunc(f) {
			return Answer{}, fmt.Errorf("must be a whole number, got %g", f)
		}
		if f < q.Min || f > q.Max {
			return Answer{}, fmt.Errorf("must be between %g and %g, got %g", q.Min, q.Max, f)
		}
		return ScaleAnswer(int(f)), nil

	case KindBoolean:
		b, err := toBool(v)
		if err != nil {
			return Answer{}, err
		}
		return BoolAnswer(b), nil

	case KindSingle:
		s, ok := v.(string)
		if !ok {
			return Answer{}, fmt.Errorf("expected one of %s, got %T", strings.Join(q.Options, ", "), v)
		}
		s = strings.TrimSpace(s)
		if !q.HasOption(s) {
			return Answer{}, fmt.Errorf("unknown option %q", s)
		}
		return ChoiceAnswer(s), nil

	case KindMulti:
		values, err := toStrings(v)
		if err != nil {
			return Answer{}, err
		}
		seen := make(map[string]bool, len(values))
		var out []string
		for _, s := range values {
			s = strings.TrimSpace(s)
			if !q.HasOption(s) {
				return Answer{}, fmt.Errorf("unknown option %q", s)
			}
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
		return ChoicesAnswer(out...), nil
	}

	return Answer{}, fmt.Errorf("unsupported question kind %s", q.Kind)
}

func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("expected a number, got %q", n.String())
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("expected a number, got %q", n)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("expected a finite number")
	}
	return f, nil
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "yes", "true", "y":
			return true, nil
		case "no", "false", "n":
			return false, nil
		}
		return false, fmt.Errorf("expected yes or no, got %q", b)
	}
	return false, fmt.Errorf("expected yes or no, got %T", v)
}

func toStrings(v any) ([]string, error) {
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected a list of options, found %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		return []string{list}, nil
	}
	return nil, fmt.Errorf("expected a list of options, got %T", v)
}
