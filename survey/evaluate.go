package survey

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Sentinel values the evaluator treats specially.
const (
	// OtherValue marks the "others" choice of the clientType field; it
	// requires the free-text companion answer under OtherCompanion(name).
	OtherValue = "others"

	// NotApplicable is the matrix column excluded from score averaging.
	NotApplicable = "NA"

	// ClientTypeField is the one field carrying the "others" companion
	// rule. This is an ad-hoc rule, not a general mechanism.
	ClientTypeField = "clientType"

	// AgeField gets integer range validation on top of the generic
	// required check.
	AgeField = "age"

	AgeMin = 1
	AgeMax = 120
)

// OtherCompanion returns the conventional key of the free-text answer
// paired with an "others" choice.
func OtherCompanion(name string) string { return name + "_other" }

// answerString coerces a raw answer value to its canonical string form so
// that JSON numbers compare equal to their string spellings (4 == "4").
func answerString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return strings.Trim(string(b), `"`)
	}
}

func containsValue(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// IsFieldRequired reports whether the field must be answered given the
// current (possibly partial) answers. A field never becomes required
// dynamically if it was not authored as required. A missing dependsOn
// answer resolves to "still required".
func IsFieldRequired(f FieldDefinition, answers AnswerMap) bool {
	if !f.Required {
		return false
	}
	cr := f.ConditionalRequired
	if cr == nil {
		return true
	}
	return !containsValue(cr.SkipValues, answerString(answers[cr.DependsOn]))
}

// IsVisible reports whether the field should be rendered. Every ShowIf
// entry must match the current answers; absent ShowIf means always visible.
func IsVisible(f FieldDefinition, answers AnswerMap) bool {
	for dep, accepted := range f.ShowIf {
		if !containsValue(accepted, answerString(answers[dep])) {
			return false
		}
	}
	return true
}

// matrixAnswer extracts the nested row map of a matrix answer.
func matrixAnswer(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case AnswerMap:
		return m, true
	default:
		return nil, false
	}
}

func matrixComplete(f FieldDefinition, v any) bool {
	m, ok := matrixAnswer(v)
	if !ok || len(m) != len(f.Rows) {
		return false
	}
	for _, row := range f.Rows {
		rv, present := m[row.Name]
		if !present || rv == nil {
			return false
		}
	}
	return true
}

// MissingFields returns every required field that has no usable answer,
// so the caller can report all violations at once. Matrix fields need one
// entry per row; any defined value, including the NA sentinel, counts.
func MissingFields(fields []FieldDefinition, answers AnswerMap) []FieldDefinition {
	var missing []FieldDefinition
	for _, f := range fields {
		if !IsFieldRequired(f, answers) {
			continue
		}
		if f.Type == TypeMatrix {
			if !matrixComplete(f, answers[f.Name]) {
				missing = append(missing, f)
			}
			continue
		}
		if answerString(answers[f.Name]) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// IsAgeValid reports whether the value is an integer in [AgeMin, AgeMax].
func IsAgeValid(v any) bool {
	s := answerString(v)
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return n >= AgeMin && n <= AgeMax
}

// FieldError is one per-field validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateAnswers checks a submission against the schema and returns every
// violation together: missing required fields, unknown keys, answers
// outside a choice field's options, the age range rule and the clientType
// "others" companion rule. An empty result means the submission is valid.
func ValidateAnswers(fields []FieldDefinition, answers AnswerMap) []FieldError {
	var errs []FieldError

	byName := make(map[string]FieldDefinition, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	for _, f := range MissingFields(fields, answers) {
		errs = append(errs, FieldError{Field: f.Name, Message: "This field is required"})
	}

	for key, raw := range answers {
		f, known := byName[key]
		if !known {
			// "_other" companions ride along without a schema entry.
			base, isCompanion := strings.CutSuffix(key, "_other")
			if _, ok := byName[base]; isCompanion && ok {
				continue
			}
			errs = append(errs, FieldError{Field: key, Message: "Unknown field"})
			continue
		}

		switch f.Type {
		case TypeRadio, TypeSelect:
			v := answerString(raw)
			if v == "" {
				continue
			}
			// Fields offering "others" list it as a regular option, so no
			// special case here.
			if !optionValue(f.Options, v) {
				errs = append(errs, FieldError{Field: key, Message: "Answer is not one of the available choices"})
			}
		case TypeMatrix:
			m, ok := matrixAnswer(raw)
			if !ok {
				errs = append(errs, FieldError{Field: key, Message: "Matrix answer must map rows to choices"})
				continue
			}
			rows := make(map[string]bool, len(f.Rows))
			for _, r := range f.Rows {
				rows[r.Name] = true
			}
			for rowName, rv := range m {
				if !rows[rowName] {
					errs = append(errs, FieldError{Field: key, Message: "Unknown row " + rowName})
					continue
				}
				if v := answerString(rv); v != "" && !columnValue(f.Columns, v) {
					errs = append(errs, FieldError{Field: key, Message: "Invalid choice for row " + rowName})
				}
			}
		}
	}

	if v, ok := answers[AgeField]; ok && answerString(v) != "" && !IsAgeValid(v) {
		errs = append(errs, FieldError{Field: AgeField, Message: "Age must be a whole number between 1 and 120"})
	}

	if answerString(answers[ClientTypeField]) == OtherValue {
		companion := OtherCompanion(ClientTypeField)
		if answerString(answers[companion]) == "" {
			errs = append(errs, FieldError{Field: companion, Message: "Please specify the client type"})
		}
	}

	return errs
}

func optionValue(options []Option, v string) bool {
	for _, o := range options {
		if o.Value == v {
			return true
		}
	}
	return false
}

func columnValue(columns []MatrixColumn, v string) bool {
	for _, c := range columns {
		if c.Value == v {
			return true
		}
	}
	return false
}
