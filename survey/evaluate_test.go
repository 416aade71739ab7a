package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func awarenessFields() []FieldDefinition {
	return []FieldDefinition{
		ChoiceField(TypeRadio, SectionCCAwareness, "ccAwareness", "Awareness", true, []Option{
			{Value: "1"}, {Value: "2"}, {Value: "3"}, {Value: "4"},
		}),
		ChoiceField(TypeRadio, SectionCCAwareness, "ccVisibility", "Visibility", true, []Option{
			{Value: "1"}, {Value: "2"}, {Value: "3"}, {Value: "4"},
		}).SkipWhen("ccAwareness", "4"),
	}
}

func TestIsFieldRequired(t *testing.T) {
	conditional := awarenessFields()[1]

	tests := []struct {
		name    string
		field   FieldDefinition
		answers AnswerMap
		want    bool
	}{
		{
			name:    "optional field stays optional regardless of rules",
			field:   TextField(SectionFeedback, "suggestions", "Suggestions", false, true).SkipWhen("ccAwareness", "4"),
			answers: AnswerMap{"ccAwareness": "1"},
			want:    false,
		},
		{
			name:    "required without conditional rule",
			field:   TextField(SectionPersonal, "date", "Date", true, false),
			answers: AnswerMap{},
			want:    true,
		},
		{
			name:    "skip value matched as string",
			field:   conditional,
			answers: AnswerMap{"ccAwareness": "4"},
			want:    false,
		},
		{
			name:    "skip value matched as JSON number",
			field:   conditional,
			answers: AnswerMap{"ccAwareness": float64(4)},
			want:    false,
		},
		{
			name:    "other answer keeps field required",
			field:   conditional,
			answers: AnswerMap{"ccAwareness": "2"},
			want:    true,
		},
		{
			name:    "missing dependency answer keeps field required",
			field:   conditional,
			answers: AnswerMap{},
			want:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFieldRequired(tt.field, tt.answers))
		})
	}
}

func TestIsVisible(t *testing.T) {
	f := TextField(SectionPersonal, "officeBranch", "Branch", true, false)
	f.ShowIf = map[string][]string{
		"clientType": {"government"},
		"region":     {"ncr", "r3"},
	}

	assert.True(t, IsVisible(f, AnswerMap{"clientType": "government", "region": "ncr"}))
	assert.False(t, IsVisible(f, AnswerMap{"clientType": "citizen", "region": "ncr"}), "every entry must match")
	assert.False(t, IsVisible(f, AnswerMap{"clientType": "government"}), "absent dependency fails the entry")
	assert.True(t, IsVisible(TextField(SectionPersonal, "date", "Date", true, false), AnswerMap{}), "no ShowIf means always visible")
}

func TestMissingFieldsConditionalSkip(t *testing.T) {
	fields := awarenessFields()

	// Awareness answered with the skip value: visibility question is waived.
	missing := MissingFields(fields, AnswerMap{"ccAwareness": float64(4)})
	assert.Empty(t, fieldNames(missing))

	// Any other awareness answer keeps it required.
	missing = MissingFields(fields, AnswerMap{"ccAwareness": float64(1)})
	assert.Equal(t, []string{"ccVisibility"}, fieldNames(missing))
}

func TestMissingFieldsReportsAllViolations(t *testing.T) {
	fields := []FieldDefinition{
		TextField(SectionPersonal, "date", "Date", true, false),
		TextField(SectionPersonal, "age", "Age", true, false),
		TextField(SectionFeedback, "suggestions", "Suggestions", false, true),
	}
	missing := MissingFields(fields, AnswerMap{"age": "   "})
	assert.Equal(t, []string{"date", "age"}, fieldNames(missing), "whitespace-only answers count as missing")
}

func TestMatrixCompleteness(t *testing.T) {
	fields := DefaultFields()
	var matrix FieldDefinition
	for _, f := range fields {
		if f.Type == TypeMatrix {
			matrix = f
		}
	}
	require.Len(t, matrix.Rows, 9)

	partial := map[string]any{}
	for _, row := range matrix.Rows[:8] {
		partial[row.Name] = "5"
	}
	missing := MissingFields([]FieldDefinition{matrix}, AnswerMap{matrix.Name: partial})
	assert.Equal(t, []string{matrix.Name}, fieldNames(missing), "8 of 9 rows is incomplete")

	full := map[string]any{}
	for _, row := range matrix.Rows {
		full[row.Name] = NotApplicable // NA still counts as answered
	}
	missing = MissingFields([]FieldDefinition{matrix}, AnswerMap{matrix.Name: full})
	assert.Empty(t, missing)
}

func TestIsAgeValid(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{0, false},
		{121, false},
		{"abc", false},
		{1.5, false},
		{"", false},
		{1, true},
		{120, true},
		{"42", true},
		{float64(37), true},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, IsAgeValid(tt.value), "IsAgeValid(%v)", tt.value)
	}
}

func TestValidateAnswersOthersCompanion(t *testing.T) {
	fields := []FieldDefinition{
		ChoiceField(TypeRadio, SectionPersonal, ClientTypeField, "Client type", true, []Option{
			{Value: "citizen"}, {Value: OtherValue},
		}),
	}

	errs := ValidateAnswers(fields, AnswerMap{ClientTypeField: OtherValue})
	require.Len(t, errs, 1)
	assert.Equal(t, "clientType_other", errs[0].Field)

	errs = ValidateAnswers(fields, AnswerMap{ClientTypeField: OtherValue, "clientType_other": "NGO"})
	assert.Empty(t, errs)
}

func TestValidateAnswersOthersNeedsMatchingOption(t *testing.T) {
	// "others" is only a valid answer where the field actually offers it.
	fields := []FieldDefinition{
		ChoiceField(TypeRadio, SectionCCAwareness, "ccAwareness", "Awareness", true, []Option{
			{Value: "1"}, {Value: "2"}, {Value: "3"}, {Value: "4"},
		}),
	}

	errs := ValidateAnswers(fields, AnswerMap{"ccAwareness": OtherValue})
	require.Len(t, errs, 1)
	assert.Equal(t, "ccAwareness", errs[0].Field)

	withOthers := []FieldDefinition{
		ChoiceField(TypeRadio, SectionPersonal, ClientTypeField, "Client type", true, []Option{
			{Value: "citizen"}, {Value: OtherValue},
		}),
	}
	errs = ValidateAnswers(withOthers, AnswerMap{ClientTypeField: OtherValue, "clientType_other": "NGO"})
	assert.Empty(t, errs)
}

func TestValidateAnswersCollectsEverything(t *testing.T) {
	fields := []FieldDefinition{
		ChoiceField(TypeRadio, SectionPersonal, ClientTypeField, "Client type", true, []Option{{Value: "citizen"}}),
		TextField(SectionPersonal, AgeField, "Age", true, false),
	}
	errs := ValidateAnswers(fields, AnswerMap{
		ClientTypeField: "alien",  // not an option
		AgeField:        "200",    // out of range
		"bogus":         "value",  // unknown key
	})

	got := map[string]bool{}
	for _, e := range errs {
		got[e.Field] = true
	}
	assert.True(t, got[ClientTypeField])
	assert.True(t, got[AgeField])
	assert.True(t, got["bogus"])
}

func fieldNames(fields []FieldDefinition) []string {
	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}
