package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rllagas/csm-server/survey"
)

func TestSurveyFieldRoundTrip(t *testing.T) {
	def := survey.ChoiceField(survey.TypeRadio, survey.SectionCCAwareness, "ccVisibility",
		"Was the Citizen's Charter easy to see?", true, []survey.Option{
			{Value: "1", Label: "Easy to see"},
			{Value: "2", Label: "Not visible at all"},
		}).SkipWhen("ccAwareness", "4")
	def.ShowIf = map[string][]string{"clientType": {"citizen", "business"}}

	row, err := NewSurveyField(def, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, row.SortOrder)
	assert.Empty(t, row.RowsJSON, "choice fields carry no matrix payload")

	got, err := row.Definition()
	require.NoError(t, err)
	assert.Equal(t, def, got)
}

func TestSurveyFieldMatrixRoundTrip(t *testing.T) {
	var matrix survey.FieldDefinition
	for _, f := range survey.DefaultFields() {
		if f.Type == survey.TypeMatrix {
			matrix = f
		}
	}
	require.NotEmpty(t, matrix.Name)

	row, err := NewSurveyField(matrix, 0)
	require.NoError(t, err)

	got, err := row.Definition()
	require.NoError(t, err)
	assert.Equal(t, matrix, got)
}

func TestSurveyFieldBadJSONColumn(t *testing.T) {
	row := SurveyField{Name: "age", Type: "text", OptionsJSON: "{not json"}
	_, err := row.Definition()
	assert.Error(t, err)
}
