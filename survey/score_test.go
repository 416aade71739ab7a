package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverallScore(t *testing.T) {
	matrix := MatrixField(SectionSatisfaction, "sqd", "SQD", true, []MatrixRow{
		{Name: "sqd0"}, {Name: "sqd1"}, {Name: "sqd2"},
	}, scale5)
	fields := []FieldDefinition{matrix, TextField(SectionPersonal, "age", "Age", true, false)}

	t.Run("NA excluded from the mean", func(t *testing.T) {
		score, rated := OverallScore(fields, AnswerMap{
			"sqd": map[string]any{"sqd0": "5", "sqd1": "4", "sqd2": NotApplicable},
			"age": "42", // non-matrix answers never contribute
		})
		assert.Equal(t, 2, rated)
		assert.Equal(t, 4.5, score)
	})

	t.Run("rounded to 2 decimal places", func(t *testing.T) {
		score, rated := OverallScore(fields, AnswerMap{
			"sqd": map[string]any{"sqd0": "5", "sqd1": "4", "sqd2": "4"},
		})
		assert.Equal(t, 3, rated)
		assert.Equal(t, 4.33, score)
	})

	t.Run("no ratings at all", func(t *testing.T) {
		score, rated := OverallScore(fields, AnswerMap{})
		assert.Zero(t, rated)
		assert.Zero(t, score)
	})

	t.Run("JSON numbers accepted", func(t *testing.T) {
		score, rated := OverallScore(fields, AnswerMap{
			"sqd": map[string]any{"sqd0": float64(3), "sqd1": float64(4), "sqd2": float64(5)},
		})
		assert.Equal(t, 3, rated)
		assert.Equal(t, 4.0, score)
	})
}
