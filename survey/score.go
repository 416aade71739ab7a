package survey

import (
	"math"
	"strconv"
)

// OverallScore derives the summary rating of a submission: the mean of all
// numeric matrix answers, excluding NA entries, rounded to 2 decimal
// places. rated is the number of answers that contributed; when zero the
// score is 0.
func OverallScore(fields []FieldDefinition, answers AnswerMap) (score float64, rated int) {
	var sum float64
	for _, f := range fields {
		if f.Type != TypeMatrix {
			continue
		}
		m, ok := matrixAnswer(answers[f.Name])
		if !ok {
			continue
		}
		for _, row := range f.Rows {
			v := answerString(m[row.Name])
			if v == "" || v == NotApplicable {
				continue
			}
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				continue
			}
			sum += n
			rated++
		}
	}
	if rated == 0 {
		return 0, 0
	}
	return math.Round(sum/float64(rated)*100) / 100, rated
}
