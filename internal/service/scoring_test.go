package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAttemptAllCorrectAndAllWrong(t *testing.T) {
	test := quiz("t", "m", 4, 3)

	correct := map[int]int{}
	for i := range test.Questions {
		correct[i] = test.Questions[i].CorrectIndex()
	}
	scored, err := ScoreAttempt(test, correct)
	require.NoError(t, err)
	assert.Equal(t, 100, scored.Score)
	assert.Equal(t, 4, scored.CorrectCount)

	scored, err = ScoreAttempt(test, map[int]int{})
	require.NoError(t, err)
	assert.Equal(t, 0, scored.Score)
	assert.Equal(t, 4, scored.TotalCount)
	for _, qr := range scored.QuestionResults {
		assert.Nil(t, qr.UserAnswerIndex)
		assert.False(t, qr.IsCorrect)
	}
}

func TestScoreAttemptTwoOfThree(t *testing.T) {
	test := quiz("t", "m", 3, 3)
	answers := map[int]int{0: 0, 1: 0, 2: 2}

	scored, err := ScoreAttempt(test, answers)
	require.NoError(t, err)
	assert.Equal(t, 2, scored.CorrectCount)
	assert.Equal(t, 3, scored.TotalCount)
	assert.Equal(t, 67, scored.Score)

	wrong := scored.QuestionResults[1]
	require.NotNil(t, wrong.UserAnswerIndex)
	assert.Equal(t, 0, *wrong.UserAnswerIndex)
	assert.Equal(t, 1, wrong.CorrectAnswerIndex)
	assert.Equal(t, "B", wrong.CorrectAnswerText.TextRu)
	assert.Equal(t, "A", wrong.UserAnswerText.TextRu)
	assert.False(t, wrong.IsCorrect)
}

func TestScoreAttemptOutOfRangeSelectionIsWrong(t *testing.T) {
	test := quiz("t", "m", 2, 2)

	scored, err := ScoreAttempt(test, map[int]int{0: 7, 1: -1, 5: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, scored.CorrectCount)
	assert.Nil(t, scored.QuestionResults[0].UserAnswerText)
	assert.Len(t, scored.QuestionResults, 2)
}

func TestScoreAttemptSkippedQuestionIsWrong(t *testing.T) {
	// question 0 has its correct answer at index 0
	test := quiz("t", "m", 2, 2)

	for _, raw := range []string{`{"answers":{"0":null,"1":1}}`, `{"answers":[null,1]}`} {
		var input SubmitInput
		require.NoError(t, json.Unmarshal([]byte(raw), &input))

		scored, err := ScoreAttempt(test, input.Answers)
		require.NoError(t, err)
		assert.Equal(t, 1, scored.CorrectCount, raw)
		assert.Equal(t, 50, scored.Score, raw)
		assert.False(t, scored.QuestionResults[0].IsCorrect, raw)
		assert.Nil(t, scored.QuestionResults[0].UserAnswerIndex, raw)
		assert.True(t, scored.QuestionResults[1].IsCorrect, raw)
	}
}

func TestScoreAttemptWithoutQuestions(t *testing.T) {
	_, err := ScoreAttempt(&model.Test{}, map[int]int{0: 0})
	assert.ErrorIs(t, err, util.ErrNoQuestions)
	assert.ErrorIs(t, err, util.ErrInvalidPrecondition)
}

func TestScoreAttemptIsMonotonic(t *testing.T) {
	test := quiz("t", "m", 7, 4)
	answers := map[int]int{}
	for i := range test.Questions {
		answers[i] = (test.Questions[i].CorrectIndex() + 1) % 4
	}

	prev, err := ScoreAttempt(test, answers)
	require.NoError(t, err)
	for i := range test.Questions {
		answers[i] = test.Questions[i].CorrectIndex()
		next, err := ScoreAttempt(test, answers)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, next.Score, prev.Score)
		assert.Equal(t, prev.CorrectCount+1, next.CorrectCount)
		prev = next
	}
	assert.Equal(t, 100, prev.Score)
}

func TestPercentRoundsHalfUp(t *testing.T) {
	cases := []struct {
		correct, total, want int
	}{
		{1, 8, 13},
		{1, 2, 50},
		{2, 3, 67},
		{1, 3, 33},
		{1, 40, 3},
		{0, 5, 0},
		{5, 5, 100},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Percent(c.correct, c.total), "%d/%d", c.correct, c.total)
	}
	assert.Equal(t, 0, Percent(0, 0))
}

func TestScaledUsesMaxScore(t *testing.T) {
	assert.Equal(t, 10, Scaled(2, 4, 20))
	assert.Equal(t, 7, Scaled(1, 3, 20))
	assert.Equal(t, 3, Scaled(1, 2, 5), "2.5 rounds up")
	assert.Equal(t, 0, Scaled(3, 0, 20))
}
