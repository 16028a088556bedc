package service

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomizeIsAPermutation(t *testing.T) {
	test := quiz("t", "m", 12, 5)

	for seed := int64(1); seed <= 20; seed++ {
		delivered := Randomize(test, seed, false)
		require.Len(t, delivered.Questions, len(test.Questions))

		var indices []int
		for _, q := range delivered.Questions {
			indices = append(indices, q.QuestionIndex)
			var answers []int
			for _, a := range q.Answers {
				answers = append(answers, a.OriginalIndex)
				assert.Equal(t, test.Questions[q.QuestionIndex].Answers[a.OriginalIndex].TextRu, a.TextRu)
			}
			sort.Ints(answers)
			assert.Equal(t, []int{0, 1, 2, 3, 4}, answers)
		}
		sort.Ints(indices)
		for i, idx := range indices {
			assert.Equal(t, i, idx)
		}
	}
}

func TestRandomizeIsStableForASeed(t *testing.T) {
	test := quiz("t", "m", 10, 4)
	assert.Equal(t, Randomize(test, 42, false), Randomize(test, 42, false))
}

func TestRandomizeLeavesStoredTestUntouched(t *testing.T) {
	test := quiz("t", "m", 6, 4)
	before := quiz("t", "m", 6, 4)

	Randomize(test, 7, true)
	assert.Equal(t, before, test)
}

func TestRandomizeAnswerKeyExposure(t *testing.T) {
	test := quiz("t", "m", 3, 3)

	for _, q := range Randomize(test, 3, false).Questions {
		for _, a := range q.Answers {
			assert.Nil(t, a.IsCorrect)
		}
	}
	for _, q := range Randomize(test, 3, true).Questions {
		for _, a := range q.Answers {
			require.NotNil(t, a.IsCorrect)
			assert.Equal(t, test.Questions[q.QuestionIndex].Answers[a.OriginalIndex].IsCorrect, *a.IsCorrect)
		}
	}
}
