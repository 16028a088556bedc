package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
)

// Scored is the outcome of grading one attempt.
type Scored struct {
	Score           int
	CorrectCount    int
	TotalCount      int
	QuestionResults []model.QuestionResult
}

// ScoreAttempt grades answers, keyed by canonical question index, against the
// stored answer key. Missing or out-of-range selections count as wrong.
func ScoreAttempt(test *model.Test, answers map[int]int) (*Scored, error) {
	total := len(test.Questions)
	if total == 0 {
		return nil, util.ErrNoQuestions
	}

	out := &Scored{TotalCount: total, QuestionResults: make([]model.QuestionResult, total)}
	for i := range test.Questions {
		q := &test.Questions[i]
		qr := model.QuestionResult{
			QuestionIndex:      i,
			QuestionRu:         q.QuestionRu,
			QuestionUz:         q.QuestionUz,
			CorrectAnswerIndex: q.CorrectIndex(),
		}
		if qr.CorrectAnswerIndex >= 0 {
			correct := q.Answers[qr.CorrectAnswerIndex]
			qr.CorrectAnswerText = &correct
		}
		if selected, ok := answers[i]; ok {
			qr.UserAnswerIndex = &selected
			if selected >= 0 && selected < len(q.Answers) {
				chosen := q.Answers[selected]
				qr.UserAnswerText = &chosen
				qr.IsCorrect = chosen.IsCorrect
			}
		}
		if qr.IsCorrect {
			out.CorrectCount++
		}
		out.QuestionResults[i] = qr
	}
	out.Score = Percent(out.CorrectCount, total)
	return out, nil
}

// Percent is correct/total as a whole percentage, rounded half up.
func Percent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return Scaled(correct, total, 100)
}

// Scaled maps correct/total onto 0..outOf, rounded half up.
func Scaled(correct, total, outOf int) int {
	if total <= 0 {
		return 0
	}
	return (correct*outOf*2 + total) / (2 * total)
}
