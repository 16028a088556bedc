package service

import (
	"assessment_backend/internal/model"
	"math/rand/v2"
)

// DeliveredAnswer keeps the answer's position in the stored test so that
// submissions can be made against canonical indices.
type DeliveredAnswer struct {
	OriginalIndex int    `json:"originalIndex"`
	TextRu        string `json:"textRu"`
	TextUz        string `json:"textUz"`
	IsCorrect     *bool  `json:"isCorrect,omitempty"`
}

type DeliveredQuestion struct {
	QuestionIndex int               `json:"questionIndex"`
	QuestionRu    string            `json:"questionRu"`
	QuestionUz    string            `json:"questionUz"`
	Answers       []DeliveredAnswer `json:"answers"`
}

// RandomizedTest is a per-attempt view of a test. The stored test is not
// touched.
//
// swagger:model RandomizedTest
type RandomizedTest struct {
	ID             string              `json:"_id"`
	ModuleID       string              `json:"moduleId"`
	NameRu         string              `json:"nameRu"`
	NameUz         string              `json:"nameUz"`
	Status         model.TestStatus    `json:"status"`
	Duration       *int                `json:"duration"`
	TimeLimit      *int                `json:"timeLimit"`
	MaxScore       int                 `json:"maxScore"`
	AssignedGrades []string            `json:"assignedGrades"`
	Questions      []DeliveredQuestion `json:"questions"`
}

func newShuffler(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Randomize permutes the questions and, independently, the answers of each
// question. The same seed always yields the same layout.
func Randomize(test *model.Test, seed int64, exposeAnswerKey bool) *RandomizedTest {
	rng := newShuffler(seed)

	questions := make([]DeliveredQuestion, len(test.Questions))
	for i, q := range test.Questions {
		answers := make([]DeliveredAnswer, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = DeliveredAnswer{OriginalIndex: j, TextRu: a.TextRu, TextUz: a.TextUz}
			if exposeAnswerKey {
				correct := a.IsCorrect
				answers[j].IsCorrect = &correct
			}
		}
		rng.Shuffle(len(answers), func(a, b int) { answers[a], answers[b] = answers[b], answers[a] })
		questions[i] = DeliveredQuestion{
			QuestionIndex: i,
			QuestionRu:    q.QuestionRu,
			QuestionUz:    q.QuestionUz,
			Answers:       answers,
		}
	}
	rng.Shuffle(len(questions), func(a, b int) { questions[a], questions[b] = questions[b], questions[a] })

	return &RandomizedTest{
		ID:             test.ID,
		ModuleID:       test.ModuleID,
		NameRu:         test.NameRu,
		NameUz:         test.NameUz,
		Status:         test.Status,
		Duration:       test.Duration,
		TimeLimit:      test.TimeLimit,
		MaxScore:       test.MaxScore,
		AssignedGrades: append([]string(nil), test.AssignedGrades...),
		Questions:      questions,
	}
}
