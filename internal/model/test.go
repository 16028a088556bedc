package model

type TestStatus string

const (
	TestDraft     TestStatus = "draft"
	TestPublished TestStatus = "published"
)

// swagger:model Answer
type Answer struct {
	TextRu    string `json:"textRu"`
	TextUz    string `json:"textUz"`
	IsCorrect bool   `json:"isCorrect"`
}

// swagger:model Question
type Question struct {
	QuestionRu string   `json:"questionRu"`
	QuestionUz string   `json:"questionUz"`
	Answers    []Answer `json:"answers"`
}

// CorrectIndex is the index of the first answer marked correct, or -1.
func (q *Question) CorrectIndex() int {
	for i, a := range q.Answers {
		if a.IsCorrect {
			return i
		}
	}
	return -1
}

// swagger:model Test
type Test struct {
	UUIDBase
	ModuleID       string     `gorm:"uniqueIndex;type:varchar(36);not null" json:"moduleId"`
	NameRu         string     `gorm:"size:255;not null" json:"nameRu"`
	NameUz         string     `gorm:"size:255" json:"nameUz"`
	Status         TestStatus `gorm:"size:20;default:'draft'" json:"status"`
	Duration       *int       `json:"duration"`
	TimeLimit      *int       `json:"timeLimit"`
	MaxScore       int        `gorm:"default:100" json:"maxScore"`
	Questions      []Question `gorm:"serializer:json" json:"questions"`
	AssignedGrades []string   `gorm:"serializer:json" json:"assignedGrades"`
	CreatedBy      string     `gorm:"index;type:varchar(36)" json:"createdBy"`
}

func (Test) TableName() string {
	return "tests"
}

func (t *Test) IsPublished() bool {
	return t.Status == TestPublished
}

// AvailableToGrade reports whether students of grade may see the test.
// An empty assignment list means every grade.
func (t *Test) AvailableToGrade(grade string) bool {
	if len(t.AssignedGrades) == 0 {
		return true
	}
	for _, g := range t.AssignedGrades {
		if g == grade {
			return true
		}
	}
	return false
}

// TestSummary is a test listing entry without its questions.
type TestSummary struct {
	ID             string     `json:"_id"`
	ModuleID       string     `json:"moduleId"`
	NameRu         string     `json:"nameRu"`
	NameUz         string     `json:"nameUz"`
	Status         TestStatus `json:"status"`
	Duration       *int       `json:"duration"`
	TimeLimit      *int       `json:"timeLimit"`
	MaxScore       int        `json:"maxScore"`
	AssignedGrades []string   `json:"assignedGrades"`
	QuestionsCount int        `json:"questionsCount"`
}

func (t *Test) Summary() TestSummary {
	return TestSummary{
		ID:             t.ID,
		ModuleID:       t.ModuleID,
		NameRu:         t.NameRu,
		NameUz:         t.NameUz,
		Status:         t.Status,
		Duration:       t.Duration,
		TimeLimit:      t.TimeLimit,
		MaxScore:       t.MaxScore,
		AssignedGrades: t.AssignedGrades,
		QuestionsCount: len(t.Questions),
	}
}
