package model

import "time"

// swagger:model QuestionResult
type QuestionResult struct {
	QuestionIndex      int     `json:"questionIndex"`
	QuestionRu         string  `json:"questionRu"`
	QuestionUz         string  `json:"questionUz"`
	UserAnswerIndex    *int    `json:"userAnswerIndex"`
	UserAnswerText     *Answer `json:"userAnswerText"`
	CorrectAnswerIndex int     `json:"correctAnswerIndex"`
	CorrectAnswerText  *Answer `json:"correctAnswerText"`
	IsCorrect          bool    `json:"isCorrect"`
}

// Result is a completed attempt. It is never updated after creation.
//
// swagger:model Result
type Result struct {
	UUIDBase
	UserID          string           `gorm:"index;type:varchar(36);not null" json:"userId"`
	TestID          string           `gorm:"index;type:varchar(36);not null" json:"testId"`
	TestName        string           `gorm:"size:255" json:"testName"`
	ModuleID        string           `gorm:"index;type:varchar(36)" json:"moduleId"`
	SubjectID       string           `gorm:"index;type:varchar(36)" json:"subjectId"`
	Score           int              `json:"score"`
	CorrectCount    int              `json:"correctCount"`
	TotalCount      int              `json:"totalCount"`
	TimeTaken       int              `json:"timeTaken"`
	QuestionResults []QuestionResult `gorm:"serializer:json" json:"questionResults"`
	CompletedAt     time.Time        `gorm:"index" json:"completedAt"`
}

func (Result) TableName() string {
	return "test_results"
}
