package model

import "time"

// Progress is the single resumable slot of a student's in-flight attempt.
//
// swagger:model Progress
type Progress struct {
	UserID          string     `gorm:"primaryKey;type:varchar(36)" json:"userId"`
	TestID          string     `gorm:"primaryKey;type:varchar(36);index" json:"testId"`
	CurrentQuestion int        `json:"currentQuestion"`
	Answers         Selections `gorm:"serializer:json" json:"answers"`
	SavedAt         time.Time  `json:"savedAt"`
}

func (Progress) TableName() string {
	return "test_progress"
}
