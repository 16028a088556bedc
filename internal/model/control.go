package model

import "time"

// ControlTest is a graded test a teacher hands to whole grades ("8") or
// single sections ("8А"). It lives outside the subject catalog.
//
// swagger:model ControlTest
type ControlTest struct {
	UUIDBase
	NameRu          string     `gorm:"size:255;not null" json:"nameRu"`
	NameUz          string     `gorm:"size:255" json:"nameUz"`
	DescriptionRu   string     `gorm:"type:text" json:"descriptionRu"`
	DescriptionUz   string     `gorm:"type:text" json:"descriptionUz"`
	Duration        int        `gorm:"default:30" json:"duration"`
	MaxScore        int        `gorm:"default:100" json:"maxScore"`
	Questions       []Question `gorm:"serializer:json" json:"questions"`
	AssignedClasses []string   `gorm:"serializer:json" json:"assignedClasses"`
	CreatedBy       string     `gorm:"index;type:varchar(36)" json:"createdBy"`
}

func (ControlTest) TableName() string {
	return "control_tests"
}

// AssignedTo reports whether a student of grade and section has the test,
// either through the whole grade or through the exact class label.
func (t *ControlTest) AssignedTo(grade, section string) bool {
	if grade == "" {
		return false
	}
	class := grade + section
	for _, c := range t.AssignedClasses {
		if c == grade || c == class {
			return true
		}
	}
	return false
}

// ControlResult is one submitted control test. Score is scaled to the
// test's MaxScore.
//
// swagger:model ControlResult
type ControlResult struct {
	UUIDBase
	UserID          string           `gorm:"index;type:varchar(36);not null" json:"userId"`
	TestID          string           `gorm:"index;type:varchar(36);not null" json:"testId"`
	TestName        string           `gorm:"size:255" json:"testName"`
	TeacherID       string           `gorm:"index;type:varchar(36)" json:"teacherId"`
	Score           int              `json:"score"`
	CorrectCount    int              `json:"correctCount"`
	TotalCount      int              `json:"totalCount"`
	TimeTaken       int              `json:"timeTaken"`
	QuestionResults []QuestionResult `gorm:"serializer:json" json:"questionResults"`
	CompletedAt     time.Time        `gorm:"index" json:"completedAt"`
}

func (ControlResult) TableName() string {
	return "control_test_results"
}

// ControlResultRow is a result as its teacher sees it.
type ControlResultRow struct {
	ControlResult
	StudentName  string `json:"studentName"`
	StudentGrade string `json:"studentGrade"`
}
