package model

import "strings"

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	UUIDBase
	Username     string       `gorm:"size:100;uniqueIndex;not null" json:"username"`
	FirstName    string       `gorm:"size:100" json:"firstName"`
	LastName     string       `gorm:"size:100" json:"lastName"`
	School       string       `gorm:"size:255" json:"school,omitempty"`
	Role         UserRole     `gorm:"type:enum('student','teacher','admin');default:'student'" json:"role"`
	Subjects     []SubjectRef `gorm:"serializer:json" json:"subjects,omitempty"`
	Grade        string       `gorm:"size:10;index" json:"grade,omitempty"`
	GradeSection string       `gorm:"size:10" json:"gradeSection,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Normalize drops attributes that belong to other roles.
func (u *User) Normalize() {
	if u.Role != Teacher {
		u.Subjects = nil
	}
	if u.Role != Student {
		u.Grade = ""
		u.GradeSection = ""
	}
}

// Caller is the authenticated identity issuing a request.
type Caller struct {
	UserID string
	Role   UserRole
}

func (c Caller) Is(role UserRole) bool {
	return c.Role == role
}
