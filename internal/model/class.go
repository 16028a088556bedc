package model

import "strings"

// swagger:model Class
type Class struct {
	UUIDBase
	Grade        string   `gorm:"size:10;index;not null" json:"grade"`
	Name         string   `gorm:"size:20" json:"name,omitempty"`
	Sections     []string `gorm:"serializer:json" json:"sections,omitempty"`
	TeacherID    string   `gorm:"index;type:varchar(36)" json:"teacherId,omitempty"`
	StudentCount int      `gorm:"-" json:"studentCount"`
}

func (Class) TableName() string {
	return "classes"
}

// HasSectionConstraint reports whether the class restricts its sections.
func (c *Class) HasSectionConstraint() bool {
	return c.Name != "" || len(c.Sections) > 0
}

// AllowsSection reports whether section belongs to the class. A class without
// a pinned name or section list allows every section.
func (c *Class) AllowsSection(section string) bool {
	if !c.HasSectionConstraint() {
		return true
	}
	if c.Name == section {
		return true
	}
	for _, s := range c.Sections {
		if s == section {
			return true
		}
	}
	return false
}

// Label renders "8А" for pinned classes and the bare grade otherwise.
func (c *Class) Label() string {
	if c == nil {
		return ""
	}
	if c.Name != "" {
		return strings.TrimSpace(c.Grade + c.Name)
	}
	return strings.TrimSpace(c.Grade)
}
