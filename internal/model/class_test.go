package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassAllowsSection(t *testing.T) {
	open := &Class{Grade: "8"}
	pinned := &Class{Grade: "8", Name: "А"}
	listed := &Class{Grade: "8", Sections: []string{"Б", "В"}}

	assert.True(t, open.AllowsSection("Г"))
	assert.True(t, pinned.AllowsSection("А"))
	assert.False(t, pinned.AllowsSection("Б"))
	assert.True(t, listed.AllowsSection("В"))
	assert.False(t, listed.AllowsSection("А"))
}

func TestClassLabel(t *testing.T) {
	var missing *Class
	assert.Equal(t, "", missing.Label())
	assert.Equal(t, "8А", (&Class{Grade: "8", Name: "А"}).Label())
	assert.Equal(t, "9", (&Class{Grade: "9", Sections: []string{"А"}}).Label())
}

func TestUserNormalize(t *testing.T) {
	u := &User{Role: Student, Grade: "8", GradeSection: "А", Subjects: []SubjectRef{{ID: "math"}}}
	u.Normalize()
	assert.Nil(t, u.Subjects)
	assert.Equal(t, "8", u.Grade)

	admin := &User{Role: Admin, Grade: "8"}
	admin.Normalize()
	assert.Empty(t, admin.Grade)
}
