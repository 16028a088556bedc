package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAccessClassTeacher(t *testing.T) {
	f := newFixture(t)
	t1, t2 := teacher("t1"), teacher("t2")
	f.addUsers(t, t1, t2)
	open := &model.Class{UUIDBase: model.UUIDBase{ID: "c8"}, Grade: "8", TeacherID: "t1"}
	pinned := &model.Class{UUIDBase: model.UUIDBase{ID: "c9a"}, Grade: "9", Name: "А", TeacherID: "t1"}
	listed := &model.Class{UUIDBase: model.UUIDBase{ID: "c10"}, Grade: "10", Sections: []string{"А", "Б"}, TeacherID: "t1"}
	f.addClasses(t, open, pinned, listed)

	_ = f.store.View(f.ctx, func(tx repository.Tx) error {
		for _, section := range []string{"", "А", "Б", "В"} {
			ok, err := f.access.CanAccessClass(tx, caller(t1), open, section)
			require.NoError(t, err)
			assert.True(t, ok, "section %q", section)
		}

		ok, _ := f.access.CanAccessClass(tx, caller(t1), pinned, "А")
		assert.True(t, ok)
		ok, _ = f.access.CanAccessClass(tx, caller(t1), pinned, "Б")
		assert.False(t, ok)

		ok, _ = f.access.CanAccessClass(tx, caller(t1), listed, "Б")
		assert.True(t, ok)
		ok, _ = f.access.CanAccessClass(tx, caller(t1), listed, "В")
		assert.False(t, ok)

		ok, _ = f.access.CanAccessClass(tx, caller(t2), open, "")
		assert.False(t, ok)
		ok, _ = f.access.CanAccessClass(tx, caller(t1), nil, "")
		assert.False(t, ok)
		ok, _ = f.access.CanAccessClass(tx, admin, nil, "")
		assert.True(t, ok)
		return nil
	})
}

func TestCanAccessClassStudent(t *testing.T) {
	f := newFixture(t)
	s8a, s8b, s9a := student("s8a", "8", "А"), student("s8b", "8", "Б"), student("s9a", "9", "А")
	f.addUsers(t, s8a, s8b, s9a)
	open := &model.Class{UUIDBase: model.UUIDBase{ID: "c8"}, Grade: "8"}
	pinned := &model.Class{UUIDBase: model.UUIDBase{ID: "c8a"}, Grade: "8", Name: "А"}

	_ = f.store.View(f.ctx, func(tx repository.Tx) error {
		ok, err := f.access.CanAccessClass(tx, caller(s8a), open, "")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, _ = f.access.CanAccessClass(tx, caller(s8b), open, "А")
		assert.False(t, ok)
		ok, _ = f.access.CanAccessClass(tx, caller(s8b), pinned, "")
		assert.False(t, ok)
		ok, _ = f.access.CanAccessClass(tx, caller(s8a), pinned, "")
		assert.True(t, ok)
		ok, _ = f.access.CanAccessClass(tx, caller(s9a), open, "")
		assert.False(t, ok)

		ghost := model.Caller{UserID: "ghost", Role: model.Student}
		ok, err = f.access.CanAccessClass(tx, ghost, open, "")
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	})
}

func TestTeacherHasSubject(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t, nil)
	byID := teacher("t1", model.SubjectRef{ID: "MATH"})
	byName := teacher("t2", model.SubjectRef{Name: " математика "})
	other := teacher("t3", model.SubjectRef{Name: "Физика"})
	none := teacher("t4")
	f.addUsers(t, byID, byName, other, none)

	_ = f.store.View(f.ctx, func(tx repository.Tx) error {
		ok, err := f.access.TeacherHasSubject(tx, byID, "math")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, _ = f.access.TeacherHasSubject(tx, byName, "math")
		assert.True(t, ok)
		ok, _ = f.access.TeacherHasSubject(tx, other, "math")
		assert.False(t, ok)
		ok, _ = f.access.TeacherHasSubject(tx, other, "missing")
		assert.False(t, ok)

		ok, _ = f.access.TeacherHasSubject(tx, none, "math")
		assert.False(t, ok)

		ok, _ = f.access.TeacherHasSubject(tx, student("s", "8", ""), "math")
		assert.True(t, ok)

		subjects, err := f.access.ResolveTeacherSubjects(tx, byName)
		require.NoError(t, err)
		require.Len(t, subjects, 1)
		assert.Equal(t, "math", subjects[0].ID)

		subjects, _ = f.access.ResolveTeacherSubjects(tx, none)
		assert.Empty(t, subjects)
		return nil
	})
}

func TestCanTeacherAccessStudent(t *testing.T) {
	f := newFixture(t)
	f.addClasses(t,
		&model.Class{Grade: "8", Name: "А", TeacherID: "t1"},
		&model.Class{Grade: "9", TeacherID: "t1"},
	)

	_ = f.store.View(f.ctx, func(tx repository.Tx) error {
		ok, err := f.access.CanTeacherAccessStudent(tx, "t1", student("a", "8", "А"))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, _ = f.access.CanTeacherAccessStudent(tx, "t1", student("b", "8", "Б"))
		assert.False(t, ok)
		ok, _ = f.access.CanTeacherAccessStudent(tx, "t1", student("c", "9", "В"))
		assert.True(t, ok)
		ok, _ = f.access.CanTeacherAccessStudent(tx, "t2", student("a", "8", "А"))
		assert.False(t, ok)
		return nil
	})
}

func TestResolveClassScope(t *testing.T) {
	f := newFixture(t)
	f.addClasses(t,
		&model.Class{UUIDBase: model.UUIDBase{ID: "c8a"}, Grade: "8", Name: "А"},
		&model.Class{UUIDBase: model.UUIDBase{ID: "c8b"}, Grade: "8", Name: "Б"},
	)

	_ = f.store.View(f.ctx, func(tx repository.Tx) error {
		scope, err := f.access.ResolveClassScope(tx, "c8b", "")
		require.NoError(t, err)
		assert.Equal(t, "c8b", scope.Class.ID)
		assert.Equal(t, "8", scope.Grade)
		assert.Equal(t, "Б", scope.Section)

		scope, _ = f.access.ResolveClassScope(tx, "8", "Б")
		assert.Equal(t, "c8b", scope.Class.ID)

		scope, _ = f.access.ResolveClassScope(tx, "8", "")
		assert.Equal(t, "c8a", scope.Class.ID)
		assert.Equal(t, "А", scope.Section)

		scope, _ = f.access.ResolveClassScope(tx, "8", "В")
		assert.Nil(t, scope.Class)
		assert.Equal(t, "8", scope.Grade)
		assert.Equal(t, "В", scope.Section)
		return nil
	})
}
