package memory

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressSaveOverwritesSlot(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.Update(ctx, func(tx repository.Tx) error {
		if err := tx.Progress().Save(&model.Progress{UserID: "s1", TestID: "t1", CurrentQuestion: 1, Answers: map[int]int{0: 2}}); err != nil {
			return err
		}
		return tx.Progress().Save(&model.Progress{UserID: "s1", TestID: "t1", CurrentQuestion: 3, Answers: map[int]int{0: 1, 1: 0}})
	})
	require.NoError(t, err)

	err = store.View(ctx, func(tx repository.Tx) error {
		p, err := tx.Progress().Find("s1", "t1")
		require.NoError(t, err)
		assert.Equal(t, 3, p.CurrentQuestion)
		assert.Equal(t, model.Selections{0: 1, 1: 0}, p.Answers)
		assert.Len(t, store.progress.rows, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestUpdateRollsBackOnError(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Update(ctx, func(tx repository.Tx) error {
		require.NoError(t, tx.Results().Create(&model.Result{UserID: "s1", TestID: "t1", Score: 50}))
		require.NoError(t, tx.Progress().Save(&model.Progress{UserID: "s1", TestID: "t1"}))
		require.NoError(t, tx.ControlTests().Create(&model.ControlTest{NameRu: "Контрольная", CreatedBy: "t1"}))
		require.NoError(t, tx.ControlResults().Create(&model.ControlResult{UserID: "s1", TestID: "c1", TeacherID: "t1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_ = store.View(ctx, func(tx repository.Tx) error {
		results, _ := tx.Results().List()
		assert.Empty(t, results)
		_, err := tx.Progress().Find("s1", "t1")
		assert.ErrorIs(t, err, repository.ErrRecordNotFound)
		controls, _ := tx.ControlTests().List()
		assert.Empty(t, controls)
		graded, _ := tx.ControlResults().ListByTeacher("t1")
		assert.Empty(t, graded)
		return nil
	})
}

func TestReturnedRowsAreCopies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	test := &model.Test{ModuleID: "m1", Questions: []model.Question{{Answers: []model.Answer{{TextRu: "a", IsCorrect: true}}}}}

	require.NoError(t, store.Update(ctx, func(tx repository.Tx) error {
		return tx.Tests().Create(test)
	}))
	require.NotEmpty(t, test.ID)

	_ = store.View(ctx, func(tx repository.Tx) error {
		got, err := tx.Tests().FindByID(test.ID)
		require.NoError(t, err)
		got.Questions[0].Answers[0].IsCorrect = false
		again, _ := tx.Tests().FindByID(test.ID)
		assert.True(t, again.Questions[0].Answers[0].IsCorrect)
		return nil
	})
}

func TestResultsKeepInsertionOrder(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, func(tx repository.Tx) error {
		for _, score := range []int{10, 20, 30} {
			if err := tx.Results().Create(&model.Result{UserID: "s1", TestID: "t1", Score: score}); err != nil {
				return err
			}
		}
		return tx.Results().DeleteByTest("other")
	}))

	_ = store.View(ctx, func(tx repository.Tx) error {
		results, _ := tx.Results().ListByUser("s1")
		require.Len(t, results, 3)
		assert.Equal(t, []int{10, 20, 30}, []int{results[0].Score, results[1].Score, results[2].Score})
		return nil
	})
}

func TestUserCreateDropsForeignRoleFields(t *testing.T) {
	store := NewStore()
	u := &model.User{Role: model.Teacher, Grade: "8", Subjects: []model.SubjectRef{{ID: "1"}}}

	require.NoError(t, store.Update(context.Background(), func(tx repository.Tx) error {
		return tx.Users().Create(u)
	}))

	assert.Empty(t, u.Grade)
	assert.Len(t, u.Subjects, 1)
}
