package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"assessment_backend/internal/util"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAttemptRequiresPublishedTest(t *testing.T) {
	f := newFixture(t)
	draft := quiz("t1", "m1", 3, 3)
	draft.Status = model.TestDraft
	f.seedCatalog(t, draft)
	s := student("s1", "8", "А")
	f.addUsers(t, s)

	_, err := f.assessment.StartAttempt(f.ctx, caller(s), "t1")
	assert.ErrorIs(t, err, util.ErrTestNotPublished)

	_, err = f.assessment.StartAttempt(f.ctx, caller(s), "nope")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestStartAttemptResumesLayoutUntilSubmit(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t, quiz("t1", "m1", 8, 4))
	s := student("s1", "8", "А")
	f.addUsers(t, s)

	first, err := f.assessment.StartAttempt(f.ctx, caller(s), "t1")
	require.NoError(t, err)
	again, err := f.assessment.StartAttempt(f.ctx, caller(s), "t1")
	require.NoError(t, err)
	assert.Equal(t, first, again)

	_, err = f.assessment.Submit(f.ctx, caller(s), "t1", SubmitInput{})
	require.NoError(t, err)
	_, ok, _ := f.layouts.Get(f.ctx, s.ID, "t1")
	assert.False(t, ok)

	fresh, err := f.assessment.StartAttempt(f.ctx, caller(s), "t1")
	require.NoError(t, err)
	assert.Equal(t, Randomize(quiz("t1", "m1", 8, 4), 2, false), fresh)
}

func TestSubmitScoresAndClearsProgress(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t, quiz("t1", "m1", 3, 3))
	s := student("s1", "8", "А")
	f.addUsers(t, s)

	_, err := f.progress.Save(f.ctx, caller(s), "t1", ProgressInput{CurrentQuestion: 2, Answers: map[int]int{0: 0}})
	require.NoError(t, err)
	saved, err := f.progress.Get(f.ctx, caller(s), "t1")
	require.NoError(t, err)
	require.NotNil(t, saved)

	res, err := f.assessment.Submit(f.ctx, caller(s), "t1", SubmitInput{Answers: map[int]int{0: 0, 1: 0, 2: 2}, TimeTaken: 95})
	require.NoError(t, err)
	assert.Equal(t, 67, res.Score)
	assert.Equal(t, 2, res.CorrectCount)
	assert.Equal(t, 3, res.TotalCount)
	assert.Equal(t, 95, res.TimeTaken)
	assert.Equal(t, "m1", res.ModuleID)
	assert.Equal(t, "math", res.SubjectID)
	assert.NotEmpty(t, res.ID)

	saved, err = f.progress.Get(f.ctx, caller(s), "t1")
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestSavedProgressKeepsSkippedQuestionsEmpty(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t, quiz("t1", "m1", 3, 3))
	s := student("s1", "8", "А")
	f.addUsers(t, s)

	var input ProgressInput
	require.NoError(t, json.Unmarshal([]byte(`{"currentQuestion":2,"answers":[null,1,null]}`), &input))
	_, err := f.progress.Save(f.ctx, caller(s), "t1", input)
	require.NoError(t, err)

	saved, err := f.progress.Get(f.ctx, caller(s), "t1")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, model.Selections{1: 1}, saved.Answers)
}

func TestSubmitIsPermissiveByDefault(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t, quiz("t1", "m1", 2, 2))
	s := student("s1", "8", "А")
	f.addUsers(t, s)

	for i := 0; i < 2; i++ {
		_, err := f.assessment.Submit(f.ctx, caller(s), "t1", SubmitInput{})
		require.NoError(t, err)
	}
	results, err := f.assessment.ResultsForTest(f.ctx, caller(s), "t1")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSubmitSingleAttemptPolicy(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t, quiz("t1", "m1", 2, 2))
	s := student("s1", "8", "А")
	f.addUsers(t, s)
	f.assessment.SetPolicy(Policy{SingleAttempt: true})

	_, err := f.assessment.Submit(f.ctx, caller(s), "t1", SubmitInput{})
	require.NoError(t, err)
	_, err = f.assessment.Submit(f.ctx, caller(s), "t1", SubmitInput{})
	assert.ErrorIs(t, err, util.ErrTestAlreadySubmitted)
	assert.ErrorIs(t, err, util.ErrConflict)

	results, err := f.assessment.ResultsForStudent(f.ctx, caller(s))
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSubmitUnknownTest(t *testing.T) {
	f := newFixture(t)
	_, err := f.assessment.Submit(f.ctx, caller(student("s1", "8", "")), "missing", SubmitInput{})
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestCreateTestOnePerModule(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t, nil)
	author := teacher("t1", model.SubjectRef{ID: "math"})
	f.addUsers(t, author)

	input := CreateTestInput{NameRu: "Дроби", Questions: quiz("x", "m1", 2, 2).Questions}
	test, err := f.assessment.CreateTest(f.ctx, caller(author), "m1", input)
	require.NoError(t, err)
	assert.Equal(t, model.TestDraft, test.Status)
	assert.Equal(t, 100, test.MaxScore)
	assert.Equal(t, "t1", test.CreatedBy)

	_, err = f.assessment.CreateTest(f.ctx, caller(author), "m1", input)
	assert.ErrorIs(t, err, util.ErrModuleHasTest)
	assert.ErrorIs(t, err, util.ErrConflict)
}

func TestCreateTestValidation(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t, nil)
	author := teacher("t1", model.SubjectRef{ID: "math"})
	outsider := teacher("t2", model.SubjectRef{ID: "physics"})
	s := student("s1", "8", "")
	f.addUsers(t, author, outsider, s)

	_, err := f.assessment.CreateTest(f.ctx, caller(author), "m1", CreateTestInput{NameRu: "x", Status: model.TestPublished})
	assert.ErrorIs(t, err, util.ErrNoQuestions)

	_, err = f.assessment.CreateTest(f.ctx, caller(author), "m1", CreateTestInput{NameRu: "x", Status: "archived"})
	assert.ErrorIs(t, err, util.ErrInvalidPrecondition)

	_, err = f.assessment.CreateTest(f.ctx, caller(author), "m404", CreateTestInput{NameRu: "x"})
	assert.ErrorIs(t, err, util.ErrModuleNotFound)

	_, err = f.assessment.CreateTest(f.ctx, caller(outsider), "m1", CreateTestInput{NameRu: "x"})
	assert.ErrorIs(t, err, util.ErrForbidden)

	_, err = f.assessment.CreateTest(f.ctx, caller(s), "m1", CreateTestInput{NameRu: "x"})
	assert.ErrorIs(t, err, util.ErrForbidden)
}

func TestDeleteModuleCascades(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t, quiz("t1", "m1", 2, 2))
	s := student("s1", "8", "А")
	f.addUsers(t, s)

	_, err := f.assessment.Submit(f.ctx, caller(s), "t1", SubmitInput{})
	require.NoError(t, err)
	_, err = f.progress.Save(f.ctx, caller(s), "t1", ProgressInput{CurrentQuestion: 1})
	require.NoError(t, err)
	_, err = f.assessment.StartAttempt(f.ctx, caller(s), "t1")
	require.NoError(t, err)

	require.NoError(t, f.assessment.DeleteModule(f.ctx, admin, "m1"))

	_ = f.store.View(f.ctx, func(tx repository.Tx) error {
		_, err := tx.Modules().FindByID("m1")
		assert.ErrorIs(t, err, repository.ErrRecordNotFound)
		_, err = tx.Tests().FindByID("t1")
		assert.ErrorIs(t, err, repository.ErrRecordNotFound)
		results, _ := tx.Results().List()
		assert.Empty(t, results)
		_, err = tx.Progress().Find(s.ID, "t1")
		assert.ErrorIs(t, err, repository.ErrRecordNotFound)
		return nil
	})
	_, ok, _ := f.layouts.Get(f.ctx, s.ID, "t1")
	assert.False(t, ok)
}

func TestDeleteTestCascades(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t, quiz("t1", "m1", 2, 2))
	s := student("s1", "8", "А")
	f.addUsers(t, s, teacher("t1", model.SubjectRef{ID: "math"}))

	_, err := f.assessment.Submit(f.ctx, caller(s), "t1", SubmitInput{})
	require.NoError(t, err)

	assert.ErrorIs(t, f.assessment.DeleteTest(f.ctx, caller(s), "t1"), util.ErrForbidden)
	require.NoError(t, f.assessment.DeleteTest(f.ctx, model.Caller{UserID: "t1", Role: model.Teacher}, "t1"))

	results, err := f.assessment.ResultsForStudent(f.ctx, caller(s))
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.ErrorIs(t, f.assessment.DeleteTest(f.ctx, admin, "t1"), util.ErrTestNotFound)
}

func TestListAvailableTestsForStudents(t *testing.T) {
	f := newFixture(t)
	test := quiz("t1", "m1", 2, 2)
	test.AssignedGrades = []string{"9"}
	f.seedCatalog(t, test)
	s8, s9 := student("s8", "8", ""), student("s9", "9", "")
	f.addUsers(t, s8, s9, teacher("t1", model.SubjectRef{Name: "Математика"}))

	list, err := f.assessment.ListAvailableTests(f.ctx, caller(s8), "m1")
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = f.assessment.ListAvailableTests(f.ctx, caller(s9), "m1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].QuestionsCount)

	list, err = f.assessment.ListAvailableTests(f.ctx, model.Caller{UserID: "t1", Role: model.Teacher}, "m1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.assessment.ListAvailableTests(f.ctx, caller(s9), "m404")
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}

func TestResultsForStudentMostRecentFirst(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t, quiz("t1", "m1", 2, 2))
	s := student("s1", "8", "")
	f.addUsers(t, s)

	clock := day0
	f.assessment.now = func() time.Time { return clock }
	var ids []string
	for i := 0; i < 3; i++ {
		clock = day0.Add(time.Duration(i) * time.Hour)
		res, err := f.assessment.Submit(f.ctx, caller(s), "t1", SubmitInput{})
		require.NoError(t, err)
		ids = append(ids, res.ID)
	}

	results, err := f.assessment.ResultsForStudent(f.ctx, caller(s))
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{results[0].ID, results[1].ID, results[2].ID})
}

func TestGetResultIsOwnerOnly(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t, quiz("t1", "m1", 2, 2))
	owner, other := student("s1", "8", ""), student("s2", "8", "")
	f.addUsers(t, owner, other)

	res, err := f.assessment.Submit(f.ctx, caller(owner), "t1", SubmitInput{})
	require.NoError(t, err)

	got, err := f.assessment.GetResult(f.ctx, caller(owner), res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)

	_, err = f.assessment.GetResult(f.ctx, caller(other), res.ID)
	assert.ErrorIs(t, err, util.ErrResultNotFound)
}

func TestSaveProgressUnknownTest(t *testing.T) {
	f := newFixture(t)
	_, err := f.progress.Save(f.ctx, caller(student("s1", "8", "")), "missing", ProgressInput{})
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestModuleLookupFailureAbortsDeleteAndSubmit(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t, quiz("t1", "m1", 2, 2))
	s := student("s1", "8", "А")
	f.addUsers(t, s, teacher("t1", model.SubjectRef{ID: "math"}))
	f.assessment.Store = brokenModuleStore{f.store}

	err := f.assessment.DeleteTest(f.ctx, model.Caller{UserID: "t1", Role: model.Teacher}, "t1")
	assert.ErrorIs(t, err, errStoreDown)

	_, err = f.assessment.Submit(f.ctx, caller(s), "t1", SubmitInput{Answers: map[int]int{0: 0}})
	assert.ErrorIs(t, err, errStoreDown)

	f.update(t, func(tx repository.Tx) error {
		_, err := tx.Tests().FindByID("t1")
		require.NoError(t, err, "test survives")
		results, err := tx.Results().ListByUser("s1")
		require.NoError(t, err)
		assert.Empty(t, results)
		return nil
	})
}

func TestOrphanedTestStillDeletesAndScores(t *testing.T) {
	f := newFixture(t)
	f.update(t, func(tx repository.Tx) error { return tx.Tests().Create(quiz("t9", "gone", 2, 2)) })
	s := student("s1", "8", "А")
	f.addUsers(t, s)

	res, err := f.assessment.Submit(f.ctx, caller(s), "t9", SubmitInput{Answers: map[int]int{0: 0, 1: 1}})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)
	assert.Empty(t, res.SubjectID)

	require.NoError(t, f.assessment.DeleteTest(f.ctx, admin, "t9"))
}

func TestConcurrentStartsShareOneLayout(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t, quiz("t1", "m1", 8, 4))
	s := student("s1", "8", "А")
	f.addUsers(t, s)

	const n = 16
	layouts := make([]*RandomizedTest, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rt, err := f.assessment.StartAttempt(f.ctx, caller(s), "t1")
			assert.NoError(t, err)
			layouts[i] = rt
		}(i)
	}
	wg.Wait()

	stored, ok, err := f.layouts.Get(f.ctx, s.ID, "t1")
	require.NoError(t, err)
	require.True(t, ok)
	want := Randomize(quiz("t1", "m1", 8, 4), stored, false)
	for _, rt := range layouts {
		assert.Equal(t, want, rt)
	}
}

func TestUpdateTestPublishesDraft(t *testing.T) {
	f := newFixture(t)
	draft := quiz("t1", "m1", 3, 3)
	draft.Status = model.TestDraft
	f.seedCatalog(t, draft)
	s := student("s1", "8", "А")
	author := teacher("t1", model.SubjectRef{ID: "math"})
	f.addUsers(t, s, author)

	_, err := f.assessment.StartAttempt(f.ctx, caller(s), "t1")
	require.ErrorIs(t, err, util.ErrTestNotPublished)

	published := model.TestPublished
	name := "Дроби 2"
	updated, err := f.assessment.UpdateTest(f.ctx, caller(author), "t1", UpdateTestInput{Status: &published, NameRu: &name})
	require.NoError(t, err)
	assert.Equal(t, model.TestPublished, updated.Status)
	assert.Equal(t, "Дроби 2", updated.NameRu)
	assert.Len(t, updated.Questions, 3, "untouched fields are kept")
	assert.Equal(t, 100, updated.MaxScore)

	rt, err := f.assessment.StartAttempt(f.ctx, caller(s), "t1")
	require.NoError(t, err)
	assert.Len(t, rt.Questions, 3)
}

func TestUpdateTestValidation(t *testing.T) {
	f := newFixture(t)
	draft := quiz("t1", "m1", 0, 0)
	draft.Status = model.TestDraft
	f.seedCatalog(t, draft)
	author := teacher("t1", model.SubjectRef{ID: "math"})
	outsider := teacher("t2", model.SubjectRef{ID: "physics"})
	s := student("s1", "8", "А")
	f.addUsers(t, author, outsider, s)

	published := model.TestPublished
	_, err := f.assessment.UpdateTest(f.ctx, caller(author), "t1", UpdateTestInput{Status: &published})
	assert.ErrorIs(t, err, util.ErrNoQuestions)

	archived := model.TestStatus("archived")
	_, err = f.assessment.UpdateTest(f.ctx, caller(author), "t1", UpdateTestInput{Status: &archived})
	assert.ErrorIs(t, err, util.ErrInvalidTestStatus)

	_, err = f.assessment.UpdateTest(f.ctx, caller(outsider), "t1", UpdateTestInput{Status: &published})
	assert.ErrorIs(t, err, util.ErrForbidden)

	_, err = f.assessment.UpdateTest(f.ctx, caller(s), "t1", UpdateTestInput{Status: &published})
	assert.ErrorIs(t, err, util.ErrForbidden)

	_, err = f.assessment.UpdateTest(f.ctx, caller(author), "nope", UpdateTestInput{})
	assert.ErrorIs(t, err, util.ErrTestNotFound)

	// a failed update leaves the stored test alone
	f.update(t, func(tx repository.Tx) error {
		stored, err := tx.Tests().FindByID("t1")
		require.NoError(t, err)
		assert.Equal(t, model.TestDraft, stored.Status)
		return nil
	})

	questions := quiz("x", "m1", 2, 2).Questions
	updated, err := f.assessment.UpdateTest(f.ctx, admin, "t1", UpdateTestInput{Status: &published, Questions: &questions})
	require.NoError(t, err)
	assert.True(t, updated.IsPublished())
	assert.Len(t, updated.Questions, 2)
}

func TestUpdateTestQuestionsResetLayouts(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t, quiz("t1", "m1", 3, 3))
	s := student("s1", "8", "А")
	f.addUsers(t, s)

	_, err := f.assessment.StartAttempt(f.ctx, caller(s), "t1")
	require.NoError(t, err)

	questions := quiz("x", "m1", 5, 3).Questions
	_, err = f.assessment.UpdateTest(f.ctx, admin, "t1", UpdateTestInput{Questions: &questions})
	require.NoError(t, err)

	_, ok, err := f.layouts.Get(f.ctx, s.ID, "t1")
	require.NoError(t, err)
	assert.False(t, ok)
}
