package service

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"assessment_backend/internal/repository/memory"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	admin = model.Caller{UserID: "admin", Role: model.Admin}
	day0  = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
)

type fixture struct {
	ctx        context.Context
	store      *memory.Store
	layouts    *repository.MemoryLayoutCache
	access     *AccessResolver
	progress   *ProgressService
	assessment *AssessmentService
	analytics  *AnalyticsService
	control    *ControlService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	access := NewAccessResolver()
	progress := NewProgressService(store)
	layouts := repository.NewMemoryLayoutCache()
	f := &fixture{
		ctx:        context.Background(),
		store:      store,
		layouts:    layouts,
		access:     access,
		progress:   progress,
		assessment: NewAssessmentService(store, layouts, access, progress, Policy{}),
		analytics:  NewAnalyticsService(store, access),
		control:    NewControlService(store),
	}
	var seed atomic.Int64
	f.assessment.seed = func() int64 { return seed.Add(1) }
	return f
}

func (f *fixture) update(t *testing.T, fn func(tx repository.Tx) error) {
	t.Helper()
	require.NoError(t, f.store.Update(f.ctx, fn))
}

func (f *fixture) addUsers(t *testing.T, users ...*model.User) {
	t.Helper()
	f.update(t, func(tx repository.Tx) error {
		for _, u := range users {
			if err := tx.Users().Create(u); err != nil {
				return err
			}
		}
		return nil
	})
}

func (f *fixture) addClasses(t *testing.T, classes ...*model.Class) {
	t.Helper()
	f.update(t, func(tx repository.Tx) error {
		for _, c := range classes {
			if err := tx.Classes().Create(c); err != nil {
				return err
			}
		}
		return nil
	})
}

func (f *fixture) addResults(t *testing.T, results ...*model.Result) {
	t.Helper()
	f.update(t, func(tx repository.Tx) error {
		for _, r := range results {
			if err := tx.Results().Create(r); err != nil {
				return err
			}
		}
		return nil
	})
}

func student(id, grade, section string) *model.User {
	return &model.User{
		UUIDBase:     model.UUIDBase{ID: id},
		Username:     id,
		FirstName:    "Student",
		LastName:     id,
		Role:         model.Student,
		Grade:        grade,
		GradeSection: section,
	}
}

func teacher(id string, subjects ...model.SubjectRef) *model.User {
	return &model.User{
		UUIDBase:  model.UUIDBase{ID: id},
		Username:  id,
		FirstName: "Teacher",
		LastName:  id,
		Role:      model.Teacher,
		Subjects:  subjects,
	}
}

func caller(u *model.User) model.Caller {
	return model.Caller{UserID: u.ID, Role: u.Role}
}

func result(userID, subjectID string, score int, at time.Time) *model.Result {
	return &model.Result{
		UserID:      userID,
		TestID:      "test-" + subjectID,
		ModuleID:    "module-" + subjectID,
		SubjectID:   subjectID,
		Score:       score,
		CompletedAt: at,
	}
}

// quiz builds a test whose question i has its correct answer at index i%n.
func quiz(id, moduleID string, questions, answers int) *model.Test {
	test := &model.Test{
		UUIDBase: model.UUIDBase{ID: id},
		ModuleID: moduleID,
		NameRu:   "Тест " + id,
		Status:   model.TestPublished,
		MaxScore: 100,
	}
	for i := 0; i < questions; i++ {
		q := model.Question{QuestionRu: "Вопрос", QuestionUz: "Savol"}
		for j := 0; j < answers; j++ {
			q.Answers = append(q.Answers, model.Answer{TextRu: string(rune('A' + j)), IsCorrect: j == i%answers})
		}
		test.Questions = append(test.Questions, q)
	}
	return test
}

// seedCatalog stores subject "math" with module "m1" owned by teacher t1,
// and the given test under it.
func (f *fixture) seedCatalog(t *testing.T, test *model.Test) {
	t.Helper()
	f.update(t, func(tx repository.Tx) error {
		if err := tx.Subjects().Create(&model.Subject{UUIDBase: model.UUIDBase{ID: "math"}, NameRu: "Математика", NameUz: "Matematika"}); err != nil {
			return err
		}
		if err := tx.Modules().Create(&model.Module{UUIDBase: model.UUIDBase{ID: "m1"}, SubjectID: "math", CreatedBy: "t1", NameRu: "Дроби"}); err != nil {
			return err
		}
		if test == nil {
			return nil
		}
		return tx.Tests().Create(test)
	})
}

var errStoreDown = errors.New("store down")

// brokenModuleStore fails every module lookup with errStoreDown.
type brokenModuleStore struct{ *memory.Store }

type brokenModuleTx struct{ repository.Tx }

type brokenModules struct{ repository.ModuleRepository }

func (brokenModules) FindByID(string) (*model.Module, error) { return nil, errStoreDown }

func (t brokenModuleTx) Modules() repository.ModuleRepository {
	return brokenModules{t.Tx.Modules()}
}

func (s brokenModuleStore) View(ctx context.Context, fn func(tx repository.Tx) error) error {
	return s.Store.View(ctx, func(tx repository.Tx) error { return fn(brokenModuleTx{tx}) })
}

func (s brokenModuleStore) Update(ctx context.Context, fn func(tx repository.Tx) error) error {
	return s.Store.Update(ctx, func(tx repository.Tx) error { return fn(brokenModuleTx{tx}) })
}
