package repository

import (
	"assessment_backend/internal/model"
	"context"
	"errors"
)

var ErrRecordNotFound = errors.New("record not found")

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id string) (*model.User, error)
	List() ([]model.User, error)
	ListByRole(role model.UserRole) ([]model.User, error)
}

type SubjectRepository interface {
	Create(subject *model.Subject) error
	FindByID(id string) (*model.Subject, error)
	List() ([]model.Subject, error)
}

type ModuleRepository interface {
	Create(module *model.Module) error
	FindByID(id string) (*model.Module, error)
	ListBySubject(subjectID string) ([]model.Module, error)
	ListByCreator(userID string) ([]model.Module, error)
	Delete(id string) error
}

type TestRepository interface {
	Create(test *model.Test) error
	Update(test *model.Test) error
	FindByID(id string) (*model.Test, error)
	FindByModule(moduleID string) (*model.Test, error)
	ListByModule(moduleID string) ([]model.Test, error)
	Delete(id string) error
}

type ClassRepository interface {
	Create(class *model.Class) error
	FindByID(id string) (*model.Class, error)
	List() ([]model.Class, error)
	ListByTeacher(teacherID string) ([]model.Class, error)
}

// ResultRepository lists results in creation order.
type ResultRepository interface {
	Create(result *model.Result) error
	FindByID(id string) (*model.Result, error)
	List() ([]model.Result, error)
	ListByUser(userID string) ([]model.Result, error)
	ListByUserAndTest(userID, testID string) ([]model.Result, error)
	DeleteByTest(testID string) error
}

type ProgressRepository interface {
	Save(progress *model.Progress) error
	Find(userID, testID string) (*model.Progress, error)
	Delete(userID, testID string) error
	DeleteByTest(testID string) error
}

type ControlTestRepository interface {
	Create(test *model.ControlTest) error
	Update(test *model.ControlTest) error
	FindByID(id string) (*model.ControlTest, error)
	List() ([]model.ControlTest, error)
	Delete(id string) error
}

// ControlResultRepository lists results in creation order.
type ControlResultRepository interface {
	Create(result *model.ControlResult) error
	ListByTest(testID string) ([]model.ControlResult, error)
	ListByTeacher(teacherID string) ([]model.ControlResult, error)
	DeleteByTest(testID string) error
}

// Tx exposes every collection inside one consistent unit of work.
type Tx interface {
	Users() UserRepository
	Subjects() SubjectRepository
	Modules() ModuleRepository
	Tests() TestRepository
	Classes() ClassRepository
	Results() ResultRepository
	Progress() ProgressRepository
	ControlTests() ControlTestRepository
	ControlResults() ControlResultRepository
}

// Store runs units of work. View callbacks may run concurrently with each
// other but never with an Update; Update callbacks are atomic.
type Store interface {
	View(ctx context.Context, fn func(tx Tx) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error
}

// LayoutCache keeps the shuffle seed of an in-flight attempt so that a
// resumed attempt is delivered in the same order. Claim is first-writer-wins:
// concurrent claims for one attempt all return the same seed.
type LayoutCache interface {
	Get(ctx context.Context, userID, testID string) (int64, bool, error)
	Claim(ctx context.Context, userID, testID string, seed int64) (int64, error)
	Delete(ctx context.Context, userID, testID string) error
	DeleteTest(ctx context.Context, testID string) error
}
