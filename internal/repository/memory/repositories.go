package memory

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"errors"
)

var errMissingKey = errors.New("progress requires user and test ids")

type userRepository struct{ s *Store }

func (r userRepository) Create(user *model.User) error {
	user.Normalize()
	r.s.stamp(&user.UUIDBase)
	r.s.users.insert(user)
	return nil
}

func (r userRepository) FindByID(id string) (*model.User, error) {
	return r.s.users.find(func(u *model.User) bool { return u.ID == id })
}

func (r userRepository) List() ([]model.User, error) {
	return r.s.users.filter(nil), nil
}

func (r userRepository) ListByRole(role model.UserRole) ([]model.User, error) {
	return r.s.users.filter(func(u *model.User) bool { return u.Role == role }), nil
}

type subjectRepository struct{ s *Store }

func (r subjectRepository) Create(subject *model.Subject) error {
	r.s.stamp(&subject.UUIDBase)
	r.s.subjects.insert(subject)
	return nil
}

func (r subjectRepository) FindByID(id string) (*model.Subject, error) {
	return r.s.subjects.find(func(s *model.Subject) bool { return s.ID == id })
}

func (r subjectRepository) List() ([]model.Subject, error) {
	return r.s.subjects.filter(nil), nil
}

type moduleRepository struct{ s *Store }

func (r moduleRepository) Create(module *model.Module) error {
	r.s.stamp(&module.UUIDBase)
	r.s.modules.insert(module)
	return nil
}

func (r moduleRepository) FindByID(id string) (*model.Module, error) {
	return r.s.modules.find(func(m *model.Module) bool { return m.ID == id })
}

func (r moduleRepository) ListBySubject(subjectID string) ([]model.Module, error) {
	return r.s.modules.filter(func(m *model.Module) bool { return m.SubjectID == subjectID }), nil
}

func (r moduleRepository) ListByCreator(userID string) ([]model.Module, error) {
	return r.s.modules.filter(func(m *model.Module) bool { return m.CreatedBy == userID }), nil
}

func (r moduleRepository) Delete(id string) error {
	r.s.modules.remove(func(m *model.Module) bool { return m.ID == id })
	return nil
}

type testRepository struct{ s *Store }

func (r testRepository) Create(test *model.Test) error {
	r.s.stamp(&test.UUIDBase)
	r.s.tests.insert(test)
	return nil
}

func (r testRepository) Update(test *model.Test) error {
	test.UpdatedAt = r.s.now()
	if !r.s.tests.replace(func(t *model.Test) bool { return t.ID == test.ID }, test) {
		return repository.ErrRecordNotFound
	}
	return nil
}

func (r testRepository) FindByID(id string) (*model.Test, error) {
	return r.s.tests.find(func(t *model.Test) bool { return t.ID == id })
}

func (r testRepository) FindByModule(moduleID string) (*model.Test, error) {
	return r.s.tests.find(func(t *model.Test) bool { return t.ModuleID == moduleID })
}

func (r testRepository) ListByModule(moduleID string) ([]model.Test, error) {
	return r.s.tests.filter(func(t *model.Test) bool { return t.ModuleID == moduleID }), nil
}

func (r testRepository) Delete(id string) error {
	r.s.tests.remove(func(t *model.Test) bool { return t.ID == id })
	return nil
}

type classRepository struct{ s *Store }

func (r classRepository) Create(class *model.Class) error {
	r.s.stamp(&class.UUIDBase)
	r.s.classes.insert(class)
	return nil
}

func (r classRepository) FindByID(id string) (*model.Class, error) {
	return r.s.classes.find(func(c *model.Class) bool { return c.ID == id })
}

func (r classRepository) List() ([]model.Class, error) {
	return r.s.classes.filter(nil), nil
}

func (r classRepository) ListByTeacher(teacherID string) ([]model.Class, error) {
	return r.s.classes.filter(func(c *model.Class) bool { return c.TeacherID == teacherID }), nil
}

type resultRepository struct{ s *Store }

func (r resultRepository) Create(result *model.Result) error {
	r.s.stamp(&result.UUIDBase)
	if result.CompletedAt.IsZero() {
		result.CompletedAt = result.CreatedAt
	}
	r.s.results.insert(result)
	return nil
}

func (r resultRepository) FindByID(id string) (*model.Result, error) {
	return r.s.results.find(func(res *model.Result) bool { return res.ID == id })
}

func (r resultRepository) List() ([]model.Result, error) {
	return r.s.results.filter(nil), nil
}

func (r resultRepository) ListByUser(userID string) ([]model.Result, error) {
	return r.s.results.filter(func(res *model.Result) bool { return res.UserID == userID }), nil
}

func (r resultRepository) ListByUserAndTest(userID, testID string) ([]model.Result, error) {
	return r.s.results.filter(func(res *model.Result) bool {
		return res.UserID == userID && res.TestID == testID
	}), nil
}

func (r resultRepository) DeleteByTest(testID string) error {
	r.s.results.remove(func(res *model.Result) bool { return res.TestID == testID })
	return nil
}

type progressRepository struct{ s *Store }

func (r progressRepository) Save(progress *model.Progress) error {
	if progress.UserID == "" || progress.TestID == "" {
		return errMissingKey
	}
	match := func(p *model.Progress) bool {
		return p.UserID == progress.UserID && p.TestID == progress.TestID
	}
	if !r.s.progress.replace(match, progress) {
		r.s.progress.insert(progress)
	}
	return nil
}

func (r progressRepository) Find(userID, testID string) (*model.Progress, error) {
	return r.s.progress.find(func(p *model.Progress) bool {
		return p.UserID == userID && p.TestID == testID
	})
}

func (r progressRepository) Delete(userID, testID string) error {
	r.s.progress.remove(func(p *model.Progress) bool {
		return p.UserID == userID && p.TestID == testID
	})
	return nil
}

func (r progressRepository) DeleteByTest(testID string) error {
	r.s.progress.remove(func(p *model.Progress) bool { return p.TestID == testID })
	return nil
}

type controlTestRepository struct{ s *Store }

func (r controlTestRepository) Create(test *model.ControlTest) error {
	r.s.stamp(&test.UUIDBase)
	r.s.controls.insert(test)
	return nil
}

func (r controlTestRepository) Update(test *model.ControlTest) error {
	test.UpdatedAt = r.s.now()
	if !r.s.controls.replace(func(t *model.ControlTest) bool { return t.ID == test.ID }, test) {
		return repository.ErrRecordNotFound
	}
	return nil
}

func (r controlTestRepository) FindByID(id string) (*model.ControlTest, error) {
	return r.s.controls.find(func(t *model.ControlTest) bool { return t.ID == id })
}

func (r controlTestRepository) List() ([]model.ControlTest, error) {
	return r.s.controls.filter(nil), nil
}

func (r controlTestRepository) Delete(id string) error {
	r.s.controls.remove(func(t *model.ControlTest) bool { return t.ID == id })
	return nil
}

type controlResultRepository struct{ s *Store }

func (r controlResultRepository) Create(result *model.ControlResult) error {
	r.s.stamp(&result.UUIDBase)
	if result.CompletedAt.IsZero() {
		result.CompletedAt = result.CreatedAt
	}
	r.s.graded.insert(result)
	return nil
}

func (r controlResultRepository) ListByTest(testID string) ([]model.ControlResult, error) {
	return r.s.graded.filter(func(res *model.ControlResult) bool { return res.TestID == testID }), nil
}

func (r controlResultRepository) ListByTeacher(teacherID string) ([]model.ControlResult, error) {
	return r.s.graded.filter(func(res *model.ControlResult) bool { return res.TeacherID == teacherID }), nil
}

func (r controlResultRepository) DeleteByTest(testID string) error {
	r.s.graded.remove(func(res *model.ControlResult) bool { return res.TestID == testID })
	return nil
}
