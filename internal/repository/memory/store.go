// Package memory is an in-process Store used for development and tests.
package memory

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"context"
	"sync"
	"time"
)

// Store guards every collection with one RWMutex: View holds the read lock,
// Update the write lock. A failed Update rolls every collection back.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users    *table[model.User]
	subjects *table[model.Subject]
	modules  *table[model.Module]
	tests    *table[model.Test]
	classes  *table[model.Class]
	results  *table[model.Result]
	progress *table[model.Progress]
	controls *table[model.ControlTest]
	graded   *table[model.ControlResult]
}

func NewStore() *Store {
	return &Store{
		now:      time.Now,
		users:    newTable(cloneUser),
		subjects: newTable(cloneSubject),
		modules:  newTable(cloneModule),
		tests:    newTable(cloneTest),
		classes:  newTable(cloneClass),
		results:  newTable(cloneResult),
		progress: newTable(cloneProgress),
		controls: newTable(cloneControlTest),
		graded:   newTable(cloneControlResult),
	}
}

// WithClock overrides the timestamp source used for created/updated stamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) View(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&tx{s: s})
}

func (s *Store) Update(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(&tx{s: s}); err != nil {
		snap.restore(s)
		return err
	}
	return nil
}

type snapshot struct {
	users    []*model.User
	subjects []*model.Subject
	modules  []*model.Module
	tests    []*model.Test
	classes  []*model.Class
	results  []*model.Result
	progress []*model.Progress
	controls []*model.ControlTest
	graded   []*model.ControlResult
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		users:    s.users.snapshot(),
		subjects: s.subjects.snapshot(),
		modules:  s.modules.snapshot(),
		tests:    s.tests.snapshot(),
		classes:  s.classes.snapshot(),
		results:  s.results.snapshot(),
		progress: s.progress.snapshot(),
		controls: s.controls.snapshot(),
		graded:   s.graded.snapshot(),
	}
}

func (snap snapshot) restore(s *Store) {
	s.users.restore(snap.users)
	s.subjects.restore(snap.subjects)
	s.modules.restore(snap.modules)
	s.tests.restore(snap.tests)
	s.classes.restore(snap.classes)
	s.results.restore(snap.results)
	s.progress.restore(snap.progress)
	s.controls.restore(snap.controls)
	s.graded.restore(snap.graded)
}

func (s *Store) stamp(base *model.UUIDBase) {
	if base.ID == "" {
		base.ID = model.GenerateUUID()
	}
	now := s.now()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
}

type tx struct {
	s *Store
}

func (t *tx) Users() repository.UserRepository               { return userRepository{t.s} }
func (t *tx) Subjects() repository.SubjectRepository         { return subjectRepository{t.s} }
func (t *tx) Modules() repository.ModuleRepository           { return moduleRepository{t.s} }
func (t *tx) Tests() repository.TestRepository               { return testRepository{t.s} }
func (t *tx) Classes() repository.ClassRepository            { return classRepository{t.s} }
func (t *tx) Results() repository.ResultRepository           { return resultRepository{t.s} }
func (t *tx) Progress() repository.ProgressRepository        { return progressRepository{t.s} }
func (t *tx) ControlTests() repository.ControlTestRepository { return controlTestRepository{t.s} }
func (t *tx) ControlResults() repository.ControlResultRepository {
	return controlResultRepository{t.s}
}
