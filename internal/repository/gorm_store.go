package repository

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

// GormStore is the SQL-backed Store. Every unit of work is a transaction.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) View(ctx context.Context, fn func(tx Tx) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newGormTx(tx))
	}, &sql.TxOptions{ReadOnly: true})
}

func (s *GormStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newGormTx(tx))
	})
}

type gormTx struct {
	users    *userRepository
	subjects *subjectRepository
	modules  *moduleRepository
	tests    *testRepository
	classes  *classRepository
	results  *resultRepository
	progress *progressRepository
	controls *controlTestRepository
	graded   *controlResultRepository
}

func newGormTx(db *gorm.DB) *gormTx {
	return &gormTx{
		users:    NewUserRepository(db),
		subjects: NewSubjectRepository(db),
		modules:  NewModuleRepository(db),
		tests:    NewTestRepository(db),
		classes:  NewClassRepository(db),
		results:  NewResultRepository(db),
		progress: NewProgressRepository(db),
		controls: NewControlTestRepository(db),
		graded:   NewControlResultRepository(db),
	}
}

func (t *gormTx) Users() UserRepository                   { return t.users }
func (t *gormTx) Subjects() SubjectRepository             { return t.subjects }
func (t *gormTx) Modules() ModuleRepository               { return t.modules }
func (t *gormTx) Tests() TestRepository                   { return t.tests }
func (t *gormTx) Classes() ClassRepository                { return t.classes }
func (t *gormTx) Results() ResultRepository               { return t.results }
func (t *gormTx) Progress() ProgressRepository            { return t.progress }
func (t *gormTx) ControlTests() ControlTestRepository     { return t.controls }
func (t *gormTx) ControlResults() ControlResultRepository { return t.graded }

func first[T any](db *gorm.DB, query string, args ...interface{}) (*T, error) {
	var v T
	if err := db.Where(query, args...).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &v, nil
}
